package models

// Client is a registered OAuth application, loaded from a JSON fixture file
// named <client_id>.json. Fixture data is authoritative and read-only at
// runtime; edits to the file are picked up on the next lookup.
type Client struct {
	ID           string   `json:"id"`
	ClientSecret string   `json:"clientSecret"`
	Grants       []string `json:"grants"`
	RedirectURIs []string `json:"redirectUris,omitempty"`
	Users        []User   `json:"users"`
}

// SupportsGrant reports whether the client is allowed to use the given
// grant type ("authorization_code", "refresh_token", ...).
func (c *Client) SupportsGrant(grantType string) bool {
	for _, g := range c.Grants {
		if g == grantType {
			return true
		}
	}
	return false
}

// FindUser returns the client's user with the given id, or nil.
func (c *Client) FindUser(userID string) *User {
	for i := range c.Users {
		if c.Users[i].ID == userID {
			return &c.Users[i]
		}
	}
	return nil
}
