package models

// User is a member of a client's fixture file. Credentials are stored in
// plaintext: this server is a test double and its fixtures are meant to be
// hand-edited, not secured.
type User struct {
	ID            string `json:"id"`
	Password      string `json:"password,omitempty"`
	Email         string `json:"email,omitempty"`
	CardID        string `json:"cardId,omitempty"`
	RealName      string `json:"realName,omitempty"`
	Department    string `json:"department,omitempty"`
	UserType      string `json:"userType,omitempty"`
	StudentNumber string `json:"studentNumber,omitempty"`
	Gender        string `json:"gender,omitempty"`
}

// Sanitized returns a copy with the password removed, for embedding in
// records that outlive the login request.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
