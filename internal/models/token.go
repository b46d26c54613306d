package models

import (
	"errors"
	"time"
)

// Token is an issued access token, optionally paired with a refresh token.
// RedirectURI records the callback that was active when the token was
// minted; the profile endpoint reports it as the originating "service".
type Token struct {
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	Scope                 []string
	ClientID              string
	User                  User
	RedirectURI           string
}

// TokenParams carries every field required to construct a Token. Refresh
// fields must be both set or both empty.
type TokenParams struct {
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	Scope                 []string
	ClientID              string
	User                  User
	RedirectURI           string
}

var (
	errTokenMissingAccess  = errors.New("token: access token is required")
	errTokenMissingExpiry  = errors.New("token: access token expiry is required")
	errTokenMissingClient  = errors.New("token: client id is required")
	errTokenMissingUser    = errors.New("token: user id is required")
	errTokenRefreshPairing = errors.New("token: refresh token and its expiry must be set together")
)

// NewToken validates params and builds the record.
func NewToken(p TokenParams) (*Token, error) {
	switch {
	case p.AccessToken == "":
		return nil, errTokenMissingAccess
	case p.AccessTokenExpiresAt.IsZero():
		return nil, errTokenMissingExpiry
	case p.ClientID == "":
		return nil, errTokenMissingClient
	case p.User.ID == "":
		return nil, errTokenMissingUser
	case (p.RefreshToken == "") != p.RefreshTokenExpiresAt.IsZero():
		return nil, errTokenRefreshPairing
	}

	return &Token{
		AccessToken:           p.AccessToken,
		AccessTokenExpiresAt:  p.AccessTokenExpiresAt,
		RefreshToken:          p.RefreshToken,
		RefreshTokenExpiresAt: p.RefreshTokenExpiresAt,
		Scope:                 p.Scope,
		ClientID:              p.ClientID,
		User:                  p.User.Sanitized(),
		RedirectURI:           p.RedirectURI,
	}, nil
}

// IsExpired reports whether the access token has outlived its ttl.
func (t *Token) IsExpired() bool {
	return time.Now().After(t.AccessTokenExpiresAt)
}

// IsRefreshExpired reports whether the refresh token (if any) is expired.
// A token with no refresh token is always refresh-expired.
func (t *Token) IsRefreshExpired() bool {
	if t.RefreshToken == "" {
		return true
	}
	return time.Now().After(t.RefreshTokenExpiresAt)
}

// HasScope reports whether every requested scope is contained in the
// token's granted scope set.
func (t *Token) HasScope(requested []string) bool {
	granted := make(map[string]bool, len(t.Scope))
	for _, s := range t.Scope {
		granted[s] = true
	}
	for _, s := range requested {
		if !granted[s] {
			return false
		}
	}
	return true
}
