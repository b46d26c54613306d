package models

import (
	"errors"
	"time"
)

// AuthorizationCode is a short-lived, single-use credential issued after a
// successful login on the authorize endpoint. The redirect URI is bound at
// issuance and re-checked at exchange time; that check is what stops an
// attacker from injecting a stolen code through a different callback.
type AuthorizationCode struct {
	Code        string
	ExpiresAt   time.Time
	RedirectURI string
	Scope       []string
	ClientID    string
	User        User
}

// AuthorizationCodeParams carries every field required to construct an
// AuthorizationCode. There is deliberately no partial constructor: a record
// with a missing binding is a protocol bug, not a default.
type AuthorizationCodeParams struct {
	Code        string
	ExpiresAt   time.Time
	RedirectURI string
	Scope       []string
	ClientID    string
	User        User
}

var (
	errCodeMissingCode     = errors.New("authorization code: code is required")
	errCodeMissingExpiry   = errors.New("authorization code: expiry is required")
	errCodeMissingRedirect = errors.New("authorization code: redirect URI is required")
	errCodeMissingClient   = errors.New("authorization code: client id is required")
	errCodeMissingUser     = errors.New("authorization code: user id is required")
)

// NewAuthorizationCode validates params and builds the record. Scope may be
// empty; everything else is mandatory.
func NewAuthorizationCode(p AuthorizationCodeParams) (*AuthorizationCode, error) {
	switch {
	case p.Code == "":
		return nil, errCodeMissingCode
	case p.ExpiresAt.IsZero():
		return nil, errCodeMissingExpiry
	case p.RedirectURI == "":
		return nil, errCodeMissingRedirect
	case p.ClientID == "":
		return nil, errCodeMissingClient
	case p.User.ID == "":
		return nil, errCodeMissingUser
	}

	return &AuthorizationCode{
		Code:        p.Code,
		ExpiresAt:   p.ExpiresAt,
		RedirectURI: p.RedirectURI,
		Scope:       p.Scope,
		ClientID:    p.ClientID,
		User:        p.User.Sanitized(),
	}, nil
}

// IsExpired reports whether the code has outlived its ttl.
func (a *AuthorizationCode) IsExpired() bool {
	return time.Now().After(a.ExpiresAt)
}
