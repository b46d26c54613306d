package store

import "errors"

var (
	// ErrClientNotFound is returned when no fixture file exists for a client id.
	ErrClientNotFound = errors.New("client not found")
	// ErrCodeNotFound is returned for unknown, expired or already-consumed
	// authorization codes. The three cases are deliberately indistinguishable.
	ErrCodeNotFound = errors.New("authorization code not found")
	// ErrTokenNotFound is returned for unknown or expired tokens.
	ErrTokenNotFound = errors.New("token not found")
)
