package store

import (
	"sync"
	"time"

	"github.com/Herald2025/seu-oauth2-mock/internal/models"
	"github.com/Herald2025/seu-oauth2-mock/internal/ticket"
)

// TokenStore holds issued access tokens, indexed by access token string and
// (when present) by refresh token string. Expiry is checked lazily at
// lookup; there is no background sweep.
type TokenStore struct {
	mu        sync.Mutex
	byAccess  map[string]*models.Token
	byRefresh map[string]*models.Token
	accessGen *ticket.Generator
	refresGen *ticket.Generator
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{
		byAccess:  make(map[string]*models.Token),
		byRefresh: make(map[string]*models.Token),
		accessGen: ticket.NewGenerator(ticket.FamilyAccessToken),
		refresGen: ticket.NewGenerator(ticket.FamilyRefreshToken),
	}
}

// Issue mints an access token (and a refresh token when refreshTTL > 0)
// bound to the client, user, scope and originating redirect URI.
func (s *TokenStore) Issue(
	client *models.Client,
	user models.User,
	scope []string,
	redirectURI string,
	ttl, refreshTTL time.Duration,
) (*models.Token, error) {
	accessToken, err := s.accessGen.Next()
	if err != nil {
		return nil, err
	}

	params := models.TokenParams{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: time.Now().Add(ttl),
		Scope:                scope,
		ClientID:             client.ID,
		User:                 user,
		RedirectURI:          redirectURI,
	}

	if refreshTTL > 0 {
		refreshToken, err := s.refresGen.Next()
		if err != nil {
			return nil, err
		}
		params.RefreshToken = refreshToken
		params.RefreshTokenExpiresAt = time.Now().Add(refreshTTL)
	}

	token, err := models.NewToken(params)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.byAccess[token.AccessToken] = token
	if token.RefreshToken != "" {
		s.byRefresh[token.RefreshToken] = token
	}
	s.mu.Unlock()

	return token, nil
}

// LookupAccessToken returns the live token for the given access token
// string. An expired access token is dropped from the access index only;
// its refresh token stays redeemable until that half expires too.
func (s *TokenStore) LookupAccessToken(accessToken string) (*models.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.byAccess[accessToken]
	if !ok {
		return nil, ErrTokenNotFound
	}
	if token.IsExpired() {
		delete(s.byAccess, accessToken)
		if token.RefreshToken != "" && token.IsRefreshExpired() {
			delete(s.byRefresh, token.RefreshToken)
		}
		return nil, ErrTokenNotFound
	}
	return token, nil
}

// LookupRefreshToken returns the live token for the given refresh token
// string. A token whose refresh half has expired is treated as not found
// (the access half may still be valid and stays stored).
func (s *TokenStore) LookupRefreshToken(refreshToken string) (*models.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.byRefresh[refreshToken]
	if !ok {
		return nil, ErrTokenNotFound
	}
	if token.IsRefreshExpired() {
		delete(s.byRefresh, refreshToken)
		return nil, ErrTokenNotFound
	}
	return token, nil
}

// Revoke removes the token identified by its access token string. Returns
// whether a record was removed.
func (s *TokenStore) Revoke(accessToken string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.byAccess[accessToken]
	if ok {
		s.removeLocked(token)
	}
	return ok
}

// RevokeByRefreshToken removes the whole token pair identified by its
// refresh token string.
func (s *TokenStore) RevokeByRefreshToken(refreshToken string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.byRefresh[refreshToken]
	if ok {
		s.removeLocked(token)
	}
	return ok
}

// VerifyScope reports whether every requested scope is granted by the token.
func (s *TokenStore) VerifyScope(token *models.Token, requested []string) bool {
	return token.HasScope(requested)
}

// Count returns the number of stored access tokens. Used by the metrics
// gauge job.
func (s *TokenStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byAccess)
}

func (s *TokenStore) removeLocked(token *models.Token) {
	delete(s.byAccess, token.AccessToken)
	if token.RefreshToken != "" {
		delete(s.byRefresh, token.RefreshToken)
	}
}
