package services

import (
	"errors"
	"time"

	"github.com/Herald2025/seu-oauth2-mock/internal/config"
	"github.com/Herald2025/seu-oauth2-mock/internal/metrics"
	"github.com/Herald2025/seu-oauth2-mock/internal/models"
	"github.com/Herald2025/seu-oauth2-mock/internal/store"
)

// ErrExpiredAccessToken covers missing, unknown and expired bearer tokens.
// The emulated system reports all three the same way.
var ErrExpiredAccessToken = errors.New("expired_accessToken")

// TokenService manages access token lifecycle: minting at exchange time,
// bearer verification at resource access time, and revocation.
type TokenService struct {
	tokens          *store.TokenStore
	config          *config.Config
	metricsRecorder metrics.Recorder
}

func NewTokenService(
	tokens *store.TokenStore,
	cfg *config.Config,
	m metrics.Recorder,
) *TokenService {
	return &TokenService{
		tokens:          tokens,
		config:          cfg,
		metricsRecorder: m,
	}
}

// Issue mints a token for the client/user pair. The redirect URI is the one
// that was active in the originating authorization flow; the profile
// endpoint reports it as the "service". A refresh token is included when
// the feature is enabled and the client's grants allow it.
func (s *TokenService) Issue(
	client *models.Client,
	user models.User,
	scope []string,
	redirectURI string,
	grantType string,
) (*models.Token, error) {
	start := time.Now()

	refreshTTL := time.Duration(0)
	if s.config.EnableRefreshTokens && client.SupportsGrant(GrantTypeRefreshToken) {
		refreshTTL = s.config.RefreshTokenExpiration
	}

	token, err := s.tokens.Issue(
		client, user, scope, redirectURI,
		s.config.AccessTokenExpiration, refreshTTL,
	)
	if err != nil {
		return nil, err
	}

	s.metricsRecorder.RecordTokenIssued(grantType, time.Since(start))
	return token, nil
}

// Authenticate verifies a bearer token string. Unknown and expired tokens
// both fail with ErrExpiredAccessToken.
func (s *TokenService) Authenticate(bearer string) (*models.Token, error) {
	if bearer == "" {
		s.metricsRecorder.RecordTokenValidation("missing")
		return nil, ErrExpiredAccessToken
	}

	token, err := s.tokens.LookupAccessToken(bearer)
	if err != nil {
		s.metricsRecorder.RecordTokenValidation("invalid")
		return nil, ErrExpiredAccessToken
	}

	s.metricsRecorder.RecordTokenValidation("success")
	return token, nil
}

// LookupRefreshToken returns the live token pair for a refresh token
// string, or ErrInvalidGrant when it is unknown or expired.
func (s *TokenService) LookupRefreshToken(refreshToken string) (*models.Token, error) {
	token, err := s.tokens.LookupRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidGrant
	}
	return token, nil
}

// VerifyScope reports whether the token grants every requested scope.
func (s *TokenService) VerifyScope(token *models.Token, requested []string) bool {
	return s.tokens.VerifyScope(token, requested)
}

// Revoke removes a token by its access token string.
func (s *TokenService) Revoke(accessToken string) bool {
	revoked := s.tokens.Revoke(accessToken)
	if revoked {
		s.metricsRecorder.RecordTokenRevoked()
	}
	return revoked
}

// RevokeByRefreshToken removes a token pair by its refresh token string.
// Used by the refresh grant to retire the old pair on rotation.
func (s *TokenService) RevokeByRefreshToken(refreshToken string) bool {
	revoked := s.tokens.RevokeByRefreshToken(refreshToken)
	if revoked {
		s.metricsRecorder.RecordTokenRevoked()
	}
	return revoked
}
