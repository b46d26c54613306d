package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStore_IssueWithRefresh(t *testing.T) {
	s := NewTokenStore()

	token, err := s.Issue(testClient(), testUser(), []string{"read:user"},
		"http://x/cb", 8*time.Hour, 720*time.Hour)
	require.NoError(t, err)

	assert.Regexp(t, `^AT-\d+-[A-Za-z0-9]{32}$`, token.AccessToken)
	assert.Regexp(t, `^RT-\d+-[A-Za-z0-9]{32}$`, token.RefreshToken)
	assert.Equal(t, "http://x/cb", token.RedirectURI)
	assert.Empty(t, token.User.Password)
}

func TestTokenStore_IssueWithoutRefresh(t *testing.T) {
	s := NewTokenStore()

	token, err := s.Issue(testClient(), testUser(), nil, "http://x/cb", 8*time.Hour, 0)
	require.NoError(t, err)
	assert.Empty(t, token.RefreshToken)
	assert.True(t, token.RefreshTokenExpiresAt.IsZero())
}

func TestTokenStore_LookupAccessToken(t *testing.T) {
	s := NewTokenStore()
	token, err := s.Issue(testClient(), testUser(), nil, "http://x/cb", 8*time.Hour, 0)
	require.NoError(t, err)

	got, err := s.LookupAccessToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, token.AccessToken, got.AccessToken)

	_, err = s.LookupAccessToken("AT-1-garbage")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestTokenStore_LookupAccessToken_ExpiredIsNotFound(t *testing.T) {
	s := NewTokenStore()
	token, err := s.Issue(testClient(), testUser(), nil, "http://x/cb", -time.Second, 0)
	require.NoError(t, err)

	_, err = s.LookupAccessToken(token.AccessToken)
	assert.ErrorIs(t, err, ErrTokenNotFound)
	assert.Equal(t, 0, s.Count())
}

func TestTokenStore_RefreshSurvivesAccessExpiry(t *testing.T) {
	s := NewTokenStore()
	token, err := s.Issue(testClient(), testUser(), nil, "http://x/cb", -time.Second, 720*time.Hour)
	require.NoError(t, err)

	_, err = s.LookupAccessToken(token.AccessToken)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	// The refresh half outlives the access half.
	got, err := s.LookupRefreshToken(token.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, token.RefreshToken, got.RefreshToken)
}

func TestTokenStore_ExpiredPairIsFullyDropped(t *testing.T) {
	s := NewTokenStore()
	token, err := s.Issue(testClient(), testUser(), nil, "http://x/cb", -time.Second, -time.Second)
	require.NoError(t, err)

	_, err = s.LookupAccessToken(token.AccessToken)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	_, err = s.LookupRefreshToken(token.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestTokenStore_LookupRefreshToken(t *testing.T) {
	s := NewTokenStore()
	token, err := s.Issue(testClient(), testUser(), nil, "http://x/cb", 8*time.Hour, 720*time.Hour)
	require.NoError(t, err)

	got, err := s.LookupRefreshToken(token.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, token.AccessToken, got.AccessToken)

	_, err = s.LookupRefreshToken("RT-1-garbage")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestTokenStore_LookupRefreshToken_ExpiredIsNotFound(t *testing.T) {
	s := NewTokenStore()
	token, err := s.Issue(testClient(), testUser(), nil, "http://x/cb", 8*time.Hour, -time.Second)
	require.NoError(t, err)

	_, err = s.LookupRefreshToken(token.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestTokenStore_Revoke(t *testing.T) {
	s := NewTokenStore()
	token, err := s.Issue(testClient(), testUser(), nil, "http://x/cb", 8*time.Hour, 720*time.Hour)
	require.NoError(t, err)

	assert.True(t, s.Revoke(token.AccessToken))
	assert.False(t, s.Revoke(token.AccessToken))

	// Revoking the pair removes the refresh index too.
	_, err = s.LookupRefreshToken(token.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestTokenStore_RevokeByRefreshToken(t *testing.T) {
	s := NewTokenStore()
	token, err := s.Issue(testClient(), testUser(), nil, "http://x/cb", 8*time.Hour, 720*time.Hour)
	require.NoError(t, err)

	assert.True(t, s.RevokeByRefreshToken(token.RefreshToken))
	assert.False(t, s.RevokeByRefreshToken(token.RefreshToken))

	_, err = s.LookupAccessToken(token.AccessToken)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestTokenStore_VerifyScope(t *testing.T) {
	s := NewTokenStore()
	token, err := s.Issue(testClient(), testUser(), []string{"read:user", "user:email"},
		"http://x/cb", 8*time.Hour, 0)
	require.NoError(t, err)

	assert.True(t, s.VerifyScope(token, []string{"read:user"}))
	assert.True(t, s.VerifyScope(token, []string{"read:user", "user:email"}))
	assert.False(t, s.VerifyScope(token, []string{"write:user"}))
	assert.True(t, s.VerifyScope(token, nil))
}
