package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCodeParams() AuthorizationCodeParams {
	return AuthorizationCodeParams{
		Code:        "OC-1-abc",
		ExpiresAt:   time.Now().Add(10 * time.Minute),
		RedirectURI: "http://localhost:18099/login/oauth2/code/github",
		Scope:       []string{"read:user"},
		ClientID:    "localOAuth2",
		User:        User{ID: "213001001", Password: "secret"},
	}
}

func TestNewAuthorizationCode_RequiresEveryBinding(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		code, err := NewAuthorizationCode(validCodeParams())
		require.NoError(t, err)
		assert.Equal(t, "OC-1-abc", code.Code)
		assert.Empty(t, code.User.Password)
	})

	t.Run("missing code", func(t *testing.T) {
		p := validCodeParams()
		p.Code = ""
		_, err := NewAuthorizationCode(p)
		assert.Error(t, err)
	})

	t.Run("missing redirect uri", func(t *testing.T) {
		p := validCodeParams()
		p.RedirectURI = ""
		_, err := NewAuthorizationCode(p)
		assert.Error(t, err)
	})

	t.Run("missing client", func(t *testing.T) {
		p := validCodeParams()
		p.ClientID = ""
		_, err := NewAuthorizationCode(p)
		assert.Error(t, err)
	})

	t.Run("missing user", func(t *testing.T) {
		p := validCodeParams()
		p.User = User{}
		_, err := NewAuthorizationCode(p)
		assert.Error(t, err)
	})

	t.Run("empty scope is allowed", func(t *testing.T) {
		p := validCodeParams()
		p.Scope = nil
		_, err := NewAuthorizationCode(p)
		assert.NoError(t, err)
	})
}

func TestAuthorizationCode_IsExpired(t *testing.T) {
	p := validCodeParams()
	p.ExpiresAt = time.Now().Add(-time.Second)
	code, err := NewAuthorizationCode(p)
	require.NoError(t, err)
	assert.True(t, code.IsExpired())
}

func TestClient_SupportsGrant(t *testing.T) {
	c := &Client{Grants: []string{"authorization_code", "refresh_token"}}
	assert.True(t, c.SupportsGrant("authorization_code"))
	assert.True(t, c.SupportsGrant("refresh_token"))
	assert.False(t, c.SupportsGrant("client_credentials"))
}

func TestClient_FindUser(t *testing.T) {
	c := &Client{Users: []User{{ID: "213001001"}, {ID: "213001002"}}}
	require.NotNil(t, c.FindUser("213001002"))
	assert.Nil(t, c.FindUser("999999999"))
}
