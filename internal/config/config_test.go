package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := Load()
	cfg.DataPath = t.TempDir()
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":7009", cfg.ServerAddr)
	assert.Equal(t, 8*time.Hour, cfg.AccessTokenExpiration)
	assert.Equal(t, 10*time.Minute, cfg.AuthCodeExpiration)
	assert.Equal(t, RedirectPolicyExact, cfg.RedirectPolicy)
	assert.Equal(t, RateLimitStoreMemory, cfg.RateLimitStore)
	assert.True(t, cfg.EnableRefreshTokens)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9999")
	t.Setenv("ACCESS_TOKEN_EXPIRATION", "1h")
	t.Setenv("REDIRECT_POLICY", "any")
	t.Setenv("REDIRECT_ALLOWED_HOSTS", "x.example.org:8080, y.example.org")
	t.Setenv("ENABLE_REFRESH_TOKENS", "false")

	cfg := Load()

	assert.Equal(t, ":9999", cfg.ServerAddr)
	assert.Equal(t, time.Hour, cfg.AccessTokenExpiration)
	assert.Equal(t, RedirectPolicyAny, cfg.RedirectPolicy)
	assert.Equal(t, []string{"x.example.org:8080", "y.example.org"}, cfg.RedirectAllowedHosts)
	assert.False(t, cfg.EnableRefreshTokens)
}

func TestValidate_AcceptsDefaults(t *testing.T) {
	cfg := validConfig(t)
	require.NoError(t, cfg.Validate())
}

func TestValidate_MissingFixtureDir(t *testing.T) {
	cfg := validConfig(t)
	cfg.DataPath = "/nonexistent/fixture/dir"
	assert.Error(t, cfg.Validate())
}

func TestValidate_UnknownRedirectPolicy(t *testing.T) {
	cfg := validConfig(t)
	cfg.RedirectPolicy = "permutations"
	assert.Error(t, cfg.Validate())
}

func TestValidate_HostsPolicyNeedsHosts(t *testing.T) {
	cfg := validConfig(t)
	cfg.RedirectPolicy = RedirectPolicyHosts
	cfg.RedirectAllowedHosts = nil
	assert.Error(t, cfg.Validate())
}

func TestValidate_NonPositiveLifetimes(t *testing.T) {
	cfg := validConfig(t)
	cfg.AccessTokenExpiration = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig(t)
	cfg.AuthCodeExpiration = -time.Minute
	assert.Error(t, cfg.Validate())
}

func TestValidate_UnknownRateLimitStore(t *testing.T) {
	cfg := validConfig(t)
	cfg.RateLimitStore = "etcd"
	assert.Error(t, cfg.Validate())
}

func TestValidate_ProductionSessionSecret(t *testing.T) {
	cfg := validConfig(t)
	cfg.IsProduction = true
	assert.Error(t, cfg.Validate())

	cfg.SessionSecret = "e2b1cf0a4f9d4a57"
	assert.NoError(t, cfg.Validate())
}
