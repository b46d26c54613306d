package bootstrap

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Herald2025/seu-oauth2-mock/internal/config"
	"github.com/Herald2025/seu-oauth2-mock/internal/metrics"
	"github.com/Herald2025/seu-oauth2-mock/internal/policy"
	"github.com/Herald2025/seu-oauth2-mock/internal/store"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	fixture := `{
  "id": "localOAuth2",
  "clientSecret": "localOAuth2Secret",
  "grants": ["authorization_code"],
  "redirectUris": ["http://localhost:18099/login/oauth2/code/github"],
  "users": [{"id": "213001001", "password": "JYc1g3e5BccjxPr"}]
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "localOAuth2.json"), []byte(fixture), 0o644))

	return &config.Config{
		ServerAddr:             ":7009",
		BaseURL:                "http://localhost:7009",
		DataPath:               dir,
		AccessTokenExpiration:  8 * time.Hour,
		AuthCodeExpiration:     10 * time.Minute,
		RefreshTokenExpiration: 720 * time.Hour,
		RedirectPolicy:         config.RedirectPolicyExact,
		SessionSecret:          "test-secret",
		SessionMaxAge:          28800,
		RateLimitStore:         config.RateLimitStoreMemory,
	}
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	app := &Application{Config: testConfig(t), Log: testLogger()}

	app.Registry = store.NewClientRegistry(app.Config.DataPath)
	app.Codes = store.NewCodeStore()
	app.Tokens = store.NewTokenStore()
	app.MetricsRecorder = metrics.NewNoopMetrics()

	redirectPolicy, err := policy.FromConfig(app.Config, app.Log)
	require.NoError(t, err)
	app.RedirectPolicy = redirectPolicy

	app.initializeBusinessLayer()
	app.initializeHTTPLayer()
	return app
}

func TestApplicationWiring(t *testing.T) {
	app := newTestApplication(t)

	assert.NotNil(t, app.ClientService)
	assert.NotNil(t, app.TokenService)
	assert.NotNil(t, app.AuthorizationService)
	assert.NotNil(t, app.Router)
	assert.NotNil(t, app.Server)
	assert.Equal(t, ":7009", app.Server.Addr)
}

func TestRouterServesCASRoutes(t *testing.T) {
	app := newTestApplication(t)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/dist/main/login", http.StatusOK},
		{http.MethodGet, "/dist/logOut", http.StatusOK},
		{http.MethodGet, "/cas/oauth2.0/authorize", http.StatusBadRequest},
		{http.MethodPost, "/cas/oauth2.0/accessToken", http.StatusBadRequest},
		{http.MethodGet, "/cas/oauth2.0/profile", http.StatusUnauthorized},
	}

	for _, tc := range tests {
		w := httptest.NewRecorder()
		app.Router.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, tc.status, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRouterRootRedirectsToLogin(t *testing.T) {
	app := newTestApplication(t)

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dist/main/login", w.Header().Get("Location"))
}

func TestSetupRateLimiting_Disabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.EnableRateLimit = false

	limiters := setupRateLimiting(cfg, nil, testLogger())
	assert.NotNil(t, limiters.authorize)
	assert.NotNil(t, limiters.token)
	assert.NotNil(t, limiters.login)
}

func TestSetupRateLimiting_MemoryStore(t *testing.T) {
	cfg := testConfig(t)
	cfg.EnableRateLimit = true
	cfg.RateLimitStore = config.RateLimitStoreMemory
	cfg.AuthorizeRateLimit = 30
	cfg.TokenRateLimit = 60
	cfg.LoginRateLimit = 30
	cfg.RateLimitCleanupInterval = time.Minute

	limiters := setupRateLimiting(cfg, nil, testLogger())
	assert.NotNil(t, limiters.authorize)
	assert.NotNil(t, limiters.token)
	assert.NotNil(t, limiters.login)
}

func TestInitializeRateLimitRedisClient_SkippedForMemoryStore(t *testing.T) {
	cfg := testConfig(t)
	cfg.EnableRateLimit = true
	cfg.RateLimitStore = config.RateLimitStoreMemory

	client, err := initializeRateLimitRedisClient(cfg, testLogger())
	require.NoError(t, err)
	assert.Nil(t, client)
}
