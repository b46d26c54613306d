package bootstrap

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Herald2025/seu-oauth2-mock/internal/config"
	"github.com/Herald2025/seu-oauth2-mock/internal/metrics"
	"github.com/Herald2025/seu-oauth2-mock/internal/middleware"
)

// setupRouter configures the Gin router with all routes and middleware
func setupRouter(
	cfg *config.Config,
	h handlerSet,
	m metrics.Recorder,
	rateLimitRedisClient *redis.Client,
	log *logrus.Logger,
) *gin.Engine {
	setupGinMode(cfg, log)
	r := gin.New()

	r.Use(metrics.HTTPMetricsMiddleware(m))
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	setupSessionMiddleware(r, cfg)

	r.GET("/health", h.health.Health)
	setupMetricsEndpoint(r, cfg, log)

	rateLimiters := setupRateLimiting(cfg, rateLimitRedisClient, log)
	setupCASRoutes(r, h, rateLimiters)

	logServerStartup(cfg, log)
	return r
}

// setupSessionMiddleware configures session handling middleware
func setupSessionMiddleware(r *gin.Engine, cfg *config.Config) {
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("seu_session", sessionStore))
}

// setupMetricsEndpoint configures the Prometheus metrics endpoint
func setupMetricsEndpoint(r *gin.Engine, cfg *config.Config, log *logrus.Logger) {
	switch {
	case !cfg.MetricsEnabled:
		log.Info("Prometheus metrics disabled")
	case cfg.MetricsToken != "":
		log.Info("Prometheus metrics enabled at /metrics with Bearer token authentication")
		r.GET("/metrics", middleware.MetricsAuth(cfg.MetricsToken), gin.WrapH(promhttp.Handler()))
	default:
		log.Info("Prometheus metrics enabled at /metrics (no authentication)")
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

// setupCASRoutes wires the CAS/OAuth endpoint surface
func setupCASRoutes(r *gin.Engine, h handlerSet, rateLimiters rateLimitMiddlewares) {
	oauth := r.Group("/cas/oauth2.0")
	{
		oauth.GET("/authorize", rateLimiters.authorize, h.authorize.ShowLogin)
		oauth.POST("/authorize", rateLimiters.authorize, h.authorize.SubmitLogin)
		oauth.GET("/callbackAuthorize", h.authorize.CallbackAuthorize)
		oauth.POST("/accessToken", rateLimiters.token, h.token.AccessToken)
		oauth.GET("/profile", h.profile.Profile)
		oauth.POST("/login", rateLimiters.login, h.login.Login)
	}

	dist := r.Group("/dist")
	{
		dist.GET("/main/login", h.login.LoginPage)
		dist.GET("/logOut", h.login.Logout)
	}

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/dist/main/login")
	})
}

// setupGinMode sets Gin mode based on environment configuration
func setupGinMode(cfg *config.Config, log *logrus.Logger) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
		log.Info("Gin mode: Release (production)")
		return
	}
	gin.SetMode(gin.DebugMode)
	log.Info("Gin mode: Debug (development)")
}

// logServerStartup logs server startup information
func logServerStartup(cfg *config.Config, log *logrus.Logger) {
	log.WithFields(logrus.Fields{
		"addr":            cfg.ServerAddr,
		"data_path":       cfg.DataPath,
		"redirect_policy": cfg.RedirectPolicy,
	}).Info("CAS OAuth2 emulator starting")
	log.Infof("Authorize endpoint: %s/cas/oauth2.0/authorize", cfg.BaseURL)
	log.Infof("Token endpoint:     %s/cas/oauth2.0/accessToken", cfg.BaseURL)
	log.Infof("Profile endpoint:   %s/cas/oauth2.0/profile", cfg.BaseURL)
}
