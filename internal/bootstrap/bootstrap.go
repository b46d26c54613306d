package bootstrap

import (
	"net/http"

	"github.com/appleboy/graceful"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Herald2025/seu-oauth2-mock/internal/config"
	"github.com/Herald2025/seu-oauth2-mock/internal/metrics"
	"github.com/Herald2025/seu-oauth2-mock/internal/policy"
	"github.com/Herald2025/seu-oauth2-mock/internal/services"
	"github.com/Herald2025/seu-oauth2-mock/internal/store"
)

// Application holds all initialized components
type Application struct {
	Config *config.Config
	Log    *logrus.Logger

	// Core infrastructure
	Registry             *store.ClientRegistry
	Codes                *store.CodeStore
	Tokens               *store.TokenStore
	MetricsRecorder      metrics.Recorder
	RedirectPolicy       policy.Policy
	RateLimitRedisClient *redis.Client

	// Services
	ClientService        *services.ClientService
	TokenService         *services.TokenService
	AuthorizationService *services.AuthorizationService

	// HTTP
	HandlerSet handlerSet
	Router     *gin.Engine
	Server     *http.Server
}

// Run initializes and starts the application
func Run(cfg *config.Config, log *logrus.Logger) error {
	app := &Application{
		Config: cfg,
		Log:    log,
	}

	// Phase 1: Validate configuration
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Phase 2: Initialize infrastructure
	if err := app.initializeInfrastructure(); err != nil {
		return err
	}

	// Phase 3: Initialize business layer
	app.initializeBusinessLayer()

	// Phase 4: Initialize HTTP layer
	app.initializeHTTPLayer()

	// Phase 5: Start server with graceful shutdown
	app.startWithGracefulShutdown()

	return nil
}

// initializeInfrastructure sets up stores, metrics, and Redis
func (app *Application) initializeInfrastructure() error {
	app.Registry = store.NewClientRegistry(app.Config.DataPath)
	app.Codes = store.NewCodeStore()
	app.Tokens = store.NewTokenStore()

	app.MetricsRecorder = metrics.Init(app.Config.MetricsEnabled)

	var err error
	app.RedirectPolicy, err = policy.FromConfig(app.Config, app.Log)
	if err != nil {
		return err
	}

	app.RateLimitRedisClient, err = initializeRateLimitRedisClient(app.Config, app.Log)
	return err
}

// initializeBusinessLayer sets up services
func (app *Application) initializeBusinessLayer() {
	app.ClientService,
		app.TokenService,
		app.AuthorizationService = initializeServices(
		app.Config,
		app.Registry,
		app.Codes,
		app.Tokens,
		app.RedirectPolicy,
		app.MetricsRecorder,
		app.Log,
	)
}

// initializeHTTPLayer sets up handlers, router, and server
func (app *Application) initializeHTTPLayer() {
	app.HandlerSet = initializeHandlers(
		app.Config,
		app.Registry,
		app.Codes,
		app.Tokens,
		app.ClientService,
		app.TokenService,
		app.AuthorizationService,
		app.MetricsRecorder,
		app.Log,
	)

	app.Router = setupRouter(
		app.Config,
		app.HandlerSet,
		app.MetricsRecorder,
		app.RateLimitRedisClient,
		app.Log,
	)

	app.Server = createHTTPServer(app.Config, app.Router)
}

// startWithGracefulShutdown starts the server and handles graceful shutdown
func (app *Application) startWithGracefulShutdown() {
	m := graceful.NewManager()

	addServerRunningJob(m, app.Server)
	addServerShutdownJob(m, app.Server, app.Log)
	addRedisClientShutdownJob(m, app.RateLimitRedisClient, app.Log)
	addMetricsGaugeUpdateJob(m, app.Config, app.Codes, app.Tokens, app.MetricsRecorder)

	<-m.Done()
}
