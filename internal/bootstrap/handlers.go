package bootstrap

import (
	"github.com/sirupsen/logrus"

	"github.com/Herald2025/seu-oauth2-mock/internal/config"
	"github.com/Herald2025/seu-oauth2-mock/internal/handlers"
	"github.com/Herald2025/seu-oauth2-mock/internal/metrics"
	"github.com/Herald2025/seu-oauth2-mock/internal/services"
	"github.com/Herald2025/seu-oauth2-mock/internal/store"
)

// handlerSet groups all HTTP handlers
type handlerSet struct {
	authorize *handlers.AuthorizeHandler
	token     *handlers.TokenHandler
	profile   *handlers.ProfileHandler
	login     *handlers.LoginHandler
	health    *handlers.HealthHandler
}

// initializeHandlers creates all HTTP handlers
func initializeHandlers(
	cfg *config.Config,
	registry *store.ClientRegistry,
	codes *store.CodeStore,
	tokens *store.TokenStore,
	clientService *services.ClientService,
	tokenService *services.TokenService,
	authorizationService *services.AuthorizationService,
	m metrics.Recorder,
	log *logrus.Logger,
) handlerSet {
	return handlerSet{
		authorize: handlers.NewAuthorizeHandler(authorizationService, cfg, log),
		token:     handlers.NewTokenHandler(authorizationService, cfg, log),
		profile:   handlers.NewProfileHandler(tokenService, log),
		login:     handlers.NewLoginHandler(clientService, m, log),
		health:    handlers.NewHealthHandler(registry, codes, tokens),
	}
}
