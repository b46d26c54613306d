package bootstrap

import (
	"github.com/sirupsen/logrus"

	"github.com/Herald2025/seu-oauth2-mock/internal/config"
	"github.com/Herald2025/seu-oauth2-mock/internal/metrics"
	"github.com/Herald2025/seu-oauth2-mock/internal/policy"
	"github.com/Herald2025/seu-oauth2-mock/internal/services"
	"github.com/Herald2025/seu-oauth2-mock/internal/store"
)

// initializeServices creates all business services with their dependencies
func initializeServices(
	cfg *config.Config,
	registry *store.ClientRegistry,
	codes *store.CodeStore,
	tokens *store.TokenStore,
	redirectPolicy policy.Policy,
	m metrics.Recorder,
	log *logrus.Logger,
) (
	*services.ClientService,
	*services.TokenService,
	*services.AuthorizationService,
) {
	clientService := services.NewClientService(registry, m, log)
	tokenService := services.NewTokenService(tokens, cfg, m)
	authorizationService := services.NewAuthorizationService(
		clientService,
		tokenService,
		codes,
		redirectPolicy,
		cfg,
		m,
		log,
	)

	return clientService, tokenService, authorizationService
}
