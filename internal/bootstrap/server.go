package bootstrap

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/appleboy/graceful"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Herald2025/seu-oauth2-mock/internal/config"
	"github.com/Herald2025/seu-oauth2-mock/internal/metrics"
	"github.com/Herald2025/seu-oauth2-mock/internal/store"
)

// gaugeUpdateInterval drives how often the active code/token gauges are
// refreshed from the stores.
const gaugeUpdateInterval = 30 * time.Second

// createHTTPServer creates the HTTP server instance
func createHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// addServerRunningJob adds the HTTP server running job
func addServerRunningJob(m *graceful.Manager, srv *http.Server) {
	m.AddRunningJob(func(ctx context.Context) error {
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Failed to start server: %v", err)
			}
		}()
		<-ctx.Done()
		return nil
	})
}

// addServerShutdownJob adds HTTP server shutdown handler
func addServerShutdownJob(m *graceful.Manager, srv *http.Server, logger *logrus.Logger) {
	m.AddShutdownJob(func() error {
		logger.Info("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.WithError(err).Warn("Server forced to shutdown")
			return err
		}

		logger.Info("Server exited")
		return nil
	})
}

// addRedisClientShutdownJob adds Redis client shutdown handler
func addRedisClientShutdownJob(m *graceful.Manager, redisClient *redis.Client, logger *logrus.Logger) {
	if redisClient == nil {
		return
	}

	m.AddShutdownJob(func() error {
		logger.Info("Closing Redis connection...")
		if err := redisClient.Close(); err != nil {
			logger.WithError(err).Warn("Error closing Redis client")
			return err
		}
		return nil
	})
}

// addMetricsGaugeUpdateJob periodically pushes the live code and token
// counts into the Prometheus gauges.
func addMetricsGaugeUpdateJob(
	m *graceful.Manager,
	cfg *config.Config,
	codes *store.CodeStore,
	tokens *store.TokenStore,
	recorder metrics.Recorder,
) {
	if !cfg.MetricsEnabled {
		return
	}

	m.AddRunningJob(func(ctx context.Context) error {
		ticker := time.NewTicker(gaugeUpdateInterval)
		defer ticker.Stop()

		update := func() {
			recorder.SetActiveCodesCount(codes.Count())
			recorder.SetActiveTokensCount(tokens.Count())
		}
		update()

		for {
			select {
			case <-ticker.C:
				update()
			case <-ctx.Done():
				return nil
			}
		}
	})
}
