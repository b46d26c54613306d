package bootstrap

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Herald2025/seu-oauth2-mock/internal/config"
	"github.com/Herald2025/seu-oauth2-mock/internal/middleware"
)

// initializeRateLimitRedisClient builds the go-redis client for rate
// limiting. Returns nil when rate limiting is disabled or using the
// memory store. ulule/limiter's Redis store depends on go-redis types,
// so the client is created here and handed to every limiter.
func initializeRateLimitRedisClient(
	cfg *config.Config,
	log *logrus.Logger,
) (*redis.Client, error) {
	if !cfg.EnableRateLimit {
		return nil, nil //nolint:nilnil // redis client not needed in this configuration
	}
	if cfg.RateLimitStore != config.RateLimitStoreRedis {
		return nil, nil //nolint:nilnil // redis client not needed in this configuration
	}

	client, err := middleware.CreateRedisClient(
		cfg.RateLimitRedisAddr,
		cfg.RateLimitRedisPassword,
		cfg.RateLimitRedisDB,
	)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"addr": cfg.RateLimitRedisAddr,
		"db":   cfg.RateLimitRedisDB,
	}).Info("rate limiting Redis client initialized")
	return client, nil
}
