package bootstrap

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Herald2025/seu-oauth2-mock/internal/config"
	"github.com/Herald2025/seu-oauth2-mock/internal/middleware"
)

// rateLimitMiddlewares holds rate limiting middlewares for different endpoints
type rateLimitMiddlewares struct {
	authorize gin.HandlerFunc
	token     gin.HandlerFunc
	login     gin.HandlerFunc
}

// setupRateLimiting configures rate limiting middlewares based on configuration
func setupRateLimiting(
	cfg *config.Config,
	redisClient *redis.Client,
	log *logrus.Logger,
) rateLimitMiddlewares {
	noOpMiddleware := func(c *gin.Context) { c.Next() }
	if !cfg.EnableRateLimit {
		return rateLimitMiddlewares{
			authorize: noOpMiddleware,
			token:     noOpMiddleware,
			login:     noOpMiddleware,
		}
	}

	log.WithField("store", cfg.RateLimitStore).Info("rate limiting enabled")
	storeType := middleware.RateLimitStoreType(cfg.RateLimitStore)

	createLimiter := func(requestsPerMinute int, endpoint string) gin.HandlerFunc {
		limiter, err := middleware.NewRateLimiter(middleware.RateLimitConfig{
			RequestsPerMinute: requestsPerMinute,
			StoreType:         storeType,
			RedisClient:       redisClient,
			CleanupInterval:   cfg.RateLimitCleanupInterval,
		})
		if err != nil {
			log.WithError(err).Fatalf("failed to create rate limiter for %s", endpoint)
		}
		return limiter
	}

	return rateLimitMiddlewares{
		authorize: createLimiter(cfg.AuthorizeRateLimit, "/cas/oauth2.0/authorize"),
		token:     createLimiter(cfg.TokenRateLimit, "/cas/oauth2.0/accessToken"),
		login:     createLimiter(cfg.LoginRateLimit, "/cas/oauth2.0/login"),
	}
}
