package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Redirect URI policy mode constants
const (
	RedirectPolicyExact = "exact"
	RedirectPolicyHosts = "hosts"
	RedirectPolicyAny   = "any"
)

// Rate limit store constants
const (
	RateLimitStoreMemory = "memory"
	RateLimitStoreRedis  = "redis"
)

type Config struct {
	// Server settings
	ServerAddr   string
	BaseURL      string
	IsProduction bool

	// Fixture store
	DataPath string // directory of <client_id>.json fixture files

	// Ticket lifetimes
	AccessTokenExpiration  time.Duration // default 8h, matches the emulated system
	AuthCodeExpiration     time.Duration
	RefreshTokenExpiration time.Duration
	EnableRefreshTokens    bool

	// Redirect URI policy
	RedirectPolicy       string   // "exact", "hosts" or "any"
	RedirectAllowedHosts []string // host[:port] allow-list for "hosts" mode

	// Session settings
	SessionSecret string
	SessionMaxAge int // seconds

	// Logging
	LogLevel  string
	LogFormat string // "text" or "json"

	// Metrics
	MetricsEnabled bool
	MetricsToken   string

	// Rate limiting
	EnableRateLimit          bool
	RateLimitStore           string // "memory" or "redis"
	RateLimitRedisAddr       string
	RateLimitRedisPassword   string
	RateLimitRedisDB         int
	RateLimitCleanupInterval time.Duration
	AuthorizeRateLimit       int // requests per minute
	TokenRateLimit           int
	LoginRateLimit           int
}

func Load() *Config {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	return &Config{
		ServerAddr:   getEnv("SERVER_ADDR", ":7009"),
		BaseURL:      getEnv("BASE_URL", "http://localhost:7009"),
		IsProduction: getEnvBool("IS_PRODUCTION", false),

		DataPath: getEnv("DATA_PATH", "data"),

		AccessTokenExpiration:  getEnvDuration("ACCESS_TOKEN_EXPIRATION", 8*time.Hour),
		AuthCodeExpiration:     getEnvDuration("AUTH_CODE_EXPIRATION", 10*time.Minute),
		RefreshTokenExpiration: getEnvDuration("REFRESH_TOKEN_EXPIRATION", 720*time.Hour),
		EnableRefreshTokens:    getEnvBool("ENABLE_REFRESH_TOKENS", true),

		RedirectPolicy:       getEnv("REDIRECT_POLICY", RedirectPolicyExact),
		RedirectAllowedHosts: getEnvSlice("REDIRECT_ALLOWED_HOSTS", []string{"localhost", "127.0.0.1"}),

		SessionSecret: getEnv("SESSION_SECRET", "session-secret-change-in-production"),
		SessionMaxAge: getEnvInt("SESSION_MAX_AGE", 8*60*60),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
		MetricsToken:   getEnv("METRICS_TOKEN", ""),

		EnableRateLimit:          getEnvBool("ENABLE_RATE_LIMIT", false),
		RateLimitStore:           getEnv("RATE_LIMIT_STORE", RateLimitStoreMemory),
		RateLimitRedisAddr:       getEnv("RATE_LIMIT_REDIS_ADDR", "localhost:6379"),
		RateLimitRedisPassword:   getEnv("RATE_LIMIT_REDIS_PASSWORD", ""),
		RateLimitRedisDB:         getEnvInt("RATE_LIMIT_REDIS_DB", 0),
		RateLimitCleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		AuthorizeRateLimit:       getEnvInt("AUTHORIZE_RATE_LIMIT", 30),
		TokenRateLimit:           getEnvInt("TOKEN_RATE_LIMIT", 60),
		LoginRateLimit:           getEnvInt("LOGIN_RATE_LIMIT", 30),
	}
}

// Validate checks configuration invariants before the server starts.
func (c *Config) Validate() error {
	if c.DataPath == "" {
		return fmt.Errorf("DATA_PATH must not be empty")
	}

	if info, err := os.Stat(c.DataPath); err != nil {
		return fmt.Errorf("fixture directory %q is not readable: %w", c.DataPath, err)
	} else if !info.IsDir() {
		return fmt.Errorf("fixture path %q is not a directory", c.DataPath)
	}

	switch c.RedirectPolicy {
	case RedirectPolicyExact, RedirectPolicyHosts, RedirectPolicyAny:
	default:
		return fmt.Errorf("REDIRECT_POLICY must be one of %q, %q, %q; got %q",
			RedirectPolicyExact, RedirectPolicyHosts, RedirectPolicyAny, c.RedirectPolicy)
	}

	if c.RedirectPolicy == RedirectPolicyHosts && len(c.RedirectAllowedHosts) == 0 {
		return fmt.Errorf("REDIRECT_ALLOWED_HOSTS must not be empty when REDIRECT_POLICY=hosts")
	}

	if c.AccessTokenExpiration <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRATION must be positive")
	}
	if c.AuthCodeExpiration <= 0 {
		return fmt.Errorf("AUTH_CODE_EXPIRATION must be positive")
	}

	switch c.RateLimitStore {
	case RateLimitStoreMemory, RateLimitStoreRedis:
	default:
		return fmt.Errorf("RATE_LIMIT_STORE must be %q or %q; got %q",
			RateLimitStoreMemory, RateLimitStoreRedis, c.RateLimitStore)
	}

	if c.IsProduction && c.SessionSecret == "session-secret-change-in-production" {
		return fmt.Errorf("SESSION_SECRET must be changed in production")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var i int
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var parts []string
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		if len(parts) > 0 {
			return parts
		}
	}
	return defaultValue
}
