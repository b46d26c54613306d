package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Herald2025/seu-oauth2-mock/internal/store"
	"github.com/Herald2025/seu-oauth2-mock/internal/version"
)

// HealthHandler serves GET /health.
type HealthHandler struct {
	registry *store.ClientRegistry
	codes    *store.CodeStore
	tokens   *store.TokenStore
}

func NewHealthHandler(
	registry *store.ClientRegistry,
	codes *store.CodeStore,
	tokens *store.TokenStore,
) *HealthHandler {
	return &HealthHandler{
		registry: registry,
		codes:    codes,
		tokens:   tokens,
	}
}

// Health reports readiness. The only external dependency is the fixture
// directory, so its readability decides the status.
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.registry.Health(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"version":       version.Version,
		"active_codes":  h.codes.Count(),
		"active_tokens": h.tokens.Count(),
	})
}
