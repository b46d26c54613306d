package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Herald2025/seu-oauth2-mock/internal/services"
)

// ProfileHandler serves GET /cas/oauth2.0/profile, the resource endpoint
// clients hit with the freshly exchanged bearer token.
type ProfileHandler struct {
	tokens *services.TokenService
	log    *logrus.Logger
}

func NewProfileHandler(tokens *services.TokenService, log *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{tokens: tokens, log: log}
}

// Profile returns the authenticated user's attributes in the flat shape
// the emulated gateway uses. Every failure mode collapses to the same 401
// body the real system sends, so client error handling stays portable.
func (h *ProfileHandler) Profile(c *gin.Context) {
	accessToken := bearerToken(c)
	if accessToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "expired_accessToken"})
		return
	}

	token, err := h.tokens.Authenticate(accessToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "expired_accessToken"})
		return
	}

	user := token.User
	c.JSON(http.StatusOK, gin.H{
		"oauthClientId": token.ClientID,
		"service":       token.RedirectURI,
		"id":            user.ID,
		"client_id":     token.ClientID,
		"email":         user.Email,
		"realName":      user.RealName,
		"department":    user.Department,
		"userType":      user.UserType,
		"studentNumber": user.StudentNumber,
		"gender":        user.Gender,
	})
}

// bearerToken extracts the access token from the Authorization header or,
// failing that, the access_token query parameter the gateway also accepts.
func bearerToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Query("access_token")
}
