package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Herald2025/seu-oauth2-mock/internal/config"
	"github.com/Herald2025/seu-oauth2-mock/internal/models"
	"github.com/Herald2025/seu-oauth2-mock/internal/services"
)

// defaultScope is what the emulated gateway reports when a token was
// granted without an explicit scope parameter.
const defaultScope = "read:user,user:email"

// TokenHandler serves POST /cas/oauth2.0/accessToken.
type TokenHandler struct {
	auth   *services.AuthorizationService
	config *config.Config
	log    *logrus.Logger
}

func NewTokenHandler(
	auth *services.AuthorizationService,
	cfg *config.Config,
	log *logrus.Logger,
) *TokenHandler {
	return &TokenHandler{
		auth:   auth,
		config: cfg,
		log:    log,
	}
}

// AccessToken exchanges an authorization code (or a refresh token) for an
// access token. Client credentials arrive either in the form body or as
// HTTP Basic auth; both are accepted, matching RFC 6749 §2.3.1.
func (h *TokenHandler) AccessToken(c *gin.Context) {
	grantType := c.PostForm("grant_type")
	clientID, clientSecret := clientCredentials(c)

	switch grantType {
	case services.GrantTypeAuthorizationCode:
		code := c.PostForm("code")
		redirectURI := c.PostForm("redirect_uri")
		if code == "" || clientID == "" {
			jsonError(c, http.StatusBadRequest, "invalid_request",
				"code and client_id are required")
			return
		}

		token, err := h.auth.ExchangeCode(grantType, code, redirectURI, clientID, clientSecret)
		if err != nil {
			h.writeGrantError(c, err)
			return
		}
		h.writeToken(c, token)

	case services.GrantTypeRefreshToken:
		refreshToken := c.PostForm("refresh_token")
		if refreshToken == "" || clientID == "" {
			jsonError(c, http.StatusBadRequest, "invalid_request",
				"refresh_token and client_id are required")
			return
		}

		token, err := h.auth.Refresh(grantType, refreshToken, clientID, clientSecret)
		if err != nil {
			h.writeGrantError(c, err)
			return
		}
		h.writeToken(c, token)

	default:
		jsonError(c, http.StatusBadRequest, "unsupported_grant_type",
			"Supported grant types: authorization_code, refresh_token")
	}
}

func (h *TokenHandler) writeToken(c *gin.Context, token *models.Token) {
	scope := services.JoinScope(token.Scope)
	if scope == "" {
		scope = defaultScope
	}

	body := gin.H{
		"access_token": token.AccessToken,
		"token_type":   "bearer",
		"expires_in":   int(h.config.AccessTokenExpiration.Seconds()),
		"scope":        scope,
	}
	if token.RefreshToken != "" {
		body["refresh_token"] = token.RefreshToken
	}
	c.JSON(http.StatusOK, body)
}

func (h *TokenHandler) writeGrantError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidClient):
		jsonError(c, http.StatusUnauthorized, "invalid_client",
			"Client authentication failed")
	case errors.Is(err, services.ErrInvalidGrant):
		jsonError(c, http.StatusBadRequest, "invalid_grant",
			"Authorization code is invalid, expired, or bound to a different request")
	case errors.Is(err, services.ErrUnsupportedGrantType):
		jsonError(c, http.StatusBadRequest, "unsupported_grant_type",
			"Supported grant types: authorization_code, refresh_token")
	case errors.Is(err, services.ErrUnauthorizedClient):
		jsonError(c, http.StatusBadRequest, "unauthorized_client",
			"Client is not authorized for this grant type")
	case errors.Is(err, services.ErrInvalidRequest):
		jsonError(c, http.StatusBadRequest, "invalid_request",
			"Missing required parameters")
	default:
		h.log.WithError(err).Error("token issuance failed")
		jsonError(c, http.StatusInternalServerError, "server_error",
			"Internal server error")
	}
}

// clientCredentials pulls client_id/client_secret from the form body,
// falling back to HTTP Basic auth.
func clientCredentials(c *gin.Context) (string, string) {
	clientID := c.PostForm("client_id")
	clientSecret := c.PostForm("client_secret")
	if clientID == "" {
		if user, pass, ok := c.Request.BasicAuth(); ok {
			return user, pass
		}
	}
	return clientID, clientSecret
}
