package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Herald2025/seu-oauth2-mock/internal/config"
	"github.com/Herald2025/seu-oauth2-mock/internal/services"
)

// AuthorizeHandler serves the /cas/oauth2.0/authorize endpoint pair: the
// GET login challenge and the POST credential submission that produces an
// authorization code redirect.
type AuthorizeHandler struct {
	auth   *services.AuthorizationService
	config *config.Config
	log    *logrus.Logger
}

func NewAuthorizeHandler(
	auth *services.AuthorizationService,
	cfg *config.Config,
	log *logrus.Logger,
) *AuthorizeHandler {
	return &AuthorizeHandler{
		auth:   auth,
		config: cfg,
		log:    log,
	}
}

// ShowLogin validates the authorization request and renders the login
// challenge. Invalid requests get a JSON error instead of a page, which is
// what the emulated gateway does.
func (h *AuthorizeHandler) ShowLogin(c *gin.Context) {
	clientID := c.Query("client_id")
	redirectURI := c.Query("redirect_uri")
	responseType := c.Query("response_type")
	scope := c.Query("scope")
	state := c.Query("state")

	if _, err := h.auth.BeginAuthorization(clientID, redirectURI, responseType, scope, state); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid_request", "Missing required parameters")
		return
	}

	renderHTML(c, http.StatusOK, loginChallengePage, loginChallengeData{
		ClientID:     clientID,
		RedirectURI:  redirectURI,
		ResponseType: responseType,
		Scope:        scope,
		State:        state,
		Error:        c.Query("error"),
	})
}

// SubmitLogin authenticates the submitted credentials and redirects to the
// client's callback with a fresh authorization code. Bad credentials bounce
// back to the challenge with error=invalid_credentials; the original
// authorize parameters are carried over exactly once, never re-encoded.
func (h *AuthorizeHandler) SubmitLogin(c *gin.Context) {
	clientID := c.PostForm("client_id")
	redirectURI := c.PostForm("redirect_uri")
	responseType := c.PostForm("response_type")
	scope := c.PostForm("scope")
	state := c.PostForm("state")
	username := c.PostForm("username")
	password := c.PostForm("password")

	code, err := h.auth.CompleteAuthorization(
		clientID, redirectURI, responseType, scope, state, username, password,
	)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			c.Redirect(http.StatusFound, retryAuthorizeURL(clientID, redirectURI, responseType, scope, state))
		case errors.Is(err, services.ErrInvalidRequest):
			jsonError(c, http.StatusBadRequest, "invalid_request", "Missing required parameters")
		default:
			h.log.WithError(err).Error("authorization failed")
			jsonError(c, http.StatusInternalServerError, "server_error", "Internal server error")
		}
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", code.User.ID)
	if err := session.Save(); err != nil {
		h.log.WithError(err).Warn("failed to save session")
	}

	c.Redirect(http.StatusFound, callbackURL(redirectURI, code.Code, state))
}

// CallbackAuthorize mirrors the endpoint the real gateway exposes after its
// own SSO hop: it forwards the request back into the authorize endpoint.
func (h *AuthorizeHandler) CallbackAuthorize(c *gin.Context) {
	params := url.Values{}
	params.Set("client_id", c.Query("client_id"))
	params.Set("redirect_uri", c.Query("redirect_uri"))
	params.Set("response_type", c.Query("response_type"))
	params.Set("state", c.Query("state"))

	c.Redirect(http.StatusFound, "/cas/oauth2.0/authorize?"+params.Encode())
}

// retryAuthorizeURL rebuilds the challenge URL with the original
// parameters plus the error marker. The values come from the decoded form,
// so encoding them once here cannot double-encode.
func retryAuthorizeURL(clientID, redirectURI, responseType, scope, state string) string {
	params := url.Values{}
	params.Set("client_id", clientID)
	params.Set("redirect_uri", redirectURI)
	params.Set("response_type", responseType)
	if scope != "" {
		params.Set("scope", scope)
	}
	if state != "" {
		params.Set("state", state)
	}
	params.Set("error", "invalid_credentials")
	return "/cas/oauth2.0/authorize?" + params.Encode()
}

// callbackURL appends code and state to the client's redirect URI,
// preserving any query parameters the URI already carries.
func callbackURL(redirectURI, code, state string) string {
	u, err := url.Parse(redirectURI)
	if err != nil {
		// The policy accepted this URI, so it parsed once already;
		// fall back to naive concatenation rather than dropping the code.
		sep := "?"
		if strings.Contains(redirectURI, "?") {
			sep = "&"
		}
		out := redirectURI + sep + "code=" + url.QueryEscape(code)
		if state != "" {
			out += "&state=" + url.QueryEscape(state)
		}
		return out
	}

	q := u.Query()
	q.Set("code", code)
	if state != "" {
		q.Set("state", state)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
