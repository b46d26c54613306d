package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Herald2025/seu-oauth2-mock/internal/metrics"
	"github.com/Herald2025/seu-oauth2-mock/internal/services"
	"github.com/Herald2025/seu-oauth2-mock/internal/ticket"
)

// LoginHandler serves the CAS SPA surface: the /dist/main/login page, the
// service-ticket login POST, and /dist/logOut.
type LoginHandler struct {
	clients         *services.ClientService
	tickets         *ticket.Generator
	metricsRecorder metrics.Recorder
	log             *logrus.Logger
}

func NewLoginHandler(
	clients *services.ClientService,
	m metrics.Recorder,
	log *logrus.Logger,
) *LoginHandler {
	return &LoginHandler{
		clients:         clients,
		tickets:         ticket.NewGenerator(ticket.FamilyServiceTicket),
		metricsRecorder: m,
		log:             log,
	}
}

// LoginPage renders the CAS login page. The service query parameter names
// the relying service to bounce back to after authentication.
func (h *LoginHandler) LoginPage(c *gin.Context) {
	renderHTML(c, http.StatusOK, casLoginPage, casLoginData{
		Service: c.Query("service"),
		Error:   c.Query("error"),
	})
}

// Login handles the CAS login form. Success with a service parameter
// redirects there with a fresh ST- ticket appended; success without one
// renders a confirmation page. Bad credentials bounce back to the login
// page with error=invalid_credentials.
func (h *LoginHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	service := c.PostForm("service")

	user, err := h.clients.AuthenticateUser(username, password)
	if err != nil {
		params := url.Values{}
		params.Set("service", service)
		params.Set("error", "invalid_credentials")
		c.Redirect(http.StatusFound, "/dist/main/login?"+params.Encode())
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	if err := session.Save(); err != nil {
		h.log.WithError(err).Warn("failed to save session")
	}

	if service == "" {
		name := user.RealName
		if name == "" {
			name = user.ID
		}
		renderHTML(c, http.StatusOK, loginSuccessPage, loginSuccessData{
			Name:  name,
			Email: user.Email,
		})
		return
	}

	serviceURL, err := url.Parse(service)
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid_request", "service is not a valid URL")
		return
	}

	st, err := h.tickets.Next()
	if err != nil {
		h.log.WithError(err).Error("failed to generate service ticket")
		jsonError(c, http.StatusInternalServerError, "server_error", "Internal server error")
		return
	}

	q := serviceURL.Query()
	q.Set("ticket", st)
	serviceURL.RawQuery = q.Encode()

	h.log.WithFields(logrus.Fields{
		"user_id": user.ID,
		"service": serviceURL.Host,
	}).Info("service ticket issued")
	c.Redirect(http.StatusFound, serviceURL.String())
}

// Logout clears the CAS session and either redirects to redirectUrl or
// renders the logout confirmation page.
func (h *LoginHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		h.log.WithError(err).Warn("failed to clear session")
	}
	h.metricsRecorder.RecordLogout()

	if redirectURL := c.Query("redirectUrl"); redirectURL != "" {
		c.Redirect(http.StatusFound, redirectURL)
		return
	}
	renderHTML(c, http.StatusOK, logoutPage, nil)
}
