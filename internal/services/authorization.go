package services

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Herald2025/seu-oauth2-mock/internal/config"
	"github.com/Herald2025/seu-oauth2-mock/internal/metrics"
	"github.com/Herald2025/seu-oauth2-mock/internal/models"
	"github.com/Herald2025/seu-oauth2-mock/internal/policy"
	"github.com/Herald2025/seu-oauth2-mock/internal/store"
)

// Grant types accepted by the token endpoint (RFC 6749).
const (
	GrantTypeAuthorizationCode = "authorization_code"
	GrantTypeRefreshToken      = "refresh_token"
)

// Authorization code flow errors. The handler maps each sentinel onto the
// protocol error code of the same name.
var (
	ErrInvalidRequest       = errors.New("invalid_request")
	ErrInvalidGrant         = errors.New("invalid_grant")
	ErrUnsupportedGrantType = errors.New("unsupported_grant_type")
	ErrUnauthorizedClient   = errors.New("unauthorized_client")
)

// AuthorizationRequest is the validated, request-scoped state of an
// authorization attempt. The redirect URI travels inside this value and the
// code record it produces — never through shared process state.
type AuthorizationRequest struct {
	Client      *models.Client
	RedirectURI string
	Scope       []string
	State       string
}

// AuthorizationService orchestrates the authorization code grant: the
// authorize -> authenticate -> code flow, the code -> token exchange, and
// refresh token rotation. The service itself is stateless across requests;
// flow state lives in the code and token stores.
type AuthorizationService struct {
	clients         *ClientService
	tokens          *TokenService
	codes           *store.CodeStore
	redirectPolicy  policy.Policy
	config          *config.Config
	metricsRecorder metrics.Recorder
	log             *logrus.Logger
}

func NewAuthorizationService(
	clients *ClientService,
	tokens *TokenService,
	codes *store.CodeStore,
	redirectPolicy policy.Policy,
	cfg *config.Config,
	m metrics.Recorder,
	log *logrus.Logger,
) *AuthorizationService {
	return &AuthorizationService{
		clients:         clients,
		tokens:          tokens,
		codes:           codes,
		redirectPolicy:  redirectPolicy,
		config:          cfg,
		metricsRecorder: m,
		log:             log,
	}
}

// BeginAuthorization validates the parameters of an incoming authorization
// request: the client must resolve, the redirect URI must pass the policy,
// and the response type must be "code". Any failure is invalid_request;
// the caller renders the credential challenge on success.
func (s *AuthorizationService) BeginAuthorization(
	clientID, redirectURI, responseType, scope, state string,
) (*AuthorizationRequest, error) {
	if clientID == "" || redirectURI == "" || responseType == "" {
		return nil, ErrInvalidRequest
	}
	if responseType != "code" {
		return nil, ErrInvalidRequest
	}

	client, err := s.clients.Resolve(clientID)
	if err != nil {
		return nil, ErrInvalidRequest
	}

	if !s.redirectPolicy.Accept(client, redirectURI) {
		s.log.WithFields(logrus.Fields{
			"client_id":    clientID,
			"redirect_uri": redirectURI,
			"policy":       s.redirectPolicy.Name(),
		}).Warn("redirect URI rejected")
		return nil, ErrInvalidRequest
	}

	return &AuthorizationRequest{
		Client:      client,
		RedirectURI: redirectURI,
		Scope:       ParseScope(scope),
		State:       state,
	}, nil
}

// CompleteAuthorization re-validates the request, authenticates the user's
// credentials, and issues a single-use code bound to the validated redirect
// URI. Bad credentials fail with ErrInvalidCredentials; the handler
// redirects back to the authorize URL preserving the original parameters.
func (s *AuthorizationService) CompleteAuthorization(
	clientID, redirectURI, responseType, scope, state, username, password string,
) (*models.AuthorizationCode, error) {
	// Re-validate on POST to stop parameter tampering between the challenge
	// and the credential submission.
	req, err := s.BeginAuthorization(clientID, redirectURI, responseType, scope, state)
	if err != nil {
		s.metricsRecorder.RecordCodeIssued(false)
		return nil, err
	}

	user, err := s.clients.AuthenticateUser(username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	code, err := s.codes.Issue(
		req.Client, user, req.RedirectURI, req.Scope,
		s.config.AuthCodeExpiration,
	)
	if err != nil {
		s.metricsRecorder.RecordCodeIssued(false)
		return nil, err
	}

	s.metricsRecorder.RecordCodeIssued(true)
	s.log.WithFields(logrus.Fields{
		"client_id": req.Client.ID,
		"user_id":   user.ID,
	}).Info("authorization code issued")
	return code, nil
}

// ExchangeCode swaps an authorization code for a token. The checks run in
// protocol order: grant type, client authentication, code consumption, and
// finally the redirect URI binding. The binding check is what stops a code
// captured through one callback from being cashed in through another; it
// must never be skipped.
func (s *AuthorizationService) ExchangeCode(
	grantType, codeString, redirectURI, clientID, clientSecret string,
) (*models.Token, error) {
	if grantType != GrantTypeAuthorizationCode {
		return nil, ErrUnsupportedGrantType
	}

	client, err := s.clients.VerifyClient(clientID, clientSecret)
	if err != nil {
		s.metricsRecorder.RecordCodeExchange("invalid_client")
		return nil, ErrInvalidClient
	}
	if !client.SupportsGrant(GrantTypeAuthorizationCode) {
		s.metricsRecorder.RecordCodeExchange("invalid_client")
		return nil, ErrInvalidClient
	}

	// Single-use enforcement point: Consume removes the code atomically, so
	// a concurrent duplicate exchange loses here.
	code, err := s.codes.Consume(codeString)
	if err != nil {
		s.metricsRecorder.RecordCodeExchange("invalid_grant")
		return nil, ErrInvalidGrant
	}

	if code.ClientID != client.ID {
		s.metricsRecorder.RecordCodeExchange("invalid_grant")
		return nil, ErrInvalidGrant
	}
	if code.RedirectURI != redirectURI {
		s.metricsRecorder.RecordCodeExchange("invalid_grant")
		s.log.WithFields(logrus.Fields{
			"client_id": clientID,
			"bound":     code.RedirectURI,
			"supplied":  redirectURI,
		}).Warn("redirect URI mismatch at exchange")
		return nil, ErrInvalidGrant
	}

	token, err := s.tokens.Issue(client, code.User, code.Scope, code.RedirectURI,
		GrantTypeAuthorizationCode)
	if err != nil {
		return nil, err
	}

	s.metricsRecorder.RecordCodeExchange("success")
	return token, nil
}

// Refresh rotates a token pair for clients whose grants allow
// refresh_token. The old pair is revoked before the new one is returned.
func (s *AuthorizationService) Refresh(
	grantType, refreshToken, clientID, clientSecret string,
) (*models.Token, error) {
	if grantType != GrantTypeRefreshToken {
		return nil, ErrUnsupportedGrantType
	}

	client, err := s.clients.VerifyClient(clientID, clientSecret)
	if err != nil {
		return nil, ErrInvalidClient
	}
	if !s.config.EnableRefreshTokens {
		return nil, ErrUnsupportedGrantType
	}
	if !client.SupportsGrant(GrantTypeRefreshToken) {
		return nil, ErrUnauthorizedClient
	}

	old, err := s.tokens.LookupRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidGrant
	}
	if old.ClientID != client.ID {
		return nil, ErrInvalidGrant
	}

	s.tokens.RevokeByRefreshToken(refreshToken)

	token, err := s.tokens.Issue(client, old.User, old.Scope, old.RedirectURI,
		GrantTypeRefreshToken)
	if err != nil {
		return nil, err
	}
	return token, nil
}

// Authenticate verifies a bearer token presented to a resource endpoint.
func (s *AuthorizationService) Authenticate(bearer string) (*models.Token, error) {
	return s.tokens.Authenticate(bearer)
}

// ParseScope splits a scope parameter into its component scopes. The
// emulated system uses comma separators ("read:user,user:email"); space
// separators are tolerated for RFC 6749 clients.
func ParseScope(scope string) []string {
	if scope == "" {
		return nil
	}
	fields := strings.FieldsFunc(scope, func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// JoinScope renders a scope set the way the emulated system does.
func JoinScope(scope []string) string {
	return strings.Join(scope, ",")
}
