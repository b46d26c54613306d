package services

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Herald2025/seu-oauth2-mock/internal/metrics"
	"github.com/Herald2025/seu-oauth2-mock/internal/models"
	"github.com/Herald2025/seu-oauth2-mock/internal/store"
)

var (
	ErrInvalidClient      = errors.New("invalid_client")
	ErrInvalidCredentials = errors.New("invalid_credentials")
)

// ClientService resolves and authenticates clients against the fixture
// registry, and authenticates end-user credentials against the registered
// users of every known client (the emulated system keeps users inside the
// client fixture files, so a login scans all of them).
type ClientService struct {
	registry        *store.ClientRegistry
	metricsRecorder metrics.Recorder
	log             *logrus.Logger
}

func NewClientService(
	registry *store.ClientRegistry,
	m metrics.Recorder,
	log *logrus.Logger,
) *ClientService {
	return &ClientService{
		registry:        registry,
		metricsRecorder: m,
		log:             log,
	}
}

// Resolve returns the client record for an id, or ErrInvalidClient.
func (s *ClientService) Resolve(clientID string) (*models.Client, error) {
	client, err := s.registry.Resolve(clientID)
	if err != nil {
		if errors.Is(err, store.ErrClientNotFound) {
			return nil, ErrInvalidClient
		}
		return nil, err
	}
	return client, nil
}

// VerifyClient resolves the client and checks its secret. An empty secret
// means the caller is in the authorize phase, where the protocol does not
// require one; a non-empty secret must match the fixture exactly. This is
// the sole client-authentication check for both the authorize and token
// endpoints.
func (s *ClientService) VerifyClient(clientID, clientSecret string) (*models.Client, error) {
	client, err := s.Resolve(clientID)
	if err != nil {
		return nil, err
	}

	if clientSecret != "" && clientSecret != client.ClientSecret {
		s.log.WithField("client_id", clientID).Warn("client secret mismatch")
		return nil, ErrInvalidClient
	}
	return client, nil
}

// AuthenticateUser matches the credential pair against the registered users
// of every known client. Plaintext comparison: the fixtures are test data,
// not real credentials.
func (s *ClientService) AuthenticateUser(username, password string) (models.User, error) {
	start := time.Now()

	clients, err := s.registry.All()
	if err != nil {
		s.metricsRecorder.RecordAuthAttempt(false, time.Since(start))
		return models.User{}, err
	}

	for _, client := range clients {
		for _, user := range client.Users {
			if user.ID == username && user.Password == password {
				s.metricsRecorder.RecordAuthAttempt(true, time.Since(start))
				s.log.WithFields(logrus.Fields{
					"user_id":   user.ID,
					"client_id": client.ID,
				}).Info("credentials accepted")
				return user, nil
			}
		}
	}

	s.metricsRecorder.RecordAuthAttempt(false, time.Since(start))
	s.log.WithField("username", username).Info("credentials rejected")
	return models.User{}, ErrInvalidCredentials
}
