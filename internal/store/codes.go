package store

import (
	"sync"
	"time"

	"github.com/Herald2025/seu-oauth2-mock/internal/models"
	"github.com/Herald2025/seu-oauth2-mock/internal/ticket"
)

// CodeStore holds issued authorization codes until they are consumed or
// expire. State is process-lifetime only. A single mutex guards the map so
// that Consume is atomic: of two concurrent exchanges of the same code,
// exactly one wins.
type CodeStore struct {
	mu    sync.Mutex
	codes map[string]*models.AuthorizationCode
	gen   *ticket.Generator
}

// NewCodeStore creates an empty code store.
func NewCodeStore() *CodeStore {
	return &CodeStore{
		codes: make(map[string]*models.AuthorizationCode),
		gen:   ticket.NewGenerator(ticket.FamilyAuthorizationCode),
	}
}

// Issue mints a new single-use code bound to the client, user and redirect
// URI of the authorization request.
func (s *CodeStore) Issue(
	client *models.Client,
	user models.User,
	redirectURI string,
	scope []string,
	ttl time.Duration,
) (*models.AuthorizationCode, error) {
	codeString, err := s.gen.Next()
	if err != nil {
		return nil, err
	}

	code, err := models.NewAuthorizationCode(models.AuthorizationCodeParams{
		Code:        codeString,
		ExpiresAt:   time.Now().Add(ttl),
		RedirectURI: redirectURI,
		Scope:       scope,
		ClientID:    client.ID,
		User:        user,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.codes[code.Code] = code
	s.mu.Unlock()

	return code, nil
}

// Consume looks up a code and removes it in one step. This is the
// single-use enforcement point: a second Consume of the same code string
// returns ErrCodeNotFound. Expired codes are removed lazily and reported
// as not found.
func (s *CodeStore) Consume(codeString string) (*models.AuthorizationCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.codes[codeString]
	if !ok {
		return nil, ErrCodeNotFound
	}
	delete(s.codes, codeString)

	if code.IsExpired() {
		return nil, ErrCodeNotFound
	}
	return code, nil
}

// Revoke removes a code without consuming it. Returns whether a record was
// removed.
func (s *CodeStore) Revoke(codeString string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.codes[codeString]
	delete(s.codes, codeString)
	return ok
}

// Count returns the number of stored (possibly expired) codes. Used by the
// metrics gauge job.
func (s *CodeStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.codes)
}
