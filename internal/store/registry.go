package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Herald2025/seu-oauth2-mock/internal/models"
)

// ClientRegistry resolves client ids against a directory of JSON fixture
// files, one file per client, named <client_id>.json. Files are re-read on
// every lookup so that fixture edits take effect without a restart; the
// reads are small local files and this is the documented test workflow.
type ClientRegistry struct {
	dataPath string
}

// NewClientRegistry creates a registry over the given fixture directory.
func NewClientRegistry(dataPath string) *ClientRegistry {
	return &ClientRegistry{dataPath: dataPath}
}

// Resolve loads the client with the given id. Returns ErrClientNotFound if
// no fixture exists or the id is not a plain file name.
func (r *ClientRegistry) Resolve(clientID string) (*models.Client, error) {
	if clientID == "" || clientID != filepath.Base(clientID) || strings.HasPrefix(clientID, ".") {
		return nil, ErrClientNotFound
	}

	raw, err := os.ReadFile(filepath.Join(r.dataPath, clientID+".json"))
	if err != nil {
		return nil, ErrClientNotFound
	}

	var client models.Client
	if err := json.Unmarshal(raw, &client); err != nil {
		return nil, fmt.Errorf("fixture %s.json is malformed: %w", clientID, err)
	}
	return &client, nil
}

// All loads every client fixture in the directory. Malformed files are
// skipped; credential scans should not be broken by one bad fixture.
func (r *ClientRegistry) All() ([]*models.Client, error) {
	entries, err := os.ReadDir(r.dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture directory %q: %w", r.dataPath, err)
	}

	var clients []*models.Client
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		client, err := r.Resolve(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			continue
		}
		clients = append(clients, client)
	}
	return clients, nil
}

// Health reports whether the fixture directory is readable.
func (r *ClientRegistry) Health() error {
	_, err := os.ReadDir(r.dataPath)
	return err
}
