package policy

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Herald2025/seu-oauth2-mock/internal/config"
	"github.com/Herald2025/seu-oauth2-mock/internal/models"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func policyClient() *models.Client {
	return &models.Client{
		ID:           "localOAuth2",
		RedirectURIs: []string{"http://localhost:18099/login/oauth2/code/github"},
	}
}

func TestExactMatch(t *testing.T) {
	p := &ExactMatch{log: quietLogger()}
	client := policyClient()

	assert.True(t, p.Accept(client, "http://localhost:18099/login/oauth2/code/github"))
	assert.False(t, p.Accept(client, "http://localhost:18099/login/oauth2/code/github/"))
	assert.False(t, p.Accept(client, "http://evil.example.org/cb"))
	assert.False(t, p.Accept(client, ""))
}

func TestExactMatch_NoRegisteredURIs(t *testing.T) {
	p := &ExactMatch{log: quietLogger()}
	client := &models.Client{ID: "bare"}
	assert.False(t, p.Accept(client, "http://localhost/cb"))
}

func TestHostAllowlist(t *testing.T) {
	p := NewHostAllowlist([]string{"localhost:18099", "dev.example.org"}, quietLogger())
	client := policyClient()

	assert.True(t, p.Accept(client, "http://localhost:18099/any/path"))
	assert.True(t, p.Accept(client, "https://dev.example.org/cb"))
	// Port matters unless the bare hostname is listed.
	assert.False(t, p.Accept(client, "http://localhost:9999/cb"))
	assert.False(t, p.Accept(client, "http://evil.example.org/cb"))
	assert.False(t, p.Accept(client, "not a uri"))
}

func TestHostAllowlist_BareHostnameMatchesAnyPort(t *testing.T) {
	p := NewHostAllowlist([]string{"localhost"}, quietLogger())
	client := policyClient()

	assert.True(t, p.Accept(client, "http://localhost:1234/cb"))
	assert.True(t, p.Accept(client, "http://localhost/cb"))
}

func TestAcceptAny(t *testing.T) {
	p := &AcceptAny{log: quietLogger()}
	client := policyClient()

	assert.True(t, p.Accept(client, "http://anything.example.org/cb"))
	assert.True(t, p.Accept(client, "https://x/cb"))
	assert.False(t, p.Accept(client, ""))
	assert.False(t, p.Accept(client, "/relative/path"))
	assert.False(t, p.Accept(client, "example.org/cb"))
}

func TestFromConfig(t *testing.T) {
	log := quietLogger()

	for mode, want := range map[string]string{
		config.RedirectPolicyExact: config.RedirectPolicyExact,
		config.RedirectPolicyHosts: config.RedirectPolicyHosts,
		config.RedirectPolicyAny:   config.RedirectPolicyAny,
	} {
		cfg := &config.Config{RedirectPolicy: mode, RedirectAllowedHosts: []string{"localhost"}}
		p, err := FromConfig(cfg, log)
		require.NoError(t, err)
		assert.Equal(t, want, p.Name())
	}

	_, err := FromConfig(&config.Config{RedirectPolicy: "bogus"}, log)
	assert.Error(t, err)
}
