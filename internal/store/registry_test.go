package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

const localOAuth2Fixture = `{
  "id": "localOAuth2",
  "clientSecret": "localOAuth2Secret",
  "grants": ["authorization_code", "refresh_token"],
  "redirectUris": ["http://localhost:18099/login/oauth2/code/github"],
  "users": [
    {
      "id": "213001001",
      "password": "JYc1g3e5BccjxPr",
      "email": "213001001@seu.edu.cn",
      "realName": "张三",
      "department": "计算机科学与工程学院",
      "userType": "student",
      "studentNumber": "213001001",
      "gender": "male"
    }
  ]
}`

func TestResolve_ReadsFixture(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "localOAuth2.json", localOAuth2Fixture)

	registry := NewClientRegistry(dir)
	client, err := registry.Resolve("localOAuth2")
	require.NoError(t, err)

	assert.Equal(t, "localOAuth2", client.ID)
	assert.Equal(t, "localOAuth2Secret", client.ClientSecret)
	assert.True(t, client.SupportsGrant("authorization_code"))
	require.Len(t, client.Users, 1)
	assert.Equal(t, "213001001", client.Users[0].ID)
	assert.Equal(t, "计算机科学与工程学院", client.Users[0].Department)
}

func TestResolve_UnknownClient(t *testing.T) {
	registry := NewClientRegistry(t.TempDir())
	_, err := registry.Resolve("ghost")
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestResolve_RejectsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "localOAuth2.json", localOAuth2Fixture)

	registry := NewClientRegistry(dir)
	for _, id := range []string{"", "../localOAuth2", "a/b", ".hidden"} {
		_, err := registry.Resolve(id)
		assert.ErrorIs(t, err, ErrClientNotFound, "id %q", id)
	}
}

func TestResolve_MalformedFixture(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "broken.json", `{"id": "broken",`)

	registry := NewClientRegistry(dir)
	_, err := registry.Resolve("broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrClientNotFound)
}

func TestResolve_ReflectsFixtureEdits(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "localOAuth2.json", localOAuth2Fixture)
	registry := NewClientRegistry(dir)

	client, err := registry.Resolve("localOAuth2")
	require.NoError(t, err)
	require.Equal(t, "localOAuth2Secret", client.ClientSecret)

	// Edit the fixture on disk; the next lookup must see the change.
	writeFixture(t, dir, "localOAuth2.json",
		`{"id": "localOAuth2", "clientSecret": "rotated", "grants": [], "users": []}`)

	client, err = registry.Resolve("localOAuth2")
	require.NoError(t, err)
	assert.Equal(t, "rotated", client.ClientSecret)
}

func TestAll_SkipsMalformedAndNonJSON(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "localOAuth2.json", localOAuth2Fixture)
	writeFixture(t, dir, "second.json", `{"id": "second", "clientSecret": "s2", "grants": [], "users": []}`)
	writeFixture(t, dir, "broken.json", `not json`)
	writeFixture(t, dir, "README.md", `fixtures live here`)

	registry := NewClientRegistry(dir)
	clients, err := registry.All()
	require.NoError(t, err)
	assert.Len(t, clients, 2)
}

func TestHealth(t *testing.T) {
	registry := NewClientRegistry(t.TempDir())
	assert.NoError(t, registry.Health())

	registry = NewClientRegistry("/nonexistent/fixtures")
	assert.Error(t, registry.Health())
}
