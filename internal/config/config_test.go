package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ".graphqlconfig.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeTemp(t, `
sources:
  - file://./schema
adopt_orphan_extensions: true
daemon:
  listen_addr: localhost:7777
watch:
  listen_addr: localhost:7778
  poll_seconds: 2
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"file://./schema"}, cfg.Sources)
	assert.True(t, cfg.AdoptOrphanExtensions)
	assert.Equal(t, "localhost:7777", cfg.Daemon.ListenAddr)
	assert.Equal(t, 2, cfg.Watch.PollSeconds)
}

func TestLoad_DefaultsPollSeconds(t *testing.T) {
	path := writeTemp(t, "sources: [\"file://./schema\"]\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Watch.PollSeconds)
}

func TestLoad_MissingSourcesRejected(t *testing.T) {
	path := writeTemp(t, "adopt_orphan_extensions: true\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
