package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileAbsent(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 224, cfg.InputSize)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
listen_addr: ":9090"
checkpoint_path: /srv/models/checkpoint.json
input_size: 256
token_ttl: 1h
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "/srv/models/checkpoint.json", cfg.CheckpointPath)
	assert.Equal(t, 256, cfg.InputSize)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, "crops.db", cfg.SQLitePath)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`listen_addr: ":9090"`), 0o644))

	t.Setenv("CROPS_LISTEN_ADDR", ":7070")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("CROPS_INPUT_SIZE", "320")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.ListenAddr)
	assert.Equal(t, "env-secret", cfg.JWTSecret)
	assert.Equal(t, 320, cfg.InputSize)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestBadEnvValuesIgnored(t *testing.T) {
	t.Setenv("CROPS_INPUT_SIZE", "not-a-number")
	t.Setenv("CROPS_TOKEN_TTL", "eleventy")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 224, cfg.InputSize)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
}
