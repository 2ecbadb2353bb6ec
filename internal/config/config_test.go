package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "./data/links.db", cfg.RegistryPath)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SPOTIFY_ID", "client-id")
	t.Setenv("SPOTIFY_SECRET", "client-secret")
	t.Setenv("SPOTIFY_ANONYMOUS", "true")
	t.Setenv("YOUTUBE_API_KEY", "yt-key")
	t.Setenv("REGISTRY_PATH", "/tmp/links.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "client-id", cfg.Spotify.ID)
	assert.Equal(t, "client-secret", cfg.Spotify.Secret)
	assert.True(t, cfg.Spotify.Anonymous)
	assert.Equal(t, "yt-key", cfg.YouTube.APIKey)
	assert.Equal(t, "/tmp/links.db", cfg.RegistryPath)
}

func TestUnrelatedEnvironmentIgnored(t *testing.T) {
	t.Setenv("PATH_INFO", "should-not-leak")
	t.Setenv("HOME", "/somewhere")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
}
