// Package config loads the service configuration: defaults from a struct,
// a .env file if present, then environment variables on top.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Addr     string `koanf:"addr"`
	LogLevel string `koanf:"log_level"`

	// RegistryPath is the sqlite file for cross-platform track links.
	// Empty disables link persistence.
	RegistryPath string `koanf:"registry_path"`

	Spotify SpotifyConfig `koanf:"spotify"`
	YouTube YouTubeConfig `koanf:"youtube"`
}

type SpotifyConfig struct {
	ID     string `koanf:"id"`
	Secret string `koanf:"secret"`
	// Anonymous allows the web-player token fallback without credentials.
	Anonymous bool `koanf:"anonymous"`
}

type YouTubeConfig struct {
	APIKey string `koanf:"api_key"`
}

func defaults() Config {
	return Config{
		Addr:         ":8080",
		LogLevel:     "info",
		RegistryPath: "./data/links.db",
	}
}

// Load reads configuration with precedence env > .env file > defaults.
// Variable names map directly onto config paths: SPOTIFY_ID -> spotify.id,
// YOUTUBE_API_KEY -> youtube.api_key, ADDR -> addr.
func Load() (Config, error) {
	// .env is optional; a missing file is the normal production case.
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// envTransform maps the environment variables this service reads onto their
// config paths. Everything else is dropped so unrelated process environment
// never leaks into the config tree.
func envTransform(key string) string {
	mappings := map[string]string{
		"ADDR":              "addr",
		"LOG_LEVEL":         "log_level",
		"REGISTRY_PATH":     "registry_path",
		"SPOTIFY_ID":        "spotify.id",
		"SPOTIFY_SECRET":    "spotify.secret",
		"SPOTIFY_ANONYMOUS": "spotify.anonymous",
		"YOUTUBE_API_KEY":   "youtube.api_key",
	}
	if path, ok := mappings[strings.ToUpper(key)]; ok {
		return path
	}
	return ""
}
