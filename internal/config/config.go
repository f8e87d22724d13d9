package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	// Catalog search settings
	Catalog CatalogConfig `koanf:"catalog"`

	// Playback settings
	Playback PlaybackConfig `koanf:"playback"`

	// Logging settings
	Log LogConfig `koanf:"log"`
}

// CatalogConfig holds catalog search API configuration.
type CatalogConfig struct {
	BaseURL     string `koanf:"base_url"`     // empty means the public endpoint
	SearchLimit int    `koanf:"search_limit"` // results per search (1-50, default: 25)
}

// PlaybackConfig holds playback engine configuration.
type PlaybackConfig struct {
	Volume            float64 `koanf:"volume"`          // initial volume (0.0-1.0, default: 0.7)
	MaxRetries        int     `koanf:"max_retries"`     // stream retry bound (default: 3)
	RetryBackoffSec   int     `koanf:"retry_backoff_s"` // seconds between retries (default: 1)
	SaveSessionOnExit *bool   `koanf:"save_session"`    // persist queue on exit (default: true)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	File  string `koanf:"file"`  // empty disables file logging
	Level string `koanf:"level"` // debug, info, warn, error (default: info)
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Catalog.BaseURL = strings.TrimSuffix(cfg.Catalog.BaseURL, "/")
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/harmonia/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "harmonia", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetCatalogConfig returns catalog configuration with defaults applied.
func (c *Config) GetCatalogConfig() CatalogConfig {
	cfg := c.Catalog
	if cfg.SearchLimit <= 0 || cfg.SearchLimit > 50 {
		cfg.SearchLimit = 25
	}
	return cfg
}

// GetPlaybackConfig returns playback configuration with defaults applied.
func (c *Config) GetPlaybackConfig() PlaybackConfig {
	cfg := c.Playback
	if cfg.Volume <= 0 || cfg.Volume > 1 {
		cfg.Volume = 0.7
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBackoffSec <= 0 {
		cfg.RetryBackoffSec = 1
	}
	return cfg
}

// RetryBackoff returns the retry backoff as a duration.
func (c PlaybackConfig) RetryBackoff() time.Duration {
	return time.Duration(c.RetryBackoffSec) * time.Second
}

// SaveSession reports whether the queue should be persisted on exit.
func (c PlaybackConfig) SaveSession() bool {
	return c.SaveSessionOnExit == nil || *c.SaveSessionOnExit
}

// LogLevel returns the configured level, defaulting to info.
func (c LogConfig) LogLevel() string {
	if c.Level == "" {
		return "info"
	}
	return c.Level
}
