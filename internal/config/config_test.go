package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/harmonia.log",
			expected: filepath.Join(home, "harmonia.log"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/var/log/harmonia.log",
			expected: "/var/log/harmonia.log",
		},
		{
			name:     "relative path unchanged",
			input:    "logs/harmonia.log",
			expected: "logs/harmonia.log",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetCatalogConfigDefaults(t *testing.T) {
	cfg := (&Config{}).GetCatalogConfig()

	if cfg.SearchLimit != 25 {
		t.Errorf("search limit = %d, want 25", cfg.SearchLimit)
	}
	if cfg.BaseURL != "" {
		t.Errorf("base URL = %q, want empty (public endpoint)", cfg.BaseURL)
	}
}

func TestGetCatalogConfigClampsLimit(t *testing.T) {
	c := &Config{Catalog: CatalogConfig{SearchLimit: 500}}
	if got := c.GetCatalogConfig().SearchLimit; got != 25 {
		t.Errorf("search limit = %d, want 25", got)
	}
}

func TestGetPlaybackConfigDefaults(t *testing.T) {
	cfg := (&Config{}).GetPlaybackConfig()

	if cfg.Volume != 0.7 {
		t.Errorf("volume = %v, want 0.7", cfg.Volume)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("max retries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.RetryBackoff() != time.Second {
		t.Errorf("retry backoff = %v, want 1s", cfg.RetryBackoff())
	}
	if !cfg.SaveSession() {
		t.Error("save session = false, want true by default")
	}
}

func TestGetPlaybackConfigKeepsValidValues(t *testing.T) {
	off := false
	c := &Config{Playback: PlaybackConfig{
		Volume:            0.3,
		MaxRetries:        5,
		RetryBackoffSec:   2,
		SaveSessionOnExit: &off,
	}}
	cfg := c.GetPlaybackConfig()

	if cfg.Volume != 0.3 {
		t.Errorf("volume = %v, want 0.3", cfg.Volume)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("max retries = %d, want 5", cfg.MaxRetries)
	}
	if cfg.RetryBackoff() != 2*time.Second {
		t.Errorf("retry backoff = %v, want 2s", cfg.RetryBackoff())
	}
	if cfg.SaveSession() {
		t.Error("save session = true, want false")
	}
}

func TestLogLevelDefault(t *testing.T) {
	if got := (LogConfig{}).LogLevel(); got != "info" {
		t.Errorf("level = %q, want %q", got, "info")
	}
	if got := (LogConfig{Level: "debug"}).LogLevel(); got != "debug" {
		t.Errorf("level = %q, want %q", got, "debug")
	}
}
