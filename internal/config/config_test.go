package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("API_BASE_URL", "http://backend.local:5000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.APIBaseURL != "http://backend.local:5000" {
		t.Errorf("Expected API base URL from env, got %s", cfg.APIBaseURL)
	}
	if cfg.DefaultLanguage != "en" {
		t.Errorf("Expected default language 'en', got '%s'", cfg.DefaultLanguage)
	}
	if cfg.LookupCacheTTL != 60*time.Minute {
		t.Errorf("Expected 60m lookup cache TTL, got %v", cfg.LookupCacheTTL)
	}
	if cfg.RequestTimeout != 0 {
		t.Errorf("Expected no request timeout by default, got %v", cfg.RequestTimeout)
	}
	if cfg.DatabaseFile != filepath.Join(dir, "cinescout.db") {
		t.Errorf("Unexpected database path: %s", cfg.DatabaseFile)
	}
	if cfg.LogFile != filepath.Join(dir, "cinescout.log") {
		t.Errorf("Unexpected log path: %s", cfg.LogFile)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		APIBaseURL:    "not a url",
		ImageBaseURL:  "https://image.tmdb.org/t/p",
		VideoEmbedURL: "https://www.youtube.com/embed/",
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected relative API base URL to be rejected")
	}

	cfg.APIBaseURL = "https://movies.example.com"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}

	cfg.RequestTimeout = -time.Second
	if err := cfg.Validate(); err == nil {
		t.Error("Expected negative timeout to be rejected")
	}
}
