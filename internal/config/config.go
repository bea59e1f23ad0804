package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Backend
	APIBaseURL     string
	RequestTimeout time.Duration // 0 means no timeout

	// Media hosts
	ImageBaseURL  string // poster/backdrop widths are appended (w342, w1280)
	VideoEmbedURL string // trailer key is appended

	// Filters
	DefaultLanguage string
	LookupCacheTTL  time.Duration

	// Local callback server (federated login, metrics, health)
	CallbackAddr string

	// Session probe schedule while the terminal UI runs (cron spec, empty disables)
	SessionProbeSchedule string

	// Paths
	DatabaseFile string // $CONFIG_DIR/cinescout.db
	LogFile      string // $CONFIG_DIR/cinescout.log

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	setDefaults()

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "cinescout")
	} else {
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := &Config{
		APIBaseURL:     viper.GetString("API_BASE_URL"),
		RequestTimeout: time.Duration(viper.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second,

		ImageBaseURL:  viper.GetString("IMAGE_BASE_URL"),
		VideoEmbedURL: viper.GetString("VIDEO_EMBED_URL"),

		DefaultLanguage: viper.GetString("DEFAULT_LANGUAGE"),
		LookupCacheTTL:  time.Duration(viper.GetInt("LOOKUP_CACHE_TTL_MINUTES")) * time.Minute,

		CallbackAddr:         viper.GetString("CALLBACK_ADDR"),
		SessionProbeSchedule: viper.GetString("SESSION_PROBE_SCHEDULE"),

		DatabaseFile: filepath.Join(configDir, "cinescout.db"),
		LogFile:      filepath.Join(configDir, "cinescout.log"),

		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("API_BASE_URL", "http://localhost:5000")
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 0)
	viper.SetDefault("IMAGE_BASE_URL", "https://image.tmdb.org/t/p")
	viper.SetDefault("VIDEO_EMBED_URL", "https://www.youtube.com/embed/")
	viper.SetDefault("DEFAULT_LANGUAGE", "en")
	viper.SetDefault("LOOKUP_CACHE_TTL_MINUTES", 60)
	viper.SetDefault("CALLBACK_ADDR", "127.0.0.1:8765")
	viper.SetDefault("SESSION_PROBE_SCHEDULE", "@every 5m")
	viper.SetDefault("LOG_LEVEL", "info")
}

// Validate checks required fields
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", c.APIBaseURL)
	}
	if c.ImageBaseURL == "" {
		return fmt.Errorf("IMAGE_BASE_URL is required")
	}
	if c.VideoEmbedURL == "" {
		return fmt.Errorf("VIDEO_EMBED_URL is required")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must not be negative")
	}
	return nil
}
