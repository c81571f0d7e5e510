// Package config loads the reader's JSON configuration.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/abelbrown/tuirss/internal/feed"
)

// Environment overrides.
const (
	EnvHome      = "TUIRSS_HOME"
	EnvUserAgent = "TUIRSS_USER_AGENT"
	EnvLogLevel  = "TUIRSS_LOG_LEVEL"
)

// Config is the persistent application configuration
type Config struct {
	Fetch FetchConfig `json:"fetch"`
	Log   LogConfig   `json:"log"`

	// DefaultFeeds seeds the store on first run only.
	DefaultFeeds []feed.FeedSource `json:"default_feeds"`
}

// FetchConfig holds network settings
type FetchConfig struct {
	UserAgent         string  `json:"user_agent,omitempty"`
	TimeoutSeconds    int     `json:"timeout_seconds"`     // 0 = no client timeout
	RequestsPerSecond float64 `json:"requests_per_second"` // per host, 0 = unlimited
}

// Timeout returns the configured client timeout.
func (f FetchConfig) Timeout() time.Duration {
	if f.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `json:"level"`
}

// DefaultFeeds are the example sources a fresh install starts with.
func DefaultFeeds() []feed.FeedSource {
	return []feed.FeedSource{
		{ID: "hn", Name: "Hacker News", URL: "https://hnrss.org/frontpage"},
		{ID: "bbc", Name: "BBC News", URL: "http://feeds.bbci.co.uk/news/rss.xml"},
		{ID: "techcrunch", Name: "TechCrunch", URL: "https://techcrunch.com/feed/"},
	}
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Fetch: FetchConfig{
			TimeoutSeconds:    0,
			RequestsPerSecond: 2,
		},
		Log:          LogConfig{Level: "info"},
		DefaultFeeds: DefaultFeeds(),
	}
}

// DataDir returns the directory holding the database, config and logs.
func DataDir() string {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".tui-rss")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.json")
}

// Load reads config from disk, or returns defaults. Environment overrides
// are applied in both cases.
func Load() (*Config, error) {
	cfg, err := load(ConfigPath())
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), nil
	}
	return cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	path := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// ApplyEnv overrides settings from environment variables
func (c *Config) ApplyEnv() {
	if ua := os.Getenv(EnvUserAgent); ua != "" {
		c.Fetch.UserAgent = ua
	}
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		c.Log.Level = lvl
	}
}
