package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/abelbrown/tuirss/internal/config"
	"github.com/abelbrown/tuirss/internal/fetch"
	"github.com/abelbrown/tuirss/internal/logging"
	"github.com/abelbrown/tuirss/internal/store"
	"github.com/mattn/go-runewidth"
)

// dataDir returns the tuirss data directory, creating it if needed.
func dataDir() string {
	dir := config.DataDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("failed to create data directory: %v", err)
	}
	return dir
}

// loadConfig loads config and starts file logging.
func loadConfig() *config.Config {
	dir := dataDir()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := logging.Init(dir, cfg.Log.Level); err != nil {
		log.Printf("warning: logging disabled: %v", err)
	}
	return cfg
}

// openDB opens the store and seeds it on first run, or fatals.
func openDB(cfg *config.Config) *store.Store {
	st, err := store.Open(filepath.Join(dataDir(), "tuirss.db"))
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	if _, err := st.Seed(cfg.DefaultFeeds); err != nil {
		log.Fatalf("failed to seed feeds: %v", err)
	}
	return st
}

// newFetcher builds the configured fetcher.
func newFetcher(cfg *config.Config) *fetch.Fetcher {
	return fetch.NewFetcher(cfg.Fetch.Timeout(),
		fetch.WithUserAgent(cfg.Fetch.UserAgent),
		fetch.WithRateLimit(cfg.Fetch.RequestsPerSecond),
	)
}

// truncate shortens a string to max display cells, appending "..." if truncated.
func truncate(s string, max int) string {
	if runewidth.StringWidth(s) <= max {
		return s
	}
	return runewidth.Truncate(s, max, "...")
}
