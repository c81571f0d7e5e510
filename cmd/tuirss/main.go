package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/abelbrown/tuirss/internal/config"
	"github.com/abelbrown/tuirss/internal/feed"
	"github.com/abelbrown/tuirss/internal/fetch"
	"github.com/abelbrown/tuirss/internal/logging"
	"github.com/abelbrown/tuirss/internal/nav"
	"github.com/abelbrown/tuirss/internal/store"
	"github.com/abelbrown/tuirss/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Data directory: ~/.tui-rss/ (or $TUIRSS_HOME)
	dataDir := config.DataDir()
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logging.Init(dataDir, cfg.Log.Level); err != nil {
		log.Printf("Warning: logging disabled: %v", err)
	}
	defer logging.Close()

	st, err := store.Open(filepath.Join(dataDir, "tuirss.db"))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer st.Close()

	seeded, err := st.Seed(cfg.DefaultFeeds)
	if err != nil {
		log.Fatalf("Failed to seed feeds: %v", err)
	}
	if seeded {
		logging.Info("seeded default feeds", "count", len(cfg.DefaultFeeds))
	}

	fetcher := fetch.NewFetcher(cfg.Fetch.Timeout(),
		fetch.WithUserAgent(cfg.Fetch.UserAgent),
		fetch.WithRateLimit(cfg.Fetch.RequestsPerSecond),
	)

	navigator, err := nav.New(st)
	if err != nil {
		log.Fatalf("Failed to load state: %v", err)
	}

	// Create UI app with dependency injection
	app := ui.NewAppWithConfig(navigator, ui.AppConfig{
		FetchFeed: func(sourceID, url string) tea.Cmd {
			return func() tea.Msg {
				f, err := fetcher.FetchFeed(ctx, url)
				return nav.FeedLoaded{SourceID: sourceID, Feed: f, Err: err}
			}
		},
		FetchWebpage: func(articleID, url string) tea.Cmd {
			return func() tea.Msg {
				html, err := fetcher.FetchText(ctx, url)
				return nav.WebpageLoaded{ArticleID: articleID, HTML: html, Err: err}
			}
		},
		ValidateFeed: func(url string) tea.Cmd {
			return func() tea.Msg {
				f, err := feed.Validate(ctx, fetcher, url)
				return nav.FeedValidated{URL: url, Feed: f, Err: err}
			}
		},
		OpenBrowser: ui.OpenInBrowser,
		CopyLink:    ui.CopyToClipboard,
	})

	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Run UI (blocks until quit)
	if _, err := program.Run(); err != nil {
		log.Printf("Error running program: %v", err)
	}
	logging.Info("exiting")
}
