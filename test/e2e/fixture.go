package e2e

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/abelbrown/tuirss/internal/config"
	"github.com/abelbrown/tuirss/internal/feed"
)

const fixtureFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Fixture Feed</title>
    <link>https://example.com/</link>
    <description>Deterministic feed for UI tests</description>
    <item>
      <title>Fixture Item One</title>
      <link>https://example.com/fixture-1</link>
      <description>&lt;p&gt;A deterministic item for UI tests.&lt;/p&gt;</description>
      <pubDate>%s</pubDate>
    </item>
    <item>
      <title>Fixture Item Two</title>
      <link>https://example.com/fixture-2</link>
      <description>Second item.</description>
    </item>
  </channel>
</rss>`

// serveFixtureFeed serves the fixture RSS document at /rss.
func serveFixtureFeed() *httptest.Server {
	body := fmt.Sprintf(fixtureFeed, time.Now().UTC().Format(time.RFC1123Z))
	mux := http.NewServeMux()
	mux.HandleFunc("/rss", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, body)
	})
	return httptest.NewServer(mux)
}

// writeFixtureConfig writes a config into homeDir whose first-run feed list
// points at feedURL, so the binary never touches the network.
func writeFixtureConfig(homeDir, feedURL string) error {
	prev, had := os.LookupEnv(config.EnvHome)
	os.Setenv(config.EnvHome, homeDir)
	defer func() {
		if had {
			os.Setenv(config.EnvHome, prev)
		} else {
			os.Unsetenv(config.EnvHome)
		}
	}()

	cfg := config.DefaultConfig()
	cfg.Fetch.TimeoutSeconds = 5
	cfg.Log.Level = "debug"
	cfg.DefaultFeeds = []feed.FeedSource{
		{ID: "fixture", Name: "Local Fixture", URL: feedURL},
	}
	return cfg.Save()
}
