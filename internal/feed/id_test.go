package feed

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

var alnum = regexp.MustCompile(`^[A-Za-z0-9]+$`)

func TestItemID(t *testing.T) {
	a := ItemID("https://example.com/a", "A", 0)
	if a != ItemID("https://example.com/a", "A", 0) {
		t.Error("ItemID should be deterministic")
	}
	if len(a) != 32 || !alnum.MatchString(a) {
		t.Errorf("ItemID = %q, want 32 alphanumerics", a)
	}

	others := []string{
		ItemID("https://example.com/a", "A", 1),
		ItemID("https://example.com/a", "B", 0),
		ItemID("https://example.com/b", "A", 0),
	}
	for _, o := range others {
		if o == a {
			t.Errorf("expected distinct id, got %q twice", o)
		}
	}
}

func TestItemIDLongSharedPrefix(t *testing.T) {
	// Links sharing a long prefix must not collide.
	base := "https://example.com/" + strings.Repeat("x", 100)
	if ItemID(base+"/1", "T", 0) == ItemID(base+"/2", "T", 0) {
		t.Error("ids collided for links with a shared prefix")
	}
}

func TestGenerateSourceID(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	ts := "loyw3v28"

	tests := []struct {
		url  string
		want string
	}{
		{"https://www.nytimes.com/rss", "nytimes-" + ts},
		{"https://hnrss.org/frontpage", "hnrss-" + ts},
		{"http://feeds.bbci.co.uk/news/rss.xml", "feeds-" + ts},
		{"not a url", "feed-" + ts},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := GenerateSourceID(tt.url, now); got != tt.want {
				t.Errorf("GenerateSourceID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
