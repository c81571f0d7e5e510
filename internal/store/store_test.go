package store

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/abelbrown/tuirss/internal/feed"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestOpen(t *testing.T) {
	st := openTestStore(t)

	for _, table := range []string{"feeds", "favorites", "meta"} {
		var name string
		err := st.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Fatalf("%s table not created: %v", table, err)
		}
	}
}

func TestMemoryStoresAreIsolated(t *testing.T) {
	a := openTestStore(t)
	b := openTestStore(t)

	if _, err := a.AddFeedSource(feed.FeedSource{ID: "a", Name: "A", URL: "https://a.example/rss"}); err != nil {
		t.Fatal(err)
	}
	got, err := b.ListFeedSources()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("second store sees %d feeds from the first", len(got))
	}
}

func TestFeedSourceCRUD(t *testing.T) {
	st := openTestStore(t)

	srcs := []feed.FeedSource{
		{ID: "hn-1", Name: "Hacker News", URL: "https://hnrss.org/frontpage"},
		{ID: "bbc-1", Name: "BBC", URL: "http://feeds.bbci.co.uk/news/rss.xml"},
	}
	for _, src := range srcs {
		added, err := st.AddFeedSource(src)
		if err != nil {
			t.Fatalf("AddFeedSource failed: %v", err)
		}
		if !added {
			t.Errorf("expected %s to be inserted", src.ID)
		}
	}

	// Same URL under a new id is ignored.
	added, err := st.AddFeedSource(feed.FeedSource{ID: "hn-2", Name: "HN again", URL: "https://hnrss.org/frontpage"})
	if err != nil {
		t.Fatalf("duplicate add returned error: %v", err)
	}
	if added {
		t.Error("duplicate url should not be inserted")
	}

	got, err := st.ListFeedSources()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "hn-1" || got[1].ID != "bbc-1" {
		t.Fatalf("ListFeedSources = %+v", got)
	}

	if err := st.RenameFeedSource("bbc-1", "BBC News"); err != nil {
		t.Fatal(err)
	}
	if err := st.RemoveFeedSource("hn-1"); err != nil {
		t.Fatal(err)
	}
	if err := st.RemoveFeedSource("missing"); err != nil {
		t.Errorf("removing unknown id should not fail: %v", err)
	}

	got, err = st.ListFeedSources()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "BBC News" {
		t.Errorf("after rename/remove = %+v", got)
	}
}

func TestSeedOnce(t *testing.T) {
	st := openTestStore(t)
	defaults := []feed.FeedSource{
		{ID: "hn", Name: "Hacker News", URL: "https://hnrss.org/frontpage"},
		{ID: "bbc", Name: "BBC News", URL: "http://feeds.bbci.co.uk/news/rss.xml"},
	}

	seeded, err := st.Seed(defaults)
	if err != nil || !seeded {
		t.Fatalf("first Seed = %v, %v", seeded, err)
	}

	for _, d := range defaults {
		if err := st.RemoveFeedSource(d.ID); err != nil {
			t.Fatal(err)
		}
	}

	seeded, err = st.Seed(defaults)
	if err != nil {
		t.Fatal(err)
	}
	if seeded {
		t.Error("second Seed should be a no-op")
	}
	got, _ := st.ListFeedSources()
	if len(got) != 0 {
		t.Errorf("defaults resurrected: %+v", got)
	}
}

func TestToggleFavoriteIsItsOwnInverse(t *testing.T) {
	st := openTestStore(t)

	other := feed.FavoriteRecord{ArticleID: "keep", Title: "Keep", Link: "https://example.com/keep"}
	if _, err := st.ToggleFavorite(other); err != nil {
		t.Fatal(err)
	}
	before, err := st.ListFavorites()
	if err != nil {
		t.Fatal(err)
	}

	rec := feed.FavoriteRecord{ArticleID: "abc", Title: "Title", Link: "https://example.com/a", FeedName: "Example"}

	on, err := st.ToggleFavorite(rec)
	if err != nil || !on {
		t.Fatalf("first toggle = %v, %v", on, err)
	}
	if ok, _ := st.IsFavorite("abc"); !ok {
		t.Error("IsFavorite should be true after toggle on")
	}
	ids, err := st.FavoriteIDs()
	if err != nil || !ids["abc"] || !ids["keep"] {
		t.Errorf("FavoriteIDs = %v, %v", ids, err)
	}

	off, err := st.ToggleFavorite(rec)
	if err != nil || off {
		t.Fatalf("second toggle = %v, %v", off, err)
	}

	after, err := st.ListFavorites()
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != len(before) || after[0].ArticleID != before[0].ArticleID {
		t.Errorf("record set changed: before %+v after %+v", before, after)
	}
}

func TestListFavoritesNewestFirst(t *testing.T) {
	st := openTestStore(t)

	for _, id := range []string{"one", "two", "three"} {
		if _, err := st.ToggleFavorite(feed.FavoriteRecord{ArticleID: id, Title: id, Link: "https://example.com/" + id}); err != nil {
			t.Fatal(err)
		}
	}

	favs, err := st.ListFavorites()
	if err != nil {
		t.Fatal(err)
	}
	if len(favs) != 3 || favs[0].ArticleID != "three" || favs[2].ArticleID != "one" {
		t.Errorf("ListFavorites order = %+v", favs)
	}
	if favs[0].FeedName != "" {
		t.Errorf("missing feed name should scan as empty, got %q", favs[0].FeedName)
	}

	if err := st.RemoveFavorite("two"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := st.IsFavorite("two"); ok {
		t.Error("removed favorite still reported")
	}
}

func TestFileStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuirss.db")

	st, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := st.ToggleFavorite(feed.FavoriteRecord{ArticleID: "x", Title: "X", Link: "https://example.com/x"}); err != nil {
		t.Fatal(err)
	}
	st.Close()

	st, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer st.Close()
	if ok, _ := st.IsFavorite("x"); !ok {
		t.Error("favorite did not survive reopen")
	}
}

func TestConcurrentToggles(t *testing.T) {
	st := openTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = st.ToggleFavorite(feed.FavoriteRecord{ArticleID: "race", Title: "r", Link: "l"})
		}()
	}
	wg.Wait()

	// An even number of toggles leaves the article unsaved.
	if ok, _ := st.IsFavorite("race"); ok {
		t.Error("expected even toggles to cancel out")
	}
}
