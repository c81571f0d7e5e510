package nav

import (
	"testing"

	"github.com/abelbrown/tuirss/internal/store"
)

func TestNavigatorWithSQLiteStore(t *testing.T) {
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	if _, err := st.Seed(testSources); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	n, err := New(st)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	n = openFeed(t, n, 0, abcFeed())
	n = press(n, key(KeyDown), char('f'), key(KeyEscape))

	// Reopen on the same store: the favorite and the sources persist.
	n2, err := New(st)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if len(n2.State().Sources) != 3 || !n2.State().FavoriteIDs["b"] {
		t.Fatalf("state not persisted: %+v", n2.State())
	}

	n2 = press(n2, char('s'))
	favs := n2.State().Favorites
	if len(favs) != 1 || favs[0].ArticleID != "b" || favs[0].FeedName != "Hacker News" {
		t.Fatalf("favorites = %+v", favs)
	}

	n2 = press(n2, char('d'))
	if ok, _ := st.IsFavorite("b"); ok {
		t.Error("favorite not removed from store")
	}

	// The first navigator still reflects the store after leaving the viewer.
	n = openFeed(t, n, 0, abcFeed())
	if n.State().Items()[1].IsFavorite {
		t.Error("stale favorite flag after reload")
	}
}
