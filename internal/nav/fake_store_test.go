package nav

import (
	"errors"

	"github.com/abelbrown/tuirss/internal/feed"
)

var errBoom = errors.New("disk on fire")

// fakeStore is an in-memory Store with error injection.
type fakeStore struct {
	sources []feed.FeedSource
	favs    []feed.FavoriteRecord
	fail    error
	toggles int
}

func newFakeStore(sources ...feed.FeedSource) *fakeStore {
	return &fakeStore{sources: append([]feed.FeedSource(nil), sources...)}
}

func (f *fakeStore) ListFeedSources() ([]feed.FeedSource, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	out := make([]feed.FeedSource, len(f.sources))
	copy(out, f.sources)
	return out, nil
}

func (f *fakeStore) AddFeedSource(src feed.FeedSource) (bool, error) {
	if f.fail != nil {
		return false, f.fail
	}
	for _, s := range f.sources {
		if s.URL == src.URL || s.ID == src.ID {
			return false, nil
		}
	}
	f.sources = append(f.sources, src)
	return true, nil
}

func (f *fakeStore) RemoveFeedSource(id string) error {
	if f.fail != nil {
		return f.fail
	}
	for i, s := range f.sources {
		if s.ID == id {
			f.sources = append(f.sources[:i:i], f.sources[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeStore) RenameFeedSource(id, name string) error {
	if f.fail != nil {
		return f.fail
	}
	for i := range f.sources {
		if f.sources[i].ID == id {
			f.sources[i].Name = name
		}
	}
	return nil
}

func (f *fakeStore) ListFavorites() ([]feed.FavoriteRecord, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	out := make([]feed.FavoriteRecord, 0, len(f.favs))
	for i := len(f.favs) - 1; i >= 0; i-- {
		out = append(out, f.favs[i])
	}
	return out, nil
}

func (f *fakeStore) IsFavorite(id string) (bool, error) {
	if f.fail != nil {
		return false, f.fail
	}
	for _, r := range f.favs {
		if r.ArticleID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) FavoriteIDs() (map[string]bool, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	ids := make(map[string]bool, len(f.favs))
	for _, r := range f.favs {
		ids[r.ArticleID] = true
	}
	return ids, nil
}

func (f *fakeStore) ToggleFavorite(rec feed.FavoriteRecord) (bool, error) {
	if f.fail != nil {
		return false, f.fail
	}
	f.toggles++
	for i, r := range f.favs {
		if r.ArticleID == rec.ArticleID {
			f.favs = append(f.favs[:i:i], f.favs[i+1:]...)
			return false, nil
		}
	}
	f.favs = append(f.favs, rec)
	return true, nil
}

func (f *fakeStore) RemoveFavorite(id string) error {
	if f.fail != nil {
		return f.fail
	}
	for i, r := range f.favs {
		if r.ArticleID == id {
			f.favs = append(f.favs[:i:i], f.favs[i+1:]...)
			break
		}
	}
	return nil
}
