package nav

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/abelbrown/tuirss/internal/feed"
	"github.com/abelbrown/tuirss/internal/logging"
)

// Messages shown in input dialogs.
const (
	ErrMsgEmptyName  = "Name cannot be empty"
	ErrMsgFeedExists = "Feed already exists"
	statusNoLink     = "This article has no link"
	statusLinkCopied = "Link copied"
)

// Store is the persistence the Navigator needs.
type Store interface {
	ListFeedSources() ([]feed.FeedSource, error)
	AddFeedSource(src feed.FeedSource) (bool, error)
	RemoveFeedSource(id string) error
	RenameFeedSource(id, name string) error
	ListFavorites() ([]feed.FavoriteRecord, error)
	IsFavorite(articleID string) (bool, error)
	FavoriteIDs() (map[string]bool, error)
	ToggleFavorite(rec feed.FavoriteRecord) (bool, error)
	RemoveFavorite(articleID string) error
}

// Navigator owns the reader state.
type Navigator struct {
	state State
	store Store
	now   func() time.Time
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithClock sets the clock used for new feed source ids.
func WithClock(now func() time.Time) Option {
	return func(n *Navigator) {
		if now != nil {
			n.now = now
		}
	}
}

// New loads feed sources and favorite ids from st and starts in feed-list
// mode.
func New(st Store, opts ...Option) (Navigator, error) {
	n := Navigator{store: st, now: time.Now}
	for _, opt := range opts {
		opt(&n)
	}

	sources, err := st.ListFeedSources()
	if err != nil {
		return Navigator{}, fmt.Errorf("load feed sources: %w", err)
	}
	ids, err := st.FavoriteIDs()
	if err != nil {
		return Navigator{}, fmt.Errorf("load favorites: %w", err)
	}

	n.state = State{
		Mode:        ModeFeedList,
		Sources:     sources,
		FavoriteIDs: ids,
	}
	return n, nil
}

// State returns the current snapshot.
func (n Navigator) State() State {
	return n.state
}

// Update applies ev and returns the resulting Navigator and the effect to
// run, if any.
func (n Navigator) Update(ev Event) (Navigator, Effect) {
	switch ev := ev.(type) {
	case KeyEvent:
		return n.handleKey(ev)
	case FeedLoaded:
		return n.feedLoaded(ev), nil
	case WebpageLoaded:
		return n.webpageLoaded(ev), nil
	case FeedValidated:
		return n.feedValidated(ev), nil
	}
	return n, nil
}

func (n Navigator) handleKey(ev KeyEvent) (Navigator, Effect) {
	if ev.Key == KeyQuit {
		return n, Quit{}
	}

	n.state.Status = ""

	if n.state.Loading {
		// Only Escape is honoured while waiting; it abandons the wait and
		// the late completion is dropped by the pending checks.
		if ev.Key == KeyEscape {
			n.state.Loading = false
			n.state.pendingFeed = ""
			n.state.pendingWebpage = ""
			n.state.pendingURL = ""
		}
		return n, nil
	}

	switch n.state.Mode {
	case ModeFeedList:
		return n.feedListKey(ev)
	case ModeArticleList:
		return n.articleListKey(ev)
	case ModeArticleViewer:
		return n.viewerKey(ev)
	case ModeAddFeed:
		return n.addFeedKey(ev)
	case ModeEditFeed:
		return n.editFeedKey(ev)
	case ModeFavorites:
		return n.favoritesKey(ev)
	}
	return n, nil
}

func (n Navigator) feedListKey(ev KeyEvent) (Navigator, Effect) {
	s := &n.state
	switch ev.Key {
	case KeyUp, KeyScrollUp:
		s.SelectedFeed = clampIndex(s.SelectedFeed-1, len(s.Sources))
	case KeyDown, KeyScrollDown:
		s.SelectedFeed = clampIndex(s.SelectedFeed+1, len(s.Sources))
	case KeyEnter:
		src, ok := s.SelectedSource()
		if !ok {
			return n, nil
		}
		s.Loading = true
		s.pendingFeed = src.ID
		logging.Debug("loading feed", "id", src.ID, "url", src.URL)
		return n, FetchFeed{SourceID: src.ID, URL: src.URL}
	case KeyRune:
		switch unicode.ToLower(ev.Rune) {
		case 'a':
			s.Mode = ModeAddFeed
			s.InputText = ""
			s.InputError = ""
		case 'e':
			if src, ok := s.SelectedSource(); ok {
				s.Mode = ModeEditFeed
				s.InputText = src.Name
				s.InputError = ""
			}
		case 'd':
			n.removeSelectedSource()
		case 's':
			n.openFavorites()
		}
	}
	return n, nil
}

func (n *Navigator) removeSelectedSource() {
	s := &n.state
	src, ok := s.SelectedSource()
	if !ok {
		return
	}
	if err := n.store.RemoveFeedSource(src.ID); err != nil {
		n.storageError(err)
		return
	}

	sources := make([]feed.FeedSource, 0, len(s.Sources)-1)
	for _, o := range s.Sources {
		if o.ID != src.ID {
			sources = append(sources, o)
		}
	}
	s.Sources = sources
	s.SelectedFeed = clampIndex(s.SelectedFeed-1, len(sources))
}

func (n *Navigator) openFavorites() {
	s := &n.state
	favs, err := n.store.ListFavorites()
	if err != nil {
		n.storageError(err)
		return
	}
	s.Mode = ModeFavorites
	s.Favorites = favs
	s.SelectedArticle = 0
}

func (n Navigator) feedLoaded(ev FeedLoaded) Navigator {
	s := &n.state
	if !s.Loading || s.Mode != ModeFeedList || s.pendingFeed != ev.SourceID {
		logging.Debug("dropping stale feed load", "id", ev.SourceID)
		return n
	}
	s.Loading = false
	s.pendingFeed = ""

	if ev.Err != nil {
		s.Status = loadErrorText("feed", ev.Err)
		logging.Warn("feed load failed", "id", ev.SourceID, "error", ev.Err)
		return n
	}
	if ev.Feed == nil {
		s.Status = "failed to load feed: empty response"
		return n
	}

	var src feed.FeedSource
	for _, o := range s.Sources {
		if o.ID == ev.SourceID {
			src = o
			break
		}
	}

	if ids, err := n.store.FavoriteIDs(); err == nil {
		s.FavoriteIDs = ids
	} else {
		n.storageError(err)
	}

	f := *ev.Feed
	f.Items = withFavoriteFlags(f.Items, s.FavoriteIDs)
	s.CurrentFeed = &f
	s.CurrentSource = src
	s.Mode = ModeArticleList
	s.SelectedArticle = 0
	s.Scroll = 0
	s.ViewingWebpage = false
	return n
}

func (n Navigator) articleListKey(ev KeyEvent) (Navigator, Effect) {
	s := &n.state
	items := s.Items()
	switch ev.Key {
	case KeyUp, KeyScrollUp:
		s.SelectedArticle = clampIndex(s.SelectedArticle-1, len(items))
	case KeyDown, KeyScrollDown:
		s.SelectedArticle = clampIndex(s.SelectedArticle+1, len(items))
	case KeyEnter:
		if len(items) == 0 {
			return n, nil
		}
		art := items[clampIndex(s.SelectedArticle, len(items))]
		n.openArticle(art, s.CurrentSource.Name, ModeArticleList)
	case KeyEscape:
		s.Mode = ModeFeedList
		s.CurrentFeed = nil
		s.CurrentSource = feed.FeedSource{}
		s.SelectedArticle = 0
	case KeyRune:
		if unicode.ToLower(ev.Rune) == 'f' && len(items) > 0 {
			n.toggleFavorite(items[clampIndex(s.SelectedArticle, len(items))], s.CurrentSource.Name)
		}
	}
	return n, nil
}

func (n *Navigator) openArticle(art feed.Item, feedName string, from Mode) {
	s := &n.state
	s.CurrentArticle = &art
	s.ArticleFeed = feedName
	s.Mode = ModeArticleViewer
	s.viewerFrom = from
	s.Scroll = 0
	s.ViewingWebpage = false
	s.refreshLines()
}

// toggleFavorite flips it in the store and in every in-memory copy.
func (n *Navigator) toggleFavorite(it feed.Item, feedName string) {
	s := &n.state
	on, err := n.store.ToggleFavorite(feed.FavoriteRecord{
		ArticleID: it.ID,
		Title:     it.Title,
		Link:      it.Link,
		FeedName:  feedName,
	})
	if err != nil {
		n.storageError(err)
		return
	}

	ids := make(map[string]bool, len(s.FavoriteIDs)+1)
	for k, v := range s.FavoriteIDs {
		ids[k] = v
	}
	if on {
		ids[it.ID] = true
	} else {
		delete(ids, it.ID)
	}
	s.FavoriteIDs = ids

	if s.CurrentFeed != nil {
		f := *s.CurrentFeed
		f.Items = feed.CloneItems(f.Items)
		for i := range f.Items {
			if f.Items[i].ID == it.ID {
				f.Items[i].IsFavorite = on
			}
		}
		s.CurrentFeed = &f
	}
	if s.CurrentArticle != nil && s.CurrentArticle.ID == it.ID {
		art := *s.CurrentArticle
		art.IsFavorite = on
		s.CurrentArticle = &art
	}
}

func (n Navigator) viewerKey(ev KeyEvent) (Navigator, Effect) {
	s := &n.state
	art := s.CurrentArticle
	if art == nil {
		s.Mode = ModeFeedList
		return n, nil
	}

	switch ev.Key {
	case KeyUp, KeyScrollUp:
		s.Scroll = max(0, s.Scroll-1)
	case KeyDown, KeyScrollDown:
		s.Scroll = min(s.MaxScroll(), s.Scroll+1)
	case KeyEscape:
		n.closeViewer()
	case KeyRune:
		switch unicode.ToLower(ev.Rune) {
		case 'f':
			n.toggleFavorite(*art, s.ArticleFeed)
		case 'w':
			if art.WebpageLoaded {
				s.ViewingWebpage = !s.ViewingWebpage
				s.Scroll = 0
				s.refreshLines()
				return n, nil
			}
			if art.Link == "" {
				s.Status = statusNoLink
				return n, nil
			}
			s.Loading = true
			s.pendingWebpage = art.ID
			return n, FetchWebpage{ArticleID: art.ID, URL: art.Link}
		case 'o':
			return n.linkEffect(OpenBrowser{URL: art.Link})
		case 'c':
			return n.linkEffect(CopyLink{URL: art.Link})
		}
	}
	return n, nil
}

func (n Navigator) linkEffect(e Effect) (Navigator, Effect) {
	var url string
	switch e := e.(type) {
	case OpenBrowser:
		url = e.URL
	case CopyLink:
		url = e.URL
		n.state.Status = statusLinkCopied
	}
	if url == "" {
		n.state.Status = statusNoLink
		return n, nil
	}
	return n, e
}

func (n *Navigator) closeViewer() {
	s := &n.state
	s.CurrentArticle = nil
	s.ArticleFeed = ""
	s.ViewingWebpage = false
	s.Scroll = 0
	s.lines = nil

	if s.viewerFrom == ModeFavorites {
		n.openFavoritesKeepingSelection()
		return
	}

	// The store is the source of truth; favorites may have changed from
	// elsewhere since the list was built.
	s.Mode = ModeArticleList
	ids, err := n.store.FavoriteIDs()
	if err != nil {
		n.storageError(err)
		return
	}
	s.FavoriteIDs = ids
	if s.CurrentFeed != nil {
		f := *s.CurrentFeed
		f.Items = withFavoriteFlags(f.Items, ids)
		s.CurrentFeed = &f
	}
}

func (n *Navigator) openFavoritesKeepingSelection() {
	s := &n.state
	sel := s.SelectedArticle
	n.openFavorites()
	if s.Mode == ModeFavorites {
		s.SelectedArticle = clampIndex(sel, len(s.Favorites))
		if ids, err := n.store.FavoriteIDs(); err == nil {
			s.FavoriteIDs = ids
		}
	}
}

func (n Navigator) webpageLoaded(ev WebpageLoaded) Navigator {
	s := &n.state
	if !s.Loading || s.Mode != ModeArticleViewer || s.CurrentArticle == nil ||
		s.CurrentArticle.ID != ev.ArticleID || s.pendingWebpage != ev.ArticleID {
		logging.Debug("dropping stale webpage load", "article", ev.ArticleID)
		return n
	}
	s.Loading = false
	s.pendingWebpage = ""

	if ev.Err != nil {
		s.Status = loadErrorText("webpage", ev.Err)
		logging.Warn("webpage load failed", "article", ev.ArticleID, "error", ev.Err)
		return n
	}

	art := *s.CurrentArticle
	art.Webpage = ev.HTML
	art.WebpageLoaded = true
	s.CurrentArticle = &art

	if s.CurrentFeed != nil {
		f := *s.CurrentFeed
		f.Items = feed.CloneItems(f.Items)
		for i := range f.Items {
			if f.Items[i].ID == art.ID {
				f.Items[i].Webpage = art.Webpage
				f.Items[i].WebpageLoaded = true
			}
		}
		s.CurrentFeed = &f
	}

	s.ViewingWebpage = true
	s.Scroll = 0
	s.refreshLines()
	return n
}

func (n Navigator) addFeedKey(ev KeyEvent) (Navigator, Effect) {
	s := &n.state
	switch ev.Key {
	case KeyRune:
		s.InputText += string(ev.Rune)
		s.InputError = ""
	case KeyBackspace:
		s.InputText = dropLastRune(s.InputText)
		s.InputError = ""
	case KeyEscape:
		s.Mode = ModeFeedList
		s.InputText = ""
		s.InputError = ""
	case KeyEnter:
		url := strings.TrimSpace(s.InputText)
		if err := feed.CheckURL(url); err != nil {
			s.InputError = reasonOf(err)
			return n, nil
		}
		s.InputError = ""
		s.Loading = true
		s.pendingURL = url
		return n, ValidateFeed{URL: url}
	}
	return n, nil
}

func (n Navigator) feedValidated(ev FeedValidated) Navigator {
	s := &n.state
	if !s.Loading || s.Mode != ModeAddFeed || s.pendingURL != ev.URL {
		logging.Debug("dropping stale validation", "url", ev.URL)
		return n
	}
	s.Loading = false
	s.pendingURL = ""

	if ev.Err != nil {
		s.InputError = reasonOf(ev.Err)
		return n
	}

	name := "Untitled Feed"
	if ev.Feed != nil && ev.Feed.Title != "" {
		name = ev.Feed.Title
	}
	src := feed.FeedSource{
		ID:   feed.GenerateSourceID(ev.URL, n.now()),
		Name: name,
		URL:  ev.URL,
	}

	added, err := n.store.AddFeedSource(src)
	if err != nil {
		s.InputError = "storage error: " + err.Error()
		logging.Error("add feed failed", "url", ev.URL, "error", err)
		return n
	}
	if !added {
		s.InputError = ErrMsgFeedExists
		return n
	}

	sources := make([]feed.FeedSource, len(s.Sources), len(s.Sources)+1)
	copy(sources, s.Sources)
	s.Sources = append(sources, src)
	s.Mode = ModeFeedList
	s.InputText = ""
	s.InputError = ""
	return n
}

func (n Navigator) editFeedKey(ev KeyEvent) (Navigator, Effect) {
	s := &n.state
	switch ev.Key {
	case KeyRune:
		s.InputText += string(ev.Rune)
		s.InputError = ""
	case KeyBackspace:
		s.InputText = dropLastRune(s.InputText)
		s.InputError = ""
	case KeyEscape:
		s.Mode = ModeFeedList
		s.InputText = ""
		s.InputError = ""
	case KeyEnter:
		name := strings.TrimSpace(s.InputText)
		if name == "" {
			s.InputError = ErrMsgEmptyName
			return n, nil
		}
		src, ok := s.SelectedSource()
		if !ok {
			s.Mode = ModeFeedList
			return n, nil
		}
		if err := n.store.RenameFeedSource(src.ID, name); err != nil {
			s.InputError = "storage error: " + err.Error()
			return n, nil
		}
		sources := make([]feed.FeedSource, len(s.Sources))
		copy(sources, s.Sources)
		for i := range sources {
			if sources[i].ID == src.ID {
				sources[i].Name = name
			}
		}
		s.Sources = sources
		s.Mode = ModeFeedList
		s.InputText = ""
		s.InputError = ""
	}
	return n, nil
}

func (n Navigator) favoritesKey(ev KeyEvent) (Navigator, Effect) {
	s := &n.state
	switch ev.Key {
	case KeyUp, KeyScrollUp:
		s.SelectedArticle = clampIndex(s.SelectedArticle-1, len(s.Favorites))
	case KeyDown, KeyScrollDown:
		s.SelectedArticle = clampIndex(s.SelectedArticle+1, len(s.Favorites))
	case KeyEscape:
		s.Mode = ModeFeedList
		s.SelectedArticle = 0
	case KeyEnter:
		if len(s.Favorites) == 0 {
			return n, nil
		}
		fav := s.Favorites[clampIndex(s.SelectedArticle, len(s.Favorites))]
		stub := feed.Item{
			ID:         fav.ArticleID,
			Title:      fav.Title,
			Link:       fav.Link,
			Published:  fav.SavedAt,
			IsFavorite: true,
		}
		if on, err := n.store.IsFavorite(fav.ArticleID); err == nil {
			stub.IsFavorite = on
		}
		n.openArticle(stub, fav.FeedName, ModeFavorites)
		if stub.Link == "" {
			return n, nil
		}
		s.Loading = true
		s.pendingWebpage = stub.ID
		return n, FetchWebpage{ArticleID: stub.ID, URL: stub.Link}
	case KeyRune:
		if len(s.Favorites) == 0 {
			return n, nil
		}
		fav := s.Favorites[clampIndex(s.SelectedArticle, len(s.Favorites))]
		switch unicode.ToLower(ev.Rune) {
		case 'd':
			n.removeFavorite(fav.ArticleID)
		case 'o':
			return n.linkEffect(OpenBrowser{URL: fav.Link})
		case 'c':
			return n.linkEffect(CopyLink{URL: fav.Link})
		}
	}
	return n, nil
}

func (n *Navigator) removeFavorite(id string) {
	s := &n.state
	if err := n.store.RemoveFavorite(id); err != nil {
		n.storageError(err)
		return
	}

	favs := make([]feed.FavoriteRecord, 0, len(s.Favorites))
	for _, f := range s.Favorites {
		if f.ArticleID != id {
			favs = append(favs, f)
		}
	}
	s.Favorites = favs

	ids := make(map[string]bool, len(s.FavoriteIDs))
	for k, v := range s.FavoriteIDs {
		if k != id {
			ids[k] = v
		}
	}
	s.FavoriteIDs = ids
	s.SelectedArticle = clampIndex(s.SelectedArticle-1, len(favs))
}

func (n *Navigator) storageError(err error) {
	n.state.Status = "storage error: " + err.Error()
	logging.Error("storage error", "error", err)
}

// withFavoriteFlags returns a copy of items with IsFavorite taken from ids.
func withFavoriteFlags(items []feed.Item, ids map[string]bool) []feed.Item {
	out := feed.CloneItems(items)
	for i := range out {
		out[i].IsFavorite = ids[out[i].ID]
	}
	return out
}

func loadErrorText(what string, err error) string {
	var fe *feed.FormatError
	if errors.As(err, &fe) {
		return fmt.Sprintf("failed to load %s: %v", what, err)
	}
	return fmt.Sprintf("failed to fetch %s: %v", what, err)
}

func reasonOf(err error) string {
	var ve *feed.ValidationError
	if errors.As(err, &ve) {
		return ve.Reason
	}
	return "Failed to fetch feed: " + err.Error()
}

func dropLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}
