// Package nav is the reader's view-mode state machine.
//
// A Navigator is a value. Update applies one Event and returns the next
// Navigator plus at most one Effect for the host to run. Store calls are
// made synchronously inside Update; network work is only ever requested
// through effects, and its results come back as completion events that
// carry the identity needed to discard stale answers.
package nav

import (
	"github.com/abelbrown/tuirss/internal/feed"
	"github.com/abelbrown/tuirss/internal/render"
)

// Mode is the active view.
type Mode int

const (
	ModeFeedList Mode = iota
	ModeArticleList
	ModeArticleViewer
	ModeAddFeed
	ModeFavorites
	ModeEditFeed
)

func (m Mode) String() string {
	switch m {
	case ModeFeedList:
		return "feed-list"
	case ModeArticleList:
		return "article-list"
	case ModeArticleViewer:
		return "article-viewer"
	case ModeAddFeed:
		return "add-feed"
	case ModeFavorites:
		return "favorites"
	case ModeEditFeed:
		return "edit-feed"
	default:
		return "unknown"
	}
}

// State is a snapshot of everything the views need. Slices and maps in a
// State are never mutated after the snapshot is taken; the Navigator
// replaces them instead.
type State struct {
	Mode Mode

	Sources      []feed.FeedSource
	SelectedFeed int

	// CurrentFeed and CurrentSource are set while an article list is open.
	CurrentFeed   *feed.Feed
	CurrentSource feed.FeedSource

	// SelectedArticle indexes CurrentFeed.Items in article-list mode and
	// Favorites in favorites mode.
	SelectedArticle int

	Favorites   []feed.FavoriteRecord
	FavoriteIDs map[string]bool

	CurrentArticle *feed.Item
	ArticleFeed    string
	Scroll         int
	ViewingWebpage bool

	InputText  string
	InputError string

	// Status holds the last error or notice; cleared on the next key press.
	Status string

	// Loading is set while a fetch requested by this state is outstanding.
	Loading bool

	pendingFeed    string
	pendingWebpage string
	pendingURL     string
	viewerFrom     Mode
	lines          []string
}

// Items returns the open feed's items, or nil.
func (s State) Items() []feed.Item {
	if s.CurrentFeed == nil {
		return nil
	}
	return s.CurrentFeed.Items
}

// Lines returns the rendered lines of the open article.
func (s State) Lines() []string {
	return s.lines
}

// MaxScroll is the largest valid Scroll for the open article.
func (s State) MaxScroll() int {
	return max(0, len(s.lines)-VisibleLines)
}

// VisibleLines returns the page of rendered lines at the current scroll.
func (s State) VisibleLines() []string {
	if len(s.lines) == 0 {
		return nil
	}
	start := min(s.Scroll, len(s.lines))
	end := min(start+VisibleLines, len(s.lines))
	return s.lines[start:end]
}

// ScrollPercent reports how far through the article the page bottom is.
func (s State) ScrollPercent() int {
	ms := s.MaxScroll()
	if ms == 0 {
		return 100
	}
	return s.Scroll * 100 / ms
}

// FromFavorites reports whether the open article was opened from the
// favorites view.
func (s State) FromFavorites() bool {
	return s.viewerFrom == ModeFavorites
}

// SelectedSource returns the highlighted feed source.
func (s State) SelectedSource() (feed.FeedSource, bool) {
	if len(s.Sources) == 0 {
		return feed.FeedSource{}, false
	}
	return s.Sources[clampIndex(s.SelectedFeed, len(s.Sources))], true
}

// refreshLines re-renders the open article in its current display mode and
// clamps Scroll to the new bounds.
func (s *State) refreshLines() {
	if s.CurrentArticle == nil {
		s.lines = nil
		s.Scroll = 0
		return
	}

	var text string
	if s.ViewingWebpage && s.CurrentArticle.WebpageLoaded {
		text = render.Webpage(s.CurrentArticle.Webpage)
	} else {
		text = render.Summary(s.CurrentArticle.Body())
	}
	s.lines = render.Lines(text)
	s.Scroll = min(max(0, s.Scroll), s.MaxScroll())
}
