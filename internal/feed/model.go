// Package feed holds the canonical reader model and turns RSS 2.0 / RSS 1.0 /
// Atom documents into it.
//
// Feeds are parse results and are never persisted; FeedSource and
// FavoriteRecord are the two entities the store keeps.
package feed

import "time"

// FeedSource identifies a subscribed feed.
type FeedSource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Item is a canonical article, independent of the source feed format.
//
// Items are passed around by value. Webpage is only meaningful when
// WebpageLoaded is set: an empty Webpage with WebpageLoaded false means the
// page has not been fetched yet.
type Item struct {
	ID          string
	Title       string
	Link        string
	Description string
	Content     string
	Published   time.Time
	Author      string
	IsFavorite  bool

	Webpage       string
	WebpageLoaded bool
}

// Body returns the HTML used for the summary rendering of the item.
func (it Item) Body() string {
	if it.Content != "" {
		return it.Content
	}
	return it.Description
}

// Feed is the result of parsing one feed document. Items keep parse order.
type Feed struct {
	Title       string
	Description string
	Link        string
	Items       []Item
}

// FavoriteRecord is a saved article as kept by the store.
type FavoriteRecord struct {
	ArticleID string
	Title     string
	Link      string
	FeedName  string
	SavedAt   time.Time
}

// CloneItems returns a copy of items that shares no backing array with the
// input.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
