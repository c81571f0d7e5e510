package feed

import (
	"bytes"
	"strings"
	"time"

	"github.com/abelbrown/tuirss/internal/entity"
	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/atom"
	"github.com/mmcdole/gofeed/rss"
)

const (
	untitledFeed = "Untitled Feed"
	untitledItem = "Untitled"
)

// Normalizer converts feed documents into Feeds. Now supplies the timestamp
// used for items without a usable date; nil means time.Now.
type Normalizer struct {
	Now func() time.Time
}

// Parse normalizes raw using the wall clock for missing dates.
func Parse(raw []byte) (*Feed, error) {
	return Normalizer{}.Parse(raw)
}

// Parse detects the document format and normalizes it. Anything that is not
// RSS or Atom yields a *FormatError.
func (n Normalizer) Parse(raw []byte) (*Feed, error) {
	switch gofeed.DetectFeedType(bytes.NewReader(raw)) {
	case gofeed.FeedTypeRSS:
		if !hasChannel(raw) {
			return nil, &FormatError{Detail: "invalid RSS feed: missing channel"}
		}
		doc, err := (&rss.Parser{}).Parse(bytes.NewReader(raw))
		if err != nil {
			return nil, &FormatError{Detail: "invalid RSS feed", Err: err}
		}
		return n.fromRSS(doc), nil
	case gofeed.FeedTypeAtom:
		doc, err := (&atom.Parser{}).Parse(bytes.NewReader(raw))
		if err != nil {
			return nil, &FormatError{Detail: "invalid Atom feed", Err: err}
		}
		return n.fromAtom(doc, scanAtomRels(raw)), nil
	default:
		return nil, &FormatError{Detail: "unsupported feed format: expected RSS or Atom"}
	}
}

func (n Normalizer) now() time.Time {
	if n.Now != nil {
		return n.Now()
	}
	return time.Now()
}

func hasChannel(raw []byte) bool {
	return bytes.Contains(bytes.ToLower(raw), []byte("<channel"))
}

func (n Normalizer) fromRSS(doc *rss.Feed) *Feed {
	f := &Feed{
		Title:       orDefault(entity.Decode(strings.TrimSpace(doc.Title)), untitledFeed),
		Description: entity.Decode(strings.TrimSpace(doc.Description)),
		Link:        strings.TrimSpace(doc.Link),
		Items:       make([]Item, 0, len(doc.Items)),
	}

	for i, it := range doc.Items {
		title := orDefault(entity.Decode(strings.TrimSpace(it.Title)), untitledItem)
		link := strings.TrimSpace(it.Link)

		key := link
		if key == "" && it.GUID != nil {
			key = strings.TrimSpace(it.GUID.Value)
		}

		content := it.Content
		if content == "" {
			content = it.Custom["content"]
		}

		published := n.now()
		if it.PubDateParsed != nil {
			published = *it.PubDateParsed
		}

		author := strings.TrimSpace(it.Author)
		if author == "" && it.DublinCoreExt != nil && len(it.DublinCoreExt.Creator) > 0 {
			author = strings.TrimSpace(it.DublinCoreExt.Creator[0])
		}

		f.Items = append(f.Items, Item{
			ID:          ItemID(key, title, i),
			Title:       title,
			Link:        link,
			Description: entity.Decode(it.Description),
			Content:     content,
			Published:   published,
			Author:      entity.Decode(author),
		})
	}
	return f
}

func (n Normalizer) fromAtom(doc *atom.Feed, rels atomRels) *Feed {
	f := &Feed{
		Title:       orDefault(entity.Decode(strings.TrimSpace(doc.Title)), untitledFeed),
		Description: entity.Decode(strings.TrimSpace(doc.Subtitle)),
		Link:        alternateLink(doc.Links, rels.feed),
		Items:       make([]Item, 0, len(doc.Entries)),
	}

	for i, e := range doc.Entries {
		title := orDefault(entity.Decode(strings.TrimSpace(e.Title)), untitledItem)
		link := alternateLink(e.Links, rels.entry(i, len(doc.Entries)))

		key := strings.TrimSpace(e.ID)
		if key == "" {
			key = link
		}

		content := ""
		if e.Content != nil {
			content = e.Content.Value
		}
		if content == "" {
			content = e.Summary
		}

		published := n.now()
		switch {
		case e.UpdatedParsed != nil:
			published = *e.UpdatedParsed
		case e.PublishedParsed != nil:
			published = *e.PublishedParsed
		}

		author := ""
		if len(e.Authors) > 0 && e.Authors[0] != nil {
			author = strings.TrimSpace(e.Authors[0].Name)
		}

		f.Items = append(f.Items, Item{
			ID:          ItemID(key, title, i),
			Title:       title,
			Link:        link,
			Description: entity.Decode(e.Summary),
			Content:     content,
			Published:   published,
			Author:      entity.Decode(author),
		})
	}
	return f
}

// alternateLink picks the link explicitly marked rel="alternate", else the
// first one. rels are the attributes as written; when they do not line up
// with links the parsed rel is used.
func alternateLink(links []*atom.Link, rels []string) string {
	var first string
	for i, l := range links {
		if l == nil {
			continue
		}
		if first == "" {
			first = l.Href
		}
		rel := l.Rel
		if len(rels) == len(links) {
			rel = rels[i]
		}
		if strings.EqualFold(strings.TrimSpace(rel), "alternate") {
			return strings.TrimSpace(l.Href)
		}
	}
	return strings.TrimSpace(first)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
