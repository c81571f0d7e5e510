package nav

import "github.com/abelbrown/tuirss/internal/feed"

// Key is the semantic input vocabulary. Translating terminal input into
// keys is the presentation layer's job.
type Key int

const (
	KeyUp Key = iota + 1
	KeyDown
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyScrollUp
	KeyScrollDown
	KeyRune
	KeyQuit
)

// Event is anything the Navigator reacts to.
type Event interface {
	event()
}

// KeyEvent is a key press. Rune is set for KeyRune only.
type KeyEvent struct {
	Key  Key
	Rune rune
}

// FeedLoaded completes a FetchFeed effect.
type FeedLoaded struct {
	SourceID string
	Feed     *feed.Feed
	Err      error
}

// WebpageLoaded completes a FetchWebpage effect.
type WebpageLoaded struct {
	ArticleID string
	HTML      string
	Err       error
}

// FeedValidated completes a ValidateFeed effect.
type FeedValidated struct {
	URL  string
	Feed *feed.Feed
	Err  error
}

func (KeyEvent) event()      {}
func (FeedLoaded) event()    {}
func (WebpageLoaded) event() {}
func (FeedValidated) event() {}

// Effect is work the Navigator asks its host to perform. Effects that do
// I/O answer with the matching completion event.
type Effect interface {
	effect()
}

// FetchFeed asks for the source's document; answered by FeedLoaded.
type FetchFeed struct {
	SourceID string
	URL      string
}

// FetchWebpage asks for the article's page; answered by WebpageLoaded.
type FetchWebpage struct {
	ArticleID string
	URL       string
}

// ValidateFeed asks for URL to be fetched and parsed; answered by
// FeedValidated.
type ValidateFeed struct {
	URL string
}

// OpenBrowser opens URL in the system browser. No answer.
type OpenBrowser struct {
	URL string
}

// CopyLink puts URL on the clipboard. No answer.
type CopyLink struct {
	URL string
}

// Quit ends the program.
type Quit struct{}

func (FetchFeed) effect()    {}
func (FetchWebpage) effect() {}
func (ValidateFeed) effect() {}
func (OpenBrowser) effect()  {}
func (CopyLink) effect()     {}
func (Quit) effect()         {}
