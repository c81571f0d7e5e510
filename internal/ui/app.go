package ui

import (
	"errors"
	"time"

	"github.com/abelbrown/tuirss/internal/logging"
	"github.com/abelbrown/tuirss/internal/nav"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var errNotWired = errors.New("not available")

// AppConfig holds the command constructors the App runs for navigator
// effects. Fetch commands must answer with the matching nav completion
// event. A nil constructor makes the effect fail with an error.
type AppConfig struct {
	FetchFeed    func(sourceID, url string) tea.Cmd
	FetchWebpage func(articleID, url string) tea.Cmd
	ValidateFeed func(url string) tea.Cmd
	OpenBrowser  func(url string) tea.Cmd
	CopyLink     func(url string) tea.Cmd

	// Now is used for relative dates. Defaults to time.Now.
	Now func() time.Time
}

// App is the root Bubble Tea model.
// IMPORTANT: App does NOT hold the store. The Navigator talks to it; App only
// renders snapshots and runs effects.
type App struct {
	cfg  AppConfig
	nav  nav.Navigator
	keys keyMap

	spinner  spinner.Model
	spinning bool
	input    textinput.Model
	help     help.Model

	// notice reports failures of fire-and-forget commands; cleared on the
	// next key press.
	notice string
	width  int
	height int
	ready  bool
	done   bool
}

// NewAppWithConfig creates an App around an already-constructed Navigator.
func NewAppWithConfig(n nav.Navigator, cfg AppConfig) App {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Heading

	ti := textinput.New()
	ti.Prompt = "▸ "
	ti.PromptStyle = StatusBarBrand
	ti.Placeholder = "https://example.com/rss.xml"
	ti.CharLimit = 2048
	ti.Width = 60
	ti.Focus()

	return App{
		cfg:     cfg,
		nav:     n,
		keys:    defaultKeyMap(),
		spinner: s,
		input:   ti,
		help:    help.New(),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// State returns the navigator snapshot the App is showing.
func (a App) State() nav.State {
	return a.nav.State()
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		a.notice = ""
		return a.apply(a.keys.translateKey(msg, a.nav.State().Mode)...)

	case tea.MouseMsg:
		return a.apply(translateMouse(msg)...)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.ready = true
		return a, nil

	case nav.FeedLoaded:
		return a.apply(msg)
	case nav.WebpageLoaded:
		return a.apply(msg)
	case nav.FeedValidated:
		return a.apply(msg)

	case LinkHandled:
		if msg.Err != nil {
			a.notice = msg.Action + " failed: " + msg.Err.Error()
			logging.Warn("link action failed", "action", msg.Action, "url", msg.URL, "error", msg.Err)
		}
		return a, nil

	case spinner.TickMsg:
		if !a.nav.State().Loading {
			a.spinning = false
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, nil
}

// apply feeds events to the navigator in order and collects the commands for
// the effects they produce.
func (a App) apply(evs ...nav.Event) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for _, ev := range evs {
		var eff nav.Effect
		a.nav, eff = a.nav.Update(ev)
		if _, ok := eff.(nav.Quit); ok {
			a.done = true
			return a, tea.Quit
		}
		if cmd := a.run(eff); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if a.nav.State().Loading && !a.spinning {
		a.spinning = true
		cmds = append(cmds, a.spinner.Tick)
	}
	return a, tea.Batch(cmds...)
}

// run turns an effect into a command.
func (a App) run(eff nav.Effect) tea.Cmd {
	switch e := eff.(type) {
	case nav.FetchFeed:
		if a.cfg.FetchFeed != nil {
			return a.cfg.FetchFeed(e.SourceID, e.URL)
		}
		return answer(nav.FeedLoaded{SourceID: e.SourceID, Err: errNotWired})
	case nav.FetchWebpage:
		if a.cfg.FetchWebpage != nil {
			return a.cfg.FetchWebpage(e.ArticleID, e.URL)
		}
		return answer(nav.WebpageLoaded{ArticleID: e.ArticleID, Err: errNotWired})
	case nav.ValidateFeed:
		if a.cfg.ValidateFeed != nil {
			return a.cfg.ValidateFeed(e.URL)
		}
		return answer(nav.FeedValidated{URL: e.URL, Err: errNotWired})
	case nav.OpenBrowser:
		if a.cfg.OpenBrowser != nil {
			return a.cfg.OpenBrowser(e.URL)
		}
		return answer(LinkHandled{Action: "open", URL: e.URL, Err: errNotWired})
	case nav.CopyLink:
		if a.cfg.CopyLink != nil {
			return a.cfg.CopyLink(e.URL)
		}
		return answer(LinkHandled{Action: "copy", URL: e.URL, Err: errNotWired})
	}
	return nil
}

func answer(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
