package ui

import (
	"github.com/abelbrown/tuirss/internal/nav"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap holds the bindings shown in the status bar. Mode-specific letters
// are passed through to the navigator as runes; these bindings exist so the
// help line and the translation agree.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Back     key.Binding
	Quit     key.Binding
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Saved    key.Binding
	Favorite key.Binding
	Webpage  key.Binding
	Open     key.Binding
	Copy     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Add:      key.NewBinding(key.WithKeys("a", "A"), key.WithHelp("a", "add")),
		Edit:     key.NewBinding(key.WithKeys("e", "E"), key.WithHelp("e", "rename")),
		Delete:   key.NewBinding(key.WithKeys("d", "D"), key.WithHelp("d", "delete")),
		Saved:    key.NewBinding(key.WithKeys("s", "S"), key.WithHelp("s", "saved")),
		Favorite: key.NewBinding(key.WithKeys("f", "F"), key.WithHelp("f", "favorite")),
		Webpage:  key.NewBinding(key.WithKeys("w", "W"), key.WithHelp("w", "web")),
		Open:     key.NewBinding(key.WithKeys("o", "O"), key.WithHelp("o", "browser")),
		Copy:     key.NewBinding(key.WithKeys("c", "C"), key.WithHelp("c", "copy")),
	}
}

func relabel(b key.Binding, keys, desc string) key.Binding {
	b.SetHelp(keys, desc)
	return b
}

// forMode returns the bindings advertised in mode m.
func (k keyMap) forMode(m nav.Mode) []key.Binding {
	move := relabel(k.Up, "↑↓", "navigate")
	switch m {
	case nav.ModeFeedList:
		return []key.Binding{move, relabel(k.Enter, "enter", "open"), k.Add, k.Edit, k.Delete, k.Saved, k.Quit}
	case nav.ModeArticleList:
		return []key.Binding{move, relabel(k.Enter, "enter", "read"), k.Favorite, k.Back, k.Quit}
	case nav.ModeArticleViewer:
		return []key.Binding{relabel(k.Up, "↑↓", "scroll"), k.Open, k.Webpage, k.Favorite, k.Copy, k.Back}
	case nav.ModeAddFeed:
		return []key.Binding{relabel(k.Enter, "enter", "add"), relabel(k.Back, "esc", "cancel")}
	case nav.ModeEditFeed:
		return []key.Binding{relabel(k.Enter, "enter", "save"), relabel(k.Back, "esc", "cancel")}
	case nav.ModeFavorites:
		return []key.Binding{move, relabel(k.Enter, "enter", "read"), k.Open, k.Copy, k.Delete, k.Back}
	}
	return nil
}

func textEntry(m nav.Mode) bool {
	return m == nav.ModeAddFeed || m == nav.ModeEditFeed
}

// translateKey maps a terminal key to navigator events. In text-entry modes
// every printable key is input, so only ctrl+c quits there.
func (k keyMap) translateKey(msg tea.KeyMsg, mode nav.Mode) []nav.Event {
	switch msg.Type {
	case tea.KeyCtrlC:
		return keys(nav.KeyQuit)
	case tea.KeyEnter:
		return keys(nav.KeyEnter)
	case tea.KeyEsc:
		return keys(nav.KeyEscape)
	case tea.KeyBackspace:
		return keys(nav.KeyBackspace)
	}

	if textEntry(mode) {
		switch msg.Type {
		case tea.KeySpace:
			return runes([]rune{' '})
		case tea.KeyRunes:
			return runes(msg.Runes)
		}
		return nil
	}

	switch {
	case key.Matches(msg, k.Quit):
		return keys(nav.KeyQuit)
	case key.Matches(msg, k.Up):
		return keys(nav.KeyUp)
	case key.Matches(msg, k.Down):
		return keys(nav.KeyDown)
	case msg.Type == tea.KeyRunes && !msg.Paste:
		return runes(msg.Runes)
	}
	return nil
}

// translateMouse maps the wheel to scroll events.
func translateMouse(msg tea.MouseMsg) []nav.Event {
	if msg.Action != tea.MouseActionPress {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return keys(nav.KeyScrollUp)
	case tea.MouseButtonWheelDown:
		return keys(nav.KeyScrollDown)
	}
	return nil
}

func keys(k nav.Key) []nav.Event {
	return []nav.Event{nav.KeyEvent{Key: k}}
}

func runes(rs []rune) []nav.Event {
	evs := make([]nav.Event, 0, len(rs))
	for _, r := range rs {
		evs = append(evs, nav.KeyEvent{Key: nav.KeyRune, Rune: r})
	}
	return evs
}
