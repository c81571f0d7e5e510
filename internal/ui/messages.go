// Package ui provides the Bubble Tea TUI for tuirss.
//
// The App owns no reader state of its own: it translates terminal input into
// navigator events, runs the effects the navigator asks for as commands, and
// renders views from navigator snapshots.
package ui

// LinkHandled is sent when an open-in-browser or copy-link command finishes.
type LinkHandled struct {
	Action string
	URL    string
	Err    error
}
