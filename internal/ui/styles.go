package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorAccent = lipgloss.Color("#bada55")
	colorMuted  = lipgloss.Color("241")
	colorError  = lipgloss.Color("#ff6b6b")
	colorText   = lipgloss.Color("255")
)

// FrameBorder styles the top and bottom rules of the window.
var FrameBorder = lipgloss.NewStyle().
	Foreground(colorAccent).
	Bold(true)

// FrameBody pads the window content.
var FrameBody = lipgloss.NewStyle().
	Padding(1, 3)

// SelectedItem style for the highlighted row.
var SelectedItem = lipgloss.NewStyle().
	Foreground(colorAccent).
	Bold(true)

// NormalItem style for unselected rows.
var NormalItem = lipgloss.NewStyle().
	Foreground(colorText)

// Dim style for metadata, hints and counters.
var Dim = lipgloss.NewStyle().
	Foreground(colorMuted)

// Heading style for dialog and empty-state titles.
var Heading = lipgloss.NewStyle().
	Foreground(colorAccent).
	Bold(true)

// Hint style for accent-colored hints such as the scroll indicator.
var Hint = lipgloss.NewStyle().
	Foreground(colorAccent).
	Faint(true)

// ErrorStyle for inline errors and status messages.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(colorError).
	Bold(true)

// StatusBarBrand style for the program name in the status bar.
var StatusBarBrand = lipgloss.NewStyle().
	Foreground(colorAccent)
