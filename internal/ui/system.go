package ui

import (
	"errors"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// OpenInBrowser returns a command that opens url with the platform's URL
// handler and reports the outcome as LinkHandled.
func OpenInBrowser(url string) tea.Cmd {
	return func() tea.Msg {
		cmd := browserCommand(url)
		err := cmd.Start()
		if err == nil {
			go cmd.Wait()
		}
		return LinkHandled{Action: "open", URL: url, Err: err}
	}
}

// CopyToClipboard returns a command that writes url to the system clipboard
// and reports the outcome as LinkHandled.
func CopyToClipboard(url string) tea.Cmd {
	return func() tea.Msg {
		var err error
		if clipboard.Unsupported {
			err = errors.New("no clipboard utility found")
		} else {
			err = clipboard.WriteAll(url)
		}
		return LinkHandled{Action: "copy", URL: url, Err: err}
	}
}

func browserCommand(url string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return exec.Command("xdg-open", url)
	}
}
