// Package render converts article HTML and full webpages into wrapped,
// fixed-width terminal text.
//
// Both entry points are total: they never return an error and recover from
// panics, falling back to fixed messages.
package render

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/abelbrown/tuirss/internal/entity"
	"github.com/abelbrown/tuirss/internal/logging"
)

// Fixed messages returned instead of rendered content.
const (
	MsgNoContent     = "No content available."
	MsgNoExtract     = "Could not extract readable content from this page."
	MsgSummaryFailed = "Failed to render article content."
	MsgWebpageFailed = "Failed to render webpage content."
)

// Summary renders a feed item body. Plain text bodies are decoded and
// wrapped; anything containing markup goes through the HTML converter.
func Summary(body string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("summary render panicked", "panic", r)
			out = MsgSummaryFailed
		}
	}()

	if strings.TrimSpace(body) == "" {
		return MsgNoContent
	}
	if !strings.Contains(body, "<") {
		return plainText(body)
	}

	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		logging.Warn("summary parse failed", "error", err)
		return MsgSummaryFailed
	}

	c := newConverter(Width, true)
	c.walk(doc)
	lines := c.result()
	if len(lines) == 0 {
		return MsgNoContent
	}
	return strings.Join(lines, "\n")
}

func plainText(s string) string {
	s = strings.ReplaceAll(entity.Decode(s), "\r\n", "\n")

	var out []string
	blank := false
	for _, para := range strings.Split(s, "\n") {
		para = strings.TrimSpace(spaceRe.ReplaceAllString(para, " "))
		if para == "" {
			blank = len(out) > 0
			continue
		}
		if blank {
			out = append(out, "")
			blank = false
		}
		for _, l := range strings.Split(wrapText(para, Width), "\n") {
			out = append(out, strings.TrimRight(l, " "))
		}
	}
	if len(out) == 0 {
		return MsgNoContent
	}
	return strings.Join(out, "\n")
}

// Lines splits rendered text into display lines.
func Lines(text string) []string {
	return strings.Split(text, "\n")
}
