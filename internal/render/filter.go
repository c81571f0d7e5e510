package render

import (
	"regexp"
	"strings"
)

var (
	bareURLRe  = regexp.MustCompile(`^(?:[•·*\-]\s*)?https?://`)
	bracketRe  = regexp.MustCompile(`^\[.*\]$`)
	shareRe    = regexp.MustCompile(`(?i)^(share|tweet|post|pin|email|submit|facebook|twitter|linkedin)\b`)
	footerRe   = regexp.MustCompile(`(?i)^(privacy|terms|copyright|cookies|contact|faq)\b`)
	bulletsRe  = regexp.MustCompile(`^[•·\-–—\s]+$`)
	alnumStart = regexp.MustCompile(`^[\p{L}\p{N}]`)
)

// maxFooterLen bounds footer-link filtering to short lines so prose that
// happens to start with "Terms" survives.
const maxFooterLen = 30

// noiseLine reports whether a rendered webpage line is boilerplate.
func noiseLine(line string) bool {
	t := strings.TrimSpace(line)
	if t == "" {
		return false
	}
	switch {
	case bareURLRe.MatchString(t):
		return true
	case strings.Contains(t, "%2F"), strings.Contains(t, "%3A"):
		return true
	case shareRe.MatchString(t):
		return true
	case bracketRe.MatchString(t):
		return true
	case len([]rune(t)) <= 2 && !alnumStart.MatchString(t):
		return true
	case len(t) <= maxFooterLen && footerRe.MatchString(t):
		return true
	case bulletsRe.MatchString(t):
		return true
	}
	return false
}

// filterLines drops noise lines, then collapses runs of blank lines to a
// single blank line and trims blank lines at both ends.
func filterLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if noiseLine(l) {
			continue
		}
		if strings.TrimSpace(l) == "" {
			if len(out) == 0 || out[len(out)-1] == "" {
				continue
			}
			l = ""
		}
		out = append(out, l)
	}
	return trimBlank(out)
}
