package render

import (
	"strings"
	"sync"

	"codeberg.org/readeck/go-readability/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/abelbrown/tuirss/internal/logging"
)

// minExtractChars is the text length below which an extraction result is
// considered a miss and the next strategy is tried.
const minExtractChars = 140

// noiseSelectors are removed before any extraction runs.
var noiseSelectors = strings.Join([]string{
	"head", "script", "style", "noscript", "template",
	"nav", "header", "footer", "aside",
	"form", "button", "input", "select", "textarea", "label",
	"iframe", "embed", "object", "video", "audio", "canvas", "svg",
	"img", "picture", "figure", "figcaption",
	".share", ".social", ".comments", ".related", ".sidebar", ".advertisement", ".ad",
	"[class*='share']", "[class*='social']", "[class*='comment']", "[class*='newsletter']",
	"[role='navigation']", "[role='banner']", "[role='contentinfo']", "[role='complementary']",
	"[aria-hidden='true']",
}, ", ")

// sanitizer keeps structure and text only.
var sanitizer = sync.OnceValue(func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("article", "section", "main", "div", "p", "span", "br", "hr")
	p.AllowElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowElements("ul", "ol", "li", "dl", "dt", "dd")
	p.AllowElements("blockquote", "pre", "code", "kbd", "samp")
	p.AllowElements("b", "strong", "i", "em", "u", "s", "small", "sub", "sup", "mark", "abbr", "cite", "q", "time")
	p.AllowElements("a")
	p.AllowElements("table", "thead", "tbody", "tfoot", "tr", "th", "td", "caption")
	return p
})

// Webpage renders a full HTML page: it isolates the main content, converts
// it with the summary-mode rules, drops boilerplate lines and prepends a
// metadata header when the page provides byline, date or site name.
func Webpage(page string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("webpage render panicked", "panic", r)
			out = MsgWebpageFailed
		}
	}()

	if strings.TrimSpace(page) == "" {
		return MsgNoContent
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		logging.Warn("webpage parse failed", "error", err)
		return MsgNoExtract
	}

	meta := readMeta(doc)
	doc.Find(noiseSelectors).Remove()

	region := extractMain(doc)
	if region == "" {
		return MsgNoExtract
	}

	root, err := html.Parse(strings.NewReader(sanitizer().Sanitize(region)))
	if err != nil {
		return MsgNoExtract
	}
	c := newConverter(Width, false)
	c.walk(root)

	lines := filterLines(c.result())
	if len(lines) == 0 {
		return MsgNoExtract
	}
	body := strings.Join(lines, "\n")
	return meta.header(len(strings.Fields(body))) + body
}

// extractMain tries readability, then the density fallback, then the whole
// body. The first candidate with enough text wins; otherwise the longest.
func extractMain(doc *goquery.Document) string {
	var candidates []string

	if cleaned, err := doc.Html(); err == nil {
		if h := readabilityHTML(cleaned); h != "" {
			candidates = append(candidates, h)
		}
	}
	if h := densestRegion(doc); h != "" {
		candidates = append(candidates, h)
	}
	if h, err := doc.Find("body").Html(); err == nil && strings.TrimSpace(h) != "" {
		candidates = append(candidates, h)
	}

	best, bestLen := "", 0
	for _, c := range candidates {
		n := htmlTextLen(c)
		if n >= minExtractChars {
			return c
		}
		if n > bestLen {
			best, bestLen = c, n
		}
	}
	return best
}

func readabilityHTML(page string) string {
	article, err := readability.FromReader(strings.NewReader(page), nil)
	if err != nil {
		logging.Debug("readability failed", "error", err)
		return ""
	}
	var buf strings.Builder
	if err := article.RenderHTML(&buf); err != nil {
		return ""
	}
	return strings.TrimSpace(buf.String())
}

func htmlTextLen(fragment string) int {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return 0
	}
	return textLen(doc.Selection)
}
