package render

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"golang.org/x/net/html"

	"github.com/abelbrown/tuirss/internal/entity"
)

// Width is the column width both render modes wrap to.
const Width = 80

const (
	bulletPrefix  = "  • "
	orderedPrefix = "  "
	nestIndent    = "  "
	minWrapWidth  = 20
)

var (
	spaceRe    = regexp.MustCompile(`\s+`)
	urlTokenRe = regexp.MustCompile(`https?://\S`)
)

// skipped elements are dropped with their whole subtree.
var skipped = map[string]bool{
	"head": true, "script": true, "style": true, "noscript": true, "template": true,
	"img": true, "picture": true, "svg": true, "canvas": true, "video": true, "audio": true,
	"iframe": true, "object": true, "embed": true, "source": true, "track": true,
	"button": true, "input": true, "select": true, "textarea": true,
}

// blocks start and end on their own line without extra spacing.
var blocks = map[string]bool{
	"div": true, "section": true, "article": true, "main": true, "header": true,
	"footer": true, "blockquote": true, "table": true, "thead": true, "tbody": true,
	"tr": true, "dl": true, "dt": true, "dd": true, "figure": true, "figcaption": true,
	"address": true, "details": true, "summary": true, "hr": true, "nav": true,
	"aside": true, "form": true, "fieldset": true, "center": true,
}

// converter turns a parsed HTML tree into wrapped lines.
type converter struct {
	width  int
	decode bool

	lines  []string
	inline strings.Builder
	blank  bool

	prefix string
	lists  []bool // ordered flag per open list
	upper  int

	pre    int
	preBuf strings.Builder
}

func newConverter(width int, decode bool) *converter {
	return &converter{width: width, decode: decode}
}

func (c *converter) walk(n *html.Node) {
	switch n.Type {
	case html.DocumentNode:
		c.children(n)
		return
	case html.TextNode:
		c.text(n.Data)
		return
	case html.ElementNode:
	default:
		return
	}

	tag := strings.ToLower(n.Data)
	if skipped[tag] {
		return
	}

	switch tag {
	case "br":
		c.lineBreak()
	case "p":
		c.flush()
		c.blank = true
		c.children(n)
		c.flush()
		c.blank = true
	case "h1", "h2", "h3", "h4", "h5", "h6":
		c.flush()
		c.blank = true
		if tag == "h1" {
			c.upper++
		}
		c.children(n)
		c.flush()
		if tag == "h1" {
			c.upper--
		}
		c.blank = true
	case "ul", "ol":
		c.flush()
		if len(c.lists) == 0 {
			c.blank = true
		}
		c.lists = append(c.lists, tag == "ol")
		c.children(n)
		c.flush()
		c.lists = c.lists[:len(c.lists)-1]
		if len(c.lists) == 0 {
			c.blank = true
		}
	case "li":
		c.flush()
		saved := c.prefix
		c.prefix = c.itemPrefix()
		c.children(n)
		c.flush()
		c.prefix = saved
	case "pre":
		c.flush()
		c.blank = true
		c.pre++
		c.children(n)
		c.pre--
		if c.pre == 0 {
			c.emitPre()
		}
		c.blank = true
	case "td", "th":
		c.children(n)
		c.text(" ")
	default:
		if blocks[tag] {
			c.flush()
			c.children(n)
			c.flush()
			return
		}
		c.children(n)
	}
}

func (c *converter) children(n *html.Node) {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.walk(ch)
	}
}

func (c *converter) itemPrefix() string {
	depth := len(c.lists)
	if depth == 0 {
		return bulletPrefix
	}
	indent := strings.Repeat(nestIndent, depth-1)
	if c.lists[depth-1] {
		return indent + orderedPrefix
	}
	return indent + bulletPrefix
}

func (c *converter) text(s string) {
	if c.decode {
		s = entity.DecodeNumeric(s)
	}
	if c.pre > 0 {
		c.preBuf.WriteString(s)
		return
	}

	s = spaceRe.ReplaceAllString(s, " ")
	if c.upper > 0 {
		s = strings.ToUpper(s)
	}
	cur := c.inline.String()
	if cur == "" || strings.HasSuffix(cur, " ") {
		s = strings.TrimLeft(s, " ")
	}
	c.inline.WriteString(s)
}

func (c *converter) lineBreak() {
	if c.pre > 0 {
		c.preBuf.WriteString("\n")
		return
	}
	if strings.TrimSpace(c.inline.String()) != "" {
		c.flush()
		return
	}
	c.blank = true
}

// flush wraps the pending inline text into lines.
func (c *converter) flush() {
	text := strings.TrimSpace(c.inline.String())
	c.inline.Reset()
	if text == "" {
		return
	}

	prefix := c.prefix
	pw := runewidth.StringWidth(prefix)
	avail := c.width - pw
	if avail < minWrapWidth {
		avail = minWrapWidth
	}
	pad := strings.Repeat(" ", pw)

	for i, l := range strings.Split(wrapText(text, avail), "\n") {
		if i == 0 {
			c.push(prefix + l)
		} else {
			c.push(pad + l)
		}
	}
	if prefix != "" {
		// Later paragraphs of the same list item line up under its text.
		c.prefix = pad
	}
}

func (c *converter) emitPre() {
	raw := strings.Trim(c.preBuf.String(), "\n")
	c.preBuf.Reset()
	if strings.TrimSpace(raw) == "" {
		return
	}
	first := true
	for _, l := range strings.Split(raw, "\n") {
		l = strings.TrimRight(strings.ReplaceAll(l, "\t", "    "), " \r")
		if first {
			c.push(l)
			first = false
			continue
		}
		c.lines = append(c.lines, l)
	}
}

func (c *converter) push(line string) {
	line = strings.TrimRight(line, " \t")
	if c.blank && len(c.lines) > 0 && c.lines[len(c.lines)-1] != "" {
		c.lines = append(c.lines, "")
	}
	c.blank = false
	c.lines = append(c.lines, line)
}

// result returns the lines with leading and trailing blank lines removed.
func (c *converter) result() []string {
	c.flush()
	return trimBlank(c.lines)
}

func trimBlank(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}

// wrapText word-wraps s to width columns, hard-breaking words that are
// longer than a line. URLs are never split so line filters see them whole.
func wrapText(s string, width int) string {
	ww := wordwrap.NewWriter(width)
	if urlTokenRe.MatchString(s) {
		ww.Breakpoints = nil
	}
	_, _ = ww.Write([]byte(s))
	_ = ww.Close()

	lines := strings.Split(ww.String(), "\n")
	for i, l := range lines {
		if runewidth.StringWidth(l) > width && !urlTokenRe.MatchString(l) {
			lines[i] = wrap.String(l, width)
		}
	}
	return strings.Join(lines, "\n")
}
