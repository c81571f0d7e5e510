package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
)

const (
	wordsPerMinute = 200
	ruleWidth      = 40
	dateLayout     = "January 2, 2006"
)

// pageMeta is what the header above an extracted page is built from.
type pageMeta struct {
	Byline    string
	Published string
	SiteName  string
}

func (m pageMeta) empty() bool {
	return m.Byline == "" && m.Published == "" && m.SiteName == ""
}

// header renders the metadata block, or "" when the page carries none.
func (m pageMeta) header(words int) string {
	if m.empty() {
		return ""
	}

	var b strings.Builder
	if m.Byline != "" {
		fmt.Fprintf(&b, "By %s\n", m.Byline)
	}
	if m.Published != "" {
		b.WriteString(m.Published + "\n")
	}
	if m.SiteName != "" {
		b.WriteString(m.SiteName + "\n")
	}
	fmt.Fprintf(&b, "%d min read\n", readingMinutes(words))
	b.WriteString(strings.Repeat("─", ruleWidth))
	b.WriteString("\n\n")
	return b.String()
}

func readingMinutes(words int) int {
	m := int(math.Ceil(float64(words) / wordsPerMinute))
	if m < 1 {
		return 1
	}
	return m
}

// readMeta collects byline, date and site name before noise removal strips
// the elements that carry them.
func readMeta(doc *goquery.Document) pageMeta {
	m := pageMeta{
		Byline: firstOf(
			metaContent(doc, `meta[name="author"]`),
			nonURL(metaContent(doc, `meta[property="article:author"]`)),
			elemText(doc, `[itemprop="author"] [itemprop="name"], [itemprop="author"]`),
			elemText(doc, `[rel="author"]`),
			elemText(doc, `.byline, .author`),
		),
		SiteName: firstOf(
			metaContent(doc, `meta[property="og:site_name"]`),
			metaContent(doc, `meta[name="application-name"]`),
		),
	}
	m.Byline = strings.TrimSpace(trimByPrefix(m.Byline))

	raw := firstOf(
		metaContent(doc, `meta[property="article:published_time"]`),
		metaContent(doc, `meta[itemprop="datePublished"]`),
		metaContent(doc, `meta[name="date"]`),
		metaContent(doc, `meta[name="pubdate"]`),
		attr(doc, `time[datetime]`, "datetime"),
	)
	if raw != "" {
		if t, err := dateparse.ParseAny(raw); err == nil {
			m.Published = t.Format(dateLayout)
		}
	}
	return m
}

func metaContent(doc *goquery.Document, sel string) string {
	return attr(doc, sel, "content")
}

func attr(doc *goquery.Document, sel, name string) string {
	v, _ := doc.Find(sel).First().Attr(name)
	return collapse(v)
}

func elemText(doc *goquery.Document, sel string) string {
	return collapse(doc.Find(sel).First().Text())
}

func collapse(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

func nonURL(s string) string {
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return ""
	}
	return s
}

func trimByPrefix(s string) string {
	if len(s) > 3 && strings.EqualFold(s[:3], "by ") {
		return s[3:]
	}
	return s
}

func firstOf(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
