package render

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// densestRegion is the fallback extractor: a semantic main region if one
// carries enough text, else the div/section whose paragraph text, weighted
// by how little of it is link text, is largest. Ties keep the first region
// in document order.
func densestRegion(doc *goquery.Document) string {
	if sel := doc.Find(`article, main, [role="main"]`).First(); sel.Length() > 0 && textLen(sel) >= minExtractChars {
		if h, err := goquery.OuterHtml(sel); err == nil {
			return h
		}
	}

	var best *goquery.Selection
	bestScore := 0.0
	doc.Find("div, section").Each(func(_ int, s *goquery.Selection) {
		if score := regionScore(s); score > bestScore {
			best, bestScore = s, score
		}
	})
	if best == nil {
		return ""
	}
	h, err := goquery.OuterHtml(best)
	if err != nil {
		return ""
	}
	return h
}

func regionScore(s *goquery.Selection) float64 {
	total := textLen(s)
	if total == 0 {
		return 0
	}

	para := 0
	s.Find("p, h2, h3, pre, blockquote").Each(func(_ int, p *goquery.Selection) {
		para += textLen(p)
	})

	links := 0
	s.Find("a").Each(func(_ int, a *goquery.Selection) {
		links += textLen(a)
	})
	density := float64(links) / float64(total)
	if density > 1 {
		density = 1
	}

	// List-heavy regions are usually navigation.
	items := s.Find("li").Length()
	paras := s.Find("p").Length()
	penalty := 1.0
	if items > paras*2 && items > 5 {
		penalty = 0.5
	}

	return float64(para) * (1 - density) * penalty
}

func textLen(s *goquery.Selection) int {
	return len(strings.TrimSpace(s.Text()))
}
