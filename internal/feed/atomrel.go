package feed

import (
	"bytes"
	"strings"

	xpp "github.com/mmcdole/goxpp"
	"golang.org/x/net/html/charset"
)

// atomRels holds the rel attribute of every <link> as written in the
// document, "" where it was omitted. The atom parser reports a missing rel
// as "alternate", which would let an unmarked link beat the first one.
type atomRels struct {
	feed    []string
	entries [][]string
}

func scanAtomRels(raw []byte) atomRels {
	var out atomRels
	p := xpp.NewXMLPullParser(bytes.NewReader(raw), false, charset.NewReaderLabel)
	inEntry := false
	for {
		ev, err := p.Next()
		if err != nil || ev == xpp.EndDocument {
			return out
		}
		name := strings.ToLower(p.Name)
		switch ev {
		case xpp.StartTag:
			switch {
			case name == "entry" && p.Depth == 2:
				inEntry = true
				out.entries = append(out.entries, nil)
			case name == "link" && inEntry && p.Depth == 3:
				last := len(out.entries) - 1
				out.entries[last] = append(out.entries[last], p.Attribute("rel"))
			case name == "link" && !inEntry && p.Depth == 2:
				out.feed = append(out.feed, p.Attribute("rel"))
			}
		case xpp.EndTag:
			if name == "entry" && p.Depth == 1 {
				inEntry = false
			}
		}
	}
}

// entry returns the rels for entry i, or nil when the scan disagrees with
// the parsed document.
func (r atomRels) entry(i, total int) []string {
	if len(r.entries) != total {
		return nil
	}
	return r.entries[i]
}
