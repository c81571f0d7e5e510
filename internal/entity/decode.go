// Package entity decodes the HTML/XML character references that survive feed
// parsing (double-escaped titles, authors and plain-text bodies).
package entity

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// named maps the lower-cased entity name (without & and ;) to its text.
var named = map[string]string{
	"amp":    "&",
	"lt":     "<",
	"gt":     ">",
	"quot":   `"`,
	"apos":   "'",
	"#39":    "'",
	"nbsp":   " ",
	"ndash":  "–",
	"mdash":  "—",
	"lsquo":  "'",
	"rsquo":  "'",
	"ldquo":  `"`,
	"rdquo":  `"`,
	"hellip": "...",
	"copy":   "©",
	"reg":    "®",
	"trade":  "™",
}

var (
	namedRe   = regexp.MustCompile(`(?i)&(amp|lt|gt|quot|apos|#39|nbsp|ndash|mdash|lsquo|rsquo|ldquo|rdquo|hellip|copy|reg|trade);`)
	decimalRe = regexp.MustCompile(`&#(\d+);`)
	hexRe     = regexp.MustCompile(`(?i)&#x([0-9a-f]+);`)
)

// Decode replaces named entities in one scan, then decimal and hexadecimal
// numeric references in one scan each. Output of a pass is never fed back into
// the same pass, so "&amp;amp;" decodes to "&amp;". Unknown entities and
// references to invalid code points are left as they are.
func Decode(s string) string {
	if s == "" || !strings.Contains(s, "&") {
		return s
	}

	s = namedRe.ReplaceAllStringFunc(s, func(m string) string {
		if r, ok := named[strings.ToLower(m[1:len(m)-1])]; ok {
			return r
		}
		return m
	})
	return decodeNumeric(s)
}

// DecodeNumeric replaces only decimal and hexadecimal references. It suits
// text an HTML parser has already unescaped once, where a second named pass
// would turn an escaped "&lt;" back into markup.
func DecodeNumeric(s string) string {
	if s == "" || !strings.Contains(s, "&#") {
		return s
	}
	return decodeNumeric(s)
}

func decodeNumeric(s string) string {
	s = decimalRe.ReplaceAllStringFunc(s, func(m string) string {
		return codePoint(m, m[2:len(m)-1], 10)
	})
	return hexRe.ReplaceAllStringFunc(s, func(m string) string {
		return codePoint(m, m[3:len(m)-1], 16)
	})
}

func codePoint(orig, digits string, base int) string {
	n, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return orig
	}
	r := rune(n)
	if r == 0 || !utf8.ValidRune(r) {
		return orig
	}
	return string(r)
}
