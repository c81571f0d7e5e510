package feed

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const itemIDLen = 32

// ItemID derives the identifier of the item at position index. The same
// (key, title, index) always produces the same id; reordering or editing
// entries upstream changes it.
func ItemID(key, title string, index int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s-%s-%d", key, title, index)))
	enc := base64.StdEncoding.EncodeToString(sum[:])

	var b strings.Builder
	for _, r := range enc {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() == itemIDLen {
				break
			}
		}
	}
	return b.String()
}

// GenerateSourceID builds a feed source id from the URL's host and the
// creation time, e.g. "nytimes-lq3k2x9a".
func GenerateSourceID(rawURL string, now time.Time) string {
	ts := strconv.FormatInt(now.UnixMilli(), 36)

	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "feed-" + ts
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	label, _, _ := strings.Cut(host, ".")
	if label == "" {
		return "feed-" + ts
	}
	return label + "-" + ts
}
