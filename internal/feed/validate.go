package feed

import (
	"context"
	"net/url"
	"strings"
)

// Validation messages shown inline in the add-feed dialog.
const (
	ErrMsgEmptyURL    = "URL cannot be empty"
	ErrMsgInvalidURL  = "Invalid URL format"
	ErrMsgScheme      = "URL must start with http:// or https://"
	errMsgFetchPrefix = "Failed to fetch feed: "
)

// TextFetcher retrieves a document body.
type TextFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// CheckURL performs the checks that need no network access.
func CheckURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return &ValidationError{Reason: ErrMsgEmptyURL}
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil || u.Host == "" {
		return &ValidationError{Reason: ErrMsgInvalidURL, Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ValidationError{Reason: ErrMsgScheme}
	}
	return nil
}

// Validate checks raw, then fetches and parses it. On success it returns the
// parsed feed so the caller can name the new source after its title.
func Validate(ctx context.Context, f TextFetcher, raw string) (*Feed, error) {
	if err := CheckURL(raw); err != nil {
		return nil, err
	}
	body, err := f.FetchText(ctx, strings.TrimSpace(raw))
	if err != nil {
		return nil, &ValidationError{Reason: errMsgFetchPrefix + err.Error(), Err: err}
	}
	parsed, err := Parse([]byte(body))
	if err != nil {
		return nil, &ValidationError{Reason: errMsgFetchPrefix + err.Error(), Err: err}
	}
	return parsed, nil
}
