package feed

import "fmt"

// FormatError reports a document that is not a recognizable RSS or Atom feed.
type FormatError struct {
	Detail string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.Err)
	}
	return e.Detail
}

func (e *FormatError) Unwrap() error { return e.Err }

// ValidationError is returned by the add-feed validation. Reason is shown to
// the user as is.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Unwrap() error { return e.Err }
