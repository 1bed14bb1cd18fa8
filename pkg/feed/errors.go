package feed

import "fmt"

// FetchError reports a feed that could not be retrieved or parsed
type FetchError struct {
	URL string
	Err error
}

// Error returns error message with the feed url
func (e *FetchError) Error() string {
	return fmt.Sprintf("feed %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error
func (e *FetchError) Unwrap() error {
	return e.Err
}
