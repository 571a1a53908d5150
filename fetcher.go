package skeptic

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the HTML at url. Any non-2xx response is an error.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// FeedSource lists article URLs published in an RSS or Atom feed.
type FeedSource interface {
	// Links returns up to limit article URLs from the feed at url, newest
	// first as the feed orders them. Returns EEXTRACT if the feed cannot be
	// fetched or parsed.
	Links(ctx context.Context, url string, limit int) ([]string, error)
}
