package rod

import (
	"context"
	"time"

	"github.com/fwojciec/skeptic"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds navigation and rendering of a single page.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements skeptic.Fetcher at compile time.
var _ skeptic.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using headless Chrome, for articles that
// only appear after JavaScript runs.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser   *browser
	timeout   time.Duration
	userAgent string
	maxPages  int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the browser's User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxPages sets how many pages are rendered before Chrome is restarted.
// Zero disables recycling.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher launches headless Chrome and returns a Fetcher using it.
// Close must be called when the Fetcher is no longer needed.
//
// Returns ENOTSUPPORTED if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	b, err := newBrowser(f.maxPages, launchChrome)
	if err != nil {
		return nil, err
	}
	f.browser = b
	return f, nil
}

// Fetch navigates to url, waits for the page to load, and returns the
// rendered HTML. A non-2xx status for the main document is an error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	b, release, err := f.browser.acquire()
	if err != nil {
		return "", err
	}
	defer release()

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", skeptic.WrapErrorf(err, skeptic.EEXTRACT, "opening page")
	}
	defer page.Close()

	page = page.Context(ctx)

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return "", skeptic.WrapErrorf(err, skeptic.EEXTRACT, "setting user agent")
		}
	}

	var status int
	waitDocument := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument {
			return false
		}
		status = e.Response.Status
		return true
	})

	if err := page.Navigate(url); err != nil {
		return "", fetchError(ctx, err, "navigating to %s", url)
	}
	waitDocument()
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if status != 0 && (status < 200 || status > 299) {
		return "", skeptic.Errorf(skeptic.EEXTRACT, "HTTP error! status: %d for %s", status, url)
	}

	if err := page.WaitLoad(); err != nil {
		return "", fetchError(ctx, err, "waiting for %s to load", url)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fetchError(ctx, err, "reading HTML of %s", url)
	}
	return html, nil
}

// Close releases browser resources. Close is safe to call more than once.
func (f *Fetcher) Close() error {
	return f.browser.close()
}

// fetchError reports ctx's error when it caused err, so callers can match
// context.Canceled and context.DeadlineExceeded.
func fetchError(ctx context.Context, err error, format string, args ...any) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return skeptic.WrapErrorf(err, skeptic.EEXTRACT, format, args...)
}
