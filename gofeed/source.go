// Package gofeed implements skeptic.FeedSource over RSS, Atom, and JSON
// feeds.
package gofeed

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/skeptic"
	"github.com/mmcdole/gofeed"
)

// DefaultLimit is the number of links returned when the caller asks for
// zero or fewer.
const DefaultLimit = 5

// Ensure Source implements skeptic.FeedSource at compile time.
var _ skeptic.FeedSource = (*Source)(nil)

// Source reads article links from feeds.
type Source struct {
	parser *gofeed.Parser
}

// Option configures a Source.
type Option func(*Source)

// WithUserAgent sets the User-Agent sent when fetching feeds.
func WithUserAgent(ua string) Option {
	return func(s *Source) {
		s.parser.UserAgent = ua
	}
}

// WithTimeout sets the feed request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		s.parser.Client = &http.Client{Timeout: d}
	}
}

// NewSource creates a new Source.
func NewSource(opts ...Option) *Source {
	s := &Source{parser: gofeed.NewParser()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Links returns up to limit absolute http(s) links from the feed at feedURL.
// Items without a usable link are skipped.
func (s *Source) Links(ctx context.Context, feedURL string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, skeptic.WrapErrorf(err, skeptic.EEXTRACT, "failed to read feed %s", feedURL)
	}

	var links []string
	for _, item := range feed.Items {
		if len(links) >= limit {
			break
		}
		if link := itemLink(item); link != "" {
			links = append(links, link)
		}
	}
	if len(links) == 0 {
		return nil, skeptic.Errorf(skeptic.EEXTRACT, "feed %s has no article links", feedURL)
	}
	return links, nil
}

// itemLink returns the item's link, falling back to a GUID that is itself
// a URL.
func itemLink(item *gofeed.Item) string {
	for _, candidate := range []string{item.Link, item.GUID} {
		candidate = strings.TrimSpace(candidate)
		u, err := url.Parse(candidate)
		if err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
			return candidate
		}
	}
	return ""
}
