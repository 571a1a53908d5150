// Package slog provides log/slog decorators for the skeptic pipeline
// services.
package slog

import (
	"context"
	"log/slog"
	neturl "net/url"
	"time"

	"github.com/fwojciec/skeptic"
)

// Ensure LoggingFetcher implements skeptic.Fetcher.
var _ skeptic.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging. Failed fetches are
// logged at warn level.
type LoggingFetcher struct {
	next   skeptic.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next skeptic.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the article host, page size, and outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		attrs := []any{
			"url", url,
			"host", host(url),
			"bytes", len(html),
			"duration", time.Since(begin),
		}
		if err != nil {
			level = slog.LevelWarn
			attrs = append(attrs, "code", skeptic.ErrorCode(err), "err", err)
		}
		f.logger.Log(ctx, level, "fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	err := f.next.Close()
	if err != nil {
		f.logger.Warn("close fetcher", "err", err)
	}
	return err
}

// Ensure LoggingFeedSource implements skeptic.FeedSource.
var _ skeptic.FeedSource = (*LoggingFeedSource)(nil)

// LoggingFeedSource wraps a FeedSource with debug logging.
type LoggingFeedSource struct {
	next   skeptic.FeedSource
	logger *slog.Logger
}

// NewLoggingFeedSource creates a new LoggingFeedSource.
func NewLoggingFeedSource(next skeptic.FeedSource, logger *slog.Logger) *LoggingFeedSource {
	return &LoggingFeedSource{next: next, logger: logger}
}

// Links logs how many article links the feed yielded.
func (s *LoggingFeedSource) Links(ctx context.Context, url string, limit int) (links []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("feed",
			"url", url,
			"limit", limit,
			"links", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Links(ctx, url, limit)
}

func host(raw string) string {
	u, err := neturl.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
