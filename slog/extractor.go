package slog

import (
	"log/slog"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/skeptic"
)

// Ensure LoggingExtractor implements skeptic.Extractor.
var _ skeptic.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging. Each line carries
// a fingerprint of the extracted body so runs over the same page can be
// compared.
type LoggingExtractor struct {
	next   skeptic.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next skeptic.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract logs the extraction outcome and delegates to the wrapped extractor.
func (e *LoggingExtractor) Extract(doc skeptic.RawDocument) (article *skeptic.Article, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", doc.URL,
			"bytes", len(doc.HTML),
			"duration", time.Since(begin),
		}
		if article != nil {
			attrs = append(attrs,
				"title", article.Title,
				"chars", utf8.RuneCountInString(article.Body),
				"fingerprint", Fingerprint(article.Body),
			)
		}
		attrs = append(attrs, "err", err)
		e.logger.Info("extract", attrs...)
	}(time.Now())
	return e.next.Extract(doc)
}

// Fingerprint returns a short hex digest of s.
func Fingerprint(s string) string {
	return strconv.FormatUint(xxhash.Sum64String(s), 16)
}
