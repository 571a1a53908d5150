package trafilatura

import (
	"net/url"
	"strings"

	"github.com/fwojciec/skeptic"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements skeptic.Extractor at compile time.
var _ skeptic.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract the article text from HTML.
type Extractor struct {
	fallback bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithFallback toggles trafilatura's readability and domdistiller
// fallbacks. Enabled by default.
func WithFallback(enabled bool) Option {
	return func(e *Extractor) {
		e.fallback = enabled
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{fallback: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the main title and text of doc.
func (e *Extractor) Extract(doc skeptic.RawDocument) (*skeptic.Article, error) {
	if strings.TrimSpace(doc.HTML) == "" {
		return nil, skeptic.Errorf(skeptic.EEXTRACT, "insufficient content: empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: e.fallback,
	}
	if u, err := url.Parse(doc.URL); err == nil && u.Host != "" {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(doc.HTML), opts)
	if err != nil {
		return nil, skeptic.WrapErrorf(err, skeptic.EEXTRACT, "trafilatura failed")
	}

	return skeptic.NewArticle(result.Metadata.Title, result.ContentText)
}
