package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/skeptic"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements skeptic.Extractor at compile time.
var _ skeptic.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the article text from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the readable title and text of doc.
func (e *Extractor) Extract(doc skeptic.RawDocument) (*skeptic.Article, error) {
	if strings.TrimSpace(doc.HTML) == "" {
		return nil, skeptic.Errorf(skeptic.EEXTRACT, "insufficient content: empty HTML input")
	}

	// A malformed URL only disables relative link resolution.
	pageURL, _ := url.Parse(doc.URL)

	article, err := readability.FromReader(strings.NewReader(doc.HTML), pageURL)
	if err != nil {
		return nil, skeptic.WrapErrorf(err, skeptic.EEXTRACT, "readability failed")
	}

	return skeptic.NewArticle(article.Title, article.TextContent)
}
