package skeptic

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// UntitledArticle is the title used when a page offers no usable title.
const UntitledArticle = "Untitled Article"

// MinBodyLength is the minimum body length, in characters, after
// normalization. Shorter bodies fail extraction.
const MinBodyLength = 100

// RawDocument is fetched HTML together with the URL it came from.
type RawDocument struct {
	URL  string
	HTML string
}

// Article is the readable content extracted from a RawDocument.
type Article struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// NewArticle normalizes body, substitutes UntitledArticle for a blank
// title, and validates the result. Every Extractor builds its result
// through NewArticle so the same content gate applies to all of them.
func NewArticle(title, body string) (*Article, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = UntitledArticle
	}
	a := &Article{Title: title, Body: NormalizeBody(body)}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate returns EEXTRACT if the body is below MinBodyLength.
func (a *Article) Validate() error {
	if a.Body == "" || utf8.RuneCountInString(a.Body) < MinBodyLength {
		return Errorf(EEXTRACT, "insufficient content: could not extract enough text from the article")
	}
	return nil
}

var (
	whitespaceRe = regexp.MustCompile(`[\s\v\p{Z}\x{feff}]+`)
	blankLinesRe = regexp.MustCompile(`\n[ \t]*\n[\s]*`)
)

// NormalizeBody collapses whitespace runs to a single space, folds blank
// line runs into a paragraph break, and trims the result.
func NormalizeBody(s string) string {
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = blankLinesRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// Extractor extracts the readable article from raw HTML.
type Extractor interface {
	// Extract returns the article title and normalized body.
	// Returns EEXTRACT if no sufficient content is found.
	Extract(doc RawDocument) (*Article, error)
}
