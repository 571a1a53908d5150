// Package goquery implements skeptic.Extractor with a CSS selector
// heuristic over the parsed document tree.
package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/skeptic"
)

// Ensure Extractor implements skeptic.Extractor at compile time.
var _ skeptic.Extractor = (*Extractor)(nil)

// NoiseSelector matches subtrees removed before title and body detection.
const NoiseSelector = "script, style, nav, header, footer, aside, .advertisement, .ads, .social-share"

// Rule is a body candidate. A rule matches when the trimmed text of its
// selection is longer than Threshold characters.
type Rule struct {
	Selector  string
	Threshold int
}

// DefaultRules lists common article containers from most to least
// specific. Extraction takes the first rule that matches, not the longest.
var DefaultRules = []Rule{
	{Selector: "article", Threshold: 200},
	{Selector: `[role="main"]`, Threshold: 200},
	{Selector: ".article-content", Threshold: 200},
	{Selector: ".post-content", Threshold: 200},
	{Selector: ".entry-content", Threshold: 200},
	{Selector: ".content", Threshold: 200},
	{Selector: "main", Threshold: 200},
}

// Extractor extracts article title and body using ordered selector rules
// with a paragraph fallback.
type Extractor struct {
	rules []Rule
	noise string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRules replaces DefaultRules.
func WithRules(rules []Rule) Option {
	return func(e *Extractor) {
		e.rules = rules
	}
}

// WithNoiseSelector replaces NoiseSelector.
func WithNoiseSelector(selector string) Option {
	return func(e *Extractor) {
		e.noise = selector
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		rules: DefaultRules,
		noise: NoiseSelector,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses raw HTML and returns the article.
// Returns EEXTRACT if the body is shorter than skeptic.MinBodyLength.
func (e *Extractor) Extract(raw skeptic.RawDocument) (*skeptic.Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw.HTML))
	if err != nil {
		return nil, skeptic.WrapErrorf(err, skeptic.EEXTRACT, "failed to parse HTML")
	}

	// Boilerplate must go before anything is read, otherwise a site
	// header's <h1> or an ad block can win title or body detection.
	if e.noise != "" {
		doc.Find(e.noise).Remove()
	}

	body, ok := FirstMatch(doc.Selection, e.rules)
	if !ok {
		body = paragraphText(doc.Selection)
	}

	return skeptic.NewArticle(Title(doc.Selection), body)
}

// Title returns the first non-blank of: the first <h1>, the <title>, and
// the og:title meta content. Returns skeptic.UntitledArticle if all are
// blank.
func Title(s *goquery.Selection) string {
	if t := strings.TrimSpace(s.Find("h1").First().Text()); t != "" {
		return t
	}
	if t := strings.TrimSpace(s.Find("title").First().Text()); t != "" {
		return t
	}
	if content, ok := s.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if t := strings.TrimSpace(content); t != "" {
			return t
		}
	}
	return skeptic.UntitledArticle
}

// FirstMatch evaluates rules in order and returns the trimmed text of the
// first one that matches.
func FirstMatch(s *goquery.Selection, rules []Rule) (string, bool) {
	for _, r := range rules {
		sel := s.Find(r.Selector)
		if sel.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(sel.Text())
		if utf8.RuneCountInString(text) > r.Threshold {
			return text, true
		}
	}
	return "", false
}

// paragraphText joins the trimmed text of every <p> in document order.
func paragraphText(s *goquery.Selection) string {
	var parts []string
	s.Find("p").Each(func(_ int, p *goquery.Selection) {
		parts = append(parts, strings.TrimSpace(p.Text()))
	})
	return strings.Join(parts, "\n\n")
}
