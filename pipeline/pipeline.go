// Package pipeline runs article analysis end to end. It coordinates
// fetching, extraction, prompting, and report parsing for one or more
// article URLs.
package pipeline

import (
	"context"
	"net/url"
	"strings"

	"github.com/fwojciec/skeptic"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of articles AnalyzeAll processes at once
// when Concurrency is unset.
const DefaultConcurrency = 4

// Ensure Pipeline implements skeptic.Analyzer at compile time.
var _ skeptic.Analyzer = (*Pipeline)(nil)

// Pipeline analyzes articles. A single analysis is strictly sequential:
// fetch, extract, prompt, parse. Stages fail fast and nothing is retried.
type Pipeline struct {
	Fetcher     skeptic.Fetcher
	Extractor   skeptic.Extractor
	Model       skeptic.LanguageModel
	Concurrency int
}

// Analyze fetches the article at rawURL and returns its critical analysis.
func (p *Pipeline) Analyze(ctx context.Context, rawURL string) (*skeptic.Analysis, error) {
	rawURL = strings.TrimSpace(rawURL)
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	html, err := p.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, skeptic.WrapErrorf(err, skeptic.EEXTRACT, "failed to scrape article")
	}

	article, err := p.Extractor.Extract(skeptic.RawDocument{URL: rawURL, HTML: html})
	if err != nil {
		return nil, err
	}
	if err := article.Validate(); err != nil {
		return nil, err
	}

	prompt := skeptic.BuildPrompt(skeptic.AnalysisRequest{Title: article.Title, Body: article.Body})
	raw, err := p.Model.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &skeptic.Analysis{
		URL:     rawURL,
		Title:   article.Title,
		Content: article.Body,
		Raw:     raw,
		Report:  skeptic.ParseReport(raw),
	}, nil
}

// Result is the outcome of analyzing one URL in a batch. Exactly one of
// Analysis and Err is set.
type Result struct {
	URL      string
	Analysis *skeptic.Analysis
	Err      error
}

// AnalyzeAll analyzes urls concurrently and returns one Result per URL in
// input order. A failed URL does not stop the others.
func (p *Pipeline) AnalyzeAll(ctx context.Context, urls []string) []Result {
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]Result, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, u := range urls {
		g.Go(func() error {
			analysis, err := p.Analyze(gctx, u)
			results[i] = Result{URL: u, Analysis: analysis, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// ValidateURL returns EINVALID unless rawURL is an absolute http or https
// URL with a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return skeptic.Errorf(skeptic.EINVALID, "URL is required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return skeptic.Errorf(skeptic.EINVALID, "invalid URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return skeptic.Errorf(skeptic.EINVALID, "invalid URL %q: scheme must be http or https", rawURL)
	}
	if u.Host == "" {
		return skeptic.Errorf(skeptic.EINVALID, "invalid URL %q: missing host", rawURL)
	}
	return nil
}
