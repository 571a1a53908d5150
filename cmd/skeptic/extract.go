package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/skeptic"
	"github.com/fwojciec/skeptic/pipeline"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	url := strings.TrimSpace(c.URL)
	if err := pipeline.ValidateURL(url); err != nil {
		return err
	}

	html, err := deps.Pipeline.Fetcher.Fetch(deps.Ctx, url)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", skeptic.ErrorMessageOrText(err))
		return err
	}

	article, err := deps.Pipeline.Extractor.Extract(skeptic.RawDocument{URL: url, HTML: html})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", skeptic.ErrorMessageOrText(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Title: %s\n", article.Title)
	fmt.Fprintf(deps.Stdout, "Content length: %d characters\n", utf8.RuneCountInString(article.Body))

	if c.Tokens {
		n, err := deps.Prompts.CountPrompt(deps.Ctx, skeptic.AnalysisRequest{Title: article.Title, Body: article.Body})
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Prompt tokens: %d\n", n)
	}

	fmt.Fprintf(deps.Stdout, "\n%s\n", article.Body)
	return nil
}
