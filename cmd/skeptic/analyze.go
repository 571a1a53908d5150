package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fwojciec/skeptic"
	"github.com/fwojciec/skeptic/pipeline"
	"github.com/fwojciec/skeptic/runewidth"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	urls := c.URLs
	if c.Feed != "" {
		if err := pipeline.ValidateURL(c.Feed); err != nil {
			return err
		}
		links, err := deps.Feeds.Links(deps.Ctx, c.Feed, c.Limit)
		if err != nil {
			return err
		}
		urls = append(urls, links...)
	}
	if len(urls) == 0 {
		return skeptic.Errorf(skeptic.EINVALID, "at least one URL is required")
	}

	results := deps.Pipeline.AnalyzeAll(deps.Ctx, urls)

	var (
		firstErr error
		failed   int
	)
	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	for i, r := range results {
		if r.Err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", r.URL, skeptic.ErrorMessageOrText(r.Err))
			if firstErr == nil {
				firstErr = r.Err
			}
			failed++
			continue
		}

		if c.JSON {
			if err := enc.Encode(r.Analysis); err != nil {
				return err
			}
		} else {
			if i > 0 {
				fmt.Fprintln(deps.Stdout)
			}
			fmt.Fprint(deps.Stdout, runewidth.Wrap(skeptic.FormatAnalysis(r.Analysis, c.Raw), c.Width))
		}

		if c.Speak {
			if err := c.speak(deps, r.Analysis); err != nil {
				return err
			}
		}
	}

	if firstErr != nil && len(results) > 1 {
		return fmt.Errorf("%d of %d articles failed: %w", failed, len(results), firstErr)
	}
	return firstErr
}

// speak reads the narration of a aloud and waits for it to finish. If the
// context ends first, playback is stopped.
func (c *AnalyzeCmd) speak(deps *Dependencies, a *skeptic.Analysis) error {
	text := skeptic.SpeechText(skeptic.Narration(a.Report, a.Title))
	opts := skeptic.SpeechOptions{
		Rate:   c.Rate,
		Pitch:  c.Pitch,
		Volume: c.Volume,
		Voice:  c.Voice,
	}
	if err := deps.Speaker.Speak(text, opts); err != nil {
		if skeptic.ErrorCode(err) == skeptic.ENOTSUPPORTED {
			fmt.Fprintln(deps.Stderr, "Hint: install espeak-ng (Linux) or use macOS to enable speech")
		}
		return err
	}

	if err := deps.Speaker.Wait(deps.Ctx); err != nil {
		_ = deps.Speaker.Stop()
		if errors.Is(err, deps.Ctx.Err()) {
			return nil
		}
		return err
	}
	return nil
}
