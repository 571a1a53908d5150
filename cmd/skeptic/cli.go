package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/skeptic"
	"github.com/fwojciec/skeptic/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Config   Config
	Pipeline *pipeline.Pipeline
	Speaker  skeptic.Speaker
	Prompts  skeptic.PromptCounter
	Feeds    skeptic.FeedSource
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config       string        `short:"C" name:"config" help:"YAML config file (default: ~/.config/skeptic/config.yaml)"`
	Debug        bool          `help:"Log each fetch, extraction, and model call"`
	LogLevel     string        `name:"log-level" help:"Log level: debug, info, warn, or error"`
	Model        string        `help:"Gemini model name"`
	FetchTimeout time.Duration `name:"fetch-timeout" help:"Article fetch timeout"`
	ModelTimeout time.Duration `name:"model-timeout" help:"Model call timeout"`
	UserAgent    string        `name:"user-agent" help:"User-Agent sent when fetching articles"`
	Extractor    string        `short:"e" help:"Content extractor: goquery, readability, or trafilatura"`
	Render       bool          `help:"Render pages in headless Chrome before extraction"`

	Analyze AnalyzeCmd `cmd:"" help:"Analyze one or more news articles"`
	Serve   ServeCmd   `cmd:"" help:"Serve the analysis HTTP API"`
	Extract ExtractCmd `cmd:"" help:"Print the text extracted from an article"`
}

// apply overlays flags that were set on cfg.
func (c *CLI) apply(cfg *Config) {
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	if c.Debug {
		cfg.LogLevel = "debug"
	}
	if c.Model != "" {
		cfg.Model = c.Model
	}
	if c.FetchTimeout != 0 {
		cfg.FetchTimeout = c.FetchTimeout
	}
	if c.ModelTimeout != 0 {
		cfg.ModelTimeout = c.ModelTimeout
	}
	if c.UserAgent != "" {
		cfg.UserAgent = c.UserAgent
	}
	if c.Extractor != "" {
		cfg.Extractor = c.Extractor
	}
	if c.Render {
		cfg.Render = true
	}
	if c.Serve.Addr != "" {
		cfg.Addr = c.Serve.Addr
	}
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	URLs        []string `arg:"" optional:"" name:"url" help:"Article URLs"`
	Feed        string   `short:"f" help:"RSS or Atom feed whose latest articles are analyzed"`
	Limit       int      `short:"n" default:"5" help:"Articles taken from --feed"`
	Width       int      `short:"w" help:"Wrap formatted output at this many columns (0 disables)"`
	JSON        bool     `help:"Print results as JSON"`
	Raw         bool     `help:"Include the raw model response"`
	Speak       bool     `short:"s" help:"Read the analysis aloud"`
	Rate        float64  `default:"1" help:"Speech rate (1 is normal)"`
	Pitch       float64  `default:"1" help:"Speech pitch (1 is normal)"`
	Volume      float64  `default:"1" help:"Speech volume from 0 to 1"`
	Voice       string   `help:"Speech engine voice name"`
	Concurrency int      `short:"c" default:"4" help:"Articles analyzed at once"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `short:"a" help:"Listen address (default :3000)"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL    string `arg:"" help:"Article URL"`
	Tokens bool   `short:"t" help:"Also print the analysis prompt size in tokens"`
}
