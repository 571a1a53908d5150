package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/skeptic"
	"github.com/fwojciec/skeptic/exec"
	"github.com/fwojciec/skeptic/gemini"
	"github.com/fwojciec/skeptic/gofeed"
	"github.com/fwojciec/skeptic/goquery"
	skephttp "github.com/fwojciec/skeptic/http"
	"github.com/fwojciec/skeptic/pipeline"
	"github.com/fwojciec/skeptic/readability"
	"github.com/fwojciec/skeptic/rod"
	skepslog "github.com/fwojciec/skeptic/slog"
	"github.com/fwojciec/skeptic/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Getenv looks up environment variables. Defaults to os.Getenv.
	Getenv func(string) string

	// Services for end-to-end testing. When nil, real implementations are
	// built from the configuration.
	Fetcher       skeptic.Fetcher
	Model         skeptic.LanguageModel
	Speaker       skeptic.Speaker
	PromptCounter skeptic.PromptCounter
	FeedSource    skeptic.FeedSource
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Getenv: os.Getenv}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("skeptic"),
		kong.Description("Critical analysis of news articles"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'skeptic --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	path, required := cli.Config, true
	if path == "" {
		path, required = DefaultConfigPath(), false
	}
	cfg, err := LoadConfig(path, required)
	if err != nil {
		return err
	}
	cli.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	deps.Config = cfg

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	fetcher, err := m.fetcher(cfg)
	if err != nil {
		return err
	}
	defer fetcher.Close()

	model, err := m.model(ctx, cfg, stderr)
	if err != nil {
		return err
	}

	var extractor skeptic.Extractor = newExtractor(cfg.Extractor)
	if cli.Debug {
		fetcher = skepslog.NewLoggingFetcher(fetcher, logger)
		extractor = skepslog.NewLoggingExtractor(extractor, logger)
		model = skepslog.NewLoggingModel(model, logger)
	}

	deps.Pipeline = &pipeline.Pipeline{
		Fetcher:     fetcher,
		Extractor:   extractor,
		Model:       model,
		Concurrency: cli.Analyze.Concurrency,
	}

	deps.Speaker = m.Speaker
	if deps.Speaker == nil && cli.Analyze.Speak {
		deps.Speaker = exec.Detect()
	}

	deps.Prompts = m.PromptCounter
	if deps.Prompts == nil && cli.Extract.Tokens {
		pc, err := gemini.NewPromptCounter(cfg.Model)
		if err != nil {
			fmt.Fprintf(stderr, "Hint: local token counting may not support model %q\n", cfg.Model)
			return err
		}
		deps.Prompts = pc
	}

	deps.Feeds = m.FeedSource
	if deps.Feeds == nil && cli.Analyze.Feed != "" {
		deps.Feeds = gofeed.NewSource(
			gofeed.WithTimeout(cfg.FetchTimeout),
			gofeed.WithUserAgent(cfg.UserAgent),
		)
	}
	if deps.Feeds != nil && cli.Debug {
		deps.Feeds = skepslog.NewLoggingFeedSource(deps.Feeds, logger)
	}

	return kongCtx.Run(deps)
}

func (m *Main) fetcher(cfg Config) (skeptic.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}
	if cfg.Render {
		f, err := rod.NewFetcher(
			rod.WithFetchTimeout(cfg.FetchTimeout),
			rod.WithUserAgent(cfg.UserAgent),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
		}
		return f, nil
	}
	return skephttp.NewFetcher(
		skephttp.WithTimeout(cfg.FetchTimeout),
		skephttp.WithUserAgent(cfg.UserAgent),
	), nil
}

// model builds the Gemini model. A missing API key is not fatal here:
// the model reports ECONFIG when called, so extraction and the server
// still work without one.
func (m *Main) model(ctx context.Context, cfg Config, stderr io.Writer) (skeptic.LanguageModel, error) {
	if m.Model != nil {
		return m.Model, nil
	}

	opts := []gemini.Option{gemini.WithModel(cfg.Model), gemini.WithTimeout(cfg.ModelTimeout)}

	getenv := m.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	apiKey := APIKey(getenv)
	if apiKey == "" {
		return gemini.NewModel(nil, opts...), nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Check your %s is valid\n", APIKeyEnv)
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return gemini.NewModel(client, opts...), nil
}

func newExtractor(name string) skeptic.Extractor {
	switch name {
	case ExtractorReadability:
		return readability.NewExtractor()
	case ExtractorTrafilatura:
		return trafilatura.NewExtractor()
	default:
		return goquery.NewExtractor()
	}
}
