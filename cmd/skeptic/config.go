package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/skeptic"
	"github.com/fwojciec/skeptic/gemini"
	skephttp "github.com/fwojciec/skeptic/http"
	"gopkg.in/yaml.v3"
)

// Environment variables holding the Gemini API key, in lookup order.
const (
	APIKeyEnv         = "GOOGLE_AI_API_KEY"
	FallbackAPIKeyEnv = "GEMINI_API_KEY"
)

// Extractor names accepted by the extractor setting.
const (
	ExtractorGoquery     = "goquery"
	ExtractorReadability = "readability"
	ExtractorTrafilatura = "trafilatura"
)

// Config holds settings shared by all commands. The API key is never read
// from the file.
type Config struct {
	Addr         string        `yaml:"addr"`
	Model        string        `yaml:"model"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	ModelTimeout time.Duration `yaml:"model_timeout"`
	UserAgent    string        `yaml:"user_agent"`
	Extractor    string        `yaml:"extractor"`
	Render       bool          `yaml:"render"`
	LogLevel     string        `yaml:"log_level"`
}

// DefaultConfig returns the settings used when neither file nor flags set
// a value.
func DefaultConfig() Config {
	return Config{
		Addr:         ":3000",
		Model:        gemini.DefaultModel,
		FetchTimeout: skephttp.DefaultFetchTimeout,
		ModelTimeout: gemini.DefaultTimeout,
		UserAgent:    skephttp.DefaultUserAgent,
		Extractor:    ExtractorGoquery,
		LogLevel:     "info",
	}
}

// LoadConfig returns DefaultConfig overlaid with the YAML file at path.
// An empty path returns the defaults. A missing file is an error only when
// required is true. The result is not validated, since flags may still
// override it.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, skeptic.WrapErrorf(err, skeptic.EINVALID, "reading config %s", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, skeptic.WrapErrorf(err, skeptic.EINVALID, "parsing config %s", path)
	}
	return cfg, nil
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	switch c.Extractor {
	case ExtractorGoquery, ExtractorReadability, ExtractorTrafilatura:
	default:
		return skeptic.Errorf(skeptic.EINVALID, "unknown extractor %q (want goquery, readability, or trafilatura)", c.Extractor)
	}
	if c.FetchTimeout <= 0 {
		return skeptic.Errorf(skeptic.EINVALID, "fetch_timeout must be positive")
	}
	if c.ModelTimeout <= 0 {
		return skeptic.Errorf(skeptic.EINVALID, "model_timeout must be positive")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, skeptic.Errorf(skeptic.EINVALID, "unknown log level %q", c.LogLevel)
	}
	return level, nil
}

// DefaultConfigPath returns ~/.config/skeptic/config.yaml, or "" when the
// home directory is unknown.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "skeptic", "config.yaml")
}

// APIKey returns the Gemini API key from getenv, preferring APIKeyEnv.
func APIKey(getenv func(string) string) string {
	if key := strings.TrimSpace(getenv(APIKeyEnv)); key != "" {
		return key
	}
	return strings.TrimSpace(getenv(FallbackAPIKeyEnv))
}
