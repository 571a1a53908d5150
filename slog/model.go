package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/skeptic"
)

// Ensure LoggingModel implements skeptic.LanguageModel.
var _ skeptic.LanguageModel = (*LoggingModel)(nil)

// LoggingModel wraps a LanguageModel with debug logging.
type LoggingModel struct {
	next   skeptic.LanguageModel
	logger *slog.Logger
}

// NewLoggingModel creates a new LoggingModel.
func NewLoggingModel(next skeptic.LanguageModel, logger *slog.Logger) *LoggingModel {
	return &LoggingModel{next: next, logger: logger}
}

// Generate logs prompt and response sizes and delegates to the wrapped model.
func (m *LoggingModel) Generate(ctx context.Context, prompt string) (text string, err error) {
	defer func(begin time.Time) {
		m.logger.Info("generate",
			"prompt_bytes", len(prompt),
			"bytes", len(text),
			"duration", time.Since(begin),
			"code", skeptic.ErrorCode(err),
			"err", err,
		)
	}(time.Now())
	return m.next.Generate(ctx, prompt)
}
