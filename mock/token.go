package mock

import (
	"context"

	"github.com/fwojciec/skeptic"
)

var _ skeptic.PromptCounter = (*PromptCounter)(nil)

// PromptCounter is a mock implementation of skeptic.PromptCounter.
type PromptCounter struct {
	CountPromptFn func(ctx context.Context, req skeptic.AnalysisRequest) (int, error)
}

func (c *PromptCounter) CountPrompt(ctx context.Context, req skeptic.AnalysisRequest) (int, error) {
	return c.CountPromptFn(ctx, req)
}
