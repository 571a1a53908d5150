package gemini

import (
	"context"

	"github.com/fwojciec/skeptic"
	"google.golang.org/genai/tokenizer"
)

var _ skeptic.PromptCounter = (*PromptCounter)(nil)

// PromptCounter sizes analysis prompts offline with the model's own
// tokenizer, counting exactly the contents Model.Generate sends.
type PromptCounter struct {
	tok   *tokenizer.LocalTokenizer
	model string
}

// NewPromptCounter loads the local tokenizer for model. Returns ECONFIG if
// the model has no published tokenizer.
func NewPromptCounter(model string) (*PromptCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, skeptic.WrapErrorf(err, skeptic.ECONFIG, "no local tokenizer for model %q", model)
	}
	return &PromptCounter{tok: tok, model: model}, nil
}

// CountPrompt builds the analysis prompt for req and returns its size in
// tokens. The fixed template alone makes the count positive, so an empty
// article still reports the prompt overhead.
func (c *PromptCounter) CountPrompt(ctx context.Context, req skeptic.AnalysisRequest) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	result, err := c.tok.CountTokens(promptContents(skeptic.BuildPrompt(req)), nil)
	if err != nil {
		return 0, skeptic.WrapErrorf(err, skeptic.EMODEL, "counting prompt tokens for %s", c.model)
	}
	return int(result.TotalTokens), nil
}
