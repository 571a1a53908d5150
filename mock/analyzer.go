package mock

import (
	"context"

	"github.com/fwojciec/skeptic"
)

var _ skeptic.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of skeptic.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, url string) (*skeptic.Analysis, error)
}

func (a *Analyzer) Analyze(ctx context.Context, url string) (*skeptic.Analysis, error) {
	return a.AnalyzeFn(ctx, url)
}
