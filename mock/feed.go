package mock

import (
	"context"

	"github.com/fwojciec/skeptic"
)

var _ skeptic.FeedSource = (*FeedSource)(nil)

// FeedSource is a mock implementation of skeptic.FeedSource.
type FeedSource struct {
	LinksFn func(ctx context.Context, url string, limit int) ([]string, error)
}

func (f *FeedSource) Links(ctx context.Context, url string, limit int) ([]string, error) {
	return f.LinksFn(ctx, url, limit)
}
