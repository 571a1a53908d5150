package mock

import "github.com/fwojciec/skeptic"

var _ skeptic.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of skeptic.Extractor.
type Extractor struct {
	ExtractFn func(doc skeptic.RawDocument) (*skeptic.Article, error)
}

func (e *Extractor) Extract(doc skeptic.RawDocument) (*skeptic.Article, error) {
	return e.ExtractFn(doc)
}
