package mock

import (
	"context"

	"github.com/fwojciec/skeptic"
)

var _ skeptic.Speaker = (*Speaker)(nil)

// Speaker is a mock implementation of skeptic.Speaker.
type Speaker struct {
	SpeakFn  func(text string, opts skeptic.SpeechOptions) error
	PauseFn  func() error
	ResumeFn func() error
	StopFn   func() error
	WaitFn   func(ctx context.Context) error
}

func (s *Speaker) Speak(text string, opts skeptic.SpeechOptions) error {
	return s.SpeakFn(text, opts)
}

func (s *Speaker) Pause() error {
	return s.PauseFn()
}

func (s *Speaker) Resume() error {
	return s.ResumeFn()
}

func (s *Speaker) Stop() error {
	return s.StopFn()
}

func (s *Speaker) Wait(ctx context.Context) error {
	return s.WaitFn(ctx)
}
