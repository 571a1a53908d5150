// Package exec speaks narration through a command-line speech engine such
// as espeak-ng, espeak, or macOS say.
package exec

import (
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/fwojciec/skeptic"
)

// Engine describes a speech command. The text to speak is written to the
// command's standard input.
type Engine struct {
	// Name is the executable, looked up in PATH.
	Name string

	// Args returns the command-line arguments for opts.
	Args func(opts skeptic.SpeechOptions) []string
}

// Espeak returns the engine for espeak or espeak-ng, which share flags.
func Espeak(name string) Engine {
	return Engine{Name: name, Args: espeakArgs}
}

// Say returns the engine for the macOS say command. Say has no pitch or
// volume flags; those options are ignored.
func Say() Engine {
	return Engine{Name: "say", Args: sayArgs}
}

// DefaultEngines lists engines in order of preference.
var DefaultEngines = []Engine{
	Espeak("espeak-ng"),
	Espeak("espeak"),
	Say(),
}

// Normal speaking rate in words per minute for espeak and say.
const baseWPM = 175

func espeakArgs(opts skeptic.SpeechOptions) []string {
	args := []string{"--stdin"}
	if opts.Rate > 0 {
		args = append(args, "-s", strconv.Itoa(int(baseWPM*opts.Rate)))
	}
	if opts.Pitch > 0 {
		// espeak pitch is 0-99 with 50 as normal.
		args = append(args, "-p", strconv.Itoa(clamp(int(50*opts.Pitch), 0, 99)))
	}
	if opts.Volume > 0 {
		// espeak amplitude is 0-200 with 100 as normal.
		args = append(args, "-a", strconv.Itoa(clamp(int(100*opts.Volume), 0, 200)))
	}
	if opts.Voice != "" {
		args = append(args, "-v", opts.Voice)
	}
	return args
}

func sayArgs(opts skeptic.SpeechOptions) []string {
	var args []string
	if opts.Rate > 0 {
		args = append(args, "-r", strconv.Itoa(int(baseWPM*opts.Rate)))
	}
	if opts.Voice != "" {
		args = append(args, "-v", opts.Voice)
	}
	return args
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// DetectEngine returns the first of engines found in PATH.
// Returns ENOTSUPPORTED if none is installed.
func DetectEngine(engines []Engine) (Engine, error) {
	var names []string
	for _, e := range engines {
		if _, err := exec.LookPath(e.Name); err == nil {
			return e, nil
		}
		names = append(names, e.Name)
	}
	return Engine{}, skeptic.Errorf(skeptic.ENOTSUPPORTED, "no speech engine found (tried %s)", strings.Join(names, ", "))
}

// Ensure Speaker implements skeptic.Speaker at compile time.
var _ skeptic.Speaker = (*Speaker)(nil)

type state int

const (
	idle state = iota
	playing
	paused
)

// Speaker plays one utterance at a time through an Engine.
// Speaker is safe for concurrent use.
type Speaker struct {
	engine Engine

	mu    sync.Mutex
	cmd   *exec.Cmd
	done  chan struct{}
	state state
}

// NewSpeaker returns a Speaker for engine.
func NewSpeaker(engine Engine) *Speaker {
	return &Speaker{engine: engine}
}

// Speak stops any current utterance and starts speaking text.
func (s *Speaker) Speak(text string, opts skeptic.SpeechOptions) error {
	if strings.TrimSpace(text) == "" {
		return skeptic.Errorf(skeptic.EINVALID, "nothing to speak")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	cmd := exec.Command(s.engine.Name, s.engine.Args(opts)...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return skeptic.WrapErrorf(err, skeptic.ENOTSUPPORTED, "speech engine %s not available", s.engine.Name)
		}
		return skeptic.WrapErrorf(err, skeptic.EINTERNAL, "starting %s", s.engine.Name)
	}

	done := make(chan struct{})
	s.cmd, s.done, s.state = cmd, done, playing
	go func() {
		_ = cmd.Wait()
		s.mu.Lock()
		if s.cmd == cmd {
			s.cmd, s.state = nil, idle
		}
		s.mu.Unlock()
		close(done)
	}()
	return nil
}

// Pause suspends playback. It does nothing unless playing.
func (s *Speaker) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != playing {
		return nil
	}
	if err := suspend(s.cmd.Process); err != nil {
		return err
	}
	s.state = paused
	return nil
}

// Resume continues paused playback. It does nothing unless paused.
func (s *Speaker) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != paused {
		return nil
	}
	if err := resume(s.cmd.Process); err != nil {
		return err
	}
	s.state = playing
	return nil
}

// Stop ends playback and returns the speaker to idle.
func (s *Speaker) Stop() error {
	s.mu.Lock()
	done := s.stopLocked()
	s.mu.Unlock()

	if done != nil {
		<-done
	}
	return nil
}

// stopLocked kills the current process and returns the channel closed once
// it has exited. Must be called with mu held.
func (s *Speaker) stopLocked() chan struct{} {
	if s.cmd == nil {
		return nil
	}
	_ = s.cmd.Process.Kill()
	done := s.done
	s.cmd, s.done, s.state = nil, nil, idle
	return done
}

// Wait blocks until the current utterance finishes or ctx is done.
func (s *Speaker) Wait(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Playing reports whether an utterance is currently playing.
func (s *Speaker) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == playing
}

// Paused reports whether the current utterance is paused.
func (s *Speaker) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == paused
}

// Ensure UnsupportedSpeaker implements skeptic.Speaker at compile time.
var _ skeptic.Speaker = UnsupportedSpeaker{}

// UnsupportedSpeaker is used when no speech engine is installed. Speak
// reports ENOTSUPPORTED and the remaining controls do nothing.
type UnsupportedSpeaker struct{}

func (UnsupportedSpeaker) Speak(string, skeptic.SpeechOptions) error {
	return skeptic.Errorf(skeptic.ENOTSUPPORTED, "speech is not supported on this system")
}

func (UnsupportedSpeaker) Pause() error               { return nil }
func (UnsupportedSpeaker) Resume() error              { return nil }
func (UnsupportedSpeaker) Stop() error                { return nil }
func (UnsupportedSpeaker) Wait(context.Context) error { return nil }

// Detect returns a Speaker for the first installed engine in
// DefaultEngines, or UnsupportedSpeaker when none is installed.
func Detect() skeptic.Speaker {
	engine, err := DetectEngine(DefaultEngines)
	if err != nil {
		return UnsupportedSpeaker{}
	}
	return NewSpeaker(engine)
}
