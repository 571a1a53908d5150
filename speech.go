package skeptic

import "context"

// SpeechOptions controls how narration is spoken. Zero values select the
// engine defaults.
type SpeechOptions struct {
	Rate   float64 // 1.0 is normal speed
	Pitch  float64 // 1.0 is normal pitch
	Volume float64 // 0.0 to 1.0
	Voice  string
}

// Speaker plays narration through a speech engine. A Speaker holds at most
// one utterance: Speak always cancels whatever is playing before starting.
type Speaker interface {
	// Speak starts speaking text and returns without waiting for playback
	// to finish. Returns ENOTSUPPORTED if no speech engine is available.
	Speak(text string, opts SpeechOptions) error

	// Pause suspends playback. It is a no-op unless something is playing.
	Pause() error

	// Resume continues paused playback. It is a no-op unless paused.
	Resume() error

	// Stop cancels playback and resets the speaker.
	Stop() error

	// Wait blocks until the current utterance ends or ctx is done.
	Wait(ctx context.Context) error
}
