package exec_test

import (
	"context"
	"os"
	osexec "os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/skeptic"
	"github.com/fwojciec/skeptic/exec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireCommand(t *testing.T, name string) {
	t.Helper()
	if _, err := osexec.LookPath(name); err != nil {
		t.Skipf("%s not installed", name)
	}
}

func sleepEngine() exec.Engine {
	return exec.Engine{
		Name: "sleep",
		Args: func(skeptic.SpeechOptions) []string { return []string{"10"} },
	}
}

func TestEngineArgs(t *testing.T) {
	t.Parallel()

	t.Run("espeak maps options to flags", func(t *testing.T) {
		t.Parallel()

		args := exec.Espeak("espeak-ng").Args(skeptic.SpeechOptions{
			Rate:   1.2,
			Pitch:  1.0,
			Volume: 0.5,
			Voice:  "en-us",
		})

		assert.Equal(t, []string{"--stdin", "-s", "210", "-p", "50", "-a", "50", "-v", "en-us"}, args)
	})

	t.Run("espeak uses engine defaults for zero options", func(t *testing.T) {
		t.Parallel()

		args := exec.Espeak("espeak").Args(skeptic.SpeechOptions{})

		assert.Equal(t, []string{"--stdin"}, args)
	})

	t.Run("espeak clamps pitch", func(t *testing.T) {
		t.Parallel()

		args := exec.Espeak("espeak").Args(skeptic.SpeechOptions{Pitch: 2})

		assert.Equal(t, []string{"--stdin", "-p", "99"}, args)
	})

	t.Run("say maps rate and voice", func(t *testing.T) {
		t.Parallel()

		args := exec.Say().Args(skeptic.SpeechOptions{Rate: 1, Pitch: 2, Voice: "Samantha"})

		assert.Equal(t, []string{"-r", "175", "-v", "Samantha"}, args)
	})
}

func TestDetectEngine(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTSUPPORTED when nothing is installed", func(t *testing.T) {
		t.Parallel()

		_, err := exec.DetectEngine([]exec.Engine{{Name: "skeptic-no-such-engine"}})

		require.Error(t, err)
		assert.Equal(t, skeptic.ENOTSUPPORTED, skeptic.ErrorCode(err))
		assert.Contains(t, skeptic.ErrorMessage(err), "skeptic-no-such-engine")
	})

	t.Run("returns first installed engine", func(t *testing.T) {
		t.Parallel()
		requireCommand(t, "sleep")

		engine, err := exec.DetectEngine([]exec.Engine{{Name: "skeptic-no-such-engine"}, sleepEngine()})

		require.NoError(t, err)
		assert.Equal(t, "sleep", engine.Name)
	})
}

func TestSpeaker(t *testing.T) {
	t.Parallel()

	t.Run("writes text to engine stdin", func(t *testing.T) {
		t.Parallel()
		requireCommand(t, "sh")

		out := filepath.Join(t.TempDir(), "spoken.txt")
		s := exec.NewSpeaker(exec.Engine{
			Name: "sh",
			Args: func(skeptic.SpeechOptions) []string { return []string{"-c", "cat > " + out} },
		})

		require.NoError(t, s.Speak("Analysis of: Budget Vote.", skeptic.SpeechOptions{}))
		require.NoError(t, s.Wait(context.Background()))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "Analysis of: Budget Vote.", string(data))
		assert.False(t, s.Playing())
	})

	t.Run("rejects empty text", func(t *testing.T) {
		t.Parallel()

		s := exec.NewSpeaker(sleepEngine())

		err := s.Speak("  ", skeptic.SpeechOptions{})

		assert.Equal(t, skeptic.EINVALID, skeptic.ErrorCode(err))
	})

	t.Run("reports missing engine as not supported", func(t *testing.T) {
		t.Parallel()

		s := exec.NewSpeaker(exec.Engine{
			Name: "skeptic-no-such-engine",
			Args: func(skeptic.SpeechOptions) []string { return nil },
		})

		err := s.Speak("hello", skeptic.SpeechOptions{})

		assert.Equal(t, skeptic.ENOTSUPPORTED, skeptic.ErrorCode(err))
	})

	t.Run("pause and resume only apply in matching state", func(t *testing.T) {
		t.Parallel()
		requireCommand(t, "sleep")

		s := exec.NewSpeaker(sleepEngine())

		// Idle: both are no-ops.
		require.NoError(t, s.Pause())
		require.NoError(t, s.Resume())
		assert.False(t, s.Paused())

		require.NoError(t, s.Speak("hello", skeptic.SpeechOptions{}))
		defer s.Stop()
		assert.True(t, s.Playing())

		// Resume while playing changes nothing.
		require.NoError(t, s.Resume())
		assert.True(t, s.Playing())

		require.NoError(t, s.Pause())
		assert.True(t, s.Paused())

		// Pause while paused changes nothing.
		require.NoError(t, s.Pause())
		assert.True(t, s.Paused())

		require.NoError(t, s.Resume())
		assert.True(t, s.Playing())
	})

	t.Run("stop resets to idle", func(t *testing.T) {
		t.Parallel()
		requireCommand(t, "sleep")

		s := exec.NewSpeaker(sleepEngine())
		require.NoError(t, s.Speak("hello", skeptic.SpeechOptions{}))
		require.NoError(t, s.Pause())

		require.NoError(t, s.Stop())

		assert.False(t, s.Playing())
		assert.False(t, s.Paused())
		require.NoError(t, s.Wait(context.Background()))
	})

	t.Run("speak supersedes current utterance", func(t *testing.T) {
		t.Parallel()
		requireCommand(t, "sleep")

		s := exec.NewSpeaker(sleepEngine())
		require.NoError(t, s.Speak("first", skeptic.SpeechOptions{}))
		require.NoError(t, s.Pause())

		require.NoError(t, s.Speak("second", skeptic.SpeechOptions{}))
		assert.True(t, s.Playing())
		assert.False(t, s.Paused())
		require.NoError(t, s.Stop())
	})

	t.Run("wait honors context", func(t *testing.T) {
		t.Parallel()
		requireCommand(t, "sleep")

		s := exec.NewSpeaker(sleepEngine())
		require.NoError(t, s.Speak("hello", skeptic.SpeechOptions{}))
		defer s.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := s.Wait(ctx)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("wait returns immediately when idle", func(t *testing.T) {
		t.Parallel()

		s := exec.NewSpeaker(sleepEngine())

		assert.NoError(t, s.Wait(context.Background()))
	})
}

func TestUnsupportedSpeaker(t *testing.T) {
	t.Parallel()

	var s skeptic.Speaker = exec.UnsupportedSpeaker{}

	err := s.Speak("hello", skeptic.SpeechOptions{})

	assert.Equal(t, skeptic.ENOTSUPPORTED, skeptic.ErrorCode(err))
	assert.NoError(t, s.Pause())
	assert.NoError(t, s.Resume())
	assert.NoError(t, s.Stop())
	assert.NoError(t, s.Wait(context.Background()))
}
