package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/skeptic"
	"github.com/fwojciec/skeptic/mock"
	skepslog "github.com/fwojciec/skeptic/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html><p>story</p></html>", nil
			},
		}

		fetcher := skepslog.NewLoggingFetcher(inner, logger)
		html, err := fetcher.Fetch(context.Background(), "https://news.example.com/story")

		require.NoError(t, err)
		assert.Equal(t, "<html><p>story</p></html>", html)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "url=https://news.example.com/story")
		assert.Contains(t, output, "host=news.example.com")
		assert.Contains(t, output, "bytes=25")
		assert.Contains(t, output, "duration=")
		assert.NotContains(t, output, "err=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("connection reset")
			},
		}

		fetcher := skepslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://news.example.com/story")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "code=internal")
		assert.Contains(t, output, "err=\"connection reset\"")
	})

	t.Run("logs application error code", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", skeptic.Errorf(skeptic.EEXTRACT, "HTTP error! status: 404 for %s", url)
			},
		}

		fetcher := skepslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://news.example.com/gone")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "code=extract")
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	t.Run("delegates to inner fetcher", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		closeCalled := false
		inner := &mock.Fetcher{
			CloseFn: func() error {
				closeCalled = true
				return nil
			},
		}

		fetcher := skepslog.NewLoggingFetcher(inner, logger)
		err := fetcher.Close()

		require.NoError(t, err)
		assert.True(t, closeCalled)
	})
}

func TestLoggingFeedSource_Links(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.FeedSource{
		LinksFn: func(ctx context.Context, url string, limit int) ([]string, error) {
			return []string{"https://news.example.com/a", "https://news.example.com/b"}, nil
		},
	}

	src := skepslog.NewLoggingFeedSource(inner, logger)
	links, err := src.Links(context.Background(), "https://news.example.com/rss", 5)

	require.NoError(t, err)
	assert.Len(t, links, 2)
	output := buf.String()
	assert.Contains(t, output, "msg=feed")
	assert.Contains(t, output, "limit=5")
	assert.Contains(t, output, "links=2")
}
