package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/skeptic"
	"github.com/fwojciec/skeptic/mock"
	skepslog "github.com/fwojciec/skeptic/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs title, size and fingerprint", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(doc skeptic.RawDocument) (*skeptic.Article, error) {
				return &skeptic.Article{Title: "Budget", Body: "héllo"}, nil
			},
		}

		ext := skepslog.NewLoggingExtractor(inner, logger)
		article, err := ext.Extract(skeptic.RawDocument{URL: "https://news.example.com/a", HTML: "<p>x</p>"})

		require.NoError(t, err)
		assert.Equal(t, "Budget", article.Title)
		output := buf.String()
		assert.Contains(t, output, "extract")
		assert.Contains(t, output, "url=https://news.example.com/a")
		assert.Contains(t, output, "bytes=8")
		assert.Contains(t, output, "chars=5")
		assert.Contains(t, output, "fingerprint="+skepslog.Fingerprint("héllo"))
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(doc skeptic.RawDocument) (*skeptic.Article, error) {
				return nil, skeptic.Errorf(skeptic.EEXTRACT, "insufficient content")
			},
		}

		ext := skepslog.NewLoggingExtractor(inner, logger)
		_, err := ext.Extract(skeptic.RawDocument{URL: "https://news.example.com/a"})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "insufficient content")
		assert.NotContains(t, output, "fingerprint=")
	})
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	assert.Equal(t, skepslog.Fingerprint("same body"), skepslog.Fingerprint("same body"))
	assert.NotEqual(t, skepslog.Fingerprint("body one"), skepslog.Fingerprint("body two"))
}
