package gemini

import (
	"context"
	"time"

	"github.com/fwojciec/skeptic"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for analysis.
const DefaultModel = "gemini-2.0-flash-lite"

// DefaultTimeout bounds a single generateContent call.
const DefaultTimeout = 60 * time.Second

// Ensure Model implements skeptic.LanguageModel at compile time.
var _ skeptic.LanguageModel = (*Model)(nil)

// Model implements skeptic.LanguageModel using Google Gemini.
type Model struct {
	client  *genai.Client
	name    string
	timeout time.Duration
}

// Option configures a Model.
type Option func(*Model)

// WithModel sets the Gemini model name.
func WithModel(name string) Option {
	return func(m *Model) {
		m.name = name
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(m *Model) {
		m.timeout = d
	}
}

// NewModel creates a new Model. A nil client is allowed; Generate then
// reports ECONFIG so callers can start without an API key.
func NewModel(client *genai.Client, opts ...Option) *Model {
	m := &Model{
		client:  client,
		name:    DefaultModel,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Generate sends prompt as a single user message and returns the text of
// the first candidate.
func (m *Model) Generate(ctx context.Context, prompt string) (string, error) {
	if m.client == nil {
		return "", skeptic.Errorf(skeptic.ECONFIG, "Gemini API key not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	result, err := m.client.Models.GenerateContent(ctx, m.name,
		promptContents(prompt),
		BuildConfig(),
	)
	if err != nil {
		return "", skeptic.WrapErrorf(err, skeptic.EMODEL, "Gemini API error")
	}

	return ResponseText(result)
}

// BuildConfig returns the generation settings for analysis calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.7)
	topK := float32(40)
	topP := float32(0.95)
	return &genai.GenerateContentConfig{
		Temperature:     &temp,
		TopK:            &topK,
		TopP:            &topP,
		MaxOutputTokens: 2048,
	}
}

// ResponseText validates that resp carries text at
// candidates[0].content.parts[0].text and returns it.
func ResponseText(resp *genai.GenerateContentResponse) (string, error) {
	switch {
	case resp == nil:
		return "", skeptic.Errorf(skeptic.EMODEL, "invalid response from Gemini API: empty response")
	case len(resp.Candidates) == 0 || resp.Candidates[0] == nil:
		return "", skeptic.Errorf(skeptic.EMODEL, "invalid response from Gemini API: no candidates")
	case resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 || resp.Candidates[0].Content.Parts[0] == nil:
		return "", skeptic.Errorf(skeptic.EMODEL, "invalid response from Gemini API: no content parts")
	case resp.Candidates[0].Content.Parts[0].Text == "":
		return "", skeptic.Errorf(skeptic.EMODEL, "invalid response from Gemini API: empty text")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// promptContents wraps prompt as the single user turn sent to the model.
func promptContents(prompt string) []*genai.Content {
	return []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
}
