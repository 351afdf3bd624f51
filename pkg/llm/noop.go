package llm

import (
	"context"
	"errors"
)

var ErrNoProvider = errors.New("no LLM provider configured")

// NoopProvider stands in when no backend is configured. Every
// generation fails with ErrNoProvider so callers degrade gracefully.
type NoopProvider struct{}

var _ Provider = NoopProvider{}

func (NoopProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	return "", ErrNoProvider
}

func (NoopProvider) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return "", ErrNoProvider
}

func (NoopProvider) Available(ctx context.Context) bool {
	return false
}

func (NoopProvider) Name() string {
	return "none"
}

func (NoopProvider) Model() string {
	return ""
}
