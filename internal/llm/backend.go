// Package llm provides interchangeable chat-completion backends. All
// backends satisfy the same one-shot Chat contract; failures carry
// category-matchable message text ("API key", "network", "rate limit") so
// callers can label the failure without depending on backend types.
package llm

import (
	"context"
	"fmt"
)

// ChatOptions bounds a single completion request.
type ChatOptions struct {
	Temperature     float64
	MaxOutputTokens int
}

// Backend is a chat-completion backend. Chat issues exactly one outbound
// call and returns the raw response text; it may be a single JSON object,
// markdown-fenced text, or a concatenation of streamed JSON lines, depending
// on the backend. Decoding is the caller's concern.
type Backend interface {
	Chat(ctx context.Context, prompt string, opts ChatOptions) (string, error)
	Name() string
}

// Unavailable returns a backend whose every call fails with cause. Used when
// backend construction itself failed, so callers keep a uniform Chat path
// and their fallback logic fires per call.
func Unavailable(cause error) Backend {
	return unavailableBackend{cause: cause}
}

type unavailableBackend struct {
	cause error
}

func (b unavailableBackend) Chat(ctx context.Context, prompt string, opts ChatOptions) (string, error) {
	return "", b.cause
}

func (b unavailableBackend) Name() string { return "unavailable" }

// NewBackend builds the backend selected by cfg.
func NewBackend(cfg *Config) (Backend, error) {
	switch cfg.Backend {
	case "anthropic":
		return NewAnthropic(cfg.Anthropic.APIKey, cfg.Anthropic.Model), nil
	case "spotgpt":
		return NewSpotGPT(cfg.SpotGPT.BaseURL, cfg.SpotGPT.APIKey, cfg.SpotGPT.Model), nil
	case "ollama":
		return NewOllama(cfg.Ollama.BaseURL, cfg.Ollama.Model)
	case "":
		return nil, fmt.Errorf("no backend configured")
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}
