package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicBackend talks to the Anthropic messages API. The credential is a
// plain constructor argument; a client value is built per call so the
// currently configured key is always the one used.
type AnthropicBackend struct {
	apiKey string
	model  string
}

func NewAnthropic(apiKey, model string) *AnthropicBackend {
	if model == "" {
		model = "claude-3-5-haiku-latest"
	}
	return &AnthropicBackend{apiKey: apiKey, model: model}
}

func (b *AnthropicBackend) Name() string { return "anthropic" }

func (b *AnthropicBackend) Chat(ctx context.Context, prompt string, opts ChatOptions) (string, error) {
	if b.apiKey == "" {
		return "", fmt.Errorf("anthropic: missing API key")
	}

	client := anthropic.NewClient(option.WithAPIKey(b.apiKey))

	maxTokens := int64(opts.MaxOutputTokens)
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	msg, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(b.model),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(opts.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		var apierr *anthropic.Error
		if errors.As(err, &apierr) {
			switch apierr.StatusCode {
			case 401, 403:
				return "", fmt.Errorf("anthropic: API key rejected (status %d)", apierr.StatusCode)
			case 429:
				return "", fmt.Errorf("anthropic: rate limit exceeded")
			}
			return "", fmt.Errorf("anthropic request failed: %w", err)
		}
		return "", fmt.Errorf("anthropic: network error: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
