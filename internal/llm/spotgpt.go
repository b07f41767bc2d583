package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SpotGPTBackend talks to the in-house SpotGPT chat gateway. A conversation
// session is created lazily on first use and its id is reused for subsequent
// sends. The lazy init is not guarded against concurrent callers; callers
// needing strict session reuse serialize their own sends.
//
// Responses arrive as newline-delimited JSON fragments (answer_piece tokens
// followed by a final answer). Chat returns the raw body; decoding belongs
// to the caller.
type SpotGPTBackend struct {
	baseURL string
	apiKey  string
	model   string
	httpc   *http.Client

	sessionID string
}

func NewSpotGPT(baseURL, apiKey, model string) *SpotGPTBackend {
	return &SpotGPTBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		httpc:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (b *SpotGPTBackend) Name() string { return "spotgpt" }

func (b *SpotGPTBackend) Chat(ctx context.Context, prompt string, opts ChatOptions) (string, error) {
	if b.apiKey == "" {
		return "", fmt.Errorf("spotgpt: missing API key")
	}
	if b.baseURL == "" {
		return "", fmt.Errorf("spotgpt: missing base URL")
	}

	if b.sessionID == "" {
		id, err := b.createSession(ctx)
		if err != nil {
			return "", err
		}
		b.sessionID = id
	}

	payload := map[string]any{
		"sessionId":         b.sessionID,
		"message":           prompt,
		"temperature":       opts.Temperature,
		"max_output_tokens": opts.MaxOutputTokens,
		// Classification sends must stay context-free: skip the session's
		// conversation history and knowledge-base augmentation.
		"skip_context": true,
	}
	body, err := b.post(ctx, "/api/v1/message", payload)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (b *SpotGPTBackend) createSession(ctx context.Context) (string, error) {
	body, err := b.post(ctx, "/api/v1/session", map[string]any{"model": b.model})
	if err != nil {
		return "", err
	}

	var resp struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("spotgpt: failed to parse session response: %w", err)
	}
	if resp.SessionID == "" {
		return "", fmt.Errorf("spotgpt: session response carried no session id")
	}
	return resp.SessionID, nil
}

func (b *SpotGPTBackend) post(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("spotgpt: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.apiKey)

	resp, err := b.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spotgpt: network error: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("spotgpt: API key rejected (status %d)", resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("spotgpt: rate limit exceeded")
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("spotgpt: %s returned status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("spotgpt: failed to read response: %w", err)
	}
	return body, nil
}
