package classify

import (
	"context"
	"log"

	"github.com/spotshell/spotshell/internal/llm"
)

const (
	promptTemperature = 0.2
	promptMaxTokens   = 500
)

// Classifier routes questions through an LLM backend with a heuristic
// fallback. Each classification is independent; the only state is the
// backend's transport-level session, if it keeps one.
type Classifier struct {
	backend llm.Backend
}

func New(backend llm.Backend) *Classifier {
	return &Classifier{backend: backend}
}

// Classify never fails: any backend or decode error degrades to the keyword
// heuristic, so the result is always schema-valid.
func (c *Classifier) Classify(ctx context.Context, question string, models []ModelDescriptor) QuestionClassification {
	prompt := buildPrompt(question, models)

	raw, err := c.backend.Chat(ctx, prompt, llm.ChatOptions{
		Temperature:     promptTemperature,
		MaxOutputTokens: promptMaxTokens,
	})
	if err != nil {
		log.Printf("spotshell: classification backend failed, using heuristic: %v", err)
		return heuristicClassify(question, models, err)
	}

	result, err := decodeResponse(raw)
	if err != nil {
		log.Printf("spotshell: classification response unusable, using heuristic: %v", err)
		return heuristicClassify(question, models, err)
	}
	return result
}
