package classify

import (
	"encoding/json"
	"fmt"
	"strings"
)

// decodeResponse reduces a raw backend response to a single JSON object and
// validates it into a QuestionClassification. Two response shapes are
// accepted:
//
//  1. A single JSON object, possibly wrapped in a markdown fence
//     (```json ... ``` or ``` ... ```). The fence is stripped before parsing.
//  2. Newline-delimited JSON: each line is an independent object carrying
//     partial answer_piece tokens and/or a complete answer/response field.
//     Fragments are accumulated in order; a complete field wins over the
//     accumulated fragments when both exist.
//
// Any shape that does not resolve to an object with a boolean isDataQuestion,
// a numeric confidence, and a string reasoning is a decode failure.
func decodeResponse(raw string) (QuestionClassification, error) {
	text := stripFence(raw)

	if c, err := parseClassification(text); err == nil {
		return c, nil
	}

	// Streamed branch: parse each line independently.
	var pieces strings.Builder
	var complete string
	sawLine := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var frag struct {
			AnswerPiece string `json:"answer_piece"`
			Answer      string `json:"answer"`
			Response    string `json:"response"`
		}
		if err := json.Unmarshal([]byte(line), &frag); err != nil {
			continue
		}
		sawLine = true
		pieces.WriteString(frag.AnswerPiece)
		if frag.Answer != "" {
			complete = frag.Answer
		}
		if frag.Response != "" {
			complete = frag.Response
		}
	}
	if !sawLine {
		return QuestionClassification{}, fmt.Errorf("response is not JSON: %.80s", text)
	}

	assembled := complete
	if assembled == "" {
		assembled = pieces.String()
	}
	return parseClassification(stripFence(assembled))
}

// parseClassification parses text as one JSON object and checks field types.
// A wrong-typed field is a parse failure, never coerced.
func parseClassification(text string) (QuestionClassification, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &obj); err != nil {
		return QuestionClassification{}, fmt.Errorf("parse classification: %w", err)
	}

	var c QuestionClassification
	if err := json.Unmarshal(obj["isDataQuestion"], &c.IsDataQuestion); err != nil {
		return QuestionClassification{}, fmt.Errorf("isDataQuestion is not a boolean")
	}
	if err := json.Unmarshal(obj["confidence"], &c.Confidence); err != nil {
		return QuestionClassification{}, fmt.Errorf("confidence is not a number")
	}
	if err := json.Unmarshal(obj["reasoning"], &c.Reasoning); err != nil {
		return QuestionClassification{}, fmt.Errorf("reasoning is not a string")
	}
	if raw, ok := obj["suggestedModel"]; ok {
		// Optional; a wrong type here is ignored rather than fatal.
		json.Unmarshal(raw, &c.SuggestedModel)
	}
	return c, nil
}

// stripFence removes a surrounding markdown code fence, if present.
func stripFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
