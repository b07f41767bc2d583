// Package classify decides whether a free-text question should route to a
// structured-data query engine or a general-purpose assistant. The verdict
// comes from an LLM backend when one is reachable, and from a keyword
// heuristic otherwise; callers always receive a usable classification.
package classify

// ModelDescriptor identifies one candidate data model offered to the
// classifier. Description may be empty.
type ModelDescriptor struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// QuestionClassification is the verdict for one question. Produced fresh per
// call and never persisted.
type QuestionClassification struct {
	IsDataQuestion bool    `json:"isDataQuestion"`
	Confidence     float64 `json:"confidence"`
	Reasoning      string  `json:"reasoning"`
	SuggestedModel string  `json:"suggestedModel,omitempty"`
}
