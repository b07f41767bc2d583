package classify

import (
	"fmt"
	"strings"
)

// buildPrompt renders the classification prompt: the candidate model list,
// the question, a fixed rubric with worked examples, and an instruction to
// answer with JSON only. The rendering is deterministic for a given input.
func buildPrompt(question string, models []ModelDescriptor) string {
	var b strings.Builder

	b.WriteString("You are a question classifier for an analytics application. Decide whether the user's question should be answered by querying structured data models or by a general-purpose assistant.\n\n")

	b.WriteString("Available data models:\n")
	if len(models) == 0 {
		b.WriteString("(none)\n")
	}
	for _, m := range models {
		desc := m.Description
		if desc == "" {
			desc = "No description"
		}
		fmt.Fprintf(&b, "- %s (ID: %s): %s\n", m.Name, m.ID, desc)
	}

	fmt.Fprintf(&b, "\nQuestion: \"%s\"\n\n", question)

	b.WriteString(`Classify the question as a DATA question if it asks about counts, quantities, or aggregates ("how many", "total", "average"), asks to show or list records, compares values or trends over time, or refers back to a previous data result. Classify it as a GENERAL question if it asks for explanations, definitions, advice, or anything unrelated to the data models above.

Examples of data questions:
- "How many customers do we have?"
- "Show me sales by region for last quarter"
- "Compare revenue trends year over year"

Examples of general questions:
- "What is a liveboard?"
- "Explain quantum computing"
- "How do I reset my password?"

Respond with ONLY a JSON object in this exact format, no other text:
{
  "isDataQuestion": true/false,
  "confidence": <0.0-1.0>,
  "reasoning": "<brief explanation>",
  "suggestedModel": "<id of the best-matching model, or omit if not a data question>"
}`)

	return b.String()
}
