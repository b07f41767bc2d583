package classify

import "strings"

// dataKeywords marks a question as a probable data question when any member
// appears in its lower-cased text.
var dataKeywords = []string{
	"show", "what", "how many", "compare", "trend",
	"top", "bottom", "average", "sum", "count",
	"sales", "revenue", "profit", "customer", "product",
	"region", "quarter", "year", "month",
}

// failureCategory labels a backend failure by substring-matching its message.
func failureCategory(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key"):
		return "credential"
	case strings.Contains(msg, "network") || strings.Contains(msg, "fetch"):
		return "network"
	case strings.Contains(msg, "rate limit"):
		return "rate-limit"
	default:
		return "API error"
	}
}

// heuristicClassify is the fallback used when the LLM path fails. It keys the
// verdict off keyword membership alone and names the failure category in its
// reasoning so callers can see the degraded path was taken.
func heuristicClassify(question string, models []ModelDescriptor, cause error) QuestionClassification {
	lower := strings.ToLower(question)
	isData := false
	for _, kw := range dataKeywords {
		if strings.Contains(lower, kw) {
			isData = true
			break
		}
	}

	c := QuestionClassification{
		IsDataQuestion: isData,
		Confidence:     0.5,
		Reasoning:      "keyword heuristic (" + failureCategory(cause) + ")",
	}
	if isData && len(models) > 0 {
		c.SuggestedModel = models[0].ID
	}
	return c
}
