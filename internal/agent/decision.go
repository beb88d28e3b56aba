package agent

import (
	"encoding/json"
	"strings"
)

// ParseFailureReasoning is the reasoning of the decision returned when the
// router output cannot be decoded.
const ParseFailureReasoning = "Parse failure or ambiguous output."

// parseFailure is returned for any router output that is not a JSON object.
// Unclear intent falls back to searching.
func parseFailure() RoutingDecision {
	return RoutingDecision{Action: ActionSearch, Reasoning: ParseFailureReasoning}
}

// ParseDecision extracts the routing decision from free-form model output.
// It never fails: output that holds no decodable JSON object yields a SEARCH
// decision with ParseFailureReasoning.
func ParseDecision(raw string) RoutingDecision {
	decision, ok := decodeDecision(extractJSONCandidate(raw))
	if !ok {
		return parseFailure()
	}
	return decision
}

// extractJSONCandidate returns the span from the first '{' or '[' that has a
// matching closer somewhere after it, up to the last such closer. Without
// one the whole input is the candidate.
func extractJSONCandidate(raw string) string {
	lastObject := strings.LastIndexByte(raw, '}')
	lastArray := strings.LastIndexByte(raw, ']')

	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '{':
			if lastObject > i {
				return raw[i : lastObject+1]
			}
		case '[':
			if lastArray > i {
				return raw[i : lastArray+1]
			}
		}
	}
	return raw
}

// decodeDecision decodes candidate as a JSON object. Arrays, scalars, null
// and malformed input report ok=false.
func decodeDecision(candidate string) (RoutingDecision, bool) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(candidate), &fields); err != nil || fields == nil {
		return RoutingDecision{}, false
	}

	rawAction := stringField(fields, "action")
	decision := RoutingDecision{
		Reasoning: stringField(fields, "reasoning"),
		Answer:    stringField(fields, "answer"),
		Source:    stringField(fields, "source"),
	}

	switch Action(strings.ToUpper(strings.TrimSpace(rawAction))) {
	case ActionSearch:
		decision.Action = ActionSearch
	case ActionAnswer:
		decision.Action = ActionAnswer
	default:
		decision.Action = ActionUnknown
		decision.RawAction = rawAction
	}
	return decision, true
}

// stringField returns fields[key] when it is a JSON string.
func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}
