package retrieval

import (
	"context"
	"fmt"
	"strings"

	"faq-agent/internal/factgraph"
)

// FactLookup turns keyword matches from the fact graph into evidence.
type FactLookup struct {
	graph factgraph.Graph
}

// NewFactLookup creates a FactLookup.
func NewFactLookup(graph factgraph.Graph) *FactLookup {
	return &FactLookup{graph: graph}
}

// Lookup matches query keywords against the graph and returns up to limit records.
// Errors from the graph are returned unchanged for the orchestrator to isolate.
func (l *FactLookup) Lookup(ctx context.Context, query string, limit int) ([]EvidenceRecord, error) {
	tokens := Keywords(query)
	if len(tokens) == 0 || limit <= 0 {
		return []EvidenceRecord{}, nil
	}

	facts, err := l.graph.MatchByKeywords(ctx, tokens, limit)
	if err != nil {
		return nil, fmt.Errorf("fact graph lookup: %w", err)
	}

	records := make([]EvidenceRecord, 0, len(facts))
	for _, fact := range facts {
		if len(records) == limit {
			break
		}
		text := factText(fact.Question, fact.Answer)
		if text == "" {
			continue
		}
		records = append(records, EvidenceRecord{
			Title:  GraphTitle,
			Text:   text,
			Score:  GraphScore,
			Source: FactSource,
		})
	}
	return records, nil
}

// Keywords splits query on whitespace and lowercases each token.
// Repeated tokens are kept once, in first-seen order.
func Keywords(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}

// factText renders "question — answer" and trims the separator when a side is empty.
func factText(question, answer string) string {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if question == "" && answer == "" {
		return ""
	}
	return strings.Trim(question+" — "+answer, " —")
}
