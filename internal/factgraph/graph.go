package factgraph

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_graph.go -package=mocks faq-agent/internal/factgraph Graph

import "context"

// Fact is one FAQ node from the knowledge graph.
type Fact struct {
	ID       string   `json:"id,omitempty"`
	Labels   []string `json:"labels"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
}

// Graph matches FAQ facts by keyword containment.
type Graph interface {
	// MatchByKeywords returns up to limit facts whose question or answer contains,
	// case-insensitively, at least one of the lowercase tokens.
	MatchByKeywords(ctx context.Context, tokens []string, limit int) ([]Fact, error)

	// Ping verifies that the graph backend is reachable.
	Ping(ctx context.Context) error
}
