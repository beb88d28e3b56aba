package factgraph

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"faq-agent/internal/contextutil"
)

// matchCypher finds any node whose question or answer contains one of the tokens.
// Nodes missing either property are treated as having an empty string there.
const matchCypher = `MATCH (n)
WHERE any(w IN $tokens WHERE toLower(coalesce(n.question, "")) CONTAINS w OR toLower(coalesce(n.answer, "")) CONTAINS w)
RETURN labels(n) AS labels, n.id AS id, n.question AS question, n.answer AS answer
LIMIT $limit`

// Neo4jGraph implements Graph on top of a Neo4j database holding the
// Policy and Product FAQ nodes.
type Neo4jGraph struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewNeo4jGraph creates a driver for uri with basic auth.
// The driver connects lazily; call Ping to verify connectivity.
func NewNeo4jGraph(uri, user, password, database string) (*Neo4jGraph, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	return &Neo4jGraph{
		driver:   driver,
		database: database,
	}, nil
}

// Close closes the underlying driver.
func (g *Neo4jGraph) Close(ctx context.Context) error {
	return g.driver.Close(ctx)
}

// Ping verifies connectivity to the Neo4j server.
func (g *Neo4jGraph) Ping(ctx context.Context) error {
	if err := g.driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("neo4j unreachable: %w", err)
	}
	return nil
}

// MatchByKeywords runs the keyword containment query.
func (g *Neo4jGraph) MatchByKeywords(ctx context.Context, tokens []string, limit int) ([]Fact, error) {
	logger := contextutil.LoggerFromContext(ctx)

	params := matchParams(tokens, limit)
	if params == nil {
		return []Fact{}, nil
	}

	opts := []neo4j.ExecuteQueryConfigurationOption{neo4j.ExecuteQueryWithReadersRouting()}
	if g.database != "" {
		opts = append(opts, neo4j.ExecuteQueryWithDatabase(g.database))
	}

	result, err := neo4j.ExecuteQuery(ctx, g.driver, matchCypher, params, neo4j.EagerResultTransformer, opts...)
	if err != nil {
		logger.ErrorContext(ctx, "fact graph query failed", "tokens", len(tokens), "error", err)
		return nil, fmt.Errorf("failed to query fact graph: %w", err)
	}

	facts := make([]Fact, 0, len(result.Records))
	for _, record := range result.Records {
		facts = append(facts, factFromRecord(record))
	}

	logger.DebugContext(ctx, "fact graph query completed", "tokens", len(tokens), "facts", len(facts))
	return facts, nil
}

// matchParams builds the query parameters, or nil when there is nothing to match.
func matchParams(tokens []string, limit int) map[string]any {
	if limit <= 0 {
		return nil
	}
	words := make([]any, 0, len(tokens))
	for _, token := range tokens {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		words = append(words, token)
	}
	if len(words) == 0 {
		return nil
	}
	return map[string]any{
		"tokens": words,
		"limit":  int64(limit),
	}
}

func factFromRecord(record *neo4j.Record) Fact {
	fact := Fact{
		ID:       recordString(record, "id"),
		Question: recordString(record, "question"),
		Answer:   recordString(record, "answer"),
	}
	if raw, ok := record.Get("labels"); ok {
		if labels, ok := raw.([]any); ok {
			for _, label := range labels {
				if s, ok := label.(string); ok {
					fact.Labels = append(fact.Labels, s)
				}
			}
		}
	}
	return fact
}

// recordString returns the string value under key. Missing, null and
// non-string values (ids stored as integers) are rendered leniently.
func recordString(record *neo4j.Record, key string) string {
	raw, ok := record.Get(key)
	if !ok || raw == nil {
		return ""
	}
	switch v := raw.(type) {
	case string:
		return v
	case int64:
		return fmt.Sprintf("%d", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
