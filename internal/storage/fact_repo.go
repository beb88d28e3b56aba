package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"faq-agent/internal/factgraph"
)

// FactRepo is a SQLite-backed factgraph.Graph used when no Neo4j server is
// available. It applies the same keyword containment rule as the Cypher query.
type FactRepo struct {
	db *sql.DB
}

// NewFactRepo creates a new FactRepo.
func NewFactRepo(db *sql.DB) *FactRepo {
	return &FactRepo{db: db}
}

var _ factgraph.Graph = (*FactRepo)(nil)

// Upsert inserts or replaces a fact by id.
func (r *FactRepo) Upsert(ctx context.Context, fact *FactRecord) error {
	if fact.ID == "" {
		return fmt.Errorf("fact id is required")
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO facts (id, label, section, question, answer, updated_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET
			label = excluded.label,
			section = excluded.section,
			question = excluded.question,
			answer = excluded.answer,
			updated_at = CURRENT_TIMESTAMP`,
		fact.ID, fact.Label, fact.Section, fact.Question, fact.Answer,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert fact: %w", err)
	}
	return nil
}

// Count returns the number of stored facts.
func (r *FactRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM facts").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count facts: %w", err)
	}
	return n, nil
}

// Ping verifies the database connection.
func (r *FactRepo) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("facts database unreachable: %w", err)
	}
	return nil
}

// MatchByKeywords returns up to limit facts whose question or answer contains
// any of the tokens, in insertion order. instr is used instead of LIKE so
// tokens containing % or _ match literally.
func (r *FactRepo) MatchByKeywords(ctx context.Context, tokens []string, limit int) ([]factgraph.Fact, error) {
	query, args := buildMatchQuery(tokens, limit)
	if query == "" {
		return []factgraph.Fact{}, nil
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query facts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	facts := make([]factgraph.Fact, 0, limit)
	for rows.Next() {
		var (
			id, label        string
			question, answer sql.NullString
		)
		if err := rows.Scan(&id, &label, &question, &answer); err != nil {
			return nil, fmt.Errorf("failed to scan fact: %w", err)
		}
		facts = append(facts, factgraph.Fact{
			ID:       id,
			Labels:   []string{label},
			Question: question.String,
			Answer:   answer.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate facts: %w", err)
	}

	return facts, nil
}

func buildMatchQuery(tokens []string, limit int) (string, []any) {
	if limit <= 0 {
		return "", nil
	}

	var (
		clauses []string
		args    []any
	)
	for _, token := range tokens {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		clauses = append(clauses, "instr(go_lower(question), ?) > 0 OR instr(go_lower(answer), ?) > 0")
		args = append(args, token, token)
	}
	if len(clauses) == 0 {
		return "", nil
	}

	query := "SELECT id, label, question, answer FROM facts WHERE " +
		strings.Join(clauses, " OR ") +
		" ORDER BY rowid LIMIT ?"
	args = append(args, limit)
	return query, args
}
