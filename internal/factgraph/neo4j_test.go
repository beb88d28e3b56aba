package factgraph

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

func TestMatchParams(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		limit  int
		want   map[string]any
	}{
		{
			name:   "lowercases and drops blanks",
			tokens: []string{"Refund", " ", "SUNDAY"},
			limit:  2,
			want: map[string]any{
				"tokens": []any{"refund", "sunday"},
				"limit":  int64(2),
			},
		},
		{
			name:   "no tokens",
			tokens: []string{"", "  "},
			limit:  2,
			want:   nil,
		},
		{
			name:   "zero limit",
			tokens: []string{"refund"},
			limit:  0,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchParams(tt.tokens, tt.limit)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("matchParams() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestFactFromRecord(t *testing.T) {
	tests := []struct {
		name   string
		record *neo4j.Record
		want   Fact
	}{
		{
			name: "policy node",
			record: &neo4j.Record{
				Keys:   []string{"labels", "id", "question", "answer"},
				Values: []any{[]any{"Policy"}, "pol-7", "refund?", "3-5 days"},
			},
			want: Fact{ID: "pol-7", Labels: []string{"Policy"}, Question: "refund?", Answer: "3-5 days"},
		},
		{
			name: "null question and integer id",
			record: &neo4j.Record{
				Keys:   []string{"labels", "id", "question", "answer"},
				Values: []any{[]any{"Product", "FAQ"}, int64(12), nil, "Gluten free"},
			},
			want: Fact{ID: "12", Labels: []string{"Product", "FAQ"}, Question: "", Answer: "Gluten free"},
		},
		{
			name: "missing columns",
			record: &neo4j.Record{
				Keys:   []string{"question"},
				Values: []any{"hours?"},
			},
			want: Fact{Question: "hours?"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := factFromRecord(tt.record)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("factFromRecord() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNeo4jGraph_MatchByKeywords_NothingToMatch(t *testing.T) {
	g, err := NewNeo4jGraph("neo4j://localhost:7687", "neo4j", "password", "")
	if err != nil {
		t.Fatalf("NewNeo4jGraph() error = %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	defer func() {
		_ = g.Close(ctx)
	}()

	facts, err := g.MatchByKeywords(ctx, nil, 2)
	if err != nil {
		t.Fatalf("MatchByKeywords() error = %v", err)
	}
	if len(facts) != 0 {
		t.Errorf("MatchByKeywords() returned %d facts, want 0", len(facts))
	}
}

func TestNewNeo4jGraph_InvalidURI(t *testing.T) {
	if _, err := NewNeo4jGraph("ftp://localhost", "neo4j", "password", ""); err == nil {
		t.Error("NewNeo4jGraph() with unsupported scheme should return error")
	}
}
