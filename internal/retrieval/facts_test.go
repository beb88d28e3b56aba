package retrieval_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/mock/gomock"

	"faq-agent/internal/factgraph"
	factgraph_mocks "faq-agent/internal/factgraph/mocks"
	"faq-agent/internal/retrieval"
)

func TestKeywords(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{query: "Refund for LATE bakery delivery", want: []string{"refund", "for", "late", "bakery", "delivery"}},
		{query: "  sunday\tSunday\nhours ", want: []string{"sunday", "hours"}},
		{query: "   ", want: []string{}},
		{query: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := retrieval.Keywords(tt.query); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Keywords(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFactLookup_Lookup(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		limit   int
		setup   func(g *factgraph_mocks.MockGraph)
		want    []retrieval.EvidenceRecord
		wantErr bool
	}{
		{
			name:  "question and answer joined",
			query: "Refund timing",
			limit: 2,
			setup: func(g *factgraph_mocks.MockGraph) {
				g.EXPECT().MatchByKeywords(gomock.Any(), []string{"refund", "timing"}, 2).
					Return([]factgraph.Fact{
						{Labels: []string{"Policy"}, Question: "refund?", Answer: "3-5 days"},
					}, nil)
			},
			want: []retrieval.EvidenceRecord{
				{Title: "KG", Text: "refund? — 3-5 days", Score: retrieval.GraphScore, Source: retrieval.FactSource},
			},
		},
		{
			name:  "one-sided facts drop the separator, empty facts skipped",
			query: "hours",
			limit: 5,
			setup: func(g *factgraph_mocks.MockGraph) {
				g.EXPECT().MatchByKeywords(gomock.Any(), []string{"hours"}, 5).
					Return([]factgraph.Fact{
						{Question: "What are Sunday hours?", Answer: ""},
						{Question: "  ", Answer: "  "},
						{Question: "", Answer: "8am-4pm"},
					}, nil)
			},
			want: []retrieval.EvidenceRecord{
				{Title: "KG", Text: "What are Sunday hours?", Score: 1.0, Source: "kg"},
				{Title: "KG", Text: "8am-4pm", Score: 1.0, Source: "kg"},
			},
		},
		{
			name:  "limit enforced on over-returning graph",
			query: "milk",
			limit: 1,
			setup: func(g *factgraph_mocks.MockGraph) {
				g.EXPECT().MatchByKeywords(gomock.Any(), gomock.Any(), 1).
					Return([]factgraph.Fact{
						{Question: "a?", Answer: "a"},
						{Question: "b?", Answer: "b"},
					}, nil)
			},
			want: []retrieval.EvidenceRecord{
				{Title: "KG", Text: "a? — a", Score: 1.0, Source: "kg"},
			},
		},
		{
			name:  "blank query skips the graph",
			query: "   ",
			limit: 2,
			setup: func(g *factgraph_mocks.MockGraph) {},
			want:  []retrieval.EvidenceRecord{},
		},
		{
			name:  "graph error propagates",
			query: "refund",
			limit: 2,
			setup: func(g *factgraph_mocks.MockGraph) {
				g.EXPECT().MatchByKeywords(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			graph := factgraph_mocks.NewMockGraph(ctrl)
			tt.setup(graph)

			got, err := retrieval.NewFactLookup(graph).Lookup(context.Background(), tt.query, tt.limit)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Lookup() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Lookup() unexpected error: %v", err)
			}
			assertRecords(t, got, tt.want)
		})
	}
}
