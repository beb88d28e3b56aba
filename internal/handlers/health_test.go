package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"faq-agent/internal/factgraph"
	graphmocks "faq-agent/internal/factgraph/mocks"
	storemocks "faq-agent/internal/vectorstore/mocks"
)

func TestHealthHandler(t *testing.T) {
	collections := []string{"kb_policy_faqs", "kb_product_faqs"}

	tests := []struct {
		name       string
		withGraph  bool
		setup      func(s *storemocks.MockVectorStore, g *graphmocks.MockGraph)
		wantStatus int
		wantState  string
		wantIssues int
	}{
		{
			name:      "all healthy",
			withGraph: true,
			setup: func(s *storemocks.MockVectorStore, g *graphmocks.MockGraph) {
				s.EXPECT().CollectionExists(gomock.Any(), gomock.Any()).Return(true, nil).Times(2)
				g.EXPECT().Ping(gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusOK,
			wantState:  "healthy",
		},
		{
			name:      "missing collection degrades",
			withGraph: true,
			setup: func(s *storemocks.MockVectorStore, g *graphmocks.MockGraph) {
				s.EXPECT().CollectionExists(gomock.Any(), "kb_policy_faqs").Return(true, nil)
				s.EXPECT().CollectionExists(gomock.Any(), "kb_product_faqs").Return(false, nil)
				g.EXPECT().Ping(gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusOK,
			wantState:  "degraded",
			wantIssues: 1,
		},
		{
			name:      "graph down degrades",
			withGraph: true,
			setup: func(s *storemocks.MockVectorStore, g *graphmocks.MockGraph) {
				s.EXPECT().CollectionExists(gomock.Any(), gomock.Any()).Return(true, nil).Times(2)
				g.EXPECT().Ping(gomock.Any()).Return(errors.New("neo4j unavailable"))
			},
			wantStatus: http.StatusOK,
			wantState:  "degraded",
			wantIssues: 1,
		},
		{
			name: "everything down",
			setup: func(s *storemocks.MockVectorStore, g *graphmocks.MockGraph) {
				s.EXPECT().CollectionExists(gomock.Any(), gomock.Any()).Return(false, errors.New("qdrant unavailable")).Times(2)
			},
			wantStatus: http.StatusServiceUnavailable,
			wantState:  "unhealthy",
			wantIssues: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := storemocks.NewMockVectorStore(ctrl)
			graph := graphmocks.NewMockGraph(ctrl)
			tt.setup(store, graph)

			var g factgraph.Graph
			if tt.withGraph {
				g = graph
			}

			w := httptest.NewRecorder()
			NewHealthHandler(store, collections, g).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var resp HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Status != tt.wantState || len(resp.Issues) != tt.wantIssues {
				t.Errorf("response = %+v", resp)
			}
			if tt.withGraph && resp.Checks["fact_graph"] == "" {
				t.Error("fact_graph check missing")
			}
		})
	}
}

func TestHealthHandler_MethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := httptest.NewRecorder()
	NewHealthHandler(storemocks.NewMockVectorStore(ctrl), nil, nil).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/health", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}
