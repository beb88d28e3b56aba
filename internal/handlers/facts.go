package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"faq-agent/internal/contextutil"
	"faq-agent/internal/factgraph"
	"faq-agent/internal/retrieval"
)

const (
	defaultFactsLimit = 10
	maxFactsLimit     = 50
)

// FactsHandler exposes raw fact-graph keyword matches.
type FactsHandler struct {
	graph factgraph.Graph
}

// NewFactsHandler creates a new FactsHandler.
func NewFactsHandler(graph factgraph.Graph) *FactsHandler {
	return &FactsHandler{graph: graph}
}

// FactsResponse lists matched facts.
//
// swagger:model FactsResponse
type FactsResponse struct {
	Facts []factgraph.Fact `json:"facts"`
}

// ServeHTTP handles GET /api/v1/facts?q=...&limit=N.
func (h *FactsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if h.graph == nil {
		writeError(w, http.StatusServiceUnavailable, "Fact graph is disabled")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	tokens := retrieval.Keywords(query)
	if len(tokens) == 0 {
		writeError(w, http.StatusBadRequest, "Query parameter q is required")
		return
	}

	limit := defaultFactsLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxFactsLimit)
	}

	facts, err := h.graph.MatchByKeywords(ctx, tokens, limit)
	if err != nil {
		logger.ErrorContext(ctx, "fact graph query failed", "error", err)
		writeError(w, http.StatusBadGateway, "Fact graph unavailable")
		return
	}
	if facts == nil {
		facts = []factgraph.Fact{}
	}

	logger.DebugContext(ctx, "fact graph query", "tokens", len(tokens), "matches", len(facts))
	writeJSON(ctx, w, http.StatusOK, FactsResponse{Facts: facts})
}
