package handlers

import (
	"context"
	"net/http"
	"time"

	"faq-agent/internal/contextutil"
	"faq-agent/internal/factgraph"
	"faq-agent/internal/vectorstore"
)

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	vectorStore        vectorstore.VectorStore
	collections        []string
	graph              factgraph.Graph
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler. graph may be nil when the
// fact graph is disabled.
func NewHealthHandler(vectorStore vectorstore.VectorStore, collections []string, graph factgraph.Graph) *HealthHandler {
	return &HealthHandler{
		vectorStore:        vectorStore,
		collections:        collections,
		graph:              graph,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
//
// swagger:model HealthResponse
type HealthResponse struct {
	// Overall health status: "healthy", "degraded", or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is degraded or unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles HTTP requests for health checks.
//
// Every retrieval source is checked. Since the agent answers with whatever
// sources remain, a partial outage is "degraded" (200) and only a total
// outage is "unhealthy" (503).
//
// swagger:route GET /api/health healthCheck
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: All or some retrieval sources are reachable
//	  schema:
//	    "$ref": "#/definitions/HealthResponse"
//	'503':
//	  description: No retrieval source is reachable
//	  schema:
//	    "$ref": "#/definitions/HealthResponse"
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string

	for _, collection := range h.collections {
		key := "collection:" + collection
		if h.checkCollection(checkCtx, collection) {
			checks[key] = "ok"
		} else {
			checks[key] = "error"
			issues = append(issues, collection+"_unavailable")
		}
	}

	if h.graph != nil {
		if err := h.graph.Ping(checkCtx); err != nil {
			logger.WarnContext(ctx, "fact graph health check failed", "error", err)
			checks["fact_graph"] = "error"
			issues = append(issues, "fact_graph_unavailable")
		} else {
			checks["fact_graph"] = "ok"
		}
	}

	status := "healthy"
	httpStatus := http.StatusOK
	switch {
	case len(issues) > 0 && len(issues) == len(checks):
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	case len(issues) > 0:
		status = "degraded"
	}

	writeJSON(ctx, w, httpStatus, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Issues:    issues,
	})
}

// checkCollection reports whether collection exists and the store is reachable.
func (h *HealthHandler) checkCollection(ctx context.Context, collection string) bool {
	logger := contextutil.LoggerFromContext(ctx)

	exists, err := h.vectorStore.CollectionExists(ctx, collection)
	if err != nil {
		logger.WarnContext(ctx, "vector store health check failed", "collection", collection, "error", err)
		return false
	}
	if !exists {
		logger.WarnContext(ctx, "vector store collection does not exist", "collection", collection)
		return false
	}
	return true
}
