package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"faq-agent/internal/factgraph"
	"faq-agent/internal/handlers"
	"faq-agent/internal/metrics"
	"faq-agent/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Agent       handlers.Answerer
	VectorStore vectorstore.VectorStore
	// Collections are checked by the health endpoint.
	Collections []string
	// Graph may be nil when the fact graph is disabled.
	Graph   factgraph.Graph
	Metrics *metrics.Metrics
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.VectorStore, deps.Collections, deps.Graph))

		r.Route("/v1", func(r chi.Router) {
			r.Method(http.MethodPost, "/ask", handlers.NewAskHandler(deps.Agent))
			r.Method(http.MethodPost, "/rag", handlers.NewRAGHandler(deps.Agent))
			r.Method(http.MethodGet, "/facts", handlers.NewFactsHandler(deps.Graph))
		})
	})

	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	return r
}
