package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks faq-agent/internal/vectorstore VectorStore

import "context"

// SearchResult represents a search result from vector search.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// VectorStore defines the read side of the vector index used by the agent.
// Collections are built offline; the agent never writes to them.
type VectorStore interface {
	// Search performs a similarity search restricted by exact-match payload filters.
	Search(ctx context.Context, collection string, query []float32, k int, filters map[string]any) ([]SearchResult, error)

	// CollectionExists reports whether the named collection exists.
	CollectionExists(ctx context.Context, collection string) (bool, error)
}
