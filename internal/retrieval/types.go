package retrieval

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks faq-agent/internal/retrieval Embedder

import (
	"context"
	"time"
)

// GraphScore is the score given to every fact-graph record. Keyword matches
// carry no ranking signal, so they are pinned to the maximum cosine
// similarity. They are never re-ranked against vector hits.
const GraphScore = 1.0

// GraphTitle is the title of every fact-graph record.
const GraphTitle = "KG"

// FactSource is the source name reported for the fact-graph task.
const FactSource = "kg"

// EvidenceRecord is a normalized unit of retrieved knowledge.
// Text is never empty.
type EvidenceRecord struct {
	Title  string  `json:"title,omitempty"`
	URL    string  `json:"url,omitempty"`
	Text   string  `json:"text"`
	Score  float64 `json:"score"`
	Source string  `json:"source"`
}

// CollectionConfig selects one vector collection for a fan-out.
type CollectionConfig struct {
	// Name is the Qdrant collection name.
	Name string
	// TopK bounds the hits taken from this collection.
	TopK int
	// Domain restricts hits to points whose "domain" payload equals it. Empty disables the filter.
	Domain string
}

// SourceResult is the outcome of one retrieval task. Err is set when the
// task failed, in which case Records is empty.
type SourceResult struct {
	Source   string
	Records  []EvidenceRecord
	Err      error
	Duration time.Duration
}

// Embedder turns query text into a vector.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}
