package retrieval

import (
	"context"
	"fmt"
	"strings"

	"faq-agent/internal/contextutil"
	"faq-agent/internal/vectorstore"
)

// Payload keys tried, in order, when mapping a hit to an EvidenceRecord.
var (
	titleKeys = []string{"policy_title", "title", "product_name", "question"}
	urlKeys   = []string{"source_url", "url"}
	textKeys  = []string{"text", "answer"}
)

// DomainKey is the payload field the domain filter applies to.
const DomainKey = "domain"

// VectorRetriever searches one vector collection per call.
type VectorRetriever struct {
	embedder Embedder
	store    vectorstore.VectorStore
}

// NewVectorRetriever creates a VectorRetriever.
func NewVectorRetriever(embedder Embedder, store vectorstore.VectorStore) *VectorRetriever {
	return &VectorRetriever{
		embedder: embedder,
		store:    store,
	}
}

// Retrieve embeds query and returns up to collection.TopK evidence records
// from collection.Name, in the order the store returned them.
func (r *VectorRetriever) Retrieve(ctx context.Context, query string, collection CollectionConfig) ([]EvidenceRecord, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if collection.Name == "" {
		return nil, fmt.Errorf("collection name is required")
	}
	if collection.TopK <= 0 {
		return nil, fmt.Errorf("top_k must be positive for %s", collection.Name)
	}

	vector, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	var filters map[string]any
	if collection.Domain != "" {
		filters = map[string]any{DomainKey: collection.Domain}
	}

	hits, err := r.store.Search(ctx, collection.Name, vector, collection.TopK, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to search vector store: %w", err)
	}

	records := make([]EvidenceRecord, 0, len(hits))
	for _, hit := range hits {
		text := strings.TrimSpace(payloadString(hit.Meta, textKeys))
		if text == "" {
			logger.DebugContext(ctx, "skipping hit without text", "collection", collection.Name, "point_id", hit.PointID)
			continue
		}
		records = append(records, EvidenceRecord{
			Title:  payloadString(hit.Meta, titleKeys),
			URL:    payloadString(hit.Meta, urlKeys),
			Text:   text,
			Score:  float64(hit.Score),
			Source: collection.Name,
		})
	}

	return records, nil
}

func payloadString(meta map[string]any, keys []string) string {
	for _, key := range keys {
		if s, ok := meta[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
