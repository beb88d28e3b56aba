package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"faq-agent/internal/agent"
	"faq-agent/internal/config"
	"faq-agent/internal/factgraph"
	"faq-agent/internal/http"
	"faq-agent/internal/llm"
	"faq-agent/internal/metrics"
	"faq-agent/internal/retrieval"
	"faq-agent/internal/storage"
	"faq-agent/internal/vectorstore"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API answers customer questions about store policies and products.
// A router model decides whether to answer directly or to search the FAQ
// collections and the fact graph first.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: FAQ Agent API
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(registry)
	if err != nil {
		log.Fatalf("Failed to register metrics: %v", err)
	}

	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL, cfg.QdrantAPIKey)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	defer func() {
		_ = vectorStore.Close()
	}()

	collections := []retrieval.CollectionConfig{
		{Name: cfg.PolicyCollection, TopK: cfg.PolicyTopK, Domain: cfg.PolicyDomain},
		{Name: cfg.ProductCollection, TopK: cfg.ProductTopK, Domain: cfg.ProductDomain},
	}
	collectionNames := make([]string, 0, len(collections))
	for _, c := range collections {
		collectionNames = append(collectionNames, c.Name)
		// Missing collections are not fatal: retrieval degrades to the remaining sources.
		exists, err := vectorStore.CollectionExists(ctx, c.Name)
		switch {
		case err != nil:
			slog.Warn("Qdrant unreachable at startup", "collection", c.Name, "error", err)
		case !exists:
			slog.Warn("Qdrant collection does not exist", "collection", c.Name)
		default:
			slog.Info("Qdrant collection ready", "collection", c.Name, "top_k", c.TopK, "domain", c.Domain)
		}
	}

	graph, closeGraph := openFactGraph(ctx, cfg)
	defer closeGraph()

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.EmbeddingVectorSize)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)
	if err := llmClient.Ping(ctx); err != nil {
		slog.Warn("LLM service not reachable at startup", "base_url", cfg.LLMBaseURL, "error", err)
	}

	var facts retrieval.FactSearcher
	if graph != nil {
		facts = retrieval.NewFactLookup(graph)
	}
	orchestrator := retrieval.NewOrchestrator(
		retrieval.NewVectorRetriever(embedder, vectorStore),
		facts,
		retrieval.OrchestratorOptions{
			FactLimit:   cfg.FactLimit,
			TaskTimeout: cfg.RetrievalTimeout,
			Metrics:     m,
		},
	)

	faqAgent := agent.New(llmClient, orchestrator, collections, agent.Options{
		Model:          cfg.LLMModelName,
		Temperature:    cfg.LLMTemperature,
		MaxTokens:      cfg.LLMMaxTokens,
		LLMTimeout:     cfg.LLMTimeout,
		FallbackAnswer: cfg.FallbackAnswer,
		Metrics:        m,
	})
	slog.Info("Agent initialized", "model", cfg.LLMModelName, "fact_backend", cfg.FactBackend)

	deps := &http.Deps{
		Agent:       faqAgent,
		VectorStore: vectorStore,
		Collections: collectionNames,
		Graph:       graph,
		Metrics:     m,
	}

	server := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           http.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("API server shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting API server", "addr", server.Addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		log.Fatalf("API server failed to start: %v", err)
	}
	slog.Info("API server stopped")
}

// openFactGraph opens the configured fact graph backend. It returns a nil
// graph when the backend is disabled.
func openFactGraph(ctx context.Context, cfg *config.Config) (factgraph.Graph, func()) {
	switch cfg.FactBackend {
	case config.FactBackendNeo4j:
		g, err := factgraph.NewNeo4jGraph(cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase)
		if err != nil {
			log.Fatalf("Failed to create Neo4j driver: %v", err)
		}
		if err := g.Ping(ctx); err != nil {
			slog.Warn("Neo4j not reachable at startup", "uri", cfg.Neo4jURI, "error", err)
		} else {
			slog.Info("Neo4j fact graph ready", "uri", cfg.Neo4jURI)
		}
		return g, func() {
			_ = g.Close(context.Background())
		}

	case config.FactBackendSQLite:
		db, err := storage.New(cfg.FactsDBPath)
		if err != nil {
			log.Fatalf("Failed to open facts database: %v", err)
		}
		if err := storage.Migrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		repo := storage.NewFactRepo(db)
		count, err := repo.Count(ctx)
		if err != nil {
			log.Fatalf("Failed to count facts: %v", err)
		}
		slog.Info("SQLite fact graph ready", "path", cfg.FactsDBPath, "facts", count)
		return repo, func() {
			_ = db.Close()
		}

	default:
		slog.Info("Fact graph disabled")
		return nil, func() {}
	}
}
