package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Fact graph backends.
const (
	FactBackendNeo4j  = "neo4j"
	FactBackendSQLite = "sqlite"
	FactBackendNone   = "none"
)

// Config holds all configuration for the application.
type Config struct {
	LLMBaseURL     string
	LLMModelName   string
	LLMAPIKey      string
	LLMTemperature float32
	LLMMaxTokens   int
	LLMTimeout     time.Duration

	EmbeddingBaseURL    string
	EmbeddingModelName  string
	EmbeddingVectorSize int

	QdrantURL         string
	QdrantAPIKey      string
	PolicyCollection  string
	PolicyTopK        int
	PolicyDomain      string
	ProductCollection string
	ProductTopK       int
	ProductDomain     string

	FactBackend   string
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	Neo4jDatabase string
	FactsDBPath   string
	FactLimit     int

	RetrievalTimeout time.Duration
	FallbackAnswer   string

	APIPort   string
	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the rest.
// If a .env file exists in the current directory or up to five parents, it is loaded.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMBaseURL:         getEnv("LLM_BASE_URL", "http://localhost:11434"),
		LLMModelName:       getEnv("LLM_MODEL", "phi3:mini"),
		LLMAPIKey:          getEnv("LLM_API_KEY", "dummy-key"),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "bge-small-en-v1.5"),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantAPIKey:       getEnv("QDRANT_API_KEY", ""),
		PolicyCollection:   getEnv("POLICY_COLLECTION", "kb_policy_faqs"),
		PolicyDomain:       getEnv("DOMAIN_FILTER", "policy"),
		ProductCollection:  getEnv("PRODUCT_COLLECTION", "kb_product_faqs"),
		ProductDomain:      getEnv("PRODUCT_DOMAIN", "product"),
		FactBackend:        strings.ToLower(getEnv("FACT_BACKEND", FactBackendNeo4j)),
		Neo4jURI:           getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:          getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:      getEnv("NEO4J_PASSWORD", ""),
		Neo4jDatabase:      getEnv("NEO4J_DATABASE", ""),
		FactsDBPath:        getEnv("FACTS_DB_PATH", "./data/facts.db"),
		FallbackAnswer:     getEnv("FALLBACK_ANSWER", ""),
		APIPort:            getEnv("API_PORT", "9000"),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	temperature, err := getEnvFloat("LLM_TEMPERATURE", 0.2)
	if err != nil {
		return nil, err
	}
	if temperature < 0 || temperature > 2 {
		return nil, fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2")
	}
	cfg.LLMTemperature = float32(temperature)

	ints := []struct {
		key string
		def int
		min int
		dst *int
	}{
		{key: "LLM_MAX_TOKENS", def: 80, min: 0, dst: &cfg.LLMMaxTokens},
		{key: "EMBEDDING_VECTOR_SIZE", def: 0, min: 0, dst: &cfg.EmbeddingVectorSize},
		{key: "POLICY_TOP_K", def: 2, min: 1, dst: &cfg.PolicyTopK},
		{key: "PRODUCT_TOP_K", def: 1, min: 1, dst: &cfg.ProductTopK},
		{key: "FACT_LIMIT", def: 2, min: 1, dst: &cfg.FactLimit},
	}
	for _, v := range ints {
		n, err := getEnvInt(v.key, v.def)
		if err != nil {
			return nil, err
		}
		if n < v.min {
			return nil, fmt.Errorf("%s must be at least %d", v.key, v.min)
		}
		*v.dst = n
	}

	if cfg.LLMTimeout, err = getEnvDuration("LLM_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.RetrievalTimeout, err = getEnvDuration("RETRIEVAL_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	if cfg.LogLevel, err = parseLogLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	switch cfg.FactBackend {
	case FactBackendNeo4j:
		if cfg.Neo4jURI == "" {
			return nil, fmt.Errorf("NEO4J_URI is required when FACT_BACKEND is neo4j")
		}
	case FactBackendSQLite:
		dataDir := filepath.Dir(cfg.FactsDBPath)
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	case FactBackendNone:
	default:
		return nil, fmt.Errorf("FACT_BACKEND must be neo4j, sqlite or none, got %q", cfg.FactBackend)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	s := getEnv(key, "")
	if s == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	s := getEnv(key, "")
	if s == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	return f, nil
}

// getEnvDuration accepts Go durations ("1500ms") or plain seconds ("30").
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	s := getEnv(key, "")
	if s == "" {
		return defaultValue, nil
	}
	if secs, err := strconv.Atoi(s); err == nil {
		s = strconv.Itoa(secs) + "s"
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error: %w", err)
	}
	return level, nil
}
