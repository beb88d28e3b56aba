package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewEmbeddingsClient(t *testing.T) {
	client := NewEmbeddingsClient("http://localhost:8081", "test-key", "bge-small-en-v1.5", 384)
	if client == nil {
		t.Fatal("NewEmbeddingsClient() returned nil")
	}
	if client.BaseURL != "http://localhost:8081" {
		t.Errorf("NewEmbeddingsClient() BaseURL = %v, want http://localhost:8081", client.BaseURL)
	}
	if client.ExpectedSize != 384 {
		t.Errorf("NewEmbeddingsClient() ExpectedSize = %v, want 384", client.ExpectedSize)
	}
}

func embeddingsServer(t *testing.T, vectors int, size int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("expected /v1/embeddings, got %s", r.URL.Path)
		}
		resp := EmbeddingsResponse{}
		for i := 0; i < vectors; i++ {
			vec := make([]float64, size)
			if size > 0 {
				vec[0] = 0.5
			}
			resp.Data = append(resp.Data, EmbeddingData{Embedding: vec})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestEmbeddingsClient_EmbedTexts(t *testing.T) {
	tests := []struct {
		name         string
		texts        []string
		expectedSize int
		respVectors  int
		respSize     int
		wantErr      bool
		wantCount    int
	}{
		{
			name:         "successful embedding",
			texts:        []string{"refund policy", "delivery window"},
			expectedSize: 384,
			respVectors:  2,
			respSize:     384,
			wantCount:    2,
		},
		{
			name:         "size check disabled",
			texts:        []string{"refund policy"},
			expectedSize: 0,
			respVectors:  1,
			respSize:     12,
			wantCount:    1,
		},
		{
			name:         "empty input",
			texts:        []string{},
			expectedSize: 384,
			wantErr:      true,
		},
		{
			name:         "wrong embedding count",
			texts:        []string{"a", "b"},
			expectedSize: 384,
			respVectors:  1,
			respSize:     384,
			wantErr:      true,
		},
		{
			name:         "wrong vector size",
			texts:        []string{"a"},
			expectedSize: 384,
			respVectors:  1,
			respSize:     768,
			wantErr:      true,
		},
		{
			name:         "empty vector",
			texts:        []string{"a"},
			respVectors:  1,
			respSize:     0,
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := embeddingsServer(t, tt.respVectors, tt.respSize)
			defer server.Close()

			client := NewEmbeddingsClient(server.URL, "test-key", "test-model", tt.expectedSize)
			got, err := client.EmbedTexts(context.Background(), tt.texts)

			if tt.wantErr {
				if err == nil {
					t.Errorf("EmbedTexts() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("EmbedTexts() unexpected error: %v", err)
			}
			if len(got) != tt.wantCount {
				t.Errorf("EmbedTexts() returned %d vectors, want %d", len(got), tt.wantCount)
			}
			if got[0][0] != 0.5 {
				t.Errorf("EmbedTexts() vec[0] = %v, want 0.5", got[0][0])
			}
		})
	}
}

func TestEmbeddingsClient_EmbedQuery(t *testing.T) {
	server := embeddingsServer(t, 1, 384)
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "test-key", "test-model", 384)
	vec, err := client.EmbedQuery(context.Background(), "late bakery delivery")
	if err != nil {
		t.Fatalf("EmbedQuery() error = %v", err)
	}
	if len(vec) != 384 {
		t.Errorf("EmbedQuery() len = %d, want 384", len(vec))
	}
}

func TestEmbeddingsClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "test-key", "test-model", 384)
	if _, err := client.EmbedQuery(context.Background(), "q"); err == nil {
		t.Fatal("EmbedQuery() expected error, got nil")
	}
}
