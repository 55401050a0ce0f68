package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/semdex/internal/core/domain"
)

func newTestServer(t *testing.T, handler func(req embedRequest) (int, any)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"models":[]}`))
		case "/api/embed":
			var req embedRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			status, body := handler(req)
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(body)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewEmbeddingService_Defaults(t *testing.T) {
	svc := NewEmbeddingService(Config{})

	assert.Equal(t, DefaultBaseURL, svc.baseURL)
	assert.Equal(t, DefaultModel, svc.ModelName())
	assert.Equal(t, 0, svc.Dimensions())
}

func TestEmbeddingService_EmbedBatch_AlignedWithInput(t *testing.T) {
	srv := newTestServer(t, func(req embedRequest) (int, any) {
		out := make([][]float64, len(req.Input))
		for i := range req.Input {
			out[i] = []float64{float64(i), 1}
		}
		return http.StatusOK, embedResponse{Embeddings: out}
	})
	svc := NewEmbeddingService(Config{BaseURL: srv.URL, Model: "all-minilm"})

	vecs, err := svc.EmbedBatch(context.Background(), []string{"a", "b", "c"})

	require.NoError(t, err)
	assert.Equal(t, [][]float32{{0, 1}, {1, 1}, {2, 1}}, vecs)
	assert.Equal(t, 2, svc.Dimensions())
}

func TestEmbeddingService_Embed(t *testing.T) {
	srv := newTestServer(t, func(req embedRequest) (int, any) {
		assert.Equal(t, []string{"coffee"}, req.Input)
		return http.StatusOK, embedResponse{Embeddings: [][]float64{{0.5, 0.25}}}
	})
	svc := NewEmbeddingService(Config{BaseURL: srv.URL})

	vec, err := svc.Embed(context.Background(), "coffee")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.25}, vec)
}

func TestEmbeddingService_DimensionMismatch(t *testing.T) {
	srv := newTestServer(t, func(req embedRequest) (int, any) {
		return http.StatusOK, embedResponse{Embeddings: [][]float64{{1, 2, 3}}}
	})
	svc := NewEmbeddingService(Config{BaseURL: srv.URL, Dimensions: 384})

	_, err := svc.Embed(context.Background(), "x")

	assert.True(t, errors.Is(err, domain.ErrDimensionMismatch))
}

func TestEmbeddingService_CountMismatch(t *testing.T) {
	srv := newTestServer(t, func(req embedRequest) (int, any) {
		return http.StatusOK, embedResponse{Embeddings: [][]float64{{1}}}
	})
	svc := NewEmbeddingService(Config{BaseURL: srv.URL})

	_, err := svc.EmbedBatch(context.Background(), []string{"a", "b"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "got 1 embeddings for 2 inputs")
}

func TestEmbeddingService_ErrorStatus(t *testing.T) {
	srv := newTestServer(t, func(req embedRequest) (int, any) {
		return http.StatusNotFound, map[string]string{"error": "model not found"}
	})
	svc := NewEmbeddingService(Config{BaseURL: srv.URL})

	_, err := svc.Embed(context.Background(), "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ollama error (status 404)")
	assert.Contains(t, err.Error(), "model not found")
}

func TestEmbeddingService_EmbedBatch_Empty(t *testing.T) {
	svc := NewEmbeddingService(Config{BaseURL: "http://127.0.0.1:1"})

	vecs, err := svc.EmbedBatch(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, vecs)
}

func TestEmbeddingService_Ping(t *testing.T) {
	srv := newTestServer(t, nil)
	svc := NewEmbeddingService(Config{BaseURL: srv.URL})

	assert.NoError(t, svc.Ping(context.Background()))
	assert.NoError(t, svc.Close())
}

func TestEmbeddingService_Ping_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewEmbeddingService(Config{BaseURL: url}).Ping(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ollama: ping failed")
}
