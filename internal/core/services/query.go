package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/semdex/internal/core/domain"
	"github.com/custodia-labs/semdex/internal/core/ports/driven"
	"github.com/custodia-labs/semdex/internal/core/ports/driving"
	"github.com/custodia-labs/semdex/internal/logger"
)

// Ensure QueryEngine implements the interface.
var _ driving.QueryEngine = (*QueryEngine)(nil)

// QueryEngine composes the embedding service, the vector index and the
// document store to answer a single query.
type QueryEngine struct {
	embedder driven.EmbeddingService
	index    driven.VectorIndex
	store    driven.DocumentStore
	timeout  time.Duration
}

// NewQueryEngine creates a query engine. A zero timeout leaves the
// caller's context deadline in charge.
func NewQueryEngine(
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	store driven.DocumentStore,
	timeout time.Duration,
) *QueryEngine {
	return &QueryEngine{
		embedder: embedder,
		index:    index,
		store:    store,
		timeout:  timeout,
	}
}

// Query embeds text and returns the k nearest documents, best first.
// Embedding failures are returned, never retried.
func (e *QueryEngine) Query(ctx context.Context, text string, k int) ([]domain.Hit, error) {
	logger.Section("Query Execution")
	logger.Debug("Query: %q, k=%d", text, k)

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidK, k)
	}

	vec, err := e.embed(ctx, text)
	if err != nil {
		return nil, err
	}
	logger.Debug("Query embedding: %d dimensions", len(vec))

	results, err := e.index.Search(vec, k)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	logger.Debug("Index returned %d results", len(results))

	hits := make([]domain.Hit, len(results))
	for i, r := range results {
		doc, err := e.store.Get(r.DocumentID)
		if err != nil {
			// The index and store are built together; a missing document
			// means their positional alignment is broken.
			panic(fmt.Sprintf("semdex: index result %d has no document (index=%d, store=%d): %v",
				r.DocumentID, e.index.Len(), e.store.Len(), err))
		}
		hits[i] = domain.Hit{SearchResult: r, Document: doc}
	}
	return hits, nil
}

func (e *QueryEngine) embed(ctx context.Context, text string) ([]float32, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	vec, err := e.embedder.Embed(ctx, text)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("generate query embedding: %w: %w", domain.ErrTimeout, err)
		}
		return nil, fmt.Errorf("generate query embedding: %w: %w", domain.ErrEmbeddingFailure, err)
	}
	return vec, nil
}
