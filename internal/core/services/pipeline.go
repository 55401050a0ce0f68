package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/semdex/internal/core/domain"
	"github.com/custodia-labs/semdex/internal/core/ports/driven"
	"github.com/custodia-labs/semdex/internal/core/ports/driving"
	"github.com/custodia-labs/semdex/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driving.CorpusService = (*Pipeline)(nil)

// ErrMissingDependency indicates a PipelineDeps field required for a build is nil.
var ErrMissingDependency = errors.New("pipeline dependency not configured")

// PipelineDeps holds the collaborators and limits of a Pipeline.
type PipelineDeps struct {
	// Source supplies articles. Required.
	Source driven.DocumentSource

	// Embedder embeds document contents and queries. Required.
	Embedder driven.EmbeddingService

	// BuildIndex constructs the vector index. Required.
	BuildIndex driven.VectorIndexBuilder

	// NewStore creates the document store for each build. Required.
	NewStore func() driven.DocumentStore

	// NewRunID generates a build identifier. Optional.
	NewRunID func() string

	// Progress observes every fetch outcome in commit order. Optional.
	Progress func(domain.FetchOutcome)

	// Workers is the fetch pool size.
	Workers int

	// FetchTimeout bounds each document source call.
	FetchTimeout time.Duration

	// EmbedTimeout bounds the corpus embedding batch.
	EmbedTimeout time.Duration

	// QueryTimeout bounds each query embedding.
	QueryTimeout time.Duration
}

func (d PipelineDeps) validate() error {
	switch {
	case d.Source == nil:
		return fmt.Errorf("%w: source", ErrMissingDependency)
	case d.Embedder == nil:
		return fmt.Errorf("%w: embedder", ErrMissingDependency)
	case d.BuildIndex == nil:
		return fmt.Errorf("%w: index builder", ErrMissingDependency)
	case d.NewStore == nil:
		return fmt.Errorf("%w: document store", ErrMissingDependency)
	}
	return nil
}

// Pipeline owns one document store, one vector index and the query engine
// over them. Build replaces all three together, so queries always see a
// store and index that were built from the same documents.
type Pipeline struct {
	deps PipelineDeps

	mu     sync.RWMutex
	store  driven.DocumentStore
	index  driven.VectorIndex
	engine *QueryEngine
}

// NewPipeline creates an unbuilt pipeline.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{deps: deps}
}

// Build fetches corpus, embeds every document's full content and builds
// the index. On failure the previously built state, if any, is kept.
func (p *Pipeline) Build(ctx context.Context, corpus domain.Corpus) (*domain.BuildReport, error) {
	if err := p.deps.validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	runID := ""
	if p.deps.NewRunID != nil {
		runID = p.deps.NewRunID()
	}
	ctx = WithRunID(ctx, runID)
	logger.Section("Corpus Build")
	logger.Debug("Run ID: %s", runID)

	// 1. INGEST
	store := p.deps.NewStore()
	ingestor := NewIngestor(p.deps.Source, p.deps.Workers, p.deps.FetchTimeout)
	ingestor.SetProgress(p.deps.Progress)
	report, err := ingestor.Ingest(ctx, corpus, store)
	if err != nil {
		return report, err
	}
	report.RunID = runID

	// 2. EMBED FULL CONTENT
	docs := store.All()
	contents := make([]string, len(docs))
	for n, d := range docs {
		contents[n] = d.Content
	}
	vectors, err := p.embedAll(ctx, contents)
	if err != nil {
		return report, err
	}
	if len(vectors) != store.Len() {
		return report, fmt.Errorf("embed corpus: %w: got %d vectors for %d documents",
			domain.ErrEmbeddingFailure, len(vectors), store.Len())
	}

	// 3. BUILD INDEX
	index, err := p.deps.BuildIndex(vectors)
	if err != nil {
		return report, fmt.Errorf("build index: %w", err)
	}
	report.Dimension = index.Dimension()

	// 4. INSTALL
	p.mu.Lock()
	p.store = store
	p.index = index
	p.engine = NewQueryEngine(p.deps.Embedder, index, store, p.deps.QueryTimeout)
	p.mu.Unlock()

	report.Duration = time.Since(start)
	logger.Info("Index ready: %d vectors of dimension %d in %s",
		index.Len(), report.Dimension, report.Duration.Round(time.Millisecond))
	return report, nil
}

func (p *Pipeline) embedAll(ctx context.Context, contents []string) ([][]float32, error) {
	if p.deps.EmbedTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.deps.EmbedTimeout)
		defer cancel()
	}
	logger.Debug("Embedding %d documents with %s", len(contents), p.deps.Embedder.ModelName())

	vectors, err := p.deps.Embedder.EmbedBatch(ctx, contents)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("embed corpus: %w: %w", domain.ErrTimeout, err)
		}
		return nil, fmt.Errorf("embed corpus: %w: %w", domain.ErrEmbeddingFailure, err)
	}
	return vectors, nil
}

// Query delegates to the query engine of the last successful build.
func (p *Pipeline) Query(ctx context.Context, text string, k int) ([]domain.Hit, error) {
	p.mu.RLock()
	engine := p.engine
	p.mu.RUnlock()

	if engine == nil {
		return nil, domain.ErrNotBuilt
	}
	return engine.Query(ctx, text, k)
}

// Document returns a built document by ID.
func (p *Pipeline) Document(id int) (domain.Document, error) {
	p.mu.RLock()
	store := p.store
	p.mu.RUnlock()

	if store == nil {
		return domain.Document{}, domain.ErrNotBuilt
	}
	return store.Get(id)
}

// Documents returns every built document in ID order.
func (p *Pipeline) Documents() []domain.Document {
	p.mu.RLock()
	store := p.store
	p.mu.RUnlock()

	if store == nil {
		return nil
	}
	return store.All()
}

// Built reports whether a build has completed.
func (p *Pipeline) Built() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.engine != nil
}

// IndexSize returns the number of vectors in the built index.
func (p *Pipeline) IndexSize() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.index == nil {
		return 0
	}
	return p.index.Len()
}
