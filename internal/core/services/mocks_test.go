package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/semdex/internal/core/domain"
)

// mockEmbeddingService maps texts to fixed vectors. Unknown texts get
// fallback, or embedErr when fallback is nil.
type mockEmbeddingService struct {
	vectors  map[string][]float32
	fallback []float32
	embedErr error
	batchErr error
	delay    time.Duration
	dims     int

	mu    sync.Mutex
	calls int
}

func (m *mockEmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	if v, ok := m.vectors[text]; ok {
		return v, nil
	}
	if m.fallback != nil {
		return m.fallback, nil
	}
	return nil, errors.New("no vector for text")
}

func (m *mockEmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := m.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (m *mockEmbeddingService) Dimensions() int             { return m.dims }
func (m *mockEmbeddingService) ModelName() string           { return "mock" }
func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }
func (m *mockEmbeddingService) Close() error                { return nil }

func (m *mockEmbeddingService) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockSource serves pages and search results from maps.
type mockSource struct {
	searches  map[string][]string
	searchErr map[string]error
	pages     map[string]domain.Article
	pageErr   map[string]error
	// delays slows individual titles so completion order differs from job order.
	delays map[string]time.Duration

	mu        sync.Mutex
	requested []string
	inFlight  int
	maxFlight int
}

func (m *mockSource) Search(_ context.Context, query string, limit int) ([]string, error) {
	if err := m.searchErr[query]; err != nil {
		return nil, err
	}
	titles := m.searches[query]
	if len(titles) > limit {
		titles = titles[:limit]
	}
	return titles, nil
}

func (m *mockSource) Page(ctx context.Context, title string) (domain.Article, error) {
	m.mu.Lock()
	m.requested = append(m.requested, title)
	m.inFlight++
	if m.inFlight > m.maxFlight {
		m.maxFlight = m.inFlight
	}
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.mu.Unlock()
	}()

	if d := m.delays[title]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return domain.Article{}, ctx.Err()
		}
	}
	if err := m.pageErr[title]; err != nil {
		return domain.Article{}, err
	}
	a, ok := m.pages[title]
	if !ok {
		return domain.Article{}, domain.ErrNotFound
	}
	return a, nil
}

func (m *mockSource) requestCount(title string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.requested {
		if r == title {
			n++
		}
	}
	return n
}

// mockArticleCache is a map-backed driven.ArticleCache.
type mockArticleCache struct {
	articles map[string]domain.Article
	runIDs   map[string]string
	getErr   error
	putErr   error
}

func newMockArticleCache() *mockArticleCache {
	return &mockArticleCache{
		articles: make(map[string]domain.Article),
		runIDs:   make(map[string]string),
	}
}

func (m *mockArticleCache) Get(_ context.Context, title string) (domain.Article, bool, error) {
	if m.getErr != nil {
		return domain.Article{}, false, m.getErr
	}
	a, ok := m.articles[title]
	return a, ok, nil
}

func (m *mockArticleCache) Put(_ context.Context, runID, title string, a domain.Article) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.articles[title] = a
	m.runIDs[title] = runID
	return nil
}

func (m *mockArticleCache) Len(_ context.Context) (int, error) { return len(m.articles), nil }
func (m *mockArticleCache) Close() error                       { return nil }

func article(title, content string) domain.Article {
	return domain.Article{
		Title:   title,
		Content: content,
		URL:     "https://en.wikipedia.org/wiki/" + title,
	}
}
