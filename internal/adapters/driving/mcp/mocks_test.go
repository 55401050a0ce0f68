package mcp

import (
	"context"
	"fmt"

	"github.com/custodia-labs/semdex/internal/core/domain"
)

// mockCorpusService is a mock implementation of driving.CorpusService.
type mockCorpusService struct {
	hits  []domain.Hit
	docs  []domain.Document
	err   error
	lastK int
}

func (m *mockCorpusService) Query(_ context.Context, _ string, k int) ([]domain.Hit, error) {
	m.lastK = k
	return m.hits, m.err
}

func (m *mockCorpusService) Build(_ context.Context, _ domain.Corpus) (*domain.BuildReport, error) {
	return &domain.BuildReport{Documents: len(m.docs)}, m.err
}

func (m *mockCorpusService) Document(id int) (domain.Document, error) {
	if id < 0 || id >= len(m.docs) {
		return domain.Document{}, fmt.Errorf("document %d: %w", id, domain.ErrNotFound)
	}
	return m.docs[id], nil
}

func (m *mockCorpusService) Documents() []domain.Document {
	return m.docs
}

func fixtureDocs() []domain.Document {
	return []domain.Document{
		{ID: 0, Title: "Coffee", Content: "Coffee is a brewed drink.", URL: "https://en.wikipedia.org/wiki/Coffee", Category: "Coffee"},
		{ID: 1, Title: "Basketball", Content: "Basketball is a team sport.", URL: "https://en.wikipedia.org/wiki/Basketball", Category: "Basketball"},
	}
}
