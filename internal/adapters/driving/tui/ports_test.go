package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/semdex/internal/core/domain"
)

// MockCorpusService implements driving.CorpusService for testing.
type MockCorpusService struct {
	QueryFunc func(ctx context.Context, text string, k int) ([]domain.Hit, error)
	Docs      []domain.Document
	lastK     int
}

func (m *MockCorpusService) Query(ctx context.Context, text string, k int) ([]domain.Hit, error) {
	m.lastK = k
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, text, k)
	}
	return []domain.Hit{
		{
			SearchResult: domain.SearchResult{Rank: 1, DocumentID: 0, Distance: 0.25},
			Document:     domain.Document{ID: 0, Title: "Mars", Content: "Fourth planet."},
		},
	}, nil
}

func (m *MockCorpusService) Build(context.Context, domain.Corpus) (*domain.BuildReport, error) {
	return &domain.BuildReport{}, nil
}

func (m *MockCorpusService) Document(id int) (domain.Document, error) {
	if id < 0 || id >= len(m.Docs) {
		return domain.Document{}, domain.ErrNotFound
	}
	return m.Docs[id], nil
}

func (m *MockCorpusService) Documents() []domain.Document {
	return m.Docs
}

func TestNewPorts(t *testing.T) {
	corpus := &MockCorpusService{}

	ports := NewPorts(corpus, 3, 50)

	require.NotNil(t, ports)
	assert.Equal(t, corpus, ports.Query)
	assert.Equal(t, corpus, ports.Corpus)
	assert.Equal(t, 3, ports.K)
	assert.Equal(t, 50, ports.PreviewLength)
	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{"nil ports", nil, ErrInvalidPorts},
		{"missing query engine", &Ports{}, ErrMissingQueryEngine},
		{"negative k", &Ports{Query: &MockCorpusService{}, K: -1}, ErrInvalidPorts},
		{"query only", &Ports{Query: &MockCorpusService{}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
