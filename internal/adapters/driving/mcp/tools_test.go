package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/semdex/internal/core/domain"
)

func TestServer_handleQuery(t *testing.T) {
	ctx := context.Background()
	docs := fixtureDocs()

	t.Run("returns ranked hits", func(t *testing.T) {
		corpus := &mockCorpusService{
			hits: []domain.Hit{
				{SearchResult: domain.SearchResult{Rank: 1, DocumentID: 0, Distance: 0.25}, Document: docs[0]},
				{SearchResult: domain.SearchResult{Rank: 2, DocumentID: 1, Distance: 1.5}, Document: docs[1]},
			},
		}
		server, err := NewServer(&Ports{Query: corpus})
		require.NoError(t, err)

		_, output, err := server.handleQuery(ctx, nil, QueryInput{Query: "espresso", K: 2})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, 2, corpus.lastK)
		first := output.Results[0]
		assert.Equal(t, 1, first.Rank)
		assert.Equal(t, 0, first.DocumentID)
		assert.Equal(t, "Coffee", first.Title)
		assert.Equal(t, "semdex://documents/0", first.URI)
		assert.Equal(t, "Coffee", first.Category)
		assert.InDelta(t, 0.25, first.Distance, 1e-9)
		assert.Equal(t, "Coffee is a brewed drink.", first.Content)
	})

	t.Run("content is truncated", func(t *testing.T) {
		long := domain.Document{Title: "Long", Content: strings.Repeat("a", 500)}
		corpus := &mockCorpusService{hits: []domain.Hit{{SearchResult: domain.SearchResult{Rank: 1}, Document: long}}}
		server, err := NewServer(&Ports{Query: corpus})
		require.NoError(t, err)

		_, output, err := server.handleQuery(ctx, nil, QueryInput{Query: "x"})

		require.NoError(t, err)
		assert.Len(t, output.Results[0].Content, domain.DefaultContentLength)
	})

	t.Run("default k", func(t *testing.T) {
		corpus := &mockCorpusService{}
		server, err := NewServer(&Ports{Query: corpus})
		require.NoError(t, err)

		_, _, err = server.handleQuery(ctx, nil, QueryInput{Query: "x"})

		require.NoError(t, err)
		assert.Equal(t, domain.DefaultK, corpus.lastK)
	})

	t.Run("configured default k", func(t *testing.T) {
		corpus := &mockCorpusService{}
		server, err := NewServer(&Ports{Query: corpus, DefaultK: 5})
		require.NoError(t, err)

		_, _, err = server.handleQuery(ctx, nil, QueryInput{Query: "x"})

		require.NoError(t, err)
		assert.Equal(t, 5, corpus.lastK)
	})

	t.Run("returns error on query failure", func(t *testing.T) {
		corpus := &mockCorpusService{err: domain.ErrInvalidK}
		server, err := NewServer(&Ports{Query: corpus})
		require.NoError(t, err)

		_, _, err = server.handleQuery(ctx, nil, QueryInput{Query: "x", K: -1})

		assert.True(t, errors.Is(err, domain.ErrInvalidK))
	})
}
