package driving

import (
	"context"

	"github.com/custodia-labs/semdex/internal/core/domain"
)

// CorpusService builds a corpus and serves queries and document lookups
// against it. An instance owns exactly one document store and one index.
type CorpusService interface {
	QueryEngine

	// Build fetches, embeds and indexes the corpus.
	// Returns domain.ErrEmptyInput when no document could be fetched.
	Build(ctx context.Context, corpus domain.Corpus) (*domain.BuildReport, error)

	// Document returns a built document by ID.
	Document(id int) (domain.Document, error)

	// Documents returns every built document in ID order.
	Documents() []domain.Document
}
