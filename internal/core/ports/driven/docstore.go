package driven

import "github.com/custodia-labs/semdex/internal/core/domain"

// DocumentStore holds the ingested corpus in insertion order.
// It is append-only: IDs are assigned sequentially from 0 and never reused.
type DocumentStore interface {
	// Append stores a document and returns its ID. It always succeeds.
	Append(title, content, url, category string) int

	// Get retrieves a document by ID.
	// Returns domain.ErrNotFound if id is outside [0, Len()).
	Get(id int) (domain.Document, error)

	// Len returns the number of stored documents.
	Len() int

	// All returns every document in ID order.
	All() []domain.Document
}
