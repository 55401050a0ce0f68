package driven

import "github.com/custodia-labs/semdex/internal/core/domain"

// VectorIndex stores embeddings positionally aligned with document IDs and
// answers exact k-nearest-neighbour queries.
// Position i in the index is document i in the DocumentStore.
//
// Vectors are append-only; there is no delete or update. Stored vectors
// are never exposed, only search results.
type VectorIndex interface {
	// Add appends one vector. Returns domain.ErrDimensionMismatch when its
	// length differs from Dimension.
	Add(vector []float32) error

	// Search returns the min(k, Len) nearest vectors to query, ordered by
	// ascending distance with ties going to the smaller document ID.
	// Returns domain.ErrDimensionMismatch or domain.ErrInvalidK on bad input.
	Search(query []float32, k int) ([]domain.SearchResult, error)

	// Len returns the number of stored vectors.
	Len() int

	// Dimension returns the fixed vector length.
	Dimension() int
}

// VectorIndexBuilder constructs a VectorIndex from a non-empty batch of
// equal-length vectors. Returns domain.ErrEmptyInput for an empty batch and
// domain.ErrDimensionMismatch when lengths differ.
type VectorIndexBuilder func(vectors [][]float32) (VectorIndex, error)
