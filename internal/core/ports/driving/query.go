package driving

import (
	"context"

	"github.com/custodia-labs/semdex/internal/core/domain"
)

// QueryEngine answers nearest-neighbour queries over a built corpus.
type QueryEngine interface {
	// Query embeds text, searches the vector index for the k nearest
	// documents and joins each result with its document.
	// Results are ordered best first with ranks 1..n.
	Query(ctx context.Context, text string, k int) ([]domain.Hit, error)
}
