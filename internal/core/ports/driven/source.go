package driven

import (
	"context"

	"github.com/custodia-labs/semdex/internal/core/domain"
)

// DocumentSource fetches articles from an external corpus such as Wikipedia.
// Failures are per call; the ingestion driver decides whether to skip.
type DocumentSource interface {
	// Search returns up to limit page titles matching query, best first.
	Search(ctx context.Context, query string, limit int) ([]string, error)

	// Page fetches a single article by exact title.
	// Returns domain.ErrNotFound for a missing page and a
	// *domain.DisambiguationError for a disambiguation page.
	Page(ctx context.Context, title string) (domain.Article, error)
}

// ArticleCache persists fetched articles keyed by the requested title.
type ArticleCache interface {
	// Get returns the cached article for title, if present.
	Get(ctx context.Context, title string) (domain.Article, bool, error)

	// Put stores an article under the title it was requested by.
	// runID identifies the build that fetched it.
	Put(ctx context.Context, runID, title string, article domain.Article) error

	// Len returns the number of cached articles.
	Len(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}
