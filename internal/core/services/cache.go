package services

import (
	"context"

	"github.com/custodia-labs/semdex/internal/core/domain"
	"github.com/custodia-labs/semdex/internal/core/ports/driven"
	"github.com/custodia-labs/semdex/internal/logger"
)

// Ensure CachedSource implements the interface.
var _ driven.DocumentSource = (*CachedSource)(nil)

// CachedSource serves page fetches from an article cache before falling
// back to the wrapped source. Search results are never cached.
// Cache read and write failures are logged and otherwise ignored.
type CachedSource struct {
	source driven.DocumentSource
	cache  driven.ArticleCache
}

// NewCachedSource wraps source with cache.
func NewCachedSource(source driven.DocumentSource, cache driven.ArticleCache) *CachedSource {
	return &CachedSource{source: source, cache: cache}
}

// Search passes through to the wrapped source.
func (c *CachedSource) Search(ctx context.Context, query string, limit int) ([]string, error) {
	return c.source.Search(ctx, query, limit)
}

// Page returns the cached article for title or fetches and caches it.
func (c *CachedSource) Page(ctx context.Context, title string) (domain.Article, error) {
	article, ok, err := c.cache.Get(ctx, title)
	switch {
	case err != nil:
		logger.Warn("Article cache read for %q failed: %v", title, err)
	case ok:
		logger.Debug("Article cache hit: %s", title)
		return article, nil
	}

	article, err = c.source.Page(ctx, title)
	if err != nil {
		return domain.Article{}, err
	}
	if err := c.cache.Put(ctx, RunIDFrom(ctx), title, article); err != nil {
		logger.Warn("Article cache write for %q failed: %v", title, err)
	}
	return article, nil
}
