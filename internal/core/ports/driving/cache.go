package driving

import "context"

// CacheAdmin inspects and clears the on-disk article cache.
type CacheAdmin interface {
	// Path returns the cache file location.
	Path() string

	// Len returns the number of cached articles.
	Len(ctx context.Context) (int, error)

	// Purge removes every cached article and returns how many were removed.
	Purge(ctx context.Context) (int, error)

	Close() error
}
