package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Vector Index Errors.

	// ErrDimensionMismatch indicates a vector whose length differs from the
	// index dimension, or a batch whose vectors differ in length.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrEmptyInput indicates an index build from zero vectors, or an
	// ingestion run in which no document survived.
	ErrEmptyInput = errors.New("empty input")

	// ErrInvalidK indicates a non-positive neighbour count.
	ErrInvalidK = errors.New("k must be positive")

	// Embedding Errors.

	// ErrEmbeddingFailure indicates the embedding provider failed to embed a text.
	ErrEmbeddingFailure = errors.New("embedding failure")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured
	// or did not answer a health check.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrTimeout indicates an I/O call exceeded its deadline.
	ErrTimeout = errors.New("timeout")

	// Pipeline Errors.

	// ErrNotBuilt indicates a query against a pipeline that has not been built.
	ErrNotBuilt = errors.New("index not built")

	// ErrDisambiguation indicates a page title resolved to a disambiguation page.
	// Use errors.As with *DisambiguationError to read the options.
	ErrDisambiguation = errors.New("disambiguation page")

	// ErrConfigNotFound indicates a configuration key has no value.
	ErrConfigNotFound = errors.New("config key not found")
)

// DisambiguationError is returned by a document source when a title names
// a disambiguation page rather than an article.
type DisambiguationError struct {
	// Title is the requested title.
	Title string

	// Options are the candidate article titles, in source order.
	Options []string
}

func (e *DisambiguationError) Error() string {
	if len(e.Options) == 0 {
		return fmt.Sprintf("%q may refer to several pages", e.Title)
	}
	return fmt.Sprintf("%q may refer to: %s", e.Title, strings.Join(e.Options, ", "))
}

// Is reports whether target is ErrDisambiguation.
func (e *DisambiguationError) Is(target error) bool {
	return target == ErrDisambiguation
}
