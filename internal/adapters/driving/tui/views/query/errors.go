package query

import "errors"

// ErrNoQueryEngine indicates that no query engine was provided.
var ErrNoQueryEngine = errors.New("query engine is required")
