package tui

import "errors"

// ErrMissingQueryEngine is returned when the query engine is not provided.
var ErrMissingQueryEngine = errors.New("tui: query engine is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
