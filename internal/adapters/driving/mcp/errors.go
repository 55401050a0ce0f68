// Package mcp provides an MCP (Model Context Protocol) server adapter for semdex.
// It lets AI assistants run nearest-neighbour queries against the built
// corpus and read its documents.
package mcp

import "errors"

// ErrMissingQueryEngine is returned when the query engine is not provided.
var ErrMissingQueryEngine = errors.New("mcp: query engine is required")
