package mcp

import (
	"github.com/custodia-labs/semdex/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server uses.
type Ports struct {
	// Query answers nearest-neighbour queries.
	Query driving.QueryEngine

	// Corpus exposes the built documents as resources. Optional.
	Corpus driving.CorpusService

	// DefaultK is used when a tool call gives no k. Zero selects domain.DefaultK.
	DefaultK int
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryEngine
	}
	return nil
}
