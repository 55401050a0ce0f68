// Package tui provides an interactive terminal user interface for semdex.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/semdex/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI needs.
type Ports struct {
	// Query answers nearest-neighbour queries. Required.
	Query driving.QueryEngine

	// Corpus enables the documents browser. Optional.
	Corpus driving.CorpusService

	// K is the initial number of hits per query.
	// Zero uses domain.DefaultK.
	K int

	// PreviewLength is how many runes of each hit are previewed.
	// Zero uses domain.DefaultPreviewLength.
	PreviewLength int
}

// NewPorts serves queries and the document list from one corpus.
func NewPorts(corpus driving.CorpusService, k, previewLength int) *Ports {
	return &Ports{
		Query:         corpus,
		Corpus:        corpus,
		K:             k,
		PreviewLength: previewLength,
	}
}

// Validate ensures required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Query == nil {
		return ErrMissingQueryEngine
	}
	if p.K < 0 || p.PreviewLength < 0 {
		return ErrInvalidPorts
	}
	return nil
}
