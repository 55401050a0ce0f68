// Package domain defines the core entities for semdex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An ingested article with its stable positional ID
//   - SearchResult: One ranked nearest-neighbour match
//   - Hit: A SearchResult joined with its Document
//   - Corpus: The topics a build fetches
//   - FetchOutcome: The typed result of one fetch attempt
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
