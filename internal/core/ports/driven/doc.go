// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for a build to run:
//
//   - DocumentSource: Fetches articles by search query or title
//   - EmbeddingService: Generates vector embeddings
//   - VectorIndexBuilder: Builds a VectorIndex from a batch of vectors
//   - DocumentStore: Append-only document storage
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ArticleCache: Persists fetched articles between runs. Without it every
//     build fetches from the source.
//   - AIConfigValidator: Checks provider connectivity from settings.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
