package driven

import "github.com/custodia-labs/semdex/internal/core/domain"

// AIConfigValidator checks an embedding configuration before it is saved.
type AIConfigValidator interface {
	// ValidateEmbedding returns nil when the configured provider answers
	// and produces vectors of its advertised dimension.
	ValidateEmbedding(config *domain.EmbeddingSettings) error
}
