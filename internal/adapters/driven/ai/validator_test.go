package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/semdex/internal/core/domain"
	"github.com/custodia-labs/semdex/internal/core/ports/driven"
)

func TestNewConfigValidator(t *testing.T) {
	validator := NewConfigValidator()

	require.NotNil(t, validator)
}

func TestConfigValidator_ImplementsInterface(t *testing.T) {
	var _ driven.AIConfigValidator = (*ConfigValidator)(nil)
}

func TestConfigValidator_ValidateEmbedding_NilConfig(t *testing.T) {
	validator := NewConfigValidator()

	err := validator.ValidateEmbedding(nil)

	assert.Error(t, err)
}

func TestConfigValidator_ValidateEmbedding_Hashing(t *testing.T) {
	validator := NewConfigValidator()
	config := &domain.EmbeddingSettings{
		Provider: domain.AIProviderHashing,
		Model:    "fnv-bag-of-words",
	}

	assert.NoError(t, validator.ValidateEmbedding(config))
}

func TestConfigValidator_ValidateEmbedding_Unreachable(t *testing.T) {
	validator := NewConfigValidator()
	config := &domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  "http://127.0.0.1:1",
	}

	assert.Error(t, validator.ValidateEmbedding(config))
}

func TestConfigValidator_ValidateEmbedding_ProbesDimensions(t *testing.T) {
	validator := NewConfigValidator()
	config := &domain.EmbeddingSettings{
		Provider:   domain.AIProviderHashing,
		Dimensions: 64,
	}

	assert.NoError(t, validator.ValidateEmbedding(config))
}
