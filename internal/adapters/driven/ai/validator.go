package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/semdex/internal/core/domain"
	"github.com/custodia-labs/semdex/internal/core/ports/driven"
)

// Ensure ConfigValidator implements the interface.
var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// probeText is embedded once to confirm the provider's vector size.
const probeText = "semdex dimension probe"

// ConfigValidator checks that an embedding configuration can serve the
// index: the provider answers and its vectors have the advertised size.
type ConfigValidator struct {
	timeout time.Duration
}

// NewConfigValidator creates a validator that gives each check pingTimeout.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{timeout: pingTimeout}
}

// ValidateEmbedding pings the configured provider and embeds a probe
// text. A vector whose length differs from the service's Dimensions is
// reported as domain.ErrDimensionMismatch, since the flat index would
// reject it at build time.
func (v *ConfigValidator) ValidateEmbedding(config *domain.EmbeddingSettings) error {
	svc, err := CreateEmbeddingService(config)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), v.timeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		return err
	}
	vec, err := svc.Embed(ctx, probeText)
	if err != nil {
		return fmt.Errorf("%w: probe embedding: %w", domain.ErrEmbeddingFailure, err)
	}
	if want := svc.Dimensions(); want > 0 && len(vec) != want {
		return fmt.Errorf("%w: %s returned %d values, expected %d",
			domain.ErrDimensionMismatch, svc.ModelName(), len(vec), want)
	}
	return nil
}
