// Package throttle wraps an EmbeddingService so that calls are serialised
// and rate limited. Providers such as a local Ollama server handle one
// inference at a time, and hosted APIs enforce request quotas.
package throttle

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/semdex/internal/core/ports/driven"
)

// Ensure Service implements the interface.
var _ driven.EmbeddingService = (*Service)(nil)

// Config holds throttling configuration.
type Config struct {
	// RequestsPerSecond is the sustained call rate. Zero or less disables
	// rate limiting but keeps serialisation.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size (default: 1).
	BurstSize int
}

// Service serialises calls to the wrapped EmbeddingService.
type Service struct {
	inner   driven.EmbeddingService
	limiter *rate.Limiter
	sem     chan struct{}
}

// New wraps inner with the given throttling configuration.
func New(inner driven.EmbeddingService, cfg Config) *Service {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = 1
	}
	return &Service{
		inner:   inner,
		limiter: rate.NewLimiter(limit, cfg.BurstSize),
		sem:     make(chan struct{}, 1),
	}
}

// Inner returns the wrapped service.
func (s *Service) Inner() driven.EmbeddingService {
	return s.inner
}

func (s *Service) acquire(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := s.limiter.Wait(ctx); err != nil {
		<-s.sem
		return err
	}
	return nil
}

func (s *Service) release() {
	<-s.sem
}

// Embed waits for its turn and then delegates.
func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.release()
	return s.inner.Embed(ctx, text)
}

// EmbedBatch waits for its turn and then delegates. A batch counts as one call.
func (s *Service) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.release()
	return s.inner.EmbedBatch(ctx, texts)
}

// Dimensions returns the wrapped service's dimensions.
func (s *Service) Dimensions() int {
	return s.inner.Dimensions()
}

// ModelName returns the wrapped service's model name.
func (s *Service) ModelName() string {
	return s.inner.ModelName()
}

// Ping is not throttled.
func (s *Service) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

// Close closes the wrapped service.
func (s *Service) Close() error {
	return s.inner.Close()
}
