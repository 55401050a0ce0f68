package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/semdex/internal/core/domain"
	"github.com/custodia-labs/semdex/internal/core/ports/driven"
	"github.com/custodia-labs/semdex/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyEmbedProvider   = "embedding.provider"
	keyEmbedModel      = "embedding.model"
	keyEmbedBaseURL    = "embedding.base_url"
	keyEmbedAPIKey     = "embedding.api_key"
	keyEmbedDims       = "embedding.dimensions"
	keyEmbedTimeout    = "embedding.timeout"
	keyEmbedRPS        = "embedding.requests_per_second"
	keySourceBaseURL   = "source.base_url"
	keySourceUserAgent = "source.user_agent"
	keySourceRPS       = "source.requests_per_second"
	keyIngestWorkers   = "ingest.workers"
	keyIngestTimeout   = "ingest.fetch_timeout"
	keyIngestCache     = "ingest.cache"
	keyIngestCachePath = "ingest.cache_path"
	keyQueryK          = "query.k"
	keyQueryContent    = "query.content_length"
	keyQueryPreview    = "query.preview_length"
	keyQueryTimeout    = "query.timeout"
)

type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindFloat
	kindBool
	kindDuration
	kindProvider
)

var keyKinds = map[string]keyKind{
	keyEmbedProvider:   kindProvider,
	keyEmbedModel:      kindString,
	keyEmbedBaseURL:    kindString,
	keyEmbedAPIKey:     kindString,
	keyEmbedDims:       kindInt,
	keyEmbedTimeout:    kindDuration,
	keyEmbedRPS:        kindFloat,
	keySourceBaseURL:   kindString,
	keySourceUserAgent: kindString,
	keySourceRPS:       kindFloat,
	keyIngestWorkers:   kindInt,
	keyIngestTimeout:   kindDuration,
	keyIngestCache:     kindBool,
	keyIngestCachePath: kindString,
	keyQueryK:          kindInt,
	keyQueryContent:    kindInt,
	keyQueryPreview:    kindInt,
	keyQueryTimeout:    kindDuration,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
// The aiValidator is optional (can be nil).
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings, filling absent keys with defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	d := domain.DefaultAppSettings()

	provider := s.getProvider(d.Embedding.Provider)
	model := s.getString(keyEmbedModel, "")
	if model == "" {
		model = domain.DefaultEmbeddingModels()[provider]
	}
	dims := s.configStore.GetInt(keyEmbedDims)
	if dims == 0 && provider == domain.AIProviderHashing {
		dims = d.Embedding.Dimensions
	}

	settings := &domain.AppSettings{
		Embedding: domain.EmbeddingSettings{
			Provider:          provider,
			Model:             model,
			BaseURL:           s.configStore.GetString(keyEmbedBaseURL), // No default - adapters pick their own
			APIKey:            s.configStore.GetString(keyEmbedAPIKey),
			Dimensions:        dims,
			Timeout:           s.getDuration(keyEmbedTimeout, d.Embedding.Timeout),
			RequestsPerSecond: s.configStore.GetFloat(keyEmbedRPS),
		},
		Source: domain.SourceSettings{
			BaseURL:           s.getString(keySourceBaseURL, d.Source.BaseURL),
			UserAgent:         s.getString(keySourceUserAgent, d.Source.UserAgent),
			RequestsPerSecond: s.getFloat(keySourceRPS, d.Source.RequestsPerSecond),
		},
		Ingest: domain.IngestSettings{
			Workers:      s.getInt(keyIngestWorkers, d.Ingest.Workers),
			FetchTimeout: s.getDuration(keyIngestTimeout, d.Ingest.FetchTimeout),
			Cache:        s.getBool(keyIngestCache, d.Ingest.Cache),
			CachePath:    s.configStore.GetString(keyIngestCachePath),
		},
		Query: domain.QuerySettings{
			K:             s.getInt(keyQueryK, d.Query.K),
			ContentLength: s.getInt(keyQueryContent, d.Query.ContentLength),
			PreviewLength: s.getInt(keyQueryPreview, d.Query.PreviewLength),
			Timeout:       s.getDuration(keyQueryTimeout, d.Query.Timeout),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyEmbedProvider, settings.Embedding.Provider.String()},
		{keyEmbedModel, settings.Embedding.Model},
		{keyEmbedBaseURL, settings.Embedding.BaseURL},
		{keyEmbedDims, settings.Embedding.Dimensions},
		{keyEmbedTimeout, settings.Embedding.Timeout.String()},
		{keyEmbedRPS, settings.Embedding.RequestsPerSecond},
		{keySourceBaseURL, settings.Source.BaseURL},
		{keySourceUserAgent, settings.Source.UserAgent},
		{keySourceRPS, settings.Source.RequestsPerSecond},
		{keyIngestWorkers, settings.Ingest.Workers},
		{keyIngestTimeout, settings.Ingest.FetchTimeout.String()},
		{keyIngestCache, settings.Ingest.Cache},
		{keyIngestCachePath, settings.Ingest.CachePath},
		{keyQueryK, settings.Query.K},
		{keyQueryContent, settings.Query.ContentLength},
		{keyQueryPreview, settings.Query.PreviewLength},
		{keyQueryTimeout, settings.Query.Timeout.String()},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	if settings.Embedding.APIKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, settings.Embedding.APIKey); err != nil {
			return fmt.Errorf("save %s: %w", keyEmbedAPIKey, err)
		}
	}
	return nil
}

// Set parses value according to the key's type and stores it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := keyKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var parsed any
	switch kind {
	case kindString:
		parsed = value
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		parsed = n
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		parsed = f
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		parsed = b
	case kindDuration:
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return fmt.Errorf("%w: %s must be a duration such as 30s", domain.ErrInvalidInput, key)
		}
		parsed = d.String()
	case kindProvider:
		p := domain.AIProvider(strings.ToLower(value))
		if !p.IsValid() {
			return fmt.Errorf("%w: unknown embedding provider %q", domain.ErrInvalidInput, value)
		}
		parsed = p.String()
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns every recognised config key in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(keyKinds))
	for k := range keyKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid embedding provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.Embedding.Model = model
	} else {
		settings.Embedding.Model = domain.DefaultEmbeddingModels()[provider]
	}

	// Local HTTP providers need a base URL; the others use their own default
	if provider == domain.AIProviderOllama {
		if settings.Embedding.BaseURL == "" {
			settings.Embedding.BaseURL = "http://localhost:11434"
		}
	} else {
		settings.Embedding.BaseURL = ""
	}

	settings.Embedding.APIKey = apiKey

	// Update vector dimensions based on model
	if d, ok := domain.EmbeddingDimensions()[settings.Embedding.Model]; ok {
		settings.Embedding.Dimensions = d
	}

	return s.Save(settings)
}

// Validate checks if current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Embedding.IsConfigured() {
		return fmt.Errorf("embedding provider %q is not fully configured", settings.Embedding.Provider)
	}
	if settings.Ingest.Workers < 1 {
		return fmt.Errorf("%s must be at least 1", keyIngestWorkers)
	}
	if settings.Query.K < 1 {
		return fmt.Errorf("%s must be at least 1", keyQueryK)
	}
	if settings.Source.BaseURL == "" {
		return fmt.Errorf("%s must be set", keySourceBaseURL)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getProvider(defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(keyEmbedProvider)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
