package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies an embedding service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderHashing is the built-in offline feature-hashing embedder.
	AIProviderHashing AIProvider = "hashing"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderHashing:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// IsLocal returns true if this provider runs without a cloud account.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama || p == AIProviderHashing
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderHashing:
		return "Feature hashing (offline)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama, or an OpenAI-compatible proxy).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// Dimensions overrides the model's vector size. Zero uses the model default.
	Dimensions int

	// Timeout bounds a single embedding request.
	Timeout time.Duration

	// RequestsPerSecond throttles calls to the provider. Zero disables the limit.
	RequestsPerSecond float64
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// SourceSettings configures the Wikipedia document source.
type SourceSettings struct {
	// BaseURL is the MediaWiki Action API endpoint.
	BaseURL string

	// UserAgent is sent with every request.
	UserAgent string

	// RequestsPerSecond limits the request rate against the API.
	RequestsPerSecond float64
}

// IngestSettings configures corpus ingestion.
type IngestSettings struct {
	// Workers is the size of the fetch worker pool.
	Workers int

	// FetchTimeout bounds a single fetch call.
	FetchTimeout time.Duration

	// Cache enables the SQLite article cache.
	Cache bool

	// CachePath is the SQLite article cache file. Empty places it next to
	// the config file.
	CachePath string
}

// QuerySettings configures query execution and display.
type QuerySettings struct {
	// K is the default number of neighbours returned.
	K int

	// ContentLength is the number of content runes carried in results.
	ContentLength int

	// PreviewLength is the number of content runes printed per hit.
	PreviewLength int

	// Timeout bounds the query embedding call.
	Timeout time.Duration
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// Source holds document source settings.
	Source SourceSettings

	// Ingest holds ingestion settings.
	Ingest IngestSettings

	// Query holds query settings.
	Query QuerySettings
}

// Default values used when a setting is absent from the config file.
const (
	DefaultSourceURL       = "https://en.wikipedia.org/w/api.php"
	DefaultUserAgent       = "semdex/0.1 (https://github.com/custodia-labs/semdex)"
	DefaultWorkers         = 4
	DefaultK               = 2
	DefaultContentLength   = 200
	DefaultPreviewLength   = 100
	DefaultHashDimensions  = 384
	DefaultFetchTimeout    = 15 * time.Second
	DefaultEmbedTimeout    = 60 * time.Second
	DefaultQueryTimeout    = 30 * time.Second
	DefaultSourceRateLimit = 5.0
)

// DefaultAppSettings returns settings with sensible defaults.
// The offline hashing embedder is selected so a fresh install works
// without any model server.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{
			Provider:   AIProviderHashing,
			Model:      DefaultEmbeddingModels()[AIProviderHashing],
			Dimensions: DefaultHashDimensions,
			Timeout:    DefaultEmbedTimeout,
		},
		Source: SourceSettings{
			BaseURL:           DefaultSourceURL,
			UserAgent:         DefaultUserAgent,
			RequestsPerSecond: DefaultSourceRateLimit,
		},
		Ingest: IngestSettings{
			Workers:      DefaultWorkers,
			FetchTimeout: DefaultFetchTimeout,
			Cache:        true,
		},
		Query: QuerySettings{
			K:             DefaultK,
			ContentLength: DefaultContentLength,
			PreviewLength: DefaultPreviewLength,
			Timeout:       DefaultQueryTimeout,
		},
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderHashing,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:  "all-minilm",
		AIProviderOpenAI:  "text-embedding-3-small",
		AIProviderHashing: "fnv-bag-of-words",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
		// Built-in
		"fnv-bag-of-words": DefaultHashDimensions,
	}
}
