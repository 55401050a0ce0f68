package driven

// ConfigStore holds settings under dotted keys such as "query.k" or
// "embedding.provider". Typed getters return the zero value for a missing
// key or a value of another type.
type ConfigStore interface {
	// Get returns the raw value for key and whether it is set.
	Get(key string) (any, bool)

	GetString(key string) string
	GetInt(key string) int

	// GetFloat also accepts integer values.
	GetFloat(key string) float64

	GetBool(key string) bool
	GetStringSlice(key string) []string

	// Set stores value under key and persists the store.
	Set(key string, value any) error

	Save() error
	Load() error

	// Path returns where the store persists; memory stores return ":memory:".
	Path() string
}
