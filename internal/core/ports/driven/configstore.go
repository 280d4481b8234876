package driven

// ConfigReader is the read side of a ConfigStore. Keys use dot notation
// ("ranking.top_k"). Typed getters return the zero value when a key is
// missing or holds an incompatible type.
type ConfigReader interface {
	// Get returns the raw value and whether the key exists.
	Get(key string) (any, bool)

	GetString(key string) string

	// GetInt accepts any integer value.
	GetInt(key string) int

	// GetFloat widens integer values, so "length_penalty = 1" reads as 1.0.
	GetFloat(key string) float64

	GetBool(key string) bool
	GetStringSlice(key string) []string
}

// ConfigStore holds application settings between runs.
type ConfigStore interface {
	ConfigReader

	// Set stores a value. File-backed stores persist it immediately.
	Set(key string, value any) error

	// Save persists every value.
	Save() error

	// Load replaces the values with those in storage.
	Load() error

	// Path returns where the values are stored.
	Path() string
}
