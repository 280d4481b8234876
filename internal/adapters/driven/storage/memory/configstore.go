package memory

import (
	"github.com/custodia-labs/keysent/internal/adapters/driven/config"
	"github.com/custodia-labs/keysent/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is an in-memory implementation of driven.ConfigStore.
// Used by tests and by the MCP server when no config file is wanted.
type ConfigStore struct {
	*config.Values
}

// NewConfigStore creates a new in-memory config store.
func NewConfigStore() *ConfigStore {
	return NewConfigStoreWith(nil)
}

// NewConfigStoreWith creates an in-memory config store seeded with values.
// The map is copied.
func NewConfigStoreWith(values map[string]any) *ConfigStore {
	return &ConfigStore{Values: config.NewValues(values)}
}

// Set stores a configuration value.
func (s *ConfigStore) Set(key string, value any) error {
	s.Put(key, value)
	return nil
}

// Save is a no-op for the memory store.
func (s *ConfigStore) Save() error { return nil }

// Load is a no-op for the memory store.
func (s *ConfigStore) Load() error { return nil }

// Path returns ":memory:".
func (s *ConfigStore) Path() string { return ":memory:" }
