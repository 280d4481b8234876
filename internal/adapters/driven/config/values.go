// Package config holds the dot-notation value table shared by the config
// store adapters.
package config

import (
	"maps"
	"strings"
	"sync"

	"github.com/custodia-labs/keysent/internal/core/ports/driven"
)

var _ driven.ConfigReader = (*Values)(nil)

// Values is a concurrency-safe table of configuration values keyed in dot
// notation ("ranking.top_k"). Stores embed it for driven.ConfigReader and
// add persistence.
type Values struct {
	mu   sync.RWMutex
	data map[string]any
}

// NewValues returns a table holding a copy of seed.
func NewValues(seed map[string]any) *Values {
	v := &Values{data: make(map[string]any, len(seed))}
	maps.Copy(v.data, seed)
	return v
}

// Get retrieves a value by key.
func (v *Values) Get(key string) (any, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	val, ok := v.data[key]
	return val, ok
}

// GetString returns the value as a string, or "" for any other type.
func (v *Values) GetString(key string) string {
	val, _ := v.Get(key)
	str, _ := val.(string)
	return str
}

// GetInt returns the value as an int. TOML integers decode as int64;
// floats are truncated.
func (v *Values) GetInt(key string) int {
	val, _ := v.Get(key)
	switch n := val.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// GetFloat returns the value as a float64. "alpha = 1" is a TOML integer,
// so integers are widened.
func (v *Values) GetFloat(key string) float64 {
	val, _ := v.Get(key)
	switch n := val.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

// GetBool returns the value as a bool, or false for any other type.
func (v *Values) GetBool(key string) bool {
	val, _ := v.Get(key)
	b, _ := val.(bool)
	return b
}

// GetStringSlice returns the value as a string slice. TOML arrays decode as
// []any, whose non-string items are skipped.
func (v *Values) GetStringSlice(key string) []string {
	val, _ := v.Get(key)
	switch items := val.(type) {
	case []string:
		return items
	case []any:
		result := make([]string, 0, len(items))
		for _, item := range items {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	default:
		return nil
	}
}

// Put stores a value.
func (v *Values) Put(key string, value any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.data[key] = value
}

// Replace swaps the whole table for a copy of data.
func (v *Values) Replace(data map[string]any) {
	fresh := make(map[string]any, len(data))
	maps.Copy(fresh, data)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.data = fresh
}

// Nested returns the table as nested maps, ready for encoding.
func (v *Values) Nested() map[string]any {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return Nest(v.data)
}

// Flatten converts nested maps to dot-notation keys:
// {"a": {"b": 1}} becomes {"a.b": 1}.
func Flatten(m map[string]any) map[string]any {
	result := make(map[string]any)
	flattenInto(result, m, "")
	return result
}

func flattenInto(dst, m map[string]any, prefix string) {
	for key, value := range m {
		if prefix != "" {
			key = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			flattenInto(dst, nested, key)
			continue
		}
		dst[key] = value
	}
}

// Nest is the inverse of Flatten: {"a.b": 1} becomes {"a": {"b": 1}}.
// A key that is both a value and a table prefix keeps the table.
func Nest(flat map[string]any) map[string]any {
	result := make(map[string]any)

	for key, value := range flat {
		parts := strings.Split(key, ".")
		node := result
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[part] = child
			}
			node = child
		}
		leaf := parts[len(parts)-1]
		if _, isTable := node[leaf].(map[string]any); isTable {
			continue
		}
		node[leaf] = value
	}

	return result
}
