// Package driving holds the use cases the CLI, TUI and MCP adapters call:
// ranking sentences, loading corpora and editing settings. Each interface is
// implemented by a service in internal/core/services.
package driving
