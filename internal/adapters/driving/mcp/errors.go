// Package mcp provides an MCP (Model Context Protocol) server adapter for keysent.
// It lets AI assistants rank the key sentences of articles they hold or can point to.
package mcp

import "errors"

// ErrMissingRankService is returned when the rank service is not provided.
var ErrMissingRankService = errors.New("mcp: rank service is required")
