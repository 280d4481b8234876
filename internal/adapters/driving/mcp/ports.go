package mcp

import (
	"github.com/custodia-labs/keysent/internal/core/ports/driven"
	"github.com/custodia-labs/keysent/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Rank ranks sentences.
	Rank driving.RankService

	// Corpus releases corpora loaded for path requests.
	Corpus driving.CorpusService

	// Settings supplies ranking defaults.
	Settings driving.SettingsService

	// Segmenter splits inline article content into sentences.
	Segmenter driven.PostProcessorPipeline
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Rank == nil {
		return ErrMissingRankService
	}
	// Corpus, Settings and Segmenter are optional
	return nil
}
