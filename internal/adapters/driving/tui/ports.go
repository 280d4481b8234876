// Package tui provides an interactive terminal user interface for keysent.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/keysent/internal/core/ports/driven"
	"github.com/custodia-labs/keysent/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Rank ranks the sentences of loaded articles.
	Rank driving.RankService

	// Corpus loads articles and serves their source text.
	Corpus driving.CorpusService

	// Settings manages application settings. Optional: without it panes
	// rank with the default options.
	Settings driving.SettingsService

	// Watcher reports source file changes. Optional: without it panes
	// only re-rank on request.
	Watcher driven.SourceWatcher
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	rank driving.RankService,
	corpus driving.CorpusService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Rank:     rank,
		Corpus:   corpus,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Rank == nil {
		return ErrMissingRankService
	}
	if p.Corpus == nil {
		return ErrMissingCorpusService
	}
	return nil
}
