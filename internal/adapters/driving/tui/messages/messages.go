// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/keysent/internal/core/domain"
)

// Pane identifies one of the two side-by-side ranking panes.
type Pane int

const (
	// PaneLeft is the left ranking pane.
	PaneLeft Pane = iota
	// PaneRight is the right ranking pane.
	PaneRight
)

// String returns the string representation of the pane.
func (p Pane) String() string {
	switch p {
	case PaneLeft:
		return "left"
	case PaneRight:
		return "right"
	default:
		return "unknown"
	}
}

// Other returns the opposite pane.
func (p Pane) Other() Pane {
	if p == PaneLeft {
		return PaneRight
	}
	return PaneLeft
}

// RankRequested asks a pane to load and rank the articles at Paths.
type RankRequested struct {
	Pane  Pane
	Paths []string
}

// CorpusRanked carries a ranking result back to a pane.
type CorpusRanked struct {
	Pane   Pane
	Result *domain.RankResult
	// Reloaded is set when the corpus was re-read after a source change.
	Reloaded bool
	Err      error
}

// SentenceSelected is sent when a ranked sentence is opened.
type SentenceSelected struct {
	Pane     Pane
	CorpusID string
	Sentence domain.ScoredSentence
}

// ContentLoaded carries the source text of a document.
type ContentLoaded struct {
	CorpusID string
	Label    string
	Content  string
	Err      error
}

// SourcesChanged signals that files behind a pane's corpus changed on disk.
type SourcesChanged struct {
	Pane     Pane
	CorpusID string
	Changes  []domain.Change
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewPanes is the two-pane ranking view.
	ViewPanes ViewType = iota
	// ViewSource shows the source text of a document.
	ViewSource
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewSettings is the settings configuration view.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewPanes:
		return "panes"
	case ViewSource:
		return "source"
	case ViewHelp:
		return "help"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
