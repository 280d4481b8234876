package driving

import "github.com/custodia-labs/keysent/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetScope updates the default ranking scope.
	SetScope(scope domain.Scope) error

	// SetTopK updates the default number of returned sentences.
	SetTopK(topK int) error

	// SetLengthPenalty updates the default alpha coefficient.
	SetLengthPenalty(alpha float64) error

	// SetStopWords updates the stop-word list ("english", "none" or a path).
	SetStopWords(list string) error

	// SetSegmenter updates the sentence segmenter used when loading articles.
	SetSegmenter(mode domain.SegmenterMode) error

	// Validate checks that the current settings form valid rank options.
	Validate() error

	// RankOptions converts the current settings into ranking options,
	// resolving the stop-word list.
	RankOptions() (domain.RankOptions, error)

	// PipelineConfig returns the sentence pipeline for the current loader settings.
	PipelineConfig() domain.PipelineConfig

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
