package domain

// StopWordsEnglish and StopWordsNone are the built-in stop-word list names.
// Any other value is treated as the path of a newline-separated word list.
const (
	StopWordsEnglish = "english"
	StopWordsNone    = "none"
)

// SegmenterMode selects how article content is split into sentences.
type SegmenterMode string

// Available segmenters.
const (
	// SegmenterPunkt uses the unsupervised Punkt sentence boundary model.
	SegmenterPunkt SegmenterMode = "punkt"

	// SegmenterRegex splits on sentence terminators and blank lines.
	SegmenterRegex SegmenterMode = "regex"
)

// IsValid returns true if the segmenter is recognised.
func (m SegmenterMode) IsValid() bool {
	switch m {
	case SegmenterPunkt, SegmenterRegex:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m SegmenterMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the segmenter.
func (m SegmenterMode) Description() string {
	switch m {
	case SegmenterPunkt:
		return "Punkt (abbreviation-aware)"
	case SegmenterRegex:
		return "Regex (split on . ! ?)"
	default:
		return unknownDescription
	}
}

// RankingSettings holds the persisted defaults for ranking calls.
type RankingSettings struct {
	// TopK is the default number of sentences returned.
	TopK int

	// LengthPenalty is the default alpha coefficient.
	LengthPenalty float64

	// Scope is the default ranking scope.
	Scope Scope

	// StopWords is "english", "none", or a path to a word list file.
	StopWords string

	// MinDocumentFrequency prunes rare terms.
	MinDocumentFrequency int

	// IDF is the inverse document frequency formula.
	IDF IDFMode

	// Norm is the weight vector normalisation.
	Norm NormMode

	// Stem enables English stemming of vocabulary terms.
	Stem bool
}

// LoaderSettings holds corpus loading configuration.
type LoaderSettings struct {
	// Segmenter selects the sentence segmenter.
	Segmenter SegmenterMode

	// MinSentenceLength drops sentences with fewer characters after trimming.
	MinSentenceLength int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Ranking holds ranking defaults.
	Ranking RankingSettings

	// Loader holds corpus loading settings.
	Loader LoaderSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// Top 30 pooled sentences, alpha 0.1,
// English stop words, Punkt segmentation.
func DefaultAppSettings() AppSettings {
	opts := DefaultRankOptions()
	return AppSettings{
		Ranking: RankingSettings{
			TopK:                 opts.TopK,
			LengthPenalty:        opts.LengthPenalty,
			Scope:                opts.Scope,
			StopWords:            StopWordsEnglish,
			MinDocumentFrequency: opts.MinDocumentFrequency,
			IDF:                  opts.IDF,
			Norm:                 opts.Norm,
			Stem:                 false,
		},
		Loader: LoaderSettings{
			Segmenter:         SegmenterPunkt,
			MinSentenceLength: 1,
		},
	}
}

// AllScopes returns all available ranking scopes.
func AllScopes() []Scope {
	return []Scope{ScopePooled, ScopePerDocument}
}

// AllSegmenters returns all available segmenters.
func AllSegmenters() []SegmenterMode {
	return []SegmenterMode{SegmenterPunkt, SegmenterRegex}
}

// PipelineConfig holds post-processor pipeline configuration.
// Uses generic map-based config for extensibility - new processors can be added
// without modifying this struct.
type PipelineConfig struct {
	// Processors is the ordered list of processor names to run.
	Processors []string

	// ProcessorConfigs holds per-processor configuration as generic maps.
	// Key is processor name, value is processor-specific config.
	ProcessorConfigs map[string]map[string]any
}

// GetProcessorConfig returns config for a specific processor, or nil if not set.
func (c *PipelineConfig) GetProcessorConfig(name string) map[string]any {
	if c.ProcessorConfigs == nil {
		return nil
	}
	return c.ProcessorConfigs[name]
}

// PipelineConfigFor builds the sentence pipeline configuration for the
// given loader settings: segmentation followed by cleanup.
func PipelineConfigFor(loader LoaderSettings) PipelineConfig {
	mode := loader.Segmenter
	if !mode.IsValid() {
		mode = SegmenterPunkt
	}
	return PipelineConfig{
		Processors: []string{"segmenter", "cleaner"},
		ProcessorConfigs: map[string]map[string]any{
			"segmenter": {
				"mode": mode.String(),
			},
			"cleaner": {
				"min_length": loader.MinSentenceLength,
			},
		},
	}
}

// DefaultPipelineConfig returns the default pipeline configuration.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfigFor(DefaultAppSettings().Loader)
}
