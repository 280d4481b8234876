package services

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/custodia-labs/keysent/internal/core/domain"
	"github.com/custodia-labs/keysent/internal/core/ports/driven"
	"github.com/custodia-labs/keysent/internal/core/ports/driving"
	"github.com/custodia-labs/keysent/internal/ranking"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyTopK          = "ranking.top_k"
	keyLengthPenalty = "ranking.length_penalty"
	keyScope         = "ranking.scope"
	keyStopWords     = "ranking.stop_words"
	keyMinDF         = "ranking.min_df"
	keyIDF           = "ranking.idf"
	keyNorm          = "ranking.norm"
	keyStem          = "ranking.stem"
	keySegmenter     = "loader.segmenter"
	keyMinSentence   = "loader.min_sentence_length"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
// Missing or invalid stored values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Ranking: domain.RankingSettings{
			TopK:                 s.getPositiveInt(keyTopK, defaults.Ranking.TopK),
			LengthPenalty:        s.getLengthPenalty(defaults.Ranking.LengthPenalty),
			Scope:                s.getScope(defaults.Ranking.Scope),
			StopWords:            s.getString(keyStopWords, defaults.Ranking.StopWords),
			MinDocumentFrequency: s.getPositiveInt(keyMinDF, defaults.Ranking.MinDocumentFrequency),
			IDF:                  s.getIDF(defaults.Ranking.IDF),
			Norm:                 s.getNorm(defaults.Ranking.Norm),
			Stem:                 s.getBool(keyStem, defaults.Ranking.Stem),
		},
		Loader: domain.LoaderSettings{
			Segmenter:         s.getSegmenter(defaults.Loader.Segmenter),
			MinSentenceLength: s.getPositiveInt(keyMinSentence, defaults.Loader.MinSentenceLength),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}

	values := []struct {
		key   string
		value any
	}{
		{keyTopK, settings.Ranking.TopK},
		{keyLengthPenalty, settings.Ranking.LengthPenalty},
		{keyScope, settings.Ranking.Scope.String()},
		{keyStopWords, settings.Ranking.StopWords},
		{keyMinDF, settings.Ranking.MinDocumentFrequency},
		{keyIDF, settings.Ranking.IDF.String()},
		{keyNorm, settings.Ranking.Norm.String()},
		{keyStem, settings.Ranking.Stem},
		{keySegmenter, settings.Loader.Segmenter.String()},
		{keyMinSentence, settings.Loader.MinSentenceLength},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// SetScope updates the default ranking scope.
func (s *SettingsService) SetScope(scope domain.Scope) error {
	if !scope.IsValid() {
		return fmt.Errorf("%w: unknown scope %q", domain.ErrInvalidArgument, scope)
	}
	return s.update(func(settings *domain.AppSettings) {
		settings.Ranking.Scope = scope
	})
}

// SetTopK updates the default number of returned sentences.
func (s *SettingsService) SetTopK(topK int) error {
	if topK <= 0 {
		return fmt.Errorf("%w: top-k must be positive, got %d", domain.ErrInvalidArgument, topK)
	}
	return s.update(func(settings *domain.AppSettings) {
		settings.Ranking.TopK = topK
	})
}

// SetLengthPenalty updates the default alpha coefficient.
func (s *SettingsService) SetLengthPenalty(alpha float64) error {
	if !validPenalty(alpha) {
		return fmt.Errorf("%w: length penalty must be a finite value >= 0, got %v", domain.ErrInvalidArgument, alpha)
	}
	return s.update(func(settings *domain.AppSettings) {
		settings.Ranking.LengthPenalty = alpha
	})
}

// SetStopWords updates the stop-word list. A list other than "english" or
// "none" must name a readable file.
func (s *SettingsService) SetStopWords(list string) error {
	if _, err := loadStopWords(list); err != nil {
		return err
	}
	return s.update(func(settings *domain.AppSettings) {
		settings.Ranking.StopWords = list
	})
}

// SetSegmenter updates the sentence segmenter used when loading articles.
func (s *SettingsService) SetSegmenter(mode domain.SegmenterMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: unknown segmenter %q", domain.ErrInvalidArgument, mode)
	}
	return s.update(func(settings *domain.AppSettings) {
		settings.Loader.Segmenter = mode
	})
}

// Validate checks that the current settings form valid rank options.
func (s *SettingsService) Validate() error {
	opts, err := s.RankOptions()
	if err != nil {
		return err
	}
	return opts.Validate()
}

// RankOptions converts the current settings into ranking options,
// resolving the stop-word list.
func (s *SettingsService) RankOptions() (domain.RankOptions, error) {
	settings, err := s.Get()
	if err != nil {
		return domain.RankOptions{}, err
	}

	stop, err := loadStopWords(settings.Ranking.StopWords)
	if err != nil {
		return domain.RankOptions{}, err
	}

	return domain.RankOptions{
		TopK:                 settings.Ranking.TopK,
		StopWords:            stop,
		LengthPenalty:        settings.Ranking.LengthPenalty,
		Scope:                settings.Ranking.Scope,
		IDF:                  settings.Ranking.IDF,
		Norm:                 settings.Ranking.Norm,
		MinDocumentFrequency: settings.Ranking.MinDocumentFrequency,
		Stem:                 settings.Ranking.Stem,
	}, nil
}

// PipelineConfig returns the sentence pipeline for the current loader settings.
func (s *SettingsService) PipelineConfig() domain.PipelineConfig {
	settings, err := s.Get()
	if err != nil {
		return domain.DefaultPipelineConfig()
	}
	return domain.PipelineConfigFor(settings.Loader)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) update(apply func(*domain.AppSettings)) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	apply(settings)
	return s.Save(settings)
}

// LoadStopWords resolves a stop-word list name: "english" is the built-in
// English list, "none" (or empty) is no list, anything else is read as a
// newline-separated word file.
func LoadStopWords(list string) (map[string]struct{}, error) {
	return loadStopWords(list)
}

func loadStopWords(list string) (map[string]struct{}, error) {
	switch list {
	case domain.StopWordsEnglish:
		return ranking.EnglishStopWords(), nil
	case domain.StopWordsNone, "":
		return map[string]struct{}{}, nil
	}

	f, err := os.Open(list)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: stop-word list %s", domain.ErrNotFound, list)
		}
		return nil, fmt.Errorf("open stop-word list: %w", err)
	}
	defer f.Close()

	words, err := ranking.ReadStopWords(f)
	if err != nil {
		return nil, fmt.Errorf("read stop-word list %s: %w", list, err)
	}
	return words, nil
}

func validPenalty(alpha float64) bool {
	return !math.IsNaN(alpha) && !math.IsInf(alpha, 0) && alpha >= 0
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

// getLengthPenalty distinguishes a stored zero (penalty disabled) from a
// missing key.
func (s *SettingsService) getLengthPenalty(defaultVal float64) float64 {
	raw, exists := s.configStore.Get(keyLengthPenalty)
	if !exists {
		return defaultVal
	}
	switch raw.(type) {
	case float64, float32, int, int64:
	default:
		return defaultVal
	}
	val := s.configStore.GetFloat(keyLengthPenalty)
	if !validPenalty(val) {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getScope(defaultVal domain.Scope) domain.Scope {
	scope := domain.Scope(s.configStore.GetString(keyScope))
	if !scope.IsValid() {
		return defaultVal
	}
	return scope
}

func (s *SettingsService) getIDF(defaultVal domain.IDFMode) domain.IDFMode {
	mode := domain.IDFMode(s.configStore.GetString(keyIDF))
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}

func (s *SettingsService) getNorm(defaultVal domain.NormMode) domain.NormMode {
	mode := domain.NormMode(s.configStore.GetString(keyNorm))
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}

func (s *SettingsService) getSegmenter(defaultVal domain.SegmenterMode) domain.SegmenterMode {
	mode := domain.SegmenterMode(s.configStore.GetString(keySegmenter))
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}
