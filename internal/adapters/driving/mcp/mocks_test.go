package mcp

import (
	"context"
	"strings"

	"github.com/custodia-labs/keysent/internal/core/domain"
)

// mockRankService is a mock implementation of driving.RankService.
type mockRankService struct {
	ranked    []domain.ScoredSentence
	result    *domain.RankResult
	err       error
	docs      []domain.Document
	paths     []string
	opts      domain.RankOptions
	corpusIDs []string
}

func (m *mockRankService) Rank(
	_ context.Context,
	docs []domain.Document,
	opts domain.RankOptions,
) ([]domain.ScoredSentence, error) {
	m.docs = docs
	m.opts = opts
	return m.ranked, m.err
}

func (m *mockRankService) RankPaths(
	_ context.Context,
	paths []string,
	opts domain.RankOptions,
) (*domain.RankResult, error) {
	m.paths = paths
	m.opts = opts
	return m.result, m.err
}

func (m *mockRankService) RankCorpus(
	_ context.Context,
	corpusID string,
	opts domain.RankOptions,
) (*domain.RankResult, error) {
	m.corpusIDs = append(m.corpusIDs, corpusID)
	m.opts = opts
	return m.result, m.err
}

// mockCorpusService is a mock implementation of driving.CorpusService.
type mockCorpusService struct {
	released []string
	err      error
}

func (m *mockCorpusService) Load(_ context.Context, _ []string) (*domain.Corpus, error) {
	return nil, m.err
}

func (m *mockCorpusService) Get(_ context.Context, _ string) (*domain.Corpus, error) {
	return nil, m.err
}

func (m *mockCorpusService) Content(_ context.Context, _, _ string) (string, error) {
	return "", m.err
}

func (m *mockCorpusService) Labels(_ context.Context, _ string) ([]string, error) {
	return nil, m.err
}

func (m *mockCorpusService) Reload(_ context.Context, _ string) (*domain.Corpus, error) {
	return nil, m.err
}

func (m *mockCorpusService) Release(_ context.Context, corpusID string) error {
	m.released = append(m.released, corpusID)
	return m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.AppSettings
	opts     *domain.RankOptions
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.settings != nil {
		return m.settings, nil
	}
	s := domain.DefaultAppSettings()
	return &s, nil
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error { return m.err }

func (m *mockSettingsService) SetScope(_ domain.Scope) error { return m.err }

func (m *mockSettingsService) SetTopK(_ int) error { return m.err }

func (m *mockSettingsService) SetLengthPenalty(_ float64) error { return m.err }

func (m *mockSettingsService) SetStopWords(_ string) error { return m.err }

func (m *mockSettingsService) SetSegmenter(_ domain.SegmenterMode) error { return m.err }

func (m *mockSettingsService) Validate() error { return m.err }

func (m *mockSettingsService) RankOptions() (domain.RankOptions, error) {
	if m.err != nil {
		return domain.RankOptions{}, m.err
	}
	if m.opts != nil {
		return *m.opts, nil
	}
	return domain.DefaultRankOptions(), nil
}

func (m *mockSettingsService) PipelineConfig() domain.PipelineConfig {
	return domain.DefaultPipelineConfig()
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// mockSegmenter splits content on ". " for predictable sentences.
type mockSegmenter struct {
	err error
}

func (m *mockSegmenter) Process(_ context.Context, doc *domain.Document) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []string
	for _, part := range strings.Split(doc.Content, ". ") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out, nil
}
