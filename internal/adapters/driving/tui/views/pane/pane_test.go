package pane

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/keysent/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/keysent/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/keysent/internal/core/domain"
)

// MockRankService implements driving.RankService for testing.
type MockRankService struct {
	RankPathsFunc  func(ctx context.Context, paths []string, opts domain.RankOptions) (*domain.RankResult, error)
	RankCorpusFunc func(ctx context.Context, corpusID string, opts domain.RankOptions) (*domain.RankResult, error)
}

func (m *MockRankService) Rank(
	ctx context.Context, docs []domain.Document, opts domain.RankOptions,
) ([]domain.ScoredSentence, error) {
	return nil, nil
}

func (m *MockRankService) RankPaths(
	ctx context.Context, paths []string, opts domain.RankOptions,
) (*domain.RankResult, error) {
	if m.RankPathsFunc != nil {
		return m.RankPathsFunc(ctx, paths, opts)
	}
	return &domain.RankResult{CorpusID: "corpus-1"}, nil
}

func (m *MockRankService) RankCorpus(
	ctx context.Context, corpusID string, opts domain.RankOptions,
) (*domain.RankResult, error) {
	if m.RankCorpusFunc != nil {
		return m.RankCorpusFunc(ctx, corpusID, opts)
	}
	return &domain.RankResult{CorpusID: corpusID}, nil
}

// MockCorpusService implements driving.CorpusService for testing.
type MockCorpusService struct {
	ReloadFunc func(ctx context.Context, corpusID string) (*domain.Corpus, error)
	released   []string
}

func (m *MockCorpusService) Load(ctx context.Context, paths []string) (*domain.Corpus, error) {
	return nil, nil
}

func (m *MockCorpusService) Get(ctx context.Context, corpusID string) (*domain.Corpus, error) {
	return &domain.Corpus{ID: corpusID}, nil
}

func (m *MockCorpusService) Content(ctx context.Context, corpusID, label string) (string, error) {
	return "", nil
}

func (m *MockCorpusService) Labels(ctx context.Context, corpusID string) ([]string, error) {
	return nil, nil
}

func (m *MockCorpusService) Reload(ctx context.Context, corpusID string) (*domain.Corpus, error) {
	if m.ReloadFunc != nil {
		return m.ReloadFunc(ctx, corpusID)
	}
	return &domain.Corpus{ID: corpusID}, nil
}

func (m *MockCorpusService) Release(ctx context.Context, corpusID string) error {
	m.released = append(m.released, corpusID)
	return nil
}

// MockSettingsService implements driving.SettingsService for testing.
type MockSettingsService struct {
	RankOptionsFunc func() (domain.RankOptions, error)
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	s := domain.DefaultAppSettings()
	return &s, nil
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error { return nil }

func (m *MockSettingsService) SetScope(scope domain.Scope) error { return nil }

func (m *MockSettingsService) SetTopK(topK int) error { return nil }

func (m *MockSettingsService) SetLengthPenalty(alpha float64) error { return nil }

func (m *MockSettingsService) SetStopWords(list string) error { return nil }

func (m *MockSettingsService) SetSegmenter(mode domain.SegmenterMode) error { return nil }

func (m *MockSettingsService) Validate() error { return nil }

func (m *MockSettingsService) RankOptions() (domain.RankOptions, error) {
	if m.RankOptionsFunc != nil {
		return m.RankOptionsFunc()
	}
	return domain.DefaultRankOptions(), nil
}

func (m *MockSettingsService) PipelineConfig() domain.PipelineConfig {
	return domain.DefaultPipelineConfig()
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func rankedResult(corpusID string) *domain.RankResult {
	return &domain.RankResult{
		CorpusID: corpusID,
		Sentences: []domain.ScoredSentence{
			{Label: "Markets", Text: "Stocks rallied.", Position: 0, AdjustedScore: 2.5},
			{Label: "Weather", Text: "Rain is coming.", Position: 1, AdjustedScore: 1.25},
			{Label: "Markets", Text: "Bonds were flat.", Position: 3, AdjustedScore: 0.75},
		},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestView() (*View, *MockRankService, *MockCorpusService) {
	rank := &MockRankService{}
	corpus := &MockCorpusService{}
	v := NewView(styles.DefaultStyles(), nil, messages.PaneLeft, rank, corpus, &MockSettingsService{})
	v.SetDimensions(60, 30)
	return v, rank, corpus
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, messages.PaneRight, nil, nil, nil)

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
	assert.NotNil(t, v.keymap)
	assert.Equal(t, messages.PaneRight, v.Pane())
	assert.Empty(t, v.CorpusID())
	assert.False(t, v.Editing())
	assert.False(t, v.Ready())
}

func TestView_WithContext(t *testing.T) {
	v := NewView(nil, nil, messages.PaneLeft, nil, nil, nil)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("k"), "v")

	assert.Equal(t, v, v.WithContext(ctx))
	assert.Equal(t, ctx, v.ctx)
}

func TestView_Init_NoPaths(t *testing.T) {
	v, _, _ := newTestView()

	assert.Nil(t, v.Init())
}

func TestView_Init_WithPaths(t *testing.T) {
	v, rank, _ := newTestView()
	var gotPaths []string
	rank.RankPathsFunc = func(_ context.Context, paths []string, _ domain.RankOptions) (*domain.RankResult, error) {
		gotPaths = paths
		return rankedResult("c1"), nil
	}
	v.SetPaths([]string{"news.json"})

	cmd := v.Init()
	require.NotNil(t, cmd)
	assert.True(t, v.Ranking())

	msg, ok := cmd().(messages.CorpusRanked)
	require.True(t, ok)
	assert.Equal(t, messages.PaneLeft, msg.Pane)
	assert.Equal(t, []string{"news.json"}, gotPaths)
	assert.Equal(t, "c1", msg.Result.CorpusID)
}

func TestView_Load_UsesSettingsOptions(t *testing.T) {
	rank := &MockRankService{}
	settings := &MockSettingsService{
		RankOptionsFunc: func() (domain.RankOptions, error) {
			opts := domain.DefaultRankOptions()
			opts.TopK = 5
			return opts, nil
		},
	}
	v := NewView(nil, nil, messages.PaneLeft, rank, &MockCorpusService{}, settings)
	var got domain.RankOptions
	rank.RankPathsFunc = func(_ context.Context, _ []string, opts domain.RankOptions) (*domain.RankResult, error) {
		got = opts
		return rankedResult("c1"), nil
	}

	v.Load([]string{"a.json"})()

	assert.Equal(t, 5, got.TopK)
}

func TestView_Load_SettingsError(t *testing.T) {
	settings := &MockSettingsService{
		RankOptionsFunc: func() (domain.RankOptions, error) {
			return domain.RankOptions{}, domain.ErrNotFound
		},
	}
	v := NewView(nil, nil, messages.PaneLeft, &MockRankService{}, nil, settings)

	msg, ok := v.Load([]string{"a.json"})().(messages.CorpusRanked)

	require.True(t, ok)
	assert.ErrorIs(t, msg.Err, domain.ErrNotFound)
}

func TestView_Load_NoRankService(t *testing.T) {
	v := NewView(nil, nil, messages.PaneLeft, nil, nil, nil)

	msg, ok := v.Load([]string{"a.json"})().(messages.CorpusRanked)

	require.True(t, ok)
	assert.Error(t, msg.Err)
}

func TestView_Update_CorpusRanked(t *testing.T) {
	v, _, _ := newTestView()
	v.ranking = true

	updated, cmd := v.Update(messages.CorpusRanked{Pane: messages.PaneLeft, Result: rankedResult("c1")})

	assert.Equal(t, v, updated)
	assert.Nil(t, cmd)
	assert.False(t, v.Ranking())
	assert.Equal(t, "c1", v.CorpusID())
	assert.Len(t, v.Sentences(), 3)
	assert.Equal(t, []string{"Markets", "Weather"}, v.Labels())
}

func TestView_Update_CorpusRanked_OtherPane(t *testing.T) {
	v, _, _ := newTestView()

	v.Update(messages.CorpusRanked{Pane: messages.PaneRight, Result: rankedResult("c9")})

	assert.Empty(t, v.CorpusID())
}

func TestView_Update_CorpusRanked_Error(t *testing.T) {
	v, _, _ := newTestView()
	v.ranking = true

	v.Update(messages.CorpusRanked{Pane: messages.PaneLeft, Err: domain.ErrUnsupportedType})

	assert.False(t, v.Ranking())
	assert.ErrorIs(t, v.Err(), domain.ErrUnsupportedType)
	assert.Contains(t, v.View(), "Error")
}

func TestView_Update_CorpusRanked_ReleasesPrevious(t *testing.T) {
	v, _, corpus := newTestView()
	v.Update(messages.CorpusRanked{Pane: messages.PaneLeft, Result: rankedResult("old")})

	_, cmd := v.Update(messages.CorpusRanked{Pane: messages.PaneLeft, Result: rankedResult("new")})
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())

	assert.Equal(t, []string{"old"}, corpus.released)
	assert.Equal(t, "new", v.CorpusID())
}

func TestView_Update_CorpusRanked_ReloadKeepsSelection(t *testing.T) {
	v, _, _ := newTestView()
	v.Update(messages.CorpusRanked{Pane: messages.PaneLeft, Result: rankedResult("c1")})
	v.Update(keyRunes("j"))
	v.Update(keyRunes("j"))
	require.Equal(t, "Bonds were flat.", v.SelectedSentence().Text)

	_, cmd := v.Update(messages.CorpusRanked{Pane: messages.PaneLeft, Result: rankedResult("c1"), Reloaded: true})

	assert.Nil(t, cmd)
	assert.Equal(t, "Bonds were flat.", v.SelectedSentence().Text)
}

func TestView_Rerank(t *testing.T) {
	v, rank, _ := newTestView()
	assert.Nil(t, v.Rerank(), "nothing to rerank before a load")

	v.Update(messages.CorpusRanked{Pane: messages.PaneLeft, Result: rankedResult("c1")})
	var gotID string
	rank.RankCorpusFunc = func(_ context.Context, id string, _ domain.RankOptions) (*domain.RankResult, error) {
		gotID = id
		return rankedResult(id), nil
	}

	_, cmd := v.Update(keyRunes("r"))
	require.NotNil(t, cmd)
	assert.True(t, v.Ranking())

	msg, ok := cmd().(messages.CorpusRanked)
	require.True(t, ok)
	assert.Equal(t, "c1", gotID)
	assert.False(t, msg.Reloaded)
}

func TestView_Reload(t *testing.T) {
	v, _, corpus := newTestView()
	assert.Nil(t, v.Reload())

	v.Update(messages.CorpusRanked{Pane: messages.PaneLeft, Result: rankedResult("c1")})
	var reloaded string
	corpus.ReloadFunc = func(_ context.Context, id string) (*domain.Corpus, error) {
		reloaded = id
		return &domain.Corpus{ID: id}, nil
	}

	msg, ok := v.Reload()().(messages.CorpusRanked)

	require.True(t, ok)
	assert.Equal(t, "c1", reloaded)
	assert.True(t, msg.Reloaded)
	assert.NoError(t, msg.Err)
}

func TestView_Reload_Error(t *testing.T) {
	v, _, corpus := newTestView()
	v.Update(messages.CorpusRanked{Pane: messages.PaneLeft, Result: rankedResult("c1")})
	corpus.ReloadFunc = func(_ context.Context, _ string) (*domain.Corpus, error) {
		return nil, domain.ErrEmptySource
	}

	msg, ok := v.Reload()().(messages.CorpusRanked)

	require.True(t, ok)
	assert.ErrorIs(t, msg.Err, domain.ErrEmptySource)
}

func TestView_EditAndSubmitPaths(t *testing.T) {
	v, rank, _ := newTestView()
	var gotPaths []string
	rank.RankPathsFunc = func(_ context.Context, paths []string, _ domain.RankOptions) (*domain.RankResult, error) {
		gotPaths = paths
		return rankedResult("c1"), nil
	}

	v.Update(keyRunes("o"))
	require.True(t, v.Editing())

	v.Update(keyRunes("a.json, b.json"))
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.False(t, v.Editing())
	assert.Equal(t, []string{"a.json", "b.json"}, v.Paths())
	cmd()
	assert.Equal(t, []string{"a.json", "b.json"}, gotPaths)
}

func TestView_EditEmptySubmitIgnored(t *testing.T) {
	v, _, _ := newTestView()
	v.Update(keyRunes("/"))

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.True(t, v.Editing())
}

func TestView_EditCancelRestoresPaths(t *testing.T) {
	v, _, _ := newTestView()
	v.SetPaths([]string{"news.json"})
	v.Update(keyRunes("o"))
	v.Update(keyRunes("x"))

	v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, v.Editing())
	assert.Equal(t, "news.json", v.input.Value())
}

func TestView_SelectSentence(t *testing.T) {
	v, _, _ := newTestView()
	v.Update(messages.CorpusRanked{Pane: messages.PaneLeft, Result: rankedResult("c1")})
	v.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.SentenceSelected)
	require.True(t, ok)
	assert.Equal(t, "c1", msg.CorpusID)
	assert.Equal(t, "Weather", msg.Sentence.Label)
}

func TestView_SelectSentence_Empty(t *testing.T) {
	v, _, _ := newTestView()

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestView_SetFocused_StopsEditing(t *testing.T) {
	v, _, _ := newTestView()
	v.SetFocused(true)
	v.StartEditing()

	v.SetFocused(false)

	assert.False(t, v.Focused())
	assert.False(t, v.Editing())
}

func TestView_Update_ErrorOccurred(t *testing.T) {
	v, _, _ := newTestView()
	err := errors.New("boom")

	v.Update(messages.ErrorOccurred{Err: err})

	assert.Equal(t, err, v.Err())
}

func TestView_View(t *testing.T) {
	v, _, _ := newTestView()

	view := v.View()
	assert.Contains(t, view, "Left articles")
	assert.Contains(t, view, "Press o to load articles")

	v.Update(messages.CorpusRanked{Pane: messages.PaneLeft, Result: rankedResult("c1")})
	view = v.View()
	assert.Contains(t, view, "Articles: Markets, Weather")
	assert.Contains(t, view, "Stocks rallied.")
}

func TestView_View_RightPaneTitle(t *testing.T) {
	v := NewView(nil, nil, messages.PaneRight, nil, nil, nil)
	v.SetDimensions(60, 30)

	assert.Contains(t, v.View(), "Right articles")
}

func TestView_View_Ranking(t *testing.T) {
	v, _, _ := newTestView()
	v.Load([]string{"a.json"})

	assert.Contains(t, v.View(), "Ranking...")
}

func TestView_SetDimensions(t *testing.T) {
	v := NewView(nil, nil, messages.PaneLeft, nil, nil, nil)

	v.Update(tea.WindowSizeMsg{Width: 50, Height: 20})

	assert.True(t, v.Ready())
	assert.Equal(t, 48, v.list.Width())
	assert.Equal(t, 12, v.list.Height())
}
