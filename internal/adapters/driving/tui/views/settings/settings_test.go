package settings

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/keysent/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/keysent/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/keysent/internal/core/domain"
)

// MockSettingsService is a mock implementation of driving.SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSettings), args.Error(1)
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	args := m.Called(settings)
	return args.Error(0)
}

func (m *MockSettingsService) SetScope(scope domain.Scope) error {
	args := m.Called(scope)
	return args.Error(0)
}

func (m *MockSettingsService) SetTopK(topK int) error {
	args := m.Called(topK)
	return args.Error(0)
}

func (m *MockSettingsService) SetLengthPenalty(alpha float64) error {
	args := m.Called(alpha)
	return args.Error(0)
}

func (m *MockSettingsService) SetStopWords(list string) error {
	args := m.Called(list)
	return args.Error(0)
}

func (m *MockSettingsService) SetSegmenter(mode domain.SegmenterMode) error {
	args := m.Called(mode)
	return args.Error(0)
}

func (m *MockSettingsService) Validate() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSettingsService) RankOptions() (domain.RankOptions, error) {
	args := m.Called()
	return args.Get(0).(domain.RankOptions), args.Error(1)
}

func (m *MockSettingsService) PipelineConfig() domain.PipelineConfig {
	args := m.Called()
	return args.Get(0).(domain.PipelineConfig)
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	args := m.Called()
	return args.Get(0).(domain.AppSettings)
}

// Helper function to create test settings.
func testSettings() *domain.AppSettings {
	s := domain.DefaultAppSettings()
	return &s
}

// loadedView returns a view with settings already loaded.
func loadedView(svc *MockSettingsService) *View {
	v := NewView(styles.DefaultStyles(), svc)
	v.Update(messages.SettingsLoaded{Settings: testSettings()})
	return v
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewView(t *testing.T) {
	svc := new(MockSettingsService)

	v := NewView(styles.DefaultStyles(), svc)

	require.NotNil(t, v)
	assert.Equal(t, SectionOverview, v.Section())
	assert.Nil(t, v.settings)
	assert.False(t, v.ready)
}

func TestNewView_NilStyles(t *testing.T) {
	v := NewView(nil, nil)

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
}

func TestView_Init_LoadSettings_Success(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Get").Return(testSettings(), nil)
	v := NewView(nil, svc)

	cmd := v.Init()
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.SettingsLoaded)
	require.True(t, ok)
	assert.NoError(t, msg.Err)
	assert.Equal(t, 30, msg.Settings.Ranking.TopK)
	svc.AssertExpectations(t)
}

func TestView_Init_LoadSettings_Error(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Get").Return(nil, fmt.Errorf("load failed"))
	v := NewView(nil, svc)

	msg, ok := v.Init()().(messages.SettingsLoaded)

	require.True(t, ok)
	assert.Error(t, msg.Err)
	assert.Nil(t, msg.Settings)
}

func TestView_Init_NoService(t *testing.T) {
	v := NewView(nil, nil)

	msg, ok := v.Init()().(messages.SettingsLoaded)

	require.True(t, ok)
	assert.Error(t, msg.Err)
}

func TestView_Update_WindowSize(t *testing.T) {
	v := NewView(nil, nil)

	updated, cmd := v.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	assert.Equal(t, v, updated)
	assert.Nil(t, cmd)
	assert.True(t, v.ready)
	assert.Equal(t, 100, v.width)
}

func TestView_Update_SettingsLoaded_Error(t *testing.T) {
	v := NewView(nil, nil)

	v.Update(messages.SettingsLoaded{Err: fmt.Errorf("boom")})

	assert.Error(t, v.err)
	assert.Nil(t, v.settings)
}

func TestView_Update_SettingsSaved_Success(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Get").Return(testSettings(), nil)
	v := loadedView(svc)
	v.section = SectionScope

	_, cmd := v.Update(messages.SettingsSaved{})

	assert.Equal(t, SectionOverview, v.Section())
	assert.Equal(t, itemScope, v.selected)
	require.NotNil(t, cmd)
	_, ok := cmd().(messages.SettingsLoaded)
	assert.True(t, ok)
}

func TestView_Update_SettingsSaved_Error(t *testing.T) {
	v := loadedView(new(MockSettingsService))
	v.section = SectionEdit

	_, cmd := v.Update(messages.SettingsSaved{Err: domain.ErrInvalidArgument})

	assert.Nil(t, cmd)
	assert.ErrorIs(t, v.err, domain.ErrInvalidArgument)
	assert.Equal(t, SectionEdit, v.Section(), "stays in edit to allow a correction")
}

func TestView_Escape_FromOverview(t *testing.T) {
	v := loadedView(new(MockSettingsService))

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewPanes, msg.View)
}

func TestView_Escape_FromSubsection(t *testing.T) {
	v := loadedView(new(MockSettingsService))
	v.selected = itemSegmenter
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, SectionSegmenter, v.Section())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.Equal(t, SectionOverview, v.Section())
	assert.Equal(t, itemSegmenter, v.selected)
}

func TestView_Overview_Navigate(t *testing.T) {
	v := loadedView(new(MockSettingsService))

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v.Update(keyRunes("j"))
	assert.Equal(t, 2, v.selected)

	v.Update(keyRunes("k"))
	assert.Equal(t, 1, v.selected)

	for i := 0; i < 10; i++ {
		v.Update(keyRunes("j"))
	}
	assert.Equal(t, itemCount-1, v.selected)
}

func TestView_Overview_EnterWithoutSettings(t *testing.T) {
	v := NewView(nil, nil)

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, SectionOverview, v.Section())
}

func TestView_SelectScope(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("SetScope", domain.ScopePerDocument).Return(nil)
	v := loadedView(svc)

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, SectionScope, v.Section())
	assert.Equal(t, 0, v.selected, "starts on the current scope")

	v.Update(keyRunes("j"))
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.SettingsSaved)
	require.True(t, ok)
	assert.NoError(t, msg.Err)
	svc.AssertExpectations(t)
}

func TestView_SelectSegmenter(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("SetSegmenter", domain.SegmenterRegex).Return(nil)
	v := loadedView(svc)
	v.selected = itemSegmenter

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	cmd()
	svc.AssertExpectations(t)
}

func TestView_EditTopK(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("SetTopK", 12).Return(nil)
	v := loadedView(svc)
	v.selected = itemTopK

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, v.Editing())
	assert.Equal(t, "30", v.valueInput.Value())

	v.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	v.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	v.Update(keyRunes("12"))
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.SettingsSaved)
	require.True(t, ok)
	assert.NoError(t, msg.Err)
	svc.AssertExpectations(t)
}

func TestView_EditTopK_NotANumber(t *testing.T) {
	v := loadedView(new(MockSettingsService))
	v.selected = itemTopK
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v.valueInput.SetValue("many")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Error(t, v.err)
	assert.True(t, v.Editing())
}

func TestView_EditLengthPenalty(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("SetLengthPenalty", 0.25).Return(nil)
	v := loadedView(svc)
	v.selected = itemLengthPenalty

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "0.1", v.valueInput.Value())
	v.valueInput.SetValue(" 0.25 ")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	cmd()
	svc.AssertExpectations(t)
}

func TestView_EditLengthPenalty_Rejected(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("SetLengthPenalty", -1.0).Return(domain.ErrInvalidArgument)
	v := loadedView(svc)
	v.selected = itemLengthPenalty
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v.valueInput.SetValue("-1")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := cmd()
	v.Update(msg)

	assert.ErrorIs(t, v.err, domain.ErrInvalidArgument)
	assert.Contains(t, v.View(), "Error")
}

func TestView_EditStopWords(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("SetStopWords", "none").Return(nil)
	v := loadedView(svc)
	v.selected = itemStopWords

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "english", v.valueInput.Value())
	v.valueInput.SetValue("none")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	cmd()
	svc.AssertExpectations(t)
}

func TestView_Save_NoService(t *testing.T) {
	v := NewView(nil, nil)
	v.Update(messages.SettingsLoaded{Settings: testSettings()})
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.SettingsSaved)
	require.True(t, ok)
	assert.Error(t, msg.Err)
}

func TestView_View_Loading(t *testing.T) {
	v := NewView(nil, nil)

	assert.Contains(t, v.View(), "Loading settings...")
}

func TestView_View_Overview(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Validate").Return(nil)
	v := loadedView(svc)

	view := v.View()

	assert.Contains(t, view, "Settings")
	assert.Contains(t, view, "Scope: Pooled")
	assert.Contains(t, view, "Top-K: 30")
	assert.Contains(t, view, "Length penalty: 0.1")
	assert.Contains(t, view, "Stop words: english")
	assert.Contains(t, view, "Segmenter: Punkt")
	assert.Contains(t, view, "Configuration is valid")
}

func TestView_View_Overview_ValidationError(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Validate").Return(fmt.Errorf("stop-word list missing"))
	v := loadedView(svc)

	assert.Contains(t, v.View(), "Warning: stop-word list missing")
}

func TestView_View_Sections(t *testing.T) {
	v := loadedView(new(MockSettingsService))

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	view := v.View()
	assert.Contains(t, view, "Select Ranking Scope")
	assert.Contains(t, view, "(current)")

	v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	v.selected = itemSegmenter
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, v.View(), "Select Sentence Segmenter")

	v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	v.selected = itemStopWords
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	view = v.View()
	assert.Contains(t, view, "Edit Stop words")
	assert.Contains(t, view, "[enter] save")
}

func TestView_SetDimensions(t *testing.T) {
	v := NewView(nil, nil)

	v.SetDimensions(120, 40)

	assert.Equal(t, 120, v.width)
	assert.Equal(t, 40, v.height)
	assert.True(t, v.ready)
}

func TestView_Reset(t *testing.T) {
	v := loadedView(new(MockSettingsService))
	v.selected = itemTopK
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v.err = fmt.Errorf("stale")

	v.Reset()

	assert.Equal(t, SectionOverview, v.Section())
	assert.Equal(t, 0, v.selected)
	assert.Nil(t, v.err)
	assert.Equal(t, "", v.valueInput.Value())
	assert.False(t, v.valueInput.Focused())
}

func TestView_GetIndexes(t *testing.T) {
	v := NewView(nil, nil)
	assert.Equal(t, 0, v.getScopeIndex())
	assert.Equal(t, 0, v.getSegmenterIndex())

	settings := testSettings()
	settings.Ranking.Scope = domain.ScopePerDocument
	settings.Loader.Segmenter = domain.SegmenterRegex
	v.Update(messages.SettingsLoaded{Settings: settings})

	assert.Equal(t, 1, v.getScopeIndex())
	assert.Equal(t, 1, v.getSegmenterIndex())
}
