// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/keysent/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/keysent/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/keysent/internal/core/domain"
	"github.com/custodia-labs/keysent/internal/core/ports/driving"
)

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionScope
	SectionSegmenter
	SectionEdit
)

// Overview items, in display order.
const (
	itemScope = iota
	itemTopK
	itemLengthPenalty
	itemStopWords
	itemSegmenter
	itemCount
)

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
)

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	// Current settings
	settings *domain.AppSettings
	err      error

	// Navigation state
	section  Section
	selected int // selection within current section
	editing  int // overview item being edited in SectionEdit

	// Text input for numeric and path values
	valueInput textinput.Model

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	valueInput := textinput.New()
	valueInput.CharLimit = 512

	return &View{
		styles:          s,
		settingsService: settingsService,
		section:         SectionOverview,
		valueInput:      valueInput,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.backToOverview()
		// Reload settings after save
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	if v.section == SectionEdit {
		var cmd tea.Cmd
		v.valueInput, cmd = v.valueInput.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleKeyMsg handles key presses based on current section.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Global escape to go back
	if msg.String() == "esc" {
		if v.section == SectionOverview {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewPanes}
			}
		}
		v.backToOverview()
		return v, nil
	}

	switch v.section {
	case SectionOverview:
		return v.handleOverviewKeys(msg)
	case SectionScope:
		return v.handleChoiceKeys(msg, len(domain.AllScopes()), func(i int) tea.Cmd {
			return v.setScope(domain.AllScopes()[i])
		})
	case SectionSegmenter:
		return v.handleChoiceKeys(msg, len(domain.AllSegmenters()), func(i int) tea.Cmd {
			return v.setSegmenter(domain.AllSegmenters()[i])
		})
	case SectionEdit:
		return v.handleEditKeys(msg)
	}

	return v, nil
}

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < itemCount-1 {
			v.selected++
		}
	case keyEnter:
		if v.settings == nil {
			return v, nil
		}
		switch v.selected {
		case itemScope:
			v.section = SectionScope
			v.selected = v.getScopeIndex()
		case itemSegmenter:
			v.section = SectionSegmenter
			v.selected = v.getSegmenterIndex()
		case itemTopK, itemLengthPenalty, itemStopWords:
			v.editing = v.selected
			v.section = SectionEdit
			v.valueInput.SetValue(v.currentValue(v.selected))
			v.valueInput.CursorEnd()
			return v, v.valueInput.Focus()
		}
	}
	return v, nil
}

func (v *View) handleChoiceKeys(msg tea.KeyMsg, count int, choose func(int) tea.Cmd) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < count-1 {
			v.selected++
		}
	case keyEnter:
		if v.selected >= 0 && v.selected < count {
			return v, choose(v.selected)
		}
	}
	return v, nil
}

func (v *View) handleEditKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() != keyEnter {
		var cmd tea.Cmd
		v.valueInput, cmd = v.valueInput.Update(msg)
		return v, cmd
	}

	value := strings.TrimSpace(v.valueInput.Value())
	switch v.editing {
	case itemTopK:
		n, err := strconv.Atoi(value)
		if err != nil {
			v.err = fmt.Errorf("top-k must be a whole number: %q", value)
			return v, nil
		}
		return v, v.save(func(s driving.SettingsService) error { return s.SetTopK(n) })
	case itemLengthPenalty:
		alpha, err := strconv.ParseFloat(value, 64)
		if err != nil {
			v.err = fmt.Errorf("length penalty must be a number: %q", value)
			return v, nil
		}
		return v, v.save(func(s driving.SettingsService) error { return s.SetLengthPenalty(alpha) })
	case itemStopWords:
		return v, v.save(func(s driving.SettingsService) error { return s.SetStopWords(value) })
	}
	return v, nil
}

func (v *View) backToOverview() {
	switch v.section {
	case SectionEdit:
		v.selected = v.editing
	case SectionScope:
		v.selected = itemScope
	case SectionSegmenter:
		v.selected = itemSegmenter
	case SectionOverview:
	}
	v.section = SectionOverview
	v.valueInput.Blur()
}

func (v *View) setScope(scope domain.Scope) tea.Cmd {
	return v.save(func(s driving.SettingsService) error { return s.SetScope(scope) })
}

func (v *View) setSegmenter(mode domain.SegmenterMode) tea.Cmd {
	return v.save(func(s driving.SettingsService) error { return s.SetSegmenter(mode) })
}

func (v *View) save(apply func(driving.SettingsService) error) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}
		return messages.SettingsSaved{Err: apply(v.settingsService)}
	}
}

func (v *View) getScopeIndex() int {
	if v.settings == nil {
		return 0
	}
	for i, scope := range domain.AllScopes() {
		if scope == v.settings.Ranking.Scope {
			return i
		}
	}
	return 0
}

func (v *View) getSegmenterIndex() int {
	if v.settings == nil {
		return 0
	}
	for i, mode := range domain.AllSegmenters() {
		if mode == v.settings.Loader.Segmenter {
			return i
		}
	}
	return 0
}

func (v *View) currentValue(item int) string {
	if v.settings == nil {
		return ""
	}
	switch item {
	case itemScope:
		return v.settings.Ranking.Scope.Description()
	case itemTopK:
		return strconv.Itoa(v.settings.Ranking.TopK)
	case itemLengthPenalty:
		return strconv.FormatFloat(v.settings.Ranking.LengthPenalty, 'g', -1, 64)
	case itemStopWords:
		return v.settings.Ranking.StopWords
	case itemSegmenter:
		return v.settings.Loader.Segmenter.Description()
	default:
		return ""
	}
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	// Error display
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	// Loading state
	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	switch v.section {
	case SectionOverview:
		b.WriteString(v.renderOverview())
	case SectionScope:
		b.WriteString(v.renderScopeSelect())
	case SectionSegmenter:
		b.WriteString(v.renderSegmenterSelect())
	case SectionEdit:
		b.WriteString(v.renderEdit())
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

var itemLabels = [itemCount]string{
	itemScope:         "Scope",
	itemTopK:          "Top-K",
	itemLengthPenalty: "Length penalty",
	itemStopWords:     "Stop words",
	itemSegmenter:     "Segmenter",
}

func (v *View) renderOverview() string {
	var b strings.Builder

	for i := 0; i < itemCount; i++ {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}

		line := fmt.Sprintf("%s%s: %s", indicator, itemLabels[i], v.currentValue(i))
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Ranking changes apply on the next re-rank [r]; segmenter changes on restart."))
	b.WriteString("\n")

	// Validation status
	if v.settingsService != nil {
		if err := v.settingsService.Validate(); err != nil {
			b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Warning: %s", err.Error())))
		} else {
			b.WriteString(v.styles.Success.Render("Configuration is valid"))
		}
	}

	return b.String()
}

func (v *View) renderScopeSelect() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Select Ranking Scope"))
	b.WriteString("\n\n")

	for i, scope := range domain.AllScopes() {
		b.WriteString(v.renderChoice(i, scope.Description(), scope == v.settings.Ranking.Scope))
	}
	return b.String()
}

func (v *View) renderSegmenterSelect() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Select Sentence Segmenter"))
	b.WriteString("\n\n")

	for i, mode := range domain.AllSegmenters() {
		b.WriteString(v.renderChoice(i, mode.Description(), mode == v.settings.Loader.Segmenter))
	}
	return b.String()
}

func (v *View) renderChoice(i int, label string, isCurrent bool) string {
	indicator := "  "
	if i == v.selected {
		indicator = "> "
	}

	current := ""
	if isCurrent {
		current = v.styles.Success.Render(" (current)")
	}

	line := fmt.Sprintf("%s%s%s", indicator, label, current)
	if i == v.selected {
		return v.styles.Selected.Render(line) + "\n"
	}
	return v.styles.Normal.Render(line) + "\n"
}

func (v *View) renderEdit() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Edit %s", itemLabels[v.editing])))
	b.WriteString("\n\n")
	b.WriteString(v.styles.InputField.Render(v.valueInput.View()))
	b.WriteString("\n")

	var hint string
	switch v.editing {
	case itemTopK:
		hint = "Sentences to keep (per article in per-document scope)"
	case itemLengthPenalty:
		hint = "Alpha >= 0; 0 disables the length penalty"
	case itemStopWords:
		hint = `"english", "none", or the path of a word list file`
	}
	b.WriteString(v.styles.Muted.Render(hint))
	b.WriteString("\n")
	return b.String()
}

func (v *View) renderHelp() string {
	switch v.section {
	case SectionOverview:
		return v.styles.Help.Render("[j/k] navigate  [enter] edit  [esc] back")
	case SectionScope, SectionSegmenter:
		return v.styles.Help.Render("[j/k] navigate  [enter] select  [esc] back")
	case SectionEdit:
		return v.styles.Help.Render("[enter] save  [esc] cancel")
	default:
		return ""
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset resets the view to initial state.
func (v *View) Reset() {
	v.section = SectionOverview
	v.selected = 0
	v.editing = 0
	v.err = nil
	v.valueInput.SetValue("")
	v.valueInput.Blur()
}

// Section returns the active section.
func (v *View) Section() Section {
	return v.section
}

// Editing reports whether a text value is being edited.
func (v *View) Editing() bool {
	return v.section == SectionEdit
}
