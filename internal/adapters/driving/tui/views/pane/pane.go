// Package pane provides one side of the two-pane ranking view.
// Each pane loads its own articles into a corpus and shows its key sentences.
package pane

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/custodia-labs/keysent/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/keysent/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/keysent/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/keysent/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/keysent/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/keysent/internal/core/domain"
	"github.com/custodia-labs/keysent/internal/core/ports/driving"
)

// View is a single ranking pane: a path input above a ranked sentence list.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	pane   messages.Pane
	input  *input.PathInput
	list   *list.SentenceList

	rankService     driving.RankService
	corpusService   driving.CorpusService
	settingsService driving.SettingsService
	ctx             context.Context

	corpusID string
	paths    []string
	labels   []string
	ranking  bool
	focused  bool
	err      error

	width  int
	height int
	ready  bool
}

// NewView creates a new ranking pane.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	pane messages.Pane,
	rankService driving.RankService,
	corpusService driving.CorpusService,
	settingsService driving.SettingsService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:          s,
		keymap:          km,
		pane:            pane,
		input:           input.NewPathInput(s),
		list:            list.NewSentenceList(s),
		rankService:     rankService,
		corpusService:   corpusService,
		settingsService: settingsService,
		ctx:             context.Background(),
		width:           40,
		height:          24,
	}
}

// WithContext sets the context for ranking calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init ranks the initial paths, if any.
func (v *View) Init() tea.Cmd {
	if len(v.paths) == 0 {
		return nil
	}
	return v.Load(v.paths)
}

// SetPaths records the paths to rank on Init.
func (v *View) SetPaths(paths []string) {
	v.paths = paths
	v.input.SetPaths(paths)
}

// Load ranks the articles at paths into a fresh corpus.
func (v *View) Load(paths []string) tea.Cmd {
	v.paths = paths
	v.input.SetPaths(paths)
	v.ranking = true
	v.err = nil
	return v.rankPaths(paths)
}

// Rerank ranks the current corpus again, picking up changed settings.
func (v *View) Rerank() tea.Cmd {
	if v.corpusID == "" {
		return nil
	}
	v.ranking = true
	v.err = nil
	return v.rankCorpus(v.corpusID, false)
}

// Reload re-reads the corpus sources from disk and ranks them again.
func (v *View) Reload() tea.Cmd {
	if v.corpusID == "" {
		return nil
	}
	v.ranking = true
	corpusID := v.corpusID
	pane := v.pane
	return func() tea.Msg {
		if v.corpusService == nil {
			return messages.CorpusRanked{Pane: pane, Err: fmt.Errorf("corpus service not available")}
		}
		if _, err := v.corpusService.Reload(v.ctx, corpusID); err != nil {
			return messages.CorpusRanked{Pane: pane, Reloaded: true, Err: err}
		}
		return v.rankCorpus(corpusID, true)()
	}
}

func (v *View) rankPaths(paths []string) tea.Cmd {
	pane := v.pane
	return func() tea.Msg {
		if v.rankService == nil {
			return messages.CorpusRanked{Pane: pane, Err: fmt.Errorf("rank service not available")}
		}
		opts, err := v.options()
		if err != nil {
			return messages.CorpusRanked{Pane: pane, Err: err}
		}
		result, err := v.rankService.RankPaths(v.ctx, paths, opts)
		return messages.CorpusRanked{Pane: pane, Result: result, Err: err}
	}
}

func (v *View) rankCorpus(corpusID string, reloaded bool) tea.Cmd {
	pane := v.pane
	return func() tea.Msg {
		if v.rankService == nil {
			return messages.CorpusRanked{Pane: pane, Err: fmt.Errorf("rank service not available")}
		}
		opts, err := v.options()
		if err != nil {
			return messages.CorpusRanked{Pane: pane, Reloaded: reloaded, Err: err}
		}
		result, err := v.rankService.RankCorpus(v.ctx, corpusID, opts)
		return messages.CorpusRanked{Pane: pane, Result: result, Reloaded: reloaded, Err: err}
	}
}

// options reads rank options from settings, falling back to the defaults.
func (v *View) options() (domain.RankOptions, error) {
	if v.settingsService == nil {
		return domain.DefaultRankOptions(), nil
	}
	return v.settingsService.RankOptions()
}

// Update handles messages for the pane.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.CorpusRanked:
		if msg.Pane != v.pane {
			return v, nil
		}
		return v, v.handleRanked(msg)

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	if v.input.Focused() {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleRanked(msg messages.CorpusRanked) tea.Cmd {
	v.ranking = false
	if msg.Err != nil {
		v.err = msg.Err
		return nil
	}
	if msg.Result == nil {
		return nil
	}

	v.err = nil
	previous := v.corpusID
	selected := v.list.Selected()

	v.corpusID = msg.Result.CorpusID
	v.labels, _ = domain.GroupByLabel(msg.Result.Sentences)
	v.list.SetSentences(msg.Result.Sentences)
	if msg.Reloaded || previous == v.corpusID {
		v.list.SetSelected(selected)
	}

	if previous == "" || previous == v.corpusID || v.corpusService == nil {
		return nil
	}
	return func() tea.Msg {
		// The old corpus is unreachable once replaced.
		_ = v.corpusService.Release(v.ctx, previous)
		return nil
	}
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.input.Focused() {
		return v.handleInputKey(msg)
	}

	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Open):
		return v, v.StartEditing()

	case keymap.Matches(keyStr, v.keymap.Rerank):
		return v, v.Rerank()

	case keymap.Matches(keyStr, v.keymap.Select):
		sentence := v.list.SelectedSentence()
		if sentence == nil {
			return v, nil
		}
		selected := messages.SentenceSelected{Pane: v.pane, CorpusID: v.corpusID, Sentence: *sentence}
		return v, func() tea.Msg { return selected }
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // only submit and cancel are special while editing
	switch msg.Type {
	case tea.KeyEnter:
		paths := v.input.Paths()
		if len(paths) == 0 {
			return v, nil
		}
		v.input.Blur()
		return v, v.Load(paths)

	case tea.KeyEsc:
		v.StopEditing()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// StartEditing focuses the path input.
func (v *View) StartEditing() tea.Cmd {
	return v.input.Focus()
}

// StopEditing blurs the path input and restores the loaded paths.
func (v *View) StopEditing() {
	v.input.Blur()
	v.input.SetPaths(v.paths)
}

// View renders the pane.
func (v *View) View() string {
	var b strings.Builder
	inner := v.innerWidth()

	title := "Left articles"
	if v.pane == messages.PaneRight {
		title = "Right articles"
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(v.input.View())
	b.WriteString("\n")

	if len(v.labels) > 0 {
		row := runewidth.Truncate("Articles: "+strings.Join(v.labels, ", "), inner, "...")
		b.WriteString(v.styles.Subtitle.Render(row))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case v.ranking:
		b.WriteString(v.styles.Muted.Render("Ranking..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case v.corpusID == "":
		b.WriteString(v.styles.Muted.Render("Press o to load articles"))
	default:
		b.WriteString(v.list.View())
	}

	return v.styles.PaneBorder(v.focused).Width(inner).Height(v.innerHeight()).Render(b.String())
}

func (v *View) innerWidth() int {
	w := v.width - 2
	if w < 10 {
		w = 10
	}
	return w
}

func (v *View) innerHeight() int {
	h := v.height - 2
	if h < 5 {
		h = 5
	}
	return h
}

// SetDimensions sets the outer size of the pane, border included.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(v.innerWidth())
	// Title, bordered input, labels row and a blank line sit above the list.
	v.list.SetDimensions(v.innerWidth(), v.innerHeight()-6)
}

// SetFocused marks the pane as the target of key input.
func (v *View) SetFocused(focused bool) {
	v.focused = focused
	if !focused && v.input.Focused() {
		v.StopEditing()
	}
}

// Focused reports whether the pane receives key input.
func (v *View) Focused() bool {
	return v.focused
}

// Editing reports whether the path input has focus.
func (v *View) Editing() bool {
	return v.input.Focused()
}

// EditedPaths returns the paths currently typed into the input.
func (v *View) EditedPaths() []string {
	return v.input.Paths()
}

// Pane returns which side this pane is.
func (v *View) Pane() messages.Pane {
	return v.pane
}

// CorpusID returns the ID of the loaded corpus, or "" when none.
func (v *View) CorpusID() string {
	return v.corpusID
}

// Paths returns the paths the pane was loaded from.
func (v *View) Paths() []string {
	return v.paths
}

// Labels returns the document labels present in the ranking.
func (v *View) Labels() []string {
	return v.labels
}

// Sentences returns the ranked sentences.
func (v *View) Sentences() []domain.ScoredSentence {
	return v.list.Sentences()
}

// SelectedSentence returns the highlighted sentence, or nil.
func (v *View) SelectedSentence() *domain.ScoredSentence {
	return v.list.SelectedSentence()
}

// Ranking reports whether a ranking is in flight.
func (v *View) Ranking() bool {
	return v.ranking
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Ready returns whether the pane has been sized.
func (v *View) Ready() bool {
	return v.ready
}
