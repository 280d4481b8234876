package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/keysent/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/keysent/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/keysent/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/keysent/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/keysent/internal/adapters/driving/tui/views/pane"
	"github.com/custodia-labs/keysent/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/keysent/internal/adapters/driving/tui/views/source"
	"github.com/custodia-labs/keysent/internal/connectors/filesystem"
	"github.com/custodia-labs/keysent/internal/core/domain"
	"github.com/custodia-labs/keysent/internal/logger"
)

// watch tracks the source watcher of one pane's corpus.
type watch struct {
	corpusID string
	cancel   context.CancelFunc
	batches  <-chan []domain.Change
}

// watchStarted reports the outcome of starting a source watch.
type watchStarted struct {
	pane     messages.Pane
	corpusID string
	watch    *watch
	err      error
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the global keybindings.
	keymap *keymap.KeyMap

	// panes are the left and right ranking panes, indexed by messages.Pane.
	panes [2]*pane.View

	// focus is the pane receiving key input.
	focus messages.Pane

	// sourceView shows the document behind a selected sentence.
	sourceView *source.View

	// settingsView is the settings configuration view component.
	settingsView *settings.View

	// statusbar summarises the focused pane.
	statusbar *status.Bar

	// watches are the active source watches, per pane.
	watches [2]*watch

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		sourceView:   source.NewView(s, ports.Corpus),
		settingsView: settings.NewView(s, ports.Settings),
		statusbar:    status.NewBar(s, km),
		currentView:  messages.ViewPanes,
		focus:        messages.PaneLeft,
	}
	for _, p := range []messages.Pane{messages.PaneLeft, messages.PaneRight} {
		a.panes[p] = pane.NewView(s, km, p, ports.Rank, ports.Corpus, ports.Settings)
	}
	a.panes[messages.PaneLeft].SetFocused(true)

	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	for _, p := range a.panes {
		p.WithContext(ctx)
	}
	a.sourceView.WithContext(ctx)
	return a
}

// WithPaths sets the articles ranked into each pane on start.
func (a *App) WithPaths(left, right []string) *App {
	if len(left) > 0 {
		a.panes[messages.PaneLeft].SetPaths(left)
	}
	if len(right) > 0 {
		a.panes[messages.PaneRight].SetPaths(right)
	}
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("keysent - Key Sentences"),
	}
	for _, p := range a.panes {
		if cmd := p.Init(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	left := a.panes[messages.PaneLeft]
	if len(left.Paths()) == 0 {
		cmds = append(cmds, left.StartEditing())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	a.refreshStatus()
	return a, cmd
}

//nolint:gocyclo // central message handler requires complexity
func (a *App) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.CorpusRanked:
		a.panes[msg.Pane], cmd = a.panes[msg.Pane].Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
			return cmd
		}
		if msg.Result != nil && a.needsWatch(msg.Pane, msg.Result.CorpusID) {
			return tea.Batch(cmd, a.startWatch(msg.Pane, msg.Result.CorpusID))
		}
		return cmd

	case watchStarted:
		return a.handleWatchStarted(msg)

	case messages.SourcesChanged:
		w := a.watches[msg.Pane]
		if w == nil || w.corpusID != msg.CorpusID || a.panes[msg.Pane].CorpusID() != msg.CorpusID {
			return nil
		}
		logger.Debug("tui: %d source change(s) in %s pane", len(msg.Changes), msg.Pane)
		return tea.Batch(a.panes[msg.Pane].Reload(), waitForChanges(msg.Pane, w))

	case messages.SentenceSelected:
		a.currentView = messages.ViewSource
		return a.sourceView.SetSentence(msg.CorpusID, msg.Sentence)

	case messages.ContentLoaded:
		a.sourceView, cmd = a.sourceView.Update(msg)
		return cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewSettings {
			a.settingsView.Reset()
			return a.settingsView.Init()
		}
		return nil

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return nil

	case messages.Quit:
		a.stopWatches()
		return tea.Quit
	}

	// Forward other messages (cursor blink and the like) to the active view
	switch a.currentView {
	case messages.ViewPanes:
		a.panes[a.focus], cmd = a.panes[a.focus].Update(msg)
	case messages.ViewSource:
		a.sourceView, cmd = a.sourceView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}
	return cmd
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	// Global quit with ctrl+c
	if msg.String() == "ctrl+c" {
		a.stopWatches()
		return tea.Quit
	}

	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewPanes:
		return a.handlePanesKey(msg)

	case messages.ViewSource:
		a.sourceView, cmd = a.sourceView.Update(msg)
		return cmd

	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return cmd

	case messages.ViewHelp:
		keyStr := msg.String()
		if keymap.Matches(keyStr, a.keymap.Back) || keymap.Matches(keyStr, a.keymap.Help) || keyStr == "q" {
			a.currentView = messages.ViewPanes
		}
		return nil
	}
	return nil
}

func (a *App) handlePanesKey(msg tea.KeyMsg) tea.Cmd {
	focused := a.panes[a.focus]
	var cmd tea.Cmd

	// A pane editing its path owns every key.
	if focused.Editing() {
		a.panes[a.focus], cmd = focused.Update(msg)
		return cmd
	}

	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, a.keymap.Quit):
		a.stopWatches()
		return tea.Quit
	case keymap.Matches(keyStr, a.keymap.Help):
		a.currentView = messages.ViewHelp
		return nil
	case keymap.Matches(keyStr, a.keymap.SwitchPane):
		a.FocusPane(a.focus.Other())
		return nil
	case keymap.Matches(keyStr, a.keymap.Settings):
		return func() tea.Msg { return messages.ViewChanged{View: messages.ViewSettings} }
	}

	a.panes[a.focus], cmd = focused.Update(msg)
	return cmd
}

// FocusPane moves key input to the given pane.
func (a *App) FocusPane(p messages.Pane) {
	a.panes[a.focus].SetFocused(false)
	a.focus = p
	a.panes[p].SetFocused(true)
}

func (a *App) needsWatch(p messages.Pane, corpusID string) bool {
	if a.ports.Watcher == nil {
		return false
	}
	w := a.watches[p]
	return w == nil || w.corpusID != corpusID
}

// startWatch watches the sources of a pane's corpus in the background.
func (a *App) startWatch(p messages.Pane, corpusID string) tea.Cmd {
	watcher := a.ports.Watcher
	corpora := a.ports.Corpus
	parent := a.ctx
	return func() tea.Msg {
		corpus, err := corpora.Get(parent, corpusID)
		if err != nil {
			return watchStarted{pane: p, corpusID: corpusID, err: err}
		}
		ctx, cancel := context.WithCancel(parent)
		changes, err := watcher.Watch(ctx, corpus.Sources)
		if err != nil {
			cancel()
			return watchStarted{pane: p, corpusID: corpusID, err: err}
		}
		return watchStarted{
			pane:     p,
			corpusID: corpusID,
			watch: &watch{
				corpusID: corpusID,
				cancel:   cancel,
				batches:  filesystem.Coalesce(ctx, changes, filesystem.DefaultCoalesceInterval),
			},
		}
	}
}

func (a *App) handleWatchStarted(msg watchStarted) tea.Cmd {
	if msg.err != nil {
		// Ranking still works without live reload.
		logger.Warn("tui: watch %s pane sources: %v", msg.pane, msg.err)
		return nil
	}
	if a.panes[msg.pane].CorpusID() != msg.corpusID {
		msg.watch.cancel()
		return nil
	}
	a.stopWatch(msg.pane)
	a.watches[msg.pane] = msg.watch
	return waitForChanges(msg.pane, msg.watch)
}

// waitForChanges blocks until the next batch of source changes.
func waitForChanges(p messages.Pane, w *watch) tea.Cmd {
	return func() tea.Msg {
		batch, ok := <-w.batches
		if !ok {
			return nil
		}
		return messages.SourcesChanged{Pane: p, CorpusID: w.corpusID, Changes: batch}
	}
}

func (a *App) stopWatch(p messages.Pane) {
	if w := a.watches[p]; w != nil {
		w.cancel()
		a.watches[p] = nil
	}
}

func (a *App) stopWatches() {
	a.stopWatch(messages.PaneLeft)
	a.stopWatch(messages.PaneRight)
}

// refreshStatus mirrors the focused pane into the status bar.
func (a *App) refreshStatus() {
	p := a.panes[a.focus]
	st := status.Status{Pane: a.focus.String()}
	switch {
	case p.Ranking():
		st.State = status.StateRanking
	case p.Err() != nil:
		st.State = status.StateError
		st.Err = p.Err().Error()
	case p.CorpusID() != "":
		st.State = status.StateResults
		st.Count = len(p.Sentences())
		st.Sources = p.Paths()
		st.Watching = a.watches[a.focus] != nil
	default:
		a.statusbar.Clear(st.Pane)
		return
	}
	a.statusbar.Set(st)
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSource:
		return a.sourceView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewPanes:
		return a.viewPanes()
	default:
		return a.viewPanes()
	}
}

// viewPanes renders both panes side by side above the status bar.
func (a *App) viewPanes() string {
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		a.panes[messages.PaneLeft].View(),
		a.panes[messages.PaneRight].View(),
	)
	return panes + "\n" + a.statusbar.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Panes:
  tab         Switch between left and right pane
  o, /        Enter article paths (comma separated)
  enter       Load paths / open sentence source
  r           Re-rank with current settings
  j/k, ↑/↓    Navigate sentences
  s           Settings
  q, ctrl+c   Quit

Path input:
  enter       Load and rank
  esc         Cancel

Source:
  j/k, ↑/↓    Scroll
  n           Jump to sentence
  esc         Back to panes

Panes reload automatically when their source files change.

[esc] back`
}

// Run starts the TUI application.
func (a *App) Run() error {
	defer a.stopWatches()
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// FocusedPane returns the pane receiving key input.
func (a *App) FocusedPane() messages.Pane {
	return a.focus
}

// Pane returns the view of one pane.
func (a *App) Pane(p messages.Pane) *pane.View {
	return a.panes[p]
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions and lays out the views.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	paneWidth := width / 2
	paneHeight := height - 1 // status bar
	a.panes[messages.PaneLeft].SetDimensions(paneWidth, paneHeight)
	a.panes[messages.PaneRight].SetDimensions(width-paneWidth, paneHeight)
	a.sourceView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
	a.statusbar.SetWidth(width)
}
