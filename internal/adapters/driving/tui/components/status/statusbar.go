// Package status provides the status bar shown under the panes.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/custodia-labs/keysent/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/keysent/internal/adapters/driving/tui/styles"
)

// State is what the focused pane is doing.
type State string

const (
	StateIdle    State = "idle"
	StateRanking State = "ranking"
	StateError   State = "error"
	StateResults State = "results"
)

// Status is the focused pane as the bar reports it.
type Status struct {
	State State
	// Pane names the focused pane.
	Pane string
	// Sources lists the paths the pane ranked.
	Sources []string
	// Count is the number of ranked sentences.
	Count int
	// Err is the message of the last failure.
	Err string
	// Watching is set while the pane re-ranks on file changes.
	Watching bool
}

// Bar renders a Status on the left and key hints on the right.
type Bar struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	status Status
	width  int
}

// NewBar creates a status bar. Nil styles or keymap fall back to defaults.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{
		styles: s,
		keymap: km,
		status: Status{State: StateIdle},
		width:  80,
	}
}

// Set replaces the displayed status.
func (b *Bar) Set(st Status) {
	if st.State == "" {
		st.State = StateIdle
	}
	b.status = st
}

// Status returns the displayed status.
func (b *Bar) Status() Status {
	return b.status
}

// Clear shows an idle bar for pane.
func (b *Bar) Clear(pane string) {
	b.status = Status{State: StateIdle, Pane: pane}
}

// SetWidth sets the bar width in cells.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Width returns the bar width in cells.
func (b *Bar) Width() int {
	return b.width
}

// View renders the bar. Key hints are dropped when they do not fit, and the
// source list is shortened before the counts are.
func (b *Bar) View() string {
	inner := max(0, b.width-b.styles.StatusBar.GetHorizontalFrameSize())
	right := b.hints()
	room := inner - lipgloss.Width(right) - 1
	if room < inner/2 {
		right = ""
		room = inner
	}

	left := b.describe(room)
	pad := max(1, inner-lipgloss.Width(left)-lipgloss.Width(right))
	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", pad) + right)
}

func (b *Bar) describe(room int) string {
	st := b.status
	prefix := ""
	if st.Pane != "" {
		prefix = "[" + st.Pane + "] "
	}

	switch st.State {
	case StateRanking:
		return b.styles.Muted.Render(prefix + "Ranking...")
	case StateError:
		return b.styles.Error.Render(runewidth.Truncate(prefix+"Error: "+st.Err, room, "…"))
	case StateResults:
		head := fmt.Sprintf("%s%d sentences", prefix, st.Count)
		if st.Watching {
			head += " (watching)"
		}
		text := head
		if len(st.Sources) > 0 {
			text += " · " + strings.Join(st.Sources, ", ")
		}
		if runewidth.StringWidth(text) > room {
			text = runewidth.Truncate(text, max(room, runewidth.StringWidth(head)), "…")
		}
		return b.styles.Normal.Render(text)
	default:
		return b.styles.Muted.Render(prefix + "Ready")
	}
}

func (b *Bar) hints() string {
	bindings := b.keymap.ShortHelp()
	if b.status.State == StateResults && b.status.Count > 0 {
		bindings = b.keymap.ResultsHelp()
	}
	return b.styles.Muted.Render(renderBindings(bindings))
}

func renderBindings(bindings []key.Binding) string {
	hints := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		hints = append(hints, h.Key+": "+h.Desc)
	}
	return strings.Join(hints, " | ")
}
