// Package styles provides the colour palette and lipgloss styles of the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the palette. Every colour adapts to light and dark terminals.
type Theme struct {
	Accent  lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor
	Text    lipgloss.AdaptiveColor
	Subtle  lipgloss.AdaptiveColor
	Surface lipgloss.AdaptiveColor
	Frame   lipgloss.AdaptiveColor
	Good    lipgloss.AdaptiveColor
	Caution lipgloss.AdaptiveColor
	Bad     lipgloss.AdaptiveColor

	// Score colours shade ranked sentences from the top of a ranking down.
	ScoreHigh lipgloss.AdaptiveColor
	ScoreMid  lipgloss.AdaptiveColor
	ScoreLow  lipgloss.AdaptiveColor
}

// DefaultTheme returns the default palette.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:    lipgloss.AdaptiveColor{Light: "#6D28D9", Dark: "#A78BFA"},
		Info:      lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#67E8F9"},
		Text:      lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E5E7EB"},
		Subtle:    lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"},
		Surface:   lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#1F2937"},
		Frame:     lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"},
		Good:      lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#86EFAC"},
		Caution:   lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FCD34D"},
		Bad:       lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#FCA5A5"},
		ScoreHigh: lipgloss.AdaptiveColor{Light: "#C2410C", Dark: "#FB923C"},
		ScoreMid:  lipgloss.AdaptiveColor{Light: "#A16207", Dark: "#FDE047"},
		ScoreLow:  lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"},
	}
}

// Styles holds the lipgloss styles built from a Theme.
type Styles struct {
	theme *Theme

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style

	// Highlight marks the selected sentence inside its source text.
	Highlight lipgloss.Style

	border lipgloss.Style
	focus  lipgloss.Style
	scores [3]lipgloss.Style
}

// NewStyles builds styles from theme, or from DefaultTheme when nil.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	frame := lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder())

	return &Styles{
		theme: theme,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(theme.Info),
		Normal:   lipgloss.NewStyle().Foreground(theme.Text),
		Muted:    lipgloss.NewStyle().Foreground(theme.Subtle),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Background(theme.Surface),
		Error:    lipgloss.NewStyle().Foreground(theme.Bad),
		Success:  lipgloss.NewStyle().Foreground(theme.Good),
		Warning:  lipgloss.NewStyle().Foreground(theme.Caution),

		InputField: frame.BorderForeground(theme.Frame).Padding(0, 1),
		StatusBar:  lipgloss.NewStyle().Foreground(theme.Subtle).Background(theme.Surface).Padding(0, 1),
		Help:       lipgloss.NewStyle().Foreground(theme.Subtle),
		Highlight:  lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Background(theme.ScoreMid),

		border: frame.BorderForeground(theme.Frame),
		focus:  frame.BorderForeground(theme.Accent),
		scores: [3]lipgloss.Style{
			lipgloss.NewStyle().Bold(true).Foreground(theme.ScoreHigh),
			lipgloss.NewStyle().Foreground(theme.ScoreMid),
			lipgloss.NewStyle().Foreground(theme.ScoreLow),
		},
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// PaneBorder returns the frame of a pane, accented when it has focus.
func (s *Styles) PaneBorder(focused bool) lipgloss.Style {
	if focused {
		return s.focus
	}
	return s.border
}

// Score returns the style for a score relative to the best score of its
// ranking. The top third is high, the bottom third low.
func (s *Styles) Score(score, best float64) lipgloss.Style {
	if best <= 0 {
		return s.scores[2]
	}
	switch ratio := score / best; {
	case ratio >= 2.0/3:
		return s.scores[0]
	case ratio >= 1.0/3:
		return s.scores[1]
	default:
		return s.scores[2]
	}
}
