// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/custodia-labs/keysent/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/keysent/internal/core/domain"
)

// SentenceList displays ranked sentences in a navigable list.
type SentenceList struct {
	sentences []domain.ScoredSentence
	selected  int
	styles    *styles.Styles
	width     int
	height    int
}

// NewSentenceList creates a new sentence list component.
func NewSentenceList(s *styles.Styles) *SentenceList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &SentenceList{
		sentences: nil,
		selected:  0,
		styles:    s,
		width:     80,
		height:    10,
	}
}

// Init initialises the sentence list.
func (r *SentenceList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *SentenceList) Update(msg tea.Msg) (*SentenceList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		case "home", "g":
			r.selected = 0
		case "end", "G":
			if len(r.sentences) > 0 {
				r.selected = len(r.sentences) - 1
			}
		}
	}
	return r, nil
}

// View renders the sentence list.
func (r *SentenceList) View() string {
	if len(r.sentences) == 0 {
		return r.styles.Muted.Render("No sentences")
	}

	lines := make([]string, 0, len(r.sentences)+2)

	header := r.styles.Subtitle.Render(fmt.Sprintf("Key sentences (%d)", len(r.sentences)))
	lines = append(lines, header, "")

	// Each sentence takes two lines: text with score, then its label.
	visibleCount := (r.height - 2) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.sentences) {
		end = len(r.sentences)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderSentence(i, &r.sentences[i]))
	}

	return strings.Join(lines, "\n")
}

// renderSentence formats a single ranked sentence.
func (r *SentenceList) renderSentence(index int, s *domain.ScoredSentence) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	rank := fmt.Sprintf("%2d. ", index+1)
	score := fmt.Sprintf("%.4f", s.AdjustedScore)

	maxTextWidth := r.width - len(indicator) - len(rank) - len(score) - 2
	if maxTextWidth < 10 {
		maxTextWidth = 10
	}
	text := runewidth.Truncate(Flatten(s.Text), maxTextWidth, "...")
	text = runewidth.FillRight(text, maxTextWidth)

	var textLine string
	if index == r.selected {
		textLine = r.styles.Selected.Render(indicator + rank + text + "  " + score)
	} else {
		best := r.sentences[0].AdjustedScore
		textLine = r.styles.Normal.Render(indicator+rank+text+"  ") + r.styles.Score(s.AdjustedScore, best).Render(score)
	}

	label := s.Label
	if label == "" {
		label = "(Untitled)"
	}
	label = runewidth.Truncate(label, maxTextWidth, "...")
	labelLine := r.styles.Muted.Render(fmt.Sprintf("      %s #%d", label, s.Position+1))

	return textLine + "\n" + labelLine
}

// Flatten collapses line breaks and runs of whitespace so a sentence
// renders on one line.
func Flatten(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// SetSentences updates the sentence list.
func (r *SentenceList) SetSentences(sentences []domain.ScoredSentence) {
	r.sentences = sentences
	r.selected = 0
}

// Sentences returns the current sentences.
func (r *SentenceList) Sentences() []domain.ScoredSentence {
	return r.sentences
}

// Selected returns the index of the selected sentence.
func (r *SentenceList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *SentenceList) SetSelected(index int) {
	if index >= 0 && index < len(r.sentences) {
		r.selected = index
	}
}

// SelectedSentence returns the currently selected sentence, or nil if none.
func (r *SentenceList) SelectedSentence() *domain.ScoredSentence {
	if len(r.sentences) == 0 || r.selected < 0 || r.selected >= len(r.sentences) {
		return nil
	}
	return &r.sentences[r.selected]
}

// MoveUp moves selection up.
func (r *SentenceList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *SentenceList) MoveDown() {
	if r.selected < len(r.sentences)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *SentenceList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *SentenceList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *SentenceList) Height() int {
	return r.height
}

// Count returns the number of sentences.
func (r *SentenceList) Count() int {
	return len(r.sentences)
}

// IsEmpty returns whether the list is empty.
func (r *SentenceList) IsEmpty() bool {
	return len(r.sentences) == 0
}
