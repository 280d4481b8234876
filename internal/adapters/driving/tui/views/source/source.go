// Package source provides the source text view for the TUI.
// It shows the document a ranked sentence came from, with the sentence highlighted.
package source

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/custodia-labs/keysent/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/keysent/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/keysent/internal/core/domain"
	"github.com/custodia-labs/keysent/internal/core/ports/driving"
)

// line is one wrapped display line and the byte range of content it covers.
type line struct {
	text       string
	start, end int
}

// View is the source text view.
type View struct {
	styles        *styles.Styles
	corpusService driving.CorpusService
	ctx           context.Context

	corpusID string
	sentence *domain.ScoredSentence
	content  string
	lines    []line

	// highlight is the byte range of the sentence in content, or -1.
	hlStart, hlEnd int

	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
}

// NewView creates a new source text view.
func NewView(s *styles.Styles, corpusService driving.CorpusService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:        s,
		corpusService: corpusService,
		ctx:           context.Background(),
		hlStart:       -1,
		hlEnd:         -1,
		width:         80,
		height:        24,
	}
}

// WithContext sets the context for content loading.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetSentence sets the sentence to show and loads its document text.
func (v *View) SetSentence(corpusID string, sentence domain.ScoredSentence) tea.Cmd {
	v.corpusID = corpusID
	v.sentence = &sentence
	v.content = ""
	v.lines = nil
	v.hlStart, v.hlEnd = -1, -1
	v.scrollOffset = 0
	v.err = nil
	v.loading = true
	return v.loadContent()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// loadContent returns a command that loads the document text.
func (v *View) loadContent() tea.Cmd {
	corpusID := v.corpusID
	label := v.sentence.Label
	return func() tea.Msg {
		if v.corpusService == nil {
			return messages.ContentLoaded{CorpusID: corpusID, Label: label, Err: fmt.Errorf("corpus service not available")}
		}
		content, err := v.corpusService.Content(v.ctx, corpusID, label)
		return messages.ContentLoaded{
			CorpusID: corpusID,
			Label:    label,
			Content:  content,
			Err:      err,
		}
	}
}

// Update handles messages for the source view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ContentLoaded:
		if v.sentence == nil || msg.CorpusID != v.corpusID || msg.Label != v.sentence.Label {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.content = msg.Content
		v.locateSentence()
		v.wrapContent()
		v.scrollToHighlight()
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "pgup", "ctrl+u":
		v.scrollOffset -= v.visibleLines()
		if v.scrollOffset < 0 {
			v.scrollOffset = 0
		}
	case "pgdown", "ctrl+d":
		v.scrollOffset += v.visibleLines()
		if v.scrollOffset > v.maxScrollOffset() {
			v.scrollOffset = v.maxScrollOffset()
		}
	case "home", "g":
		v.scrollOffset = 0
	case "end", "G":
		v.scrollOffset = v.maxScrollOffset()
	case "n":
		v.scrollToHighlight()
	case "esc", "q":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewPanes}
		}
	}

	return v, nil
}

// locateSentence finds the sentence in the content. Sentences are trimmed
// and whitespace-collapsed by the loader, so an exact match is tried first
// and a whitespace-insensitive match second.
func (v *View) locateSentence() {
	v.hlStart, v.hlEnd = -1, -1
	if v.sentence == nil || v.sentence.Text == "" {
		return
	}
	if i := strings.Index(v.content, v.sentence.Text); i >= 0 {
		v.hlStart, v.hlEnd = i, i+len(v.sentence.Text)
		return
	}
	v.hlStart, v.hlEnd = indexFields(v.content, strings.Fields(v.sentence.Text))
}

// indexFields returns the byte range of the first run of words in s that
// equals words when whitespace is ignored, or -1, -1.
func indexFields(s string, words []string) (int, int) {
	if len(words) == 0 {
		return -1, -1
	}
	for from := 0; from < len(s); {
		i := strings.Index(s[from:], words[0])
		if i < 0 {
			return -1, -1
		}
		start := from + i
		if end, ok := matchWords(s, start, words); ok {
			return start, end
		}
		from = start + len(words[0])
	}
	return -1, -1
}

func matchWords(s string, pos int, words []string) (int, bool) {
	for n, w := range words {
		if n > 0 {
			skipped := pos
			for pos < len(s) && isSpace(s[pos]) {
				pos++
			}
			if pos == skipped {
				return 0, false
			}
		}
		if !strings.HasPrefix(s[pos:], w) {
			return 0, false
		}
		pos += len(w)
	}
	return pos, true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// wrapContent wraps the content to the view width by display cells,
// recording the byte range behind every line.
func (v *View) wrapContent() {
	v.lines = nil
	if v.content == "" {
		return
	}

	contentWidth := v.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	offset := 0
	for _, raw := range strings.Split(v.content, "\n") {
		start := offset
		cells := 0
		lineStart := start
		for i, r := range raw {
			w := runewidth.RuneWidth(r)
			if cells+w > contentWidth && cells > 0 {
				v.lines = append(v.lines, line{text: v.content[lineStart : start+i], start: lineStart, end: start + i})
				lineStart = start + i
				cells = 0
			}
			cells += w
		}
		end := start + len(raw)
		v.lines = append(v.lines, line{text: v.content[lineStart:end], start: lineStart, end: end})
		offset = end + 1
	}
}

// highlighted reports whether a display line overlaps the sentence.
func (v *View) highlighted(l line) bool {
	if v.hlStart < 0 {
		return false
	}
	return l.start < v.hlEnd && l.end > v.hlStart
}

// scrollToHighlight scrolls so the first highlighted line is near the top.
func (v *View) scrollToHighlight() {
	for i, l := range v.lines {
		if v.highlighted(l) {
			offset := i - 2
			if offset < 0 {
				offset = 0
			}
			if offset > v.maxScrollOffset() {
				offset = v.maxScrollOffset()
			}
			v.scrollOffset = offset
			return
		}
	}
}

// visibleLines returns the number of lines that can be displayed.
func (v *View) visibleLines() int {
	// Reserve lines for title, label, separator, help, and padding
	reserved := 7
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	maxOffset := len(v.lines) - v.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	return maxOffset
}

// View renders the source view.
func (v *View) View() string {
	var b strings.Builder

	title := "Source"
	if v.sentence != nil && v.sentence.Label != "" {
		title = v.sentence.Label
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	if v.sentence != nil {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Sentence #%d  score %.4f  raw %.4f  penalty %.3f",
			v.sentence.Position+1, v.sentence.AdjustedScore, v.sentence.RawScore, v.sentence.LengthPenalty)))
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("─", max(0, minInt(v.width-4, 60))))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading content..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	case len(v.lines) == 0:
		b.WriteString(v.styles.Muted.Render("(No content)"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visible := v.visibleLines()
	for i := v.scrollOffset; i < len(v.lines) && i < v.scrollOffset+visible; i++ {
		l := v.lines[i]
		if v.highlighted(l) {
			b.WriteString(v.styles.Highlight.Render(l.text))
		} else {
			b.WriteString(v.styles.Normal.Render(l.text))
		}
		b.WriteString("\n")
	}

	if len(v.lines) > visible {
		b.WriteString("\n")
		percentage := 0
		if v.maxScrollOffset() > 0 {
			percentage = v.scrollOffset * 100 / v.maxScrollOffset()
		}
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d%%] Line %d-%d of %d",
			percentage,
			v.scrollOffset+1,
			minInt(v.scrollOffset+visible, len(v.lines)),
			len(v.lines))))
	}
	if v.hlStart < 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Warning.Render("Sentence not found verbatim in source text"))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [n] jump to sentence  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.wrapContent()
}

// Sentence returns the sentence being shown.
func (v *View) Sentence() *domain.ScoredSentence {
	return v.sentence
}

// Content returns the document text.
func (v *View) Content() string {
	return v.content
}

// Highlight returns the byte range of the sentence in the content,
// or -1, -1 when it could not be located.
func (v *View) Highlight() (int, int) {
	return v.hlStart, v.hlEnd
}

// ScrollOffset returns the index of the first visible line.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
