package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/custodia-labs/keysent/internal/core/domain"
)

const defaultTermWidth = 80

// termWidth returns the column count of w when it is a terminal.
func termWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultTermWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultTermWidth
	}
	return width
}

// wrapText breaks text into lines of at most width display cells.
// Words wider than a line are split between runes.
func wrapText(text string, width int) []string {
	if width < 1 {
		width = 1
	}

	var lines []string
	var line strings.Builder
	cells := 0
	flush := func() {
		if line.Len() > 0 {
			lines = append(lines, line.String())
			line.Reset()
			cells = 0
		}
	}

	for _, word := range strings.Fields(text) {
		w := runewidth.StringWidth(word)
		if cells > 0 && cells+1+w > width {
			flush()
		}
		if w > width {
			for _, r := range word {
				rw := runewidth.RuneWidth(r)
				if cells+rw > width {
					flush()
				}
				line.WriteRune(r)
				cells += rw
			}
			continue
		}
		if cells > 0 {
			line.WriteByte(' ')
			cells++
		}
		line.WriteString(word)
		cells += w
	}
	flush()
	return lines
}

// splitPaths splits a comma separated path list, dropping empty entries.
func splitPaths(arg string) []string {
	var paths []string
	for _, p := range strings.Split(arg, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// printSentences writes ranked sentences as a numbered list. Per-document
// results are grouped under their label.
func printSentences(w io.Writer, result *domain.RankResult, width int) {
	if len(result.Sentences) == 0 {
		fmt.Fprintln(w, "No sentences found.")
		return
	}

	if result.Options.Scope != domain.ScopePerDocument {
		for i, s := range result.Sentences {
			printSentence(w, i+1, s, true, width)
		}
		return
	}

	labels, groups := domain.GroupByLabel(result.Sentences)
	for i, label := range labels {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "== %s ==\n", displayLabel(label))
		for j, s := range groups[label] {
			printSentence(w, j+1, s, false, width)
		}
	}
}

func printSentence(w io.Writer, rank int, s domain.ScoredSentence, withLabel bool, width int) {
	const indent = "    "
	if withLabel {
		fmt.Fprintf(w, "%3d. %.4f  %s #%d\n", rank, s.AdjustedScore, displayLabel(s.Label), s.Position+1)
	} else {
		fmt.Fprintf(w, "%3d. %.4f  #%d\n", rank, s.AdjustedScore, s.Position+1)
	}
	for _, line := range wrapText(s.Text, max(20, width-len(indent))) {
		fmt.Fprintf(w, "%s%s\n", indent, line)
	}
}

func displayLabel(label string) string {
	if label == "" {
		return "(Untitled)"
	}
	return label
}

// rankJSON is the JSON form of a ranking.
type rankJSON struct {
	Scope         domain.Scope            `json:"scope"`
	TopK          int                     `json:"top_k"`
	LengthPenalty float64                 `json:"length_penalty"`
	Sentences     []domain.ScoredSentence `json:"sentences"`
}

func newRankJSON(result *domain.RankResult) rankJSON {
	sentences := result.Sentences
	if sentences == nil {
		sentences = []domain.ScoredSentence{}
	}
	return rankJSON{
		Scope:         result.Options.Scope,
		TopK:          result.Options.TopK,
		LengthPenalty: result.Options.LengthPenalty,
		Sentences:     sentences,
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
