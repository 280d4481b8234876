package ranking

import (
	"bufio"
	"io"
	"strings"
)

// EnglishStopWords returns a fresh common English stop-word set.
// No globals: callers own the returned map.
func EnglishStopWords() map[string]struct{} {
	ws := []string{
		"a", "about", "above", "after", "again", "against", "all", "almost", "also", "am",
		"among", "an", "and", "any", "are", "as", "at",
		"be", "because", "been", "before", "being", "below", "between", "both", "but", "by",
		"can", "cannot", "could",
		"did", "do", "does", "doing", "down", "during",
		"each", "either", "else", "enough", "etc", "even", "ever", "every",
		"few", "for", "from", "further",
		"had", "has", "have", "having", "he", "her", "here", "hers", "herself", "him",
		"himself", "his", "how", "however",
		"i", "if", "in", "into", "is", "it", "its", "itself",
		"just",
		"least", "less", "like",
		"many", "may", "me", "might", "more", "most", "much", "must", "my", "myself",
		"neither", "never", "no", "nor", "not", "now",
		"of", "off", "often", "on", "once", "only", "or", "other", "others", "otherwise",
		"our", "ours", "ourselves", "out", "over", "own",
		"per", "perhaps",
		"rather",
		"same", "several", "she", "should", "since", "so", "some", "still", "such",
		"than", "that", "the", "their", "theirs", "them", "themselves", "then", "there",
		"therefore", "these", "they", "this", "those", "though", "through", "thus", "to",
		"too",
		"under", "until", "up", "upon", "us",
		"very", "via",
		"was", "we", "well", "were", "what", "whatever", "when", "where", "whether",
		"which", "while", "who", "whom", "whose", "why", "will", "with", "within",
		"without", "would",
		"yet", "you", "your", "yours", "yourself", "yourselves",
	}
	m := make(map[string]struct{}, len(ws))
	for _, w := range ws {
		m[w] = struct{}{}
	}
	return m
}

// ReadStopWords parses a newline-separated word list.
// Blank lines and lines starting with '#' are ignored.
func ReadStopWords(r io.Reader) (map[string]struct{}, error) {
	m := make(map[string]struct{})
	scan := bufio.NewScanner(r)
	for scan.Scan() {
		w := strings.TrimSpace(scan.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		m[fold(w)] = struct{}{}
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// foldStopWords normalises a caller-provided set the same way terms are.
func foldStopWords(stop map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(stop))
	for w := range stop {
		out[fold(strings.TrimSpace(w))] = struct{}{}
	}
	return out
}
