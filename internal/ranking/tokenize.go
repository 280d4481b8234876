package ranking

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// termPattern matches letter/digit runs, keeping inner apostrophes ("don't").
var termPattern = regexp.MustCompile(`[\pL\pN]+(?:['’][\pL\pN]+)*`)

// fold applies the normalisation shared by sentences and stop words.
func fold(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}

// Tokenize splits text into lowercased terms.
func Tokenize(text string) []string {
	return termPattern.FindAllString(fold(text), -1)
}

// WordCount returns the number of whitespace-separated fields in text.
// It drives the length penalty.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
