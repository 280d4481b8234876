package ranking

import (
	"math"
	"sort"

	"github.com/kljensen/snowball/english"

	"github.com/custodia-labs/keysent/internal/core/domain"
)

// weightedTerm is one non-zero cell of a sentence's weight row.
type weightedTerm struct {
	term   int
	weight float64
}

// vocabulary maps terms to feature indices in ascending lexical order.
type vocabulary struct {
	index map[string]int
	terms []string
}

// Len returns the number of terms.
func (v *vocabulary) Len() int {
	return len(v.terms)
}

// vectorizer builds a vocabulary and sparse TF-IDF rows for one call.
type vectorizer struct {
	stop  map[string]struct{}
	idf   domain.IDFMode
	norm  domain.NormMode
	minDF int
	stem  bool
}

func newVectorizer(opts domain.RankOptions) *vectorizer {
	return &vectorizer{
		stop:  foldStopWords(opts.StopWords),
		idf:   opts.IDF,
		norm:  opts.Norm,
		minDF: opts.MinDocumentFrequency,
		stem:  opts.Stem,
	}
}

// analyze tokenizes a sentence. Pipeline: fold -> stop filter -> stem.
func (v *vectorizer) analyze(sentence string) []string {
	tokens := Tokenize(sentence)
	kept := tokens[:0]
	for _, tok := range tokens {
		if _, bad := v.stop[tok]; bad {
			continue
		}
		if v.stem {
			tok = english.Stem(tok, true)
			if tok == "" {
				continue
			}
		}
		kept = append(kept, tok)
	}
	return kept
}

// fitTransform returns the vocabulary and one weight row per sentence.
// Rows are sorted by term index. An empty vocabulary yields empty rows.
func (v *vectorizer) fitTransform(sentences []string) (*vocabulary, [][]weightedTerm) {
	analyzed := make([][]string, len(sentences))
	df := make(map[string]int)
	for i, s := range sentences {
		analyzed[i] = v.analyze(s)
		seen := make(map[string]bool)
		for _, t := range analyzed[i] {
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
	}

	vocab := &vocabulary{index: make(map[string]int)}
	for t, n := range df {
		if n >= v.minDF {
			vocab.terms = append(vocab.terms, t)
		}
	}
	sort.Strings(vocab.terms)
	for i, t := range vocab.terms {
		vocab.index[t] = i
	}

	idf := make([]float64, vocab.Len())
	n := float64(len(sentences))
	for i, t := range vocab.terms {
		d := float64(df[t])
		if v.idf == domain.IDFPlain {
			idf[i] = math.Log(n / d)
		} else {
			idf[i] = math.Log((1+n)/(1+d)) + 1
		}
	}

	rows := make([][]weightedTerm, len(sentences))
	for i, terms := range analyzed {
		counts := make(map[int]int)
		for _, t := range terms {
			if idx, ok := vocab.index[t]; ok {
				counts[idx]++
			}
		}
		row := make([]weightedTerm, 0, len(counts))
		for idx, c := range counts {
			row = append(row, weightedTerm{term: idx, weight: float64(c) * idf[idx]})
		}
		sort.Slice(row, func(a, b int) bool { return row[a].term < row[b].term })
		if v.norm == domain.NormL2 {
			l2Normalise(row)
		}
		rows[i] = row
	}
	return vocab, rows
}

func l2Normalise(row []weightedTerm) {
	var sq float64
	for _, c := range row {
		sq += c.weight * c.weight
	}
	if sq == 0 {
		return
	}
	l := math.Sqrt(sq)
	for i := range row {
		row[i].weight /= l
	}
}

// rowSum accumulates weights in ascending term index.
func rowSum(row []weightedTerm) float64 {
	var sum float64
	for _, c := range row {
		sum += c.weight
	}
	return sum
}
