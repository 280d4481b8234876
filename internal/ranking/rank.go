package ranking

import (
	"sort"
	"strings"

	"github.com/custodia-labs/keysent/internal/core/domain"
)

// entry is one sentence of the flattened corpus.
type entry struct {
	label    string
	text     string
	docIndex int
	position int
}

// Rank scores the sentences of corpus and returns at most opts.TopK of them,
// highest adjusted score first.
//
// In pooled scope all sentences compete and duplicates are removed across
// documents. In per-document scope every document is ranked on its own
// vocabulary and average length, and the per-document blocks are concatenated
// in corpus order.
//
// When several sentences of one ranking pool share the same text, the first
// occurrence in corpus order is kept. The pool is the whole corpus in pooled
// scope, so no two results have identical text; in per-document scope it is
// one document, so text repeated across documents appears once per document.
// Ties in score keep corpus order.
func Rank(corpus []domain.Document, opts domain.RankOptions) ([]domain.ScoredSentence, error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if opts.Scope == domain.ScopePerDocument {
		result := []domain.ScoredSentence{}
		for i := range corpus {
			result = append(result, rankEntries(flatten(corpus[i:i+1], i), opts)...)
		}
		return result, nil
	}
	return rankEntries(flatten(corpus, 0), opts), nil
}

// flatten turns documents into ordered entries, dropping blank sentences.
func flatten(docs []domain.Document, firstIndex int) []entry {
	var entries []entry
	for d := range docs {
		for p, s := range docs[d].Sentences {
			if strings.TrimSpace(s) == "" {
				continue
			}
			entries = append(entries, entry{
				label:    docs[d].Label,
				text:     s,
				docIndex: firstIndex + d,
				position: p,
			})
		}
	}
	return entries
}

func rankEntries(entries []entry, opts domain.RankOptions) []domain.ScoredSentence {
	if len(entries) == 0 {
		return []domain.ScoredSentence{}
	}

	texts := make([]string, len(entries))
	counts := make([]int, len(entries))
	var total int
	for i := range entries {
		texts[i] = entries[i].text
		counts[i] = WordCount(entries[i].text)
		total += counts[i]
	}
	avg := float64(total) / float64(len(entries))

	_, rows := newVectorizer(opts).fitTransform(texts)

	scored := make([]domain.ScoredSentence, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for i := range entries {
		if _, dup := seen[entries[i].text]; dup {
			continue
		}
		seen[entries[i].text] = struct{}{}

		raw := rowSum(rows[i])
		penalty := LengthPenalty(counts[i], avg, opts.LengthPenalty)
		scored = append(scored, domain.ScoredSentence{
			Label:         entries[i].label,
			Text:          entries[i].text,
			DocumentIndex: entries[i].docIndex,
			Position:      entries[i].position,
			TokenCount:    counts[i],
			RawScore:      raw,
			LengthPenalty: penalty,
			AdjustedScore: raw / penalty,
		})
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].AdjustedScore > scored[b].AdjustedScore
	})

	if len(scored) > opts.TopK {
		scored = scored[:opts.TopK]
	}
	return scored
}

// LengthPenalty returns 1 + alpha * max(0, words - avg).
func LengthPenalty(words int, avg, alpha float64) float64 {
	excess := float64(words) - avg
	if excess < 0 {
		excess = 0
	}
	return 1 + alpha*excess
}
