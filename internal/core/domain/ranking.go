package domain

import (
	"fmt"
	"math"
)

const unknownDescription = "Unknown"

// Scope defines whether sentences compete across the whole corpus or
// only within their own document.
type Scope string

// Available ranking scopes.
const (
	// ScopePooled ranks all sentences of all documents against each other,
	// deduplicates globally and keeps the top-k overall.
	ScopePooled Scope = "pooled"

	// ScopePerDocument ranks each document independently and keeps the
	// top-k of every document.
	ScopePerDocument Scope = "per_document"
)

// IsValid returns true if the scope is recognised.
func (s Scope) IsValid() bool {
	switch s {
	case ScopePooled, ScopePerDocument:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s Scope) String() string {
	return string(s)
}

// Description returns a human-readable description of the scope.
func (s Scope) Description() string {
	switch s {
	case ScopePooled:
		return "Pooled (all articles compete)"
	case ScopePerDocument:
		return "Per document (each article ranked on its own)"
	default:
		return unknownDescription
	}
}

// IDFMode selects the inverse document frequency formula.
type IDFMode string

// Available IDF formulas. N is the sentence count, df the number of
// sentences containing the term.
const (
	// IDFSmooth is ln((1+N)/(1+df)) + 1. Every vocabulary term keeps a
	// positive weight, even when it appears in every sentence.
	IDFSmooth IDFMode = "smooth"

	// IDFPlain is ln(N/df). Terms present in every sentence weigh zero.
	IDFPlain IDFMode = "plain"
)

// IsValid returns true if the IDF mode is recognised.
func (m IDFMode) IsValid() bool {
	return m == IDFSmooth || m == IDFPlain
}

// String returns the string representation.
func (m IDFMode) String() string {
	return string(m)
}

// NormMode selects the per-sentence weight vector normalisation.
type NormMode string

// Available normalisations.
const (
	// NormNone keeps raw tf x idf weights.
	NormNone NormMode = "none"

	// NormL2 scales each sentence's weight vector to unit Euclidean length.
	NormL2 NormMode = "l2"
)

// IsValid returns true if the normalisation mode is recognised.
func (m NormMode) IsValid() bool {
	return m == NormNone || m == NormL2
}

// String returns the string representation.
func (m NormMode) String() string {
	return string(m)
}

// RankOptions configures a single ranking call.
type RankOptions struct {
	// TopK caps the number of returned sentences (per document when
	// Scope is ScopePerDocument). Must be positive.
	TopK int

	// StopWords are excluded from the vocabulary. May be nil or empty.
	StopWords map[string]struct{}

	// LengthPenalty is the coefficient alpha applied to sentences longer
	// than the corpus average. Zero disables the penalty.
	LengthPenalty float64

	// Scope selects pooled or per-document ranking. Empty means pooled.
	Scope Scope

	// IDF selects the inverse document frequency formula. Empty means smooth.
	IDF IDFMode

	// Norm selects weight vector normalisation. Empty means none.
	Norm NormMode

	// MinDocumentFrequency prunes terms that occur in fewer sentences.
	// Zero means 1 (keep every term).
	MinDocumentFrequency int

	// Stem reduces vocabulary terms to their English stem.
	Stem bool
}

// DefaultRankOptions returns the stock ranking options:
// top 30 pooled sentences, alpha 0.1, smoothed idf.
func DefaultRankOptions() RankOptions {
	return RankOptions{
		TopK:                 30,
		LengthPenalty:        0.1,
		Scope:                ScopePooled,
		IDF:                  IDFSmooth,
		Norm:                 NormNone,
		MinDocumentFrequency: 1,
	}
}

// WithDefaults returns a copy with empty enum fields filled in.
func (o RankOptions) WithDefaults() RankOptions {
	if o.Scope == "" {
		o.Scope = ScopePooled
	}
	if o.IDF == "" {
		o.IDF = IDFSmooth
	}
	if o.Norm == "" {
		o.Norm = NormNone
	}
	if o.MinDocumentFrequency == 0 {
		o.MinDocumentFrequency = 1
	}
	return o
}

// Validate reports an ErrInvalidArgument-wrapped error for any
// out-of-range option. Call WithDefaults first to accept empty enums.
func (o RankOptions) Validate() error {
	if o.TopK <= 0 {
		return fmt.Errorf("%w: top-k must be positive, got %d", ErrInvalidArgument, o.TopK)
	}
	if math.IsNaN(o.LengthPenalty) || math.IsInf(o.LengthPenalty, 0) || o.LengthPenalty < 0 {
		return fmt.Errorf("%w: length penalty must be a finite value >= 0, got %v", ErrInvalidArgument, o.LengthPenalty)
	}
	if !o.Scope.IsValid() {
		return fmt.Errorf("%w: unknown scope %q", ErrInvalidArgument, o.Scope)
	}
	if !o.IDF.IsValid() {
		return fmt.Errorf("%w: unknown idf mode %q", ErrInvalidArgument, o.IDF)
	}
	if !o.Norm.IsValid() {
		return fmt.Errorf("%w: unknown normalisation %q", ErrInvalidArgument, o.Norm)
	}
	if o.MinDocumentFrequency < 1 {
		return fmt.Errorf("%w: minimum document frequency must be >= 1, got %d",
			ErrInvalidArgument, o.MinDocumentFrequency)
	}
	return nil
}

// ScoredSentence is one ranked sentence.
type ScoredSentence struct {
	// Label identifies the originating document.
	Label string `json:"label"`

	// Text is the sentence as it appeared in the document.
	Text string `json:"text"`

	// DocumentIndex is the position of the originating document in the corpus.
	DocumentIndex int `json:"document_index"`

	// Position is the ordinal of the sentence within its document.
	Position int `json:"position"`

	// TokenCount is the whitespace-separated token count used for the penalty.
	TokenCount int `json:"token_count"`

	// RawScore is the sum of the TF-IDF weights of the sentence's terms.
	RawScore float64 `json:"raw_score"`

	// LengthPenalty is 1 + alpha * max(0, TokenCount - average length).
	LengthPenalty float64 `json:"length_penalty"`

	// AdjustedScore is RawScore / LengthPenalty.
	AdjustedScore float64 `json:"score"`
}

// GroupByLabel splits a ranked result into per-label blocks, keeping the
// order in which labels first appear and the order of sentences within
// each label.
func GroupByLabel(ranked []ScoredSentence) ([]string, map[string][]ScoredSentence) {
	var labels []string
	groups := make(map[string][]ScoredSentence)
	for i := range ranked {
		label := ranked[i].Label
		if _, seen := groups[label]; !seen {
			labels = append(labels, label)
		}
		groups[label] = append(groups[label], ranked[i])
	}
	return labels, groups
}
