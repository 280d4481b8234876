package domain

import (
	"fmt"
	"time"
)

// Corpus is a set of documents loaded together from one or more sources.
// It is held in memory for the lifetime of the process only.
type Corpus struct {
	// ID is the unique identifier assigned on load.
	ID string

	// Sources are the paths the corpus was loaded from, in load order.
	Sources []string

	// Documents are the loaded documents in source order.
	// Labels are unique within a corpus.
	Documents []Document

	// LoadedAt is when the corpus was loaded.
	LoadedAt time.Time
}

// Document returns the document with the given label.
func (c *Corpus) Document(label string) (*Document, bool) {
	for i := range c.Documents {
		if c.Documents[i].Label == label {
			return &c.Documents[i], true
		}
	}
	return nil, false
}

// Labels returns the document labels in corpus order.
func (c *Corpus) Labels() []string {
	labels := make([]string, len(c.Documents))
	for i := range c.Documents {
		labels[i] = c.Documents[i].Label
	}
	return labels
}

// SentenceCount returns the total number of sentences across documents.
func (c *Corpus) SentenceCount() int {
	var n int
	for i := range c.Documents {
		n += c.Documents[i].SentenceCount()
	}
	return n
}

// RankResult pairs a ranking with the corpus it was computed from.
type RankResult struct {
	// CorpusID identifies the corpus in the corpus store.
	CorpusID string `json:"corpus_id"`

	// Options are the effective options of the ranking call.
	Options RankOptions `json:"-"`

	// Sentences is the ranked result.
	Sentences []ScoredSentence `json:"sentences"`
}

// UniqueLabels renames documents whose label an earlier document already
// uses by appending " (2)", " (3)" and so on, so every ranked sentence
// traces back to exactly one document.
func UniqueLabels(docs []Document) {
	used := make(map[string]bool, len(docs))
	for i := range docs {
		label := docs[i].Label
		for n := 2; used[label]; n++ {
			label = fmt.Sprintf("%s (%d)", docs[i].Label, n)
		}
		docs[i].Label = label
		used[label] = true
	}
}
