package domain

// Document represents a labelled article ready for ranking.
// It is the canonical representation after normalisation and segmentation.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Label is the human-readable identifier shown next to ranked sentences,
	// usually the article title.
	Label string

	// URI is the original location (file path, URL, etc).
	URI string

	// Content is the full text content after normalisation.
	// The ranker never reads it; presentation layers use it for highlighting.
	Content string

	// Sentences is the ordered sequence of sentences segmented from Content.
	Sentences []string

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any
}

// SentenceCount returns the number of sentences in the document.
func (d *Document) SentenceCount() int {
	return len(d.Sentences)
}
