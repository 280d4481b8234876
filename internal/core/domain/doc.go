// Package domain defines the core business entities for keysent.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A labelled article with its ordered sentences
//   - ScoredSentence: A sentence with its TF-IDF and length-adjusted scores
//   - RankOptions: The configuration of a single ranking call
//   - Corpus: Documents loaded together, keyed by label
//   - RawDocument: Opaque bytes read by a corpus loader
//   - Change: A file change on a watched source
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
