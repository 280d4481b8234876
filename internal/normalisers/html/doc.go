// Package html provides a Normaliser implementation for HTML documents.
// It extracts the readable article text with go-readability and falls back
// to a block-aware walk of the parsed DOM when extraction yields nothing.
// Paragraphs in the resulting Content are separated by blank lines.
package html
