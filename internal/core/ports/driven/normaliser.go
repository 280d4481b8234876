package driven

import (
	"context"

	"github.com/custodia-labs/keysent/internal/core/domain"
)

// Normaliser turns the raw bytes of one article format into a labelled
// plain text Document. Segmentation happens later, in the post-processor
// pipeline, so the returned Document has no sentences.
type Normaliser interface {
	// SupportedMIMETypes lists the media types handled, without parameters.
	SupportedMIMETypes() []string

	// Priority breaks ties between normalisers claiming the same type.
	// Format-specific normalisers use 50-89, fallbacks 1-9.
	Priority() int

	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult wraps the normalised document.
type NormaliseResult struct {
	Document domain.Document
}

// NormaliserRegistry dispatches a raw document to the highest priority
// normaliser for its MIME type.
type NormaliserRegistry interface {
	// Normalise returns domain.ErrUnsupportedType when nothing matches.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
	Register(normaliser Normaliser)
	SupportedMIMETypes() []string
}
