package plaintext

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/keysent/internal/core/domain"
	"github.com/custodia-labs/keysent/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents. It is also the fallback for
// article bodies read from JSON, JSON Lines and YAML files.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/csv",
		"text/rtf",
	}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 5 // Fallback normaliser
}

// Normalise converts a raw document to a normalised document.
// Line endings are unified and a UTF-8 byte order mark is dropped.
// The label is the loader's title, else one derived from the filename.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil || !utf8.Valid(raw.Content) {
		return nil, domain.ErrInvalidInput
	}

	label := raw.Title()
	if label == "" {
		label = raw.FilenameLabel()
	}

	return &driven.NormaliseResult{
		Document: raw.Document(uuid.New().String(), label, cleanText(string(raw.Content))),
	}, nil
}

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func cleanText(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.TrimSpace(lineEndings.Replace(s))
}
