package domain

import (
	"maps"
	"path/filepath"
	"strings"
)

// RawDocument represents opaque bytes read by a corpus loader.
// It is the loader's output before normalisation.
type RawDocument struct {
	// URI is the original location (file path, URL, etc).
	URI string

	// MIMEType is the content type (e.g., "text/html").
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains loader-specific key-value pairs.
	// A "title" entry overrides the title a normaliser would derive.
	Metadata map[string]any
}

// Title returns the trimmed "title" metadata entry, or "" when there is none.
func (r *RawDocument) Title() string {
	title, _ := r.Metadata["title"].(string)
	return strings.TrimSpace(title)
}

var filenameSeparators = strings.NewReplacer("_", " ", "-", " ")

// FilenameLabel derives a label from the base name of the URI:
// "/news/market_report-2024.txt" becomes "market report 2024".
func (r *RawDocument) FilenameLabel() string {
	name := filepath.Base(r.URI)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return filenameSeparators.Replace(name)
}

// Document starts the normalised form of r. Metadata is a copy of the
// loader's metadata with "mime_type" added.
func (r *RawDocument) Document(id, label, content string) Document {
	metadata := make(map[string]any, len(r.Metadata)+1)
	maps.Copy(metadata, r.Metadata)
	metadata["mime_type"] = r.MIMEType

	return Document{
		ID:       id,
		URI:      r.URI,
		Label:    label,
		Content:  content,
		Metadata: metadata,
	}
}
