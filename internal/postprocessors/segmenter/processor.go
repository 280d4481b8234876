// Package segmenter provides a sentence segmentation processor.
package segmenter

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"github.com/custodia-labs/keysent/internal/core/domain"
	"github.com/custodia-labs/keysent/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.PostProcessor = (*Processor)(nil)

// Processor splits document content into sentences.
// Content is first split into paragraphs on blank lines; a sentence never
// spans two paragraphs.
type Processor struct {
	mode  domain.SegmenterMode
	punkt *sentences.DefaultSentenceTokenizer
}

// Option configures the segmenter processor.
type Option func(*Processor)

// WithMode selects the segmentation algorithm. Unknown modes are ignored.
func WithMode(mode domain.SegmenterMode) Option {
	return func(p *Processor) {
		if mode.IsValid() {
			p.mode = mode
		}
	}
}

// New creates a new segmenter processor with the given options.
// The Punkt model is loaded once per processor.
func New(opts ...Option) (*Processor, error) {
	p := &Processor{mode: domain.SegmenterPunkt}
	for _, opt := range opts {
		opt(p)
	}

	if p.mode == domain.SegmenterPunkt {
		tokenizer, err := english.NewSentenceTokenizer(nil)
		if err != nil {
			return nil, fmt.Errorf("load punkt model: %w", err)
		}
		p.punkt = tokenizer
	}

	return p, nil
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "segmenter"
}

// Mode returns the active segmentation algorithm.
func (p *Processor) Mode() domain.SegmenterMode {
	return p.mode
}

// Process splits the document content into sentences.
// Input sentences are ignored; this processor creates new ones from content.
func (p *Processor) Process(ctx context.Context, doc *domain.Document, _ []string) ([]string, error) {
	if strings.TrimSpace(doc.Content) == "" {
		return nil, nil
	}

	var result []string
	for _, paragraph := range SplitParagraphs(doc.Content) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, s := range p.split(paragraph) {
			if s = strings.TrimSpace(s); s != "" {
				result = append(result, s)
			}
		}
	}
	return result, nil
}

func (p *Processor) split(paragraph string) []string {
	if p.punkt == nil {
		return SplitRegex(paragraph)
	}
	tokens := p.punkt.Tokenize(paragraph)
	out := make([]string, 0, len(tokens))
	for _, s := range tokens {
		out = append(out, s.Text)
	}
	return out
}

var paragraphBreak = regexp.MustCompile(`\r?\n\s*\r?\n`)

// SplitParagraphs splits text on blank lines, dropping empty paragraphs.
func SplitParagraphs(text string) []string {
	var out []string
	for _, p := range paragraphBreak.Split(text, -1) {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// sentenceEnd matches a run of text ending in terminal punctuation, with any
// closing quotes or brackets that follow it.
var sentenceEnd = regexp.MustCompile(`[^.!?]+[.!?]+["'”’)\]]*`)

// SplitRegex splits text after '.', '!' and '?'. Trailing text without a
// terminator becomes the last sentence.
func SplitRegex(text string) []string {
	var out []string
	last := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[loc[0]:loc[1]]); s != "" {
			out = append(out, s)
		}
		last = loc[1]
	}
	if rest := strings.TrimSpace(text[last:]); rest != "" {
		out = append(out, rest)
	}
	return out
}
