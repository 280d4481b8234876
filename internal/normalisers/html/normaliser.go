package html

import (
	"bytes"
	"context"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/custodia-labs/keysent/internal/core/domain"
	"github.com/custodia-labs/keysent/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML documents.
type Normaliser struct {
	readability bool
}

// Option configures a Normaliser.
type Option func(*Normaliser)

// WithoutReadability disables article extraction and keeps all body text.
func WithoutReadability() Option {
	return func(n *Normaliser) {
		n.readability = false
	}
}

// New creates a new HTML normaliser.
func New(opts ...Option) *Normaliser {
	n := &Normaliser{readability: true}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser, higher than plaintext
}

// Normalise converts an HTML document to a normalised document.
// Sentence segmentation is handled by the PostProcessor pipeline.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	root, err := html.Parse(bytes.NewReader(raw.Content))
	if err != nil {
		return nil, err
	}

	extractor := "dom"
	var content, articleTitle string
	if n.readability {
		content, articleTitle = readableText(raw)
		if content != "" {
			extractor = "readability"
		}
	}
	if content == "" {
		content = extractText(root)
	}

	doc := raw.Document(uuid.New().String(), extractLabel(raw, root, articleTitle), content)
	doc.Metadata["format"] = "html"
	doc.Metadata["extractor"] = extractor

	return &driven.NormaliseResult{
		Document: doc,
	}, nil
}

// readableText runs readability over the raw page.
// Returns empty strings when no article could be extracted.
func readableText(raw *domain.RawDocument) (text, title string) {
	pageURL := &url.URL{Scheme: "file", Path: filepath.ToSlash(raw.URI)}
	article, err := readability.FromReader(bytes.NewReader(raw.Content), pageURL)
	if err != nil {
		return "", ""
	}
	return tidy(article.TextContent), strings.TrimSpace(article.Title)
}

// extractLabel picks the label: loader metadata, <title>, article title, filename.
func extractLabel(raw *domain.RawDocument, root *html.Node, articleTitle string) string {
	if title := raw.Title(); title != "" {
		return title
	}
	if title := pageTitle(root); title != "" {
		return title
	}
	if articleTitle != "" {
		return articleTitle
	}
	return raw.FilenameLabel()
}

// pageTitle returns the text of the first <title> element.
func pageTitle(n *html.Node) string {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, "title") {
		var b strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
		}
		return collapseSpaces(b.String())
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := pageTitle(c); title != "" {
			return title
		}
	}
	return ""
}

// Elements whose text is never content.
var skipped = map[string]bool{
	"script": true, "style": true, "noscript": true, "head": true,
	"svg": true, "template": true, "iframe": true,
}

// Elements that start and end a paragraph.
var blocks = map[string]bool{
	"p": true, "div": true, "br": true, "hr": true, "li": true, "tr": true,
	"td": true, "th": true, "blockquote": true, "pre": true, "table": true,
	"section": true, "article": true, "header": true, "footer": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "dl": true, "dt": true, "dd": true, "figcaption": true,
}

// extractText walks the DOM and returns its visible text, one paragraph per
// block element, paragraphs separated by blank lines.
func extractText(root *html.Node) string {
	var paragraphs []string
	var current strings.Builder
	var skipDepth int

	flush := func() {
		if p := collapseSpaces(current.String()); p != "" {
			paragraphs = append(paragraphs, p)
		}
		current.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		name := strings.ToLower(n.Data)
		isElement := n.Type == html.ElementNode
		if isElement && skipped[name] {
			skipDepth++
		}
		if isElement && blocks[name] && skipDepth == 0 {
			flush()
		}

		if skipDepth == 0 && n.Type == html.TextNode {
			current.WriteString(n.Data)
			current.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if isElement && blocks[name] && skipDepth == 0 {
			flush()
		}
		if isElement && skipped[name] {
			skipDepth--
		}
	}
	walk(root)
	flush()

	return strings.Join(paragraphs, "\n\n")
}

var spaces = regexp.MustCompile(`\s+`)

func collapseSpaces(s string) string {
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}

// tidy collapses spaces within lines and keeps single blank lines between
// paragraphs.
func tidy(text string) string {
	var paragraphs []string
	var current []string
	for _, line := range strings.Split(text, "\n") {
		line = collapseSpaces(line)
		if line == "" {
			if len(current) > 0 {
				paragraphs = append(paragraphs, strings.Join(current, "\n"))
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, strings.Join(current, "\n"))
	}
	return strings.Join(paragraphs, "\n\n")
}
