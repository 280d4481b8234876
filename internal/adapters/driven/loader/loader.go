package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/keysent/internal/core/domain"
	"github.com/custodia-labs/keysent/internal/core/ports/driven"
	"github.com/custodia-labs/keysent/internal/logger"
	"github.com/custodia-labs/keysent/internal/normalisers"
)

// Ensure Loader implements the interface.
var _ driven.CorpusLoader = (*Loader)(nil)

// UntitledLabel is used for articles without a title.
const UntitledLabel = "Untitled"

// MaxFileSize is the largest file the loader will read.
const MaxFileSize = 32 << 20

// Loader reads articles and turns them into segmented documents.
type Loader struct {
	registry driven.NormaliserRegistry
	pipeline driven.PostProcessorPipeline
}

// New creates a loader that normalises through registry and segments
// through pipeline.
func New(registry driven.NormaliserRegistry, pipeline driven.PostProcessorPipeline) *Loader {
	return &Loader{
		registry: registry,
		pipeline: pipeline,
	}
}

// SupportedExtensions returns the file extensions Load accepts, sorted.
func (l *Loader) SupportedExtensions() []string {
	exts := append(articleExtensions(), normalisers.Extensions()...)
	sort.Strings(exts)
	return exts
}

// Load reads every article at path. A directory is walked recursively,
// skipping hidden entries and files with unsupported extensions.
func (l *Loader) Load(ctx context.Context, path string) ([]domain.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		if !l.supported(path) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, filepath.Ext(path))
		}
		return l.loadFile(ctx, path)
	}

	files, err := l.collect(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptySource, path)
	}

	docs := make([]domain.Document, 0, len(files))
	for _, file := range files {
		loaded, err := l.loadFile(ctx, file)
		if err != nil {
			return nil, err
		}
		docs = append(docs, loaded...)
	}
	return docs, nil
}

// collect walks root and returns supported, non-hidden files in lexical order.
func (l *Loader) collect(ctx context.Context, root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path != root && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if l.supported(path) {
			files = append(files, path)
		} else {
			logger.Debug("loader: skipping unsupported file %s", path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

func (l *Loader) supported(path string) bool {
	return isArticleFile(path) || normalisers.MIMETypeForPath(path) != ""
}

func (l *Loader) loadFile(ctx context.Context, path string) ([]domain.Document, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var raws []domain.RawDocument
	if isArticleFile(path) {
		articles, err := decodeArticles(path, data)
		if err != nil {
			return nil, err
		}
		raws = articlesToRaw(path, articles)
	} else {
		raws = []domain.RawDocument{{
			URI:      path,
			MIMEType: normalisers.MIMETypeForPath(path),
			Content:  data,
		}}
	}

	docs := make([]domain.Document, 0, len(raws))
	for i := range raws {
		doc, err := l.process(ctx, &raws[i])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", raws[i].URI, err)
		}
		if doc == nil {
			continue
		}
		docs = append(docs, *doc)
	}
	logger.Debug("loader: %s yielded %d documents", path, len(docs))
	return docs, nil
}

// process normalises and segments one raw document. A document with no
// sentences is dropped and nil is returned.
func (l *Loader) process(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	result, err := l.registry.Normalise(ctx, raw)
	if err != nil {
		return nil, err
	}
	doc := result.Document
	if strings.TrimSpace(doc.Label) == "" {
		doc.Label = UntitledLabel
	}

	sentences, err := l.pipeline.Process(ctx, &doc)
	if err != nil {
		return nil, err
	}
	if len(sentences) == 0 {
		logger.Debug("loader: dropping %q with no sentences", doc.Label)
		return nil, nil
	}
	doc.Sentences = sentences
	return &doc, nil
}

func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", domain.ErrInvalidInput, path, MaxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// isHidden reports whether a file or directory name starts with a dot.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
