package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/keysent/internal/core/domain"
	"github.com/custodia-labs/keysent/internal/normalisers"
	"github.com/custodia-labs/keysent/internal/postprocessors"
)

func newTestLoader(t *testing.T) *Loader {
	t.Helper()
	pipeline, err := postprocessors.DefaultPipeline(domain.LoaderSettings{
		Segmenter:         domain.SegmenterRegex,
		MinSentenceLength: 1,
	})
	require.NoError(t, err)
	return New(normalisers.DefaultRegistry(), pipeline)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func labels(docs []domain.Document) []string {
	out := make([]string, len(docs))
	for i := range docs {
		out[i] = docs[i].Label
	}
	return out
}

func TestLoader_JSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "articles.json", `[
		{"title": "Cats", "content": "The cat sat. The cat ran."},
		{"title": "Empty", "content": "   "},
		{"content": "No title here."}
	]`)

	docs, err := newTestLoader(t).Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "Cats", docs[0].Label)
	assert.Equal(t, []string{"The cat sat.", "The cat ran."}, docs[0].Sentences)
	assert.Equal(t, "The cat sat. The cat ran.", docs[0].Content)
	assert.NotEmpty(t, docs[0].ID)

	assert.Equal(t, UntitledLabel, docs[1].Label)
	assert.Equal(t, []string{"No title here."}, docs[1].Sentences)
	assert.NotEqual(t, docs[0].URI, docs[1].URI)
}

func TestLoader_JSONLines(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "articles.jsonl",
		"{\"title\": \"One\", \"content\": \"First article.\"}\n\n{\"title\": \"Two\", \"content\": \"Second article.\"}\n")

	docs, err := newTestLoader(t).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"One", "Two"}, labels(docs))
}

func TestLoader_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "articles.yml", `
- title: Dogs
  content: |
    Dogs bark.

    They also run.
- title: ""
  content: Unnamed.
`)

	docs, err := newTestLoader(t).Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "Dogs", docs[0].Label)
	assert.Equal(t, []string{"Dogs bark.", "They also run."}, docs[0].Sentences)
	assert.Equal(t, UntitledLabel, docs[1].Label)
}

func TestLoader_EmptyArticleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "articles.json", `[]`)

	docs, err := newTestLoader(t).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLoader_MalformedArticleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "articles.json", `{"title": "not a list"}`)

	_, err := newTestLoader(t).Load(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoader_PlainFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "my_notes.txt", "Alpha beta. Gamma delta.")

	docs, err := newTestLoader(t).Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "my notes", docs[0].Label)
	assert.Equal(t, path, docs[0].URI)
	assert.Len(t, docs[0].Sentences, 2)
}

func TestLoader_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.md", "# Bee\n\nBees buzz.")
	writeFile(t, dir, "a.txt", "Ants march.")
	writeFile(t, dir, "nested/c.json", `[{"title": "Cee", "content": "Cats nap."}]`)
	writeFile(t, dir, ".hidden.txt", "Secret.")
	writeFile(t, dir, ".git/config.txt", "Ignored.")
	writeFile(t, dir, "image.png", "binary")
	writeFile(t, dir, "blank.txt", "   ")

	docs, err := newTestLoader(t).Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "Bee", "Cee"}, labels(docs))
}

func TestLoader_Errors(t *testing.T) {
	l := newTestLoader(t)
	dir := t.TempDir()

	t.Run("missing path", func(t *testing.T) {
		_, err := l.Load(context.Background(), filepath.Join(dir, "missing.json"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, dir, "doc.pdf", "%PDF")
		_, err := l.Load(context.Background(), path)
		assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	})

	t.Run("directory without articles", func(t *testing.T) {
		empty := filepath.Join(dir, "empty")
		require.NoError(t, os.Mkdir(empty, 0o755))
		_, err := l.Load(context.Background(), empty)
		assert.ErrorIs(t, err, domain.ErrEmptySource)
	})

	t.Run("cancelled context", func(t *testing.T) {
		writeFile(t, dir, "ok/a.txt", "Fine.")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := l.Load(ctx, filepath.Join(dir, "ok"))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLoader_SupportedExtensions(t *testing.T) {
	exts := newTestLoader(t).SupportedExtensions()
	for _, ext := range []string{".json", ".jsonl", ".yaml", ".yml", ".txt", ".md", ".html"} {
		assert.Contains(t, exts, ext)
	}
	assert.IsIncreasing(t, exts)
}

func TestIsHidden(t *testing.T) {
	assert.True(t, isHidden(".git"))
	assert.True(t, isHidden(".hidden.txt"))
	assert.False(t, isHidden("."))
	assert.False(t, isHidden(".."))
	assert.False(t, isHidden("file.txt"))
}
