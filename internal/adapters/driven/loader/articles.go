package loader

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/keysent/internal/core/domain"
)

// Article is one record of an article file.
type Article struct {
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}

var articleDecoders = map[string]func([]byte) ([]Article, error){
	".json":  decodeJSON,
	".jsonl": decodeJSONLines,
	".yaml":  decodeYAML,
	".yml":   decodeYAML,
}

func articleExtensions() []string {
	exts := make([]string, 0, len(articleDecoders))
	for ext := range articleDecoders {
		exts = append(exts, ext)
	}
	return exts
}

func isArticleFile(path string) bool {
	_, ok := articleDecoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

func decodeArticles(path string, data []byte) ([]Article, error) {
	decode, ok := articleDecoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, filepath.Ext(path))
	}
	articles, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, path, err)
	}
	return articles, nil
}

func decodeJSON(data []byte) ([]Article, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var articles []Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func decodeJSONLines(data []byte) ([]Article, error) {
	var articles []Article
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), MaxFileSize)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		var a Article
		if err := json.Unmarshal(text, &a); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		articles = append(articles, a)
	}
	return articles, scanner.Err()
}

func decodeYAML(data []byte) ([]Article, error) {
	var articles []Article
	if err := yaml.Unmarshal(data, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// articlesToRaw converts article records to raw plain text documents.
// Records with blank content are skipped. The record index is kept so the
// URI of each article is unique within its file.
func articlesToRaw(path string, articles []Article) []domain.RawDocument {
	raws := make([]domain.RawDocument, 0, len(articles))
	for i, a := range articles {
		if strings.TrimSpace(a.Content) == "" {
			continue
		}
		title := strings.TrimSpace(a.Title)
		if title == "" {
			title = UntitledLabel
		}
		raws = append(raws, domain.RawDocument{
			URI:      fmt.Sprintf("%s#%d", path, i),
			MIMEType: "text/plain",
			Content:  []byte(a.Content),
			Metadata: map[string]any{
				"title":  title,
				"source": path,
				"index":  i,
			},
		})
	}
	return raws
}
