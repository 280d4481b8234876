package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/keysent/internal/core/domain"
	"github.com/custodia-labs/keysent/internal/logger"
)

// ArticleInput is one inline article.
type ArticleInput struct {
	Title   string `json:"title,omitempty" jsonschema:"article title used as the sentence label; repeated titles get a (2), (3) suffix"`
	Content string `json:"content" jsonschema:"article body text"`
}

// RankInput is the input schema for the rank_sentences tool.
type RankInput struct {
	Articles []ArticleInput `json:"articles,omitempty" jsonschema:"inline articles to rank; mutually exclusive with paths"`
	Paths    []string       `json:"paths,omitempty" jsonschema:"article files or directories to rank; mutually exclusive with articles"`
	TopK     *int           `json:"top_k,omitempty" jsonschema:"number of sentences to return, must be positive (per article when scope is per_document)"`
	Alpha    *float64       `json:"alpha,omitempty" jsonschema:"length penalty coefficient, 0 disables the penalty"`
	Scope    string         `json:"scope,omitempty" jsonschema:"pooled or per_document"`
}

// RankOutput is the output schema for the rank_sentences tool.
type RankOutput struct {
	Sentences []SentenceOutput `json:"sentences"`
	Count     int              `json:"count"`
}

// SentenceOutput represents a single ranked sentence.
type SentenceOutput struct {
	Label         string  `json:"label"`
	Text          string  `json:"text"`
	Position      int     `json:"position"`
	Score         float64 `json:"score"`
	RawScore      float64 `json:"raw_score"`
	LengthPenalty float64 `json:"length_penalty"`
}

// SplitInput is the input schema for the split_sentences tool.
type SplitInput struct {
	Content string `json:"content" jsonschema:"text to split into sentences"`
}

// SplitOutput is the output schema for the split_sentences tool.
type SplitOutput struct {
	Sentences []string `json:"sentences"`
	Count     int      `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rank_sentences",
		Description: "Rank the key sentences of articles by TF-IDF score with a length penalty",
	}, s.handleRank)
	s.tools = append(s.tools, "rank_sentences")

	if s.ports.Segmenter != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "split_sentences",
			Description: "Split text into sentences with the configured segmenter",
		}, s.handleSplit)
		s.tools = append(s.tools, "split_sentences")
	}
}

// handleRank handles the rank_sentences tool invocation.
func (s *Server) handleRank(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RankInput,
) (*mcp.CallToolResult, RankOutput, error) {
	opts, err := s.rankOptions(input)
	if err != nil {
		return nil, RankOutput{}, err
	}

	var ranked []domain.ScoredSentence
	switch {
	case len(input.Articles) > 0 && len(input.Paths) > 0:
		return nil, RankOutput{}, fmt.Errorf("%w: give either articles or paths, not both", domain.ErrInvalidInput)
	case len(input.Articles) > 0:
		ranked, err = s.rankArticles(ctx, input.Articles, opts)
	case len(input.Paths) > 0:
		ranked, err = s.rankPaths(ctx, input.Paths, opts)
	default:
		return nil, RankOutput{}, fmt.Errorf("%w: articles or paths are required", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, RankOutput{}, err
	}

	output := RankOutput{
		Sentences: make([]SentenceOutput, len(ranked)),
		Count:     len(ranked),
	}
	for i := range ranked {
		output.Sentences[i] = SentenceOutput{
			Label:         ranked[i].Label,
			Text:          ranked[i].Text,
			Position:      ranked[i].Position,
			Score:         ranked[i].AdjustedScore,
			RawScore:      ranked[i].RawScore,
			LengthPenalty: ranked[i].LengthPenalty,
		}
	}

	return nil, output, nil
}

// rankOptions starts from the configured defaults and applies the
// overrides present in input.
func (s *Server) rankOptions(input RankInput) (domain.RankOptions, error) {
	opts := domain.DefaultRankOptions()
	if s.ports.Settings != nil {
		configured, err := s.ports.Settings.RankOptions()
		if err != nil {
			return domain.RankOptions{}, fmt.Errorf("loading rank settings: %w", err)
		}
		opts = configured
	}

	if input.TopK != nil {
		opts.TopK = *input.TopK
	}
	if input.Alpha != nil {
		opts.LengthPenalty = *input.Alpha
	}
	if input.Scope != "" {
		opts.Scope = domain.Scope(input.Scope)
	}

	opts = opts.WithDefaults()
	return opts, opts.Validate()
}

func (s *Server) rankArticles(
	ctx context.Context, articles []ArticleInput, opts domain.RankOptions,
) ([]domain.ScoredSentence, error) {
	if s.ports.Segmenter == nil {
		return nil, fmt.Errorf("%w: inline articles need a segmenter", domain.ErrInvalidInput)
	}

	docs := make([]domain.Document, 0, len(articles))
	for _, a := range articles {
		if strings.TrimSpace(a.Content) == "" {
			continue
		}
		label := strings.TrimSpace(a.Title)
		if label == "" {
			label = "Untitled"
		}
		doc := domain.Document{
			ID:      uuid.New().String(),
			Label:   label,
			Content: a.Content,
		}
		sentences, err := s.ports.Segmenter.Process(ctx, &doc)
		if err != nil {
			return nil, fmt.Errorf("segmenting %q: %w", label, err)
		}
		doc.Sentences = sentences
		docs = append(docs, doc)
	}

	domain.UniqueLabels(docs)
	logger.Debug("mcp: ranking %d inline articles", len(docs))
	return s.ports.Rank.Rank(ctx, docs, opts)
}

func (s *Server) rankPaths(ctx context.Context, paths []string, opts domain.RankOptions) ([]domain.ScoredSentence, error) {
	result, err := s.ports.Rank.RankPaths(ctx, paths, opts)
	if err != nil {
		return nil, err
	}
	if s.ports.Corpus != nil {
		// Each call loads its own corpus; nothing refers to it afterwards.
		if err := s.ports.Corpus.Release(ctx, result.CorpusID); err != nil {
			logger.Warn("mcp: release corpus %s: %v", result.CorpusID, err)
		}
	}
	return result.Sentences, nil
}

// handleSplit handles the split_sentences tool invocation.
func (s *Server) handleSplit(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SplitInput,
) (*mcp.CallToolResult, SplitOutput, error) {
	doc := domain.Document{Label: "input", Content: input.Content}
	sentences, err := s.ports.Segmenter.Process(ctx, &doc)
	if err != nil {
		return nil, SplitOutput{}, err
	}
	if sentences == nil {
		sentences = []string{}
	}
	return nil, SplitOutput{Sentences: sentences, Count: len(sentences)}, nil
}
