package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/keysent/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for keysent resources.
	uriScheme = "keysent://"
)

// settingsInfo is the JSON form of the ranking and loader settings.
type settingsInfo struct {
	TopK          int     `json:"top_k"`
	LengthPenalty float64 `json:"length_penalty"`
	Scope         string  `json:"scope"`
	StopWords     string  `json:"stop_words"`
	MinDF         int     `json:"min_df"`
	IDF           string  `json:"idf"`
	Norm          string  `json:"norm"`
	Stem          bool    `json:"stem"`
	Segmenter     string  `json:"segmenter"`
}

func newSettingsInfo(s domain.AppSettings) settingsInfo {
	return settingsInfo{
		TopK:          s.Ranking.TopK,
		LengthPenalty: s.Ranking.LengthPenalty,
		Scope:         s.Ranking.Scope.String(),
		StopWords:     s.Ranking.StopWords,
		MinDF:         s.Ranking.MinDocumentFrequency,
		IDF:           s.Ranking.IDF.String(),
		Norm:          s.Ranking.Norm.String(),
		Stem:          s.Ranking.Stem,
		Segmenter:     s.Loader.Segmenter.String(),
	}
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Ranking defaults applied when a tool call leaves an option out",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)
}

// handleSettingsResource returns the current settings, or the defaults
// when no settings service is configured.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	settings := domain.DefaultAppSettings()
	if s.ports.Settings != nil {
		current, err := s.ports.Settings.Get()
		if err != nil {
			return nil, fmt.Errorf("getting settings: %w", err)
		}
		settings = *current
	}

	data, err := json.MarshalIndent(newSettingsInfo(settings), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling settings: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
