package postprocessors

import (
	"fmt"

	"github.com/custodia-labs/keysent/internal/core/domain"
	"github.com/custodia-labs/keysent/internal/core/ports/driven"
	"github.com/custodia-labs/keysent/internal/postprocessors/cleaner"
	"github.com/custodia-labs/keysent/internal/postprocessors/segmenter"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register("segmenter", buildSegmenter)
	r.Register("cleaner", buildCleaner)
}

// BuildPipeline builds the processors named in cfg, in order.
func BuildPipeline(r *Registry, cfg domain.PipelineConfig) (*Pipeline, error) {
	p := NewPipeline()
	for _, name := range cfg.Processors {
		proc, err := r.Build(name, cfg.GetProcessorConfig(name))
		if err != nil {
			return nil, err
		}
		p.Add(proc)
	}
	return p, nil
}

// DefaultPipeline builds the segmentation pipeline for the given loader settings.
func DefaultPipeline(loader domain.LoaderSettings) (*Pipeline, error) {
	r := NewRegistry()
	RegisterDefaults(r)
	return BuildPipeline(r, domain.PipelineConfigFor(loader))
}

// buildSegmenter creates a segmenter processor from generic config.
// Supported config keys:
//   - mode (string): "punkt" (default) or "regex"
func buildSegmenter(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []segmenter.Option

	if mode, ok := cfg["mode"].(string); ok && mode != "" {
		m := domain.SegmenterMode(mode)
		if !m.IsValid() {
			return nil, fmt.Errorf("%w: unknown segmenter mode %q", domain.ErrInvalidInput, mode)
		}
		opts = append(opts, segmenter.WithMode(m))
	}

	return segmenter.New(opts...)
}

// buildCleaner creates a cleaner processor from generic config.
// Supported config keys:
//   - min_length (int): Minimum sentence length in characters (default: 1)
func buildCleaner(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []cleaner.Option

	if n := getIntFromConfig(cfg, "min_length"); n > 0 {
		opts = append(opts, cleaner.WithMinLength(n))
	}

	return cleaner.New(opts...), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
