package postprocessors

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/custodia-labs/keysent/internal/core/domain"
	"github.com/custodia-labs/keysent/internal/core/ports/driven"
)

// registryMockProcessor is a simple mock for testing registry functionality.
type registryMockProcessor struct {
	name string
}

func (m *registryMockProcessor) Name() string { return m.name }
func (m *registryMockProcessor) Process(_ context.Context, _ *domain.Document, sentences []string) ([]string, error) {
	return sentences, nil
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry returned nil")
	}
	if len(r.builders) != 0 {
		t.Errorf("expected empty builders, got %d", len(r.builders))
	}
}

func TestRegistry_Build_Success(t *testing.T) {
	r := NewRegistry()

	var received map[string]any
	r.Register("test", func(cfg map[string]any) (driven.PostProcessor, error) {
		received = cfg
		return &registryMockProcessor{name: "test"}, nil
	})

	proc, err := r.Build("test", map[string]any{"key": "value"})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if proc.Name() != "test" {
		t.Errorf("expected name 'test', got %q", proc.Name())
	}
	if received["key"] != "value" {
		t.Errorf("config not passed to builder: %v", received)
	}
}

func TestRegistry_Build_UnknownProcessor(t *testing.T) {
	r := NewRegistry()

	_, err := r.Build("nonexistent", nil)
	if !errors.Is(err, domain.ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	if len(r.Names()) != 0 {
		t.Errorf("expected 0 names, got %v", r.Names())
	}

	r.Register("beta", func(_ map[string]any) (driven.PostProcessor, error) {
		return &registryMockProcessor{name: "beta"}, nil
	})
	r.Register("alpha", func(_ map[string]any) (driven.PostProcessor, error) {
		return &registryMockProcessor{name: "alpha"}, nil
	})

	names := r.Names()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "beta" {
		t.Errorf("expected sorted [alpha beta], got %v", names)
	}
	if !r.Has("alpha") || r.Has("gamma") {
		t.Error("Has returned unexpected result")
	}
}

func TestRegistry_Register_Duplicate(t *testing.T) {
	r := NewRegistry()
	builder := func(_ map[string]any) (driven.PostProcessor, error) {
		return &registryMockProcessor{name: "dup"}, nil
	}
	r.Register("dup", builder)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	r.Register("dup", builder)
}

func TestRegistry_Build_BuilderError(t *testing.T) {
	r := NewRegistry()
	r.Register("broken", func(_ map[string]any) (driven.PostProcessor, error) {
		return nil, domain.ErrInvalidInput
	})

	_, err := r.Build("broken", nil)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if want := "building broken processor"; !strings.Contains(err.Error(), want) {
		t.Errorf("expected %q in %q", want, err.Error())
	}
}

func TestRegisterDefaults(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	for _, name := range []string{"segmenter", "cleaner"} {
		if !r.Has(name) {
			t.Errorf("expected %q to be registered after RegisterDefaults", name)
		}
	}
}

func TestBuildSegmenter(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	proc, err := r.Build("segmenter", map[string]any{"mode": "regex"})
	if err != nil {
		t.Fatalf("Build segmenter failed: %v", err)
	}
	if proc.Name() != "segmenter" {
		t.Errorf("expected name 'segmenter', got %q", proc.Name())
	}

	_, err = r.Build("segmenter", map[string]any{"mode": "words"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown mode, got %v", err)
	}

	if _, err := r.Build("segmenter", nil); err != nil {
		t.Errorf("Build segmenter with nil config failed: %v", err)
	}
}

func TestBuildCleaner(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	proc, err := r.Build("cleaner", map[string]any{"min_length": int64(10)})
	if err != nil {
		t.Fatalf("Build cleaner failed: %v", err)
	}

	out, err := proc.Process(context.Background(), &domain.Document{}, []string{"short", "long enough sentence"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0] != "long enough sentence" {
		t.Errorf("unexpected output: %v", out)
	}
}

func TestBuildPipeline_UnknownProcessor(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	_, err := BuildPipeline(r, domain.PipelineConfig{Processors: []string{"segmenter", "chunker"}})
	if !errors.Is(err, domain.ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestGetIntFromConfig(t *testing.T) {
	tests := []struct {
		name     string
		cfg      map[string]any
		key      string
		expected int
	}{
		{"int value", map[string]any{"size": 100}, "size", 100},
		{"int64 value", map[string]any{"size": int64(200)}, "size", 200},
		{"float64 value", map[string]any{"size": float64(300)}, "size", 300},
		{"string value", map[string]any{"size": "400"}, "size", 0},
		{"missing key", map[string]any{"other": 100}, "size", 0},
		{"nil config", nil, "size", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := getIntFromConfig(tt.cfg, tt.key)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}
