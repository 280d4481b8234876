package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/keysent/internal/core/domain"
)

func TestSettingsCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range settingsCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"show", "set", "wizard", "reset"} {
		assert.True(t, names[name], "missing subcommand %s", name)
	}
}

func TestSettingsShow(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[Ranking]")
	assert.Contains(t, out, "Top K: 30")
	assert.Contains(t, out, "Length penalty (alpha): 0.1")
	assert.Contains(t, out, "Scope: Pooled (all articles compete)")
	assert.Contains(t, out, "Stop words: english")
	assert.Contains(t, out, "Stemming: off")
	assert.Contains(t, out, "[Loader]")
	assert.Contains(t, out, "Segmenter: Punkt (abbreviation-aware)")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsShow_NoService(t *testing.T) {
	previous := currentServices()
	SetServices(Services{})
	defer SetServices(previous)

	_, err := execute(t, "settings")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}

func TestSettingsSet(t *testing.T) {
	setupTestServices(t)

	tests := []struct {
		key   string
		value string
		check func(t *testing.T, s *domain.AppSettings)
	}{
		{"top_k", "5", func(t *testing.T, s *domain.AppSettings) { assert.Equal(t, 5, s.Ranking.TopK) }},
		{"alpha", "0.5", func(t *testing.T, s *domain.AppSettings) { assert.Equal(t, 0.5, s.Ranking.LengthPenalty) }},
		{"scope", "per_document", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, domain.ScopePerDocument, s.Ranking.Scope)
		}},
		{"stop_words", "none", func(t *testing.T, s *domain.AppSettings) { assert.Equal(t, "none", s.Ranking.StopWords) }},
		{"min_df", "2", func(t *testing.T, s *domain.AppSettings) { assert.Equal(t, 2, s.Ranking.MinDocumentFrequency) }},
		{"idf", "plain", func(t *testing.T, s *domain.AppSettings) { assert.Equal(t, domain.IDFMode("plain"), s.Ranking.IDF) }},
		{"norm", "l2", func(t *testing.T, s *domain.AppSettings) { assert.Equal(t, domain.NormMode("l2"), s.Ranking.Norm) }},
		{"stem", "true", func(t *testing.T, s *domain.AppSettings) { assert.True(t, s.Ranking.Stem) }},
		{"segmenter", "regex", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, domain.SegmenterRegex, s.Loader.Segmenter)
		}},
		{"min_sentence_length", "10", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 10, s.Loader.MinSentenceLength)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			out, err := execute(t, "settings", "set", tt.key, tt.value)
			require.NoError(t, err)
			assert.Contains(t, out, "Set "+tt.key+" to "+tt.value)

			settings, err := settingsService.Get()
			require.NoError(t, err)
			tt.check(t, settings)
		})
	}
}

func TestSettingsSet_LoaderNotice(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "settings", "set", "segmenter", "regex")

	require.NoError(t, err)
	assert.Contains(t, out, "next time articles are loaded")
}

func TestSettingsSet_Invalid(t *testing.T) {
	setupTestServices(t)

	tests := [][2]string{
		{"colour", "blue"},
		{"top_k", "many"},
		{"top_k", "0"},
		{"alpha", "-0.5"},
		{"scope", "sideways"},
		{"min_df", "0"},
		{"idf", "bm25"},
		{"norm", "l1"},
		{"stem", "maybe"},
		{"segmenter", "spacy"},
		{"min_sentence_length", "0"},
	}
	for _, tt := range tests {
		t.Run(tt[0]+"="+tt[1], func(t *testing.T) {
			_, err := execute(t, "settings", "set", tt[0], tt[1])
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to set "+tt[0])
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}
}

func TestSettingsSet_RequiresTwoArgs(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "settings", "set", "top_k")

	require.Error(t, err)
}

func TestSettingsReset(t *testing.T) {
	setupTestServices(t)
	require.NoError(t, settingsService.SetTopK(3))
	require.NoError(t, settingsService.SetScope(domain.ScopePerDocument))

	out, err := execute(t, "settings", "reset")

	require.NoError(t, err)
	assert.Contains(t, out, "Settings restored to defaults.")
	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsWizard(t *testing.T) {
	setupTestServices(t)
	rootCmd.SetIn(strings.NewReader("2\n5\n0.25\nnone\n2\n"))

	out, err := execute(t, "settings", "wizard")

	require.NoError(t, err)
	assert.Contains(t, out, "Step 1: Select Ranking Scope")
	assert.Contains(t, out, "Step 5: Sentence Segmenter")
	assert.Contains(t, out, "All settings are valid and saved.")

	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.ScopePerDocument, settings.Ranking.Scope)
	assert.Equal(t, 5, settings.Ranking.TopK)
	assert.Equal(t, 0.25, settings.Ranking.LengthPenalty)
	assert.Equal(t, domain.StopWordsNone, settings.Ranking.StopWords)
	assert.Equal(t, domain.SegmenterRegex, settings.Loader.Segmenter)
}

func TestSettingsWizard_KeepsDefaults(t *testing.T) {
	setupTestServices(t)
	rootCmd.SetIn(strings.NewReader("\n\n\n\n\n"))

	_, err := execute(t, "settings", "wizard")

	require.NoError(t, err)
	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsWizard_InvalidTopK(t *testing.T) {
	setupTestServices(t)
	rootCmd.SetIn(strings.NewReader("1\nlots\n"))

	_, err := execute(t, "settings", "wizard")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set top K")
}

func TestIndexOf(t *testing.T) {
	assert.Equal(t, 1, indexOf(domain.AllScopes(), domain.ScopePerDocument))
	assert.Equal(t, 0, indexOf(domain.AllScopes(), domain.Scope("unknown")))
}

func TestOnOff(t *testing.T) {
	assert.Equal(t, "on", onOff(true))
	assert.Equal(t, "off", onOff(false))
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{
			name:       "Empty input returns default",
			input:      "",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Valid choice within range",
			input:      "3",
			maxVal:     5,
			defaultVal: 1,
			expected:   3,
		},
		{
			name:       "Choice below minimum returns default",
			input:      "0",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Choice above maximum returns default",
			input:      "6",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Invalid input returns default",
			input:      "abc",
			maxVal:     5,
			defaultVal: 2,
			expected:   2,
		},
		{
			name:       "Negative number returns default",
			input:      "-1",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Whitespace returns default",
			input:      "   ",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Maximum value is valid",
			input:      "5",
			maxVal:     5,
			defaultVal: 1,
			expected:   5,
		},
		{
			name:       "Minimum value is valid",
			input:      "1",
			maxVal:     5,
			defaultVal: 3,
			expected:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseChoice(tt.input, tt.maxVal, tt.defaultVal)
			assert.Equal(t, tt.expected, result)
		})
	}
}
