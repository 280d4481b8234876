package input

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/keysent/internal/adapters/driving/tui/styles"
)

func TestNewPathInput(t *testing.T) {
	s := styles.DefaultStyles()
	input := NewPathInput(s)

	require.NotNil(t, input)
	assert.Equal(t, "", input.Value())
	assert.False(t, input.Focused())
}

func TestNewPathInput_NilStyles(t *testing.T) {
	input := NewPathInput(nil)

	require.NotNil(t, input)
	assert.NotNil(t, input.styles)
}

func TestPathInput_Init(t *testing.T) {
	input := NewPathInput(nil)

	cmd := input.Init()

	// Blink command should be returned
	assert.NotNil(t, cmd)
}

func TestPathInput_Update(t *testing.T) {
	input := NewPathInput(nil)
	input.Focus()

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}
	updated, _ := input.Update(msg)

	assert.Equal(t, input, updated)
	assert.Equal(t, "a", input.Value())
}

func TestPathInput_Update_Blurred(t *testing.T) {
	input := NewPathInput(nil)

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}
	input.Update(msg)

	assert.Equal(t, "", input.Value())
}

func TestPathInput_View(t *testing.T) {
	input := NewPathInput(nil)

	view := input.View()

	assert.NotEmpty(t, view)
	assert.Contains(t, view, "Load")
}

func TestPathInput_SetValue(t *testing.T) {
	input := NewPathInput(nil)

	input.SetValue("news.json")

	assert.Equal(t, "news.json", input.Value())
}

func TestPathInput_SetPaths(t *testing.T) {
	input := NewPathInput(nil)

	input.SetPaths([]string{"a.json", "b.yaml"})

	assert.Equal(t, "a.json, b.yaml", input.Value())
	assert.Equal(t, []string{"a.json", "b.yaml"}, input.Paths())
}

func TestParsePaths(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected []string
	}{
		{"empty", "", nil},
		{"blank", "   ", nil},
		{"single", "news.json", []string{"news.json"}},
		{"trimmed", "  news.json  ", []string{"news.json"}},
		{"several", "a.json,b.json, c/", []string{"a.json", "b.json", "c/"}},
		{"skips empty parts", "a.json,, ,b.json", []string{"a.json", "b.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParsePaths(tt.value))
		})
	}
}

func TestParsePaths_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	paths := ParsePaths("~/articles.json")

	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(home, "articles.json"), paths[0])
}

func TestPathInput_FocusBlur(t *testing.T) {
	input := NewPathInput(nil)

	cmd := input.Focus()
	assert.NotNil(t, cmd)
	assert.True(t, input.Focused())

	input.Blur()
	assert.False(t, input.Focused())
}

func TestPathInput_SetWidth(t *testing.T) {
	input := NewPathInput(nil)

	input.SetWidth(100)

	assert.Equal(t, 100, input.Width())
	assert.Equal(t, 88, input.textinput.Width)
}

func TestPathInput_SetWidth_Minimum(t *testing.T) {
	input := NewPathInput(nil)

	input.SetWidth(5)

	assert.Equal(t, 5, input.Width())
	assert.Equal(t, 10, input.textinput.Width)
}

func TestPathInput_Width(t *testing.T) {
	input := NewPathInput(nil)

	assert.Equal(t, 40, input.Width())
}

func TestPathInput_Reset(t *testing.T) {
	input := NewPathInput(nil)
	input.SetValue("some/path")

	input.Reset()

	assert.Equal(t, "", input.Value())
}

func TestPathInput_Update_Backspace(t *testing.T) {
	input := NewPathInput(nil)
	input.Focus()
	input.SetValue("ab")

	input.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	assert.Equal(t, "a", input.Value())
}
