// Package keymap defines keybindings for the TUI.
package keymap

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds every binding the TUI reacts to.
type KeyMap struct {
	// Application level.
	Quit     key.Binding
	Help     key.Binding
	Back     key.Binding
	Settings key.Binding

	// Pane level. Select opens the source article of the highlighted
	// sentence; Rerank ranks the focused pane again with current settings.
	SwitchPane key.Binding
	Open       key.Binding
	Rerank     key.Binding
	Select     key.Binding

	// List navigation, handled by the sentence list.
	Up     key.Binding
	Down   key.Binding
	Cancel key.Binding
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit:     bind("q", "quit", "q", "ctrl+c"),
		Help:     bind("?", "help", "?"),
		Back:     bind("esc", "back", "esc"),
		Settings: bind("s", "settings", "s"),

		SwitchPane: bind("tab", "switch pane", "tab", "shift+tab"),
		Open:       bind("o", "open", "o", "/"),
		Rerank:     bind("r", "re-rank", "r"),
		Select:     bind("enter", "source", "enter"),

		Up:     bind("↑/k", "up", "up", "k"),
		Down:   bind("↓/j", "down", "down", "j"),
		Cancel: bind("esc", "cancel", "esc"),
	}
}

// ShortHelp returns the bindings shown in the status bar while idle.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.SwitchPane, k.Help, k.Quit}
}

// ResultsHelp returns the bindings shown while a pane holds a ranking.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Select, k.Rerank, k.SwitchPane, k.Open}
}

// FullHelp returns the bindings of the help view, one column per group.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.SwitchPane, k.Open, k.Rerank},
		{k.Settings, k.Back, k.Cancel},
		{k.Help, k.Quit},
	}
}

// Matches reports whether keyStr is one of the binding's keys.
// Disabled bindings never match.
func Matches(keyStr string, binding key.Binding) bool {
	return binding.Enabled() && slices.Contains(binding.Keys(), keyStr)
}
