package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pong/internal/engine"
)

// KeyMap defines the key bindings for a local two-player match.
type KeyMap struct {
	LeftUp    key.Binding
	LeftDown  key.Binding
	RightUp   key.Binding
	RightDown key.Binding
	Serve     key.Binding
	Reset     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Serve, k.Reset, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.LeftUp, k.LeftDown},
		{k.RightUp, k.RightDown},
		{k.Serve, k.Reset},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		LeftUp: key.NewBinding(
			key.WithKeys("a", "w"),
			key.WithHelp("a/w", "left up"),
		),
		LeftDown: key.NewBinding(
			key.WithKeys("z", "s"),
			key.WithHelp("z/s", "left down"),
		),
		RightUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "right up"),
		),
		RightDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "right down"),
		),
		Serve: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "serve"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Paddle reports which paddle and direction msg controls, if any.
func (k KeyMap) Paddle(msg tea.KeyMsg) (engine.Player, engine.Direction, bool) {
	switch {
	case key.Matches(msg, k.LeftUp):
		return engine.Left, engine.Up, true
	case key.Matches(msg, k.LeftDown):
		return engine.Left, engine.Down, true
	case key.Matches(msg, k.RightUp):
		return engine.Right, engine.Up, true
	case key.Matches(msg, k.RightDown):
		return engine.Right, engine.Down, true
	}
	return engine.Left, engine.Neutral, false
}
