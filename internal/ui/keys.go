package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap binds keys to navigation actions
type keyMap struct {
	Quit       key.Binding
	Prev       key.Binding
	Next       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	First      key.Binding
	Last       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("Esc", "Exit"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("Left", "Prev Msg"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("Right", "Next Msg"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("Up", "Scroll Up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("Down", "Scroll Down"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home", "First Msg"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End", "Last Msg"),
		),
	}
}

// ShortHelp is the footer legend
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Prev, k.Next, k.ScrollUp, k.ScrollDown, k.First, k.Last}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.First, k.Last},
		{k.ScrollUp, k.ScrollDown, k.Quit},
	}
}

// actionFor maps a key press to a navigation action
func (k keyMap) actionFor(msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, k.Quit):
		return ActionQuit
	case key.Matches(msg, k.Prev):
		return ActionPrev
	case key.Matches(msg, k.Next):
		return ActionNext
	case key.Matches(msg, k.ScrollUp):
		return ActionScrollUp
	case key.Matches(msg, k.ScrollDown):
		return ActionScrollDown
	case key.Matches(msg, k.First):
		return ActionFirst
	case key.Matches(msg, k.Last):
		return ActionLast
	default:
		return ActionNone
	}
}
