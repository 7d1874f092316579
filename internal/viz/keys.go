package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Play    key.Binding
	Step    key.Binding
	Back    key.Binding
	Forward key.Binding
	Reset   key.Binding
	Random  key.Binding
	Input   key.Binding
	Faster  key.Binding
	Slower  key.Binding
	Theme   key.Binding
	Menu    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Play: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "run/pause"),
	),
	Step: key.NewBinding(
		key.WithKeys("n", "right", "l"),
		key.WithHelp("n/→", "step"),
	),
	Back: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "seek back"),
	),
	Forward: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "seek forward"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Random: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "new problem"),
	),
	Input: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "edit input"),
	),
	Faster: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "faster"),
	),
	Slower: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "slower"),
	),
	Theme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "theme"),
	),
	Menu: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "menu"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Step, k.Reset, k.Random, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.Step, k.Back, k.Forward},
		{k.Reset, k.Random, k.Input},
		{k.Faster, k.Slower, k.Theme},
		{k.Menu, k.Help, k.Quit},
	}
}
