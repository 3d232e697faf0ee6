package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds all dashboard key bindings.
type keyMap struct {
	Toggle   key.Binding
	Stop     key.Binding
	Next     key.Binding
	Previous key.Binding
	VolUp    key.Binding
	VolDown  key.Binding
	Shuffle  key.Binding
	Repeat   key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Toggle: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space", "play/pause"),
	),
	Stop: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "stop"),
	),
	Next: key.NewBinding(
		key.WithKeys("n", "right"),
		key.WithHelp("n", "next"),
	),
	Previous: key.NewBinding(
		key.WithKeys("p", "left"),
		key.WithHelp("p", "previous"),
	),
	VolUp: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "louder"),
	),
	VolDown: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "quieter"),
	),
	Shuffle: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "shuffle"),
	),
	Repeat: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "repeat"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "refresh"),
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

// keyBarText renders the key hint string.
func keyBarText(showHelp bool) string {
	if showHelp {
		return keyStyle.Render("Esc") + keyDescStyle.Render(":close") + "  " +
			keyStyle.Render("q") + keyDescStyle.Render(":quit")
	}
	return keyStyle.Render("space") + keyDescStyle.Render(":play/pause") + "  " +
		keyStyle.Render("n/p") + keyDescStyle.Render(":track") + "  " +
		keyStyle.Render("+/-") + keyDescStyle.Render(":volume") + "  " +
		keyStyle.Render("x") + keyDescStyle.Render(":shuffle") + "  " +
		keyStyle.Render("r") + keyDescStyle.Render(":repeat") + "  " +
		keyStyle.Render("q") + keyDescStyle.Render(":quit") + "  " +
		keyStyle.Render("?") + keyDescStyle.Render(":help")
}
