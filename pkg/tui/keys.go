package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/cluso-grapheditor/pkg/grapheditor"
)

type keyMap struct {
	Copy      key.Binding
	Paste     key.Binding
	Cut       key.Binding
	Delete    key.Binding
	Menu      key.Binding
	Fit       key.Binding
	Arrange   key.Binding
	ResetZoom key.Binding
	Save      key.Binding
	Help      key.Binding
	Quit      key.Binding

	// Context menu navigation.
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Close key.Binding
}

var keys = keyMap{
	Copy: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "copy"),
	),
	Paste: key.NewBinding(
		key.WithKeys("ctrl+v"),
		key.WithHelp("ctrl+v", "paste"),
	),
	Cut: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "cut"),
	),
	Delete: key.NewBinding(
		key.WithKeys("delete", "backspace"),
		key.WithHelp("del", "delete"),
	),
	Menu: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "menu"),
	),
	Fit: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "fit"),
	),
	Arrange: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "arrange"),
	),
	ResetZoom: key.NewBinding(
		key.WithKeys("0"),
		key.WithHelp("0", "zoom 100%"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "choose"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Menu, k.Fit, k.Arrange, k.Save, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Copy, k.Paste, k.Cut, k.Delete},
		{k.Menu, k.Fit, k.Arrange, k.ResetZoom},
		{k.Up, k.Down, k.Enter, k.Close},
		{k.Save, k.Help, k.Quit},
	}
}

// editorKey maps a key message to the editor key it stands for. ctrl
// reports whether the chord includes the control key.
func (k keyMap) editorKey(msg tea.KeyMsg) (ek grapheditor.Key, ctrl, ok bool) {
	switch {
	case key.Matches(msg, k.Copy):
		return grapheditor.KeyC, true, true
	case key.Matches(msg, k.Paste):
		return grapheditor.KeyV, true, true
	case key.Matches(msg, k.Cut):
		return grapheditor.KeyX, true, true
	case key.Matches(msg, k.Delete):
		return grapheditor.KeyDelete, false, true
	case key.Matches(msg, k.Menu):
		return grapheditor.KeyTab, false, true
	}
	return 0, false, false
}
