package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit   key.Binding
	Tab    key.Binding
	Escape key.Binding
	Up     key.Binding
	Down   key.Binding

	// Query focus
	Submit key.Binding
	Retry  key.Binding

	// Results focus
	Help       key.Binding
	CycleTheme key.Binding
	Top        key.Binding
	Bottom     key.Binding
	FocusQuery key.Binding
	RetryPlain key.Binding
	QuitPlain  key.Binding
	OpenDetail key.Binding
	DownVim    key.Binding
	UpVim      key.Binding
	HalfPgDown key.Binding
	HalfPgUp   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("Tab", "Toggle focus"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Clear / back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "Move down"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "Search now"),
		),
		Retry: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "Retry"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "h"),
			key.WithHelp("?", "Help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Bottom"),
		),
		FocusQuery: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Edit query"),
		),
		RetryPlain: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Retry"),
		),
		QuitPlain: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),
		OpenDetail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "Fetch detail"),
		),
		DownVim: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "Move down"),
		),
		UpVim: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "Move up"),
		),
		HalfPgDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "Half page down"),
		),
		HalfPgUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "Half page up"),
		),
	}
}
