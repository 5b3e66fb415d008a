package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the page-level bindings. The drop zone owns its own.
type keyMap struct {
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Submit     key.Binding
	Upload     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		// Enter is the keyboard submit path; it goes through the key bus.
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Upload"),
		),
		// u presses the upload button, so it follows click rules.
		Upload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Press upload button"),
		),
	}
}
