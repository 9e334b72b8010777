package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	ForceQuit  key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Back       key.Binding

	// Menu shortcuts
	GoCheckIn  key.Binding
	GoCheckOut key.Binding
	GoTickets  key.Binding
	GoReport   key.Binding
	GoSettings key.Binding

	// Navigation
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	NextField key.Binding
	PrevField key.Binding

	// Forms
	Submit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "Cycle theme"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back to menu"),
		),

		GoCheckIn: key.NewBinding(
			key.WithKeys("1", "i"),
			key.WithHelp("1/i", "Check in"),
		),
		GoCheckOut: key.NewBinding(
			key.WithKeys("2", "o"),
			key.WithHelp("2/o", "Check out"),
		),
		GoTickets: key.NewBinding(
			key.WithKeys("3", "t"),
			key.WithHelp("3/t", "Open tickets"),
		),
		GoReport: key.NewBinding(
			key.WithKeys("4", "r"),
			key.WithHelp("4/r", "Export report"),
		),
		GoSettings: key.NewBinding(
			key.WithKeys("5", "s"),
			key.WithHelp("5/s", "Settings"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("left", "Previous choice"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("right", "Next choice"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),

		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Submit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.GoCheckIn, k.GoCheckOut, k.GoTickets, k.GoReport, k.GoSettings},
		{k.Up, k.Down, k.Submit, k.Back},
		{k.NextField, k.PrevField, k.Left, k.Right},
		{k.CycleTheme, k.Help, k.Quit, k.ForceQuit},
	}
}
