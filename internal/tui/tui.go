package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive capture screen and blocks until the user quits.
func Run(o Options) error {
	applyThemePreference()
	applyColorProfilePreference()

	m := newAppModel(o)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	// Quitting flushes the draft, but a crash or signal may not have.
	o.Session.Close()
	return err
}
