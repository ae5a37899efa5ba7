// Package tui is the interactive quadrant board: selected matrices composed
// into four urgency quadrants, with keyboard pick-up-and-drop reordering.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"quadrant-cli/internal/config"
	"quadrant-cli/internal/store"
)

func Run(s store.Store, db *store.DB, cfg config.Config) error {
	p := tea.NewProgram(newApp(s, db, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
