// Package atoms provides low-level TUI building blocks.
package atoms

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Spinner is a bubbles spinner that only renders while active.
type Spinner struct {
	Model  spinner.Model
	active bool
}

// NewSpinner creates a spinner with the dots pattern.
func NewSpinner(color lipgloss.Color) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(color)
	return Spinner{Model: s}
}

// Init returns the spinner tick command. Ticks keep the view redrawing.
func (s Spinner) Init() tea.Cmd {
	return s.Model.Tick
}

// SetActive shows or hides the spinner frame.
func (s *Spinner) SetActive(on bool) {
	s.active = on
}

// Update handles spinner messages.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.Model, cmd = s.Model.Update(msg)
	return s, cmd
}

// View renders the spinner frame, or a blank of the same width.
func (s Spinner) View() string {
	if !s.active {
		return "  "
	}
	return s.Model.View()
}
