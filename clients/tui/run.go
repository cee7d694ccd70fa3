package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the terminal studio and blocks until the user quits or ctx
// is cancelled. opts.Clock is replaced by a clock bound to the program.
func Run(ctx context.Context, opts Options) error {
	clk := NewProgramClock()
	opts.Clock = clk

	app, err := NewApp(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	clk.Attach(p)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
