package tui

import (
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/graphybook/studio/internal/clock"
)

// ProgramClock is a wall clock whose callbacks run inside the bubbletea
// Update loop, the controller's only thread in the terminal studio.
type ProgramClock struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

// NewProgramClock returns a clock that is inert until Attach.
func NewProgramClock() *ProgramClock {
	return &ProgramClock{}
}

// Attach routes timer callbacks into p.
func (c *ProgramClock) Attach(p *tea.Program) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.send = p.Send
}

func (c *ProgramClock) Now() time.Time { return time.Now() }

// AfterFunc schedules fn to run in Update after d.
func (c *ProgramClock) AfterFunc(d time.Duration, fn func()) clock.Timer {
	t := &programTimer{}
	t.t = time.AfterFunc(d, func() {
		if t.stopped.Load() {
			return
		}
		c.mu.Lock()
		send := c.send
		c.mu.Unlock()
		if send != nil {
			send(timerFiredMsg{timer: t, fn: fn})
		}
	})
	return t
}

type programTimer struct {
	t       *time.Timer
	stopped atomic.Bool
}

// Stop also cancels a callback already queued in the program. It reports
// false once the callback has run.
func (t *programTimer) Stop() bool {
	wasActive := !t.stopped.Swap(true)
	t.t.Stop()
	return wasActive
}

// fire runs fn unless the timer was stopped after it was queued.
func (t *programTimer) fire(fn func()) {
	if t.stopped.Swap(true) {
		return
	}
	fn()
}
