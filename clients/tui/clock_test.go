package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestProgramClock_DeliversIntoUpdate(t *testing.T) {
	c := NewProgramClock()
	msgs := make(chan tea.Msg, 1)
	c.send = func(m tea.Msg) { msgs <- m }

	ran := false
	c.AfterFunc(time.Millisecond, func() { ran = true })

	select {
	case m := <-msgs:
		fired, ok := m.(timerFiredMsg)
		if !ok {
			t.Fatalf("expected timerFiredMsg, got %T", m)
		}
		if ran {
			t.Fatal("callback must not run before Update handles it")
		}
		fired.timer.fire(fired.fn)
	case <-time.After(time.Second):
		t.Fatal("timer never delivered")
	}
	if !ran {
		t.Error("expected callback to run")
	}
}

func TestProgramClock_StopAfterQueue(t *testing.T) {
	c := NewProgramClock()
	msgs := make(chan tea.Msg, 1)
	c.send = func(m tea.Msg) { msgs <- m }

	ran := false
	timer := c.AfterFunc(time.Millisecond, func() { ran = true })

	fired := (<-msgs).(timerFiredMsg)
	if !timer.Stop() {
		t.Error("expected Stop to report an active timer")
	}
	fired.timer.fire(fired.fn)
	if ran {
		t.Error("stopped timer must not run")
	}
	if timer.Stop() {
		t.Error("second Stop should report false")
	}
}

func TestProgramClock_UnattachedDrops(t *testing.T) {
	c := NewProgramClock()
	timer := c.AfterFunc(time.Millisecond, func() { t.Error("unattached clock must not run callbacks") })
	time.Sleep(20 * time.Millisecond)
	timer.Stop()
}
