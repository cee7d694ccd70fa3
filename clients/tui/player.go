package tui

import (
	"time"

	"github.com/graphybook/studio/internal/clock"
	"github.com/graphybook/studio/internal/media"
)

// ClipPlayer simulates playback in the terminal: a clip "plays" for a
// fixed length and then reports that it ended.
type ClipPlayer struct {
	clock   clock.Clock
	lib     *media.Library
	length  time.Duration
	onEnded func()

	ref     string
	missing bool
	playing bool
	started time.Time
	timer   clock.Timer
}

// NewClipPlayer returns a player whose clips last length.
func NewClipPlayer(clk clock.Clock, lib *media.Library, length time.Duration) *ClipPlayer {
	if length <= 0 {
		length = 8 * time.Second
	}
	return &ClipPlayer{clock: clk, lib: lib, length: length}
}

// OnEnded sets the callback run when a clip finishes.
func (p *ClipPlayer) OnEnded(fn func()) {
	p.onEnded = fn
}

// Load sets the source and abandons any clip in progress.
func (p *ClipPlayer) Load(ref string) {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.ref = ref
	p.playing = false
	p.started = time.Time{}
	p.missing = false
	if p.lib != nil {
		_, err := p.lib.Resolve(ref)
		p.missing = err != nil
	}
}

// Play starts the loaded clip. Clips missing from the library still play
// so the demo keeps moving; the panel flags them.
func (p *ClipPlayer) Play() error {
	p.playing = true
	p.started = p.clock.Now()
	p.timer = p.clock.AfterFunc(p.length, p.ended)
	return nil
}

func (p *ClipPlayer) ended() {
	p.playing = false
	p.timer = nil
	if p.onEnded != nil {
		p.onEnded()
	}
}

// Position returns the played fraction of the current clip.
func (p *ClipPlayer) Position() float64 {
	if !p.playing {
		if !p.started.IsZero() {
			return 1 // finished
		}
		return 0
	}
	frac := float64(p.clock.Now().Sub(p.started)) / float64(p.length)
	return max(0, min(1, frac))
}

// Missing reports whether the loaded clip is absent from the library.
func (p *ClipPlayer) Missing() bool { return p.missing }

// Playing reports whether a clip is running.
func (p *ClipPlayer) Playing() bool { return p.playing }
