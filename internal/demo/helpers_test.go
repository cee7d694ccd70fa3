package demo

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/graphybook/studio/internal/clock"
)

var epochForTests = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

type recordingView struct {
	statuses   []Status
	progress   []int
	fields     map[Field]string
	promptSets int
	mode       Mode
	media      *MediaInfo
	reveals    []string
	revealedAt []string // prompt text at the moment of each reveal
	hides      int
	triggers   map[Trigger]bool
	fullscreen bool
}

func newRecordingView() *recordingView {
	return &recordingView{
		fields:   make(map[Field]string),
		triggers: make(map[Trigger]bool),
	}
}

func (v *recordingView) SetStatus(message string, severity Severity) {
	v.statuses = append(v.statuses, Status{Message: message, Severity: severity})
}

func (v *recordingView) SetProgress(percent int) { v.progress = append(v.progress, percent) }

func (v *recordingView) SetFieldText(field Field, text string) {
	v.fields[field] = text
	if field == FieldPrompt {
		v.promptSets++
	}
}

func (v *recordingView) SetMode(mode Mode) { v.mode = mode }

func (v *recordingView) RevealMedia(info MediaInfo) {
	v.media = &info
	v.reveals = append(v.reveals, info.Ref)
	v.revealedAt = append(v.revealedAt, v.fields[FieldPrompt])
}

func (v *recordingView) HideMedia() {
	v.media = nil
	v.hides++
}

func (v *recordingView) SetTriggerEnabled(trigger Trigger, enabled bool) {
	v.triggers[trigger] = enabled
}

func (v *recordingView) SetFullscreen(on bool) { v.fullscreen = on }

func (v *recordingView) lastStatus() Status {
	if len(v.statuses) == 0 {
		return Status{}
	}
	return v.statuses[len(v.statuses)-1]
}

func (v *recordingView) lastProgress() int {
	if len(v.progress) == 0 {
		return -1
	}
	return v.progress[len(v.progress)-1]
}

func (v *recordingView) sawStatus(message string) bool {
	for _, s := range v.statuses {
		if s.Message == message {
			return true
		}
	}
	return false
}

type fakePlayer struct {
	loads   []string
	plays   int
	playErr error
}

func (p *fakePlayer) Load(ref string) { p.loads = append(p.loads, ref) }

func (p *fakePlayer) Play() error {
	p.plays++
	return p.playErr
}

type countingObserver struct {
	steps    []int
	actions  []string
	failures []string
}

func (o *countingObserver) StepStarted(index int, _ Step) { o.steps = append(o.steps, index) }
func (o *countingObserver) ActionStarted(action string) { o.actions = append(o.actions, action) }
func (o *countingObserver) PlaybackFailed(ref string, _ error) {
	o.failures = append(o.failures, ref)
}

type harness struct {
	c        *Controller
	clk      *clock.Fake
	view     *recordingView
	player   *fakePlayer
	observer *countingObserver
}

func newHarness(t *testing.T, mutate ...func(*Options)) *harness {
	t.Helper()
	h := &harness{
		clk:      clock.NewFake(epochForTests),
		view:     newRecordingView(),
		player:   &fakePlayer{},
		observer: &countingObserver{},
	}
	opts := Options{
		View:        h.view,
		Player:      h.player,
		Clock:       h.clk,
		Observer:    h.observer,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		TypingDelay: FixedDelay(time.Millisecond),
	}
	for _, fn := range mutate {
		fn(&opts)
	}
	c, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.c = c
	return h
}

// runUntil fires timers until cond holds.
func (h *harness) runUntil(t *testing.T, cond func() bool) {
	t.Helper()
	for i := 0; i < 100000; i++ {
		if cond() {
			return
		}
		if !h.clk.Step() {
			t.Fatal("clock ran dry before condition was met")
		}
	}
	t.Fatal("condition not met after 100000 timer firings")
}

// drain fires every pending timer, including ones scheduled on the way.
func (h *harness) drain(t *testing.T) {
	t.Helper()
	for i := 0; h.clk.Step(); i++ {
		if i > 100000 {
			t.Fatal("clock never went idle")
		}
	}
}
