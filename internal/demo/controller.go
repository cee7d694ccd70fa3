package demo

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"time"

	"github.com/graphybook/studio/internal/clock"
)

// Options configures a Controller. View and Clock are required; every
// other field falls back to the built-in demo.
type Options struct {
	View     View
	Player   Player
	Clock    clock.Clock
	Observer Observer
	Logger   *slog.Logger

	Steps       []Step
	Timing      Timing
	TypingDelay DelayFunc
	Generate    Script
	Execute     Script
}

// phase tracks where the autoplay sequencer is parked.
type phase int

const (
	phaseIdle phase = iota
	phaseStarting
	phaseScheduled
	phaseTyping
	phasePlaying
	phaseStopped
)

// state is everything the controller mutates. Only transition methods on
// Controller write to it.
type state struct {
	mode        Mode
	prompt      string
	code        string
	processing  bool
	autoplaying bool
	typing      bool
	cursor      int

	started bool
	halted  bool
	phase   phase

	status     Status
	progress   int
	media      *MediaInfo
	loaded     string
	fullscreen bool
	triggers   map[Trigger]bool
}

// Controller drives the studio view. It is not safe for concurrent use:
// call it only from the logical thread its Clock runs callbacks on.
type Controller struct {
	view     View
	player   Player
	clock    clock.Clock
	observer Observer
	log      *slog.Logger

	steps    []Step
	timing   Timing
	delay    DelayFunc
	generate Script
	execute  Script

	s state
}

// New builds a controller and pushes the initial view.
func New(opts Options) (*Controller, error) {
	if opts.View == nil {
		return nil, ErrMissingView
	}
	if opts.Clock == nil {
		return nil, ErrNoClock
	}

	c := &Controller{
		view:     opts.View,
		player:   opts.Player,
		clock:    opts.Clock,
		observer: opts.Observer,
		log:      opts.Logger,
		steps:    opts.Steps,
		timing:   opts.Timing,
		delay:    opts.TypingDelay,
		generate: opts.Generate,
		execute:  opts.Execute,
	}
	if c.player == nil {
		c.player = nopPlayer{}
	}
	if c.observer == nil {
		c.observer = nopObserver{}
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	if len(c.steps) == 0 {
		c.steps = DefaultSteps()
	}
	if c.timing == (Timing{}) {
		c.timing = DefaultTiming()
	}
	if c.delay == nil {
		c.delay = UniformDelay(30*time.Millisecond, 70*time.Millisecond)
	}
	if c.generate.Name == "" {
		c.generate = GenerateScript()
	}
	if c.execute.Name == "" {
		c.execute = ExecuteScript()
	}

	c.s = state{
		mode:     ModePrompt,
		triggers: make(map[Trigger]bool),
	}

	c.view.SetMode(ModePrompt)
	c.view.HideMedia()
	c.setProgress(0)
	c.validate()
	c.setStatus(msgReady, SeverityInfo)
	return c, nil
}

// Steps returns the autoplay sequence in use.
func (c *Controller) Steps() []Step {
	return append([]Step(nil), c.steps...)
}

// SwitchMode activates the prompt or code panel.
func (c *Controller) SwitchMode(mode Mode) error {
	if !mode.valid() {
		return fmt.Errorf("switch mode %q: %w", mode, ErrUnknownMode)
	}
	c.s.mode = mode
	c.view.SetMode(mode)
	c.validate()
	c.setStatus("Ready for "+mode.label(), SeverityInfo)
	return nil
}

// SetPromptText records a user edit of the prompt field.
func (c *Controller) SetPromptText(text string) {
	c.setField(FieldPrompt, text)
}

// SetCodeText records a user edit of the code field.
func (c *Controller) SetCodeText(text string) {
	c.setField(FieldCode, text)
}

// ToggleFullscreen flips fullscreen on the media surface. It does nothing
// while no clip is shown.
func (c *Controller) ToggleFullscreen() {
	if c.s.media == nil {
		return
	}
	c.s.fullscreen = !c.s.fullscreen
	c.view.SetFullscreen(c.s.fullscreen)
}

// Download returns a save-as request for the loaded clip, or false when
// nothing was ever loaded.
func (c *Controller) Download() (DownloadRequest, bool) {
	if c.s.loaded == "" {
		return DownloadRequest{}, false
	}
	return DownloadRequest{Ref: c.s.loaded, Filename: DownloadFilename}, true
}

// PlaybackFailed records that the host refused to start playback after
// Play returned. The failure is only logged.
func (c *Controller) PlaybackFailed(reason string) {
	c.log.Warn("playback rejected by host", "media", c.s.loaded, "reason", reason)
	c.observer.PlaybackFailed(c.s.loaded, errors.New(reason))
}

// Snapshot returns a copy of the observable state.
func (c *Controller) Snapshot() State {
	st := State{
		Mode:        c.s.mode,
		Prompt:      c.s.prompt,
		Code:        c.s.code,
		Processing:  c.s.processing,
		Autoplaying: c.s.autoplaying,
		Typing:      c.s.typing,
		Cursor:      c.s.cursor,
		Status:      c.s.status,
		Progress:    c.s.progress,
		Loaded:      c.s.loaded,
		Fullscreen:  c.s.fullscreen,
		Triggers:    maps.Clone(c.s.triggers),
	}
	if c.s.media != nil {
		m := *c.s.media
		st.Media = &m
	}
	return st
}

// validate recomputes trigger enablement. Only the trigger of the active
// mode can be enabled.
func (c *Controller) validate() {
	active := c.s.prompt
	if c.s.mode == ModeCode {
		active = c.s.code
	}
	ok := strings.TrimSpace(active) != "" && !c.s.processing

	c.setTrigger(TriggerGenerate, ok && c.s.mode == ModePrompt)
	c.setTrigger(TriggerExecute, ok && c.s.mode == ModeCode)
}

func (c *Controller) setTrigger(t Trigger, enabled bool) {
	if prev, seen := c.s.triggers[t]; seen && prev == enabled {
		return
	}
	c.s.triggers[t] = enabled
	c.view.SetTriggerEnabled(t, enabled)
}

func (c *Controller) setField(f Field, text string) {
	switch f {
	case FieldPrompt:
		c.s.prompt = text
	case FieldCode:
		c.s.code = text
	}
	c.view.SetFieldText(f, text)
	c.validate()
}

func (c *Controller) setStatus(message string, severity Severity) {
	c.s.status = Status{Message: message, Severity: severity}
	c.view.SetStatus(message, severity)
}

func (c *Controller) setProgress(percent int) {
	percent = max(0, min(100, percent))
	c.s.progress = percent
	c.view.SetProgress(percent)
}

func (c *Controller) setProcessing(on bool) {
	c.s.processing = on
	c.validate()
}

// reveal shows the media surface and asks the player to start. A refused
// start is logged and otherwise ignored.
func (c *Controller) reveal(ref string) {
	info := MediaInfo{
		Ref:      ref,
		Duration: "Auto",
		Quality:  "720p",
		Status:   "Playing",
	}
	c.s.media = &info
	c.s.loaded = ref
	c.view.RevealMedia(info)

	c.player.Load(ref)
	if err := c.player.Play(); err != nil {
		c.log.Warn("playback start prevented", "media", ref, "error", err)
		c.observer.PlaybackFailed(ref, err)
	}
}

func (c *Controller) hideMedia() {
	c.s.media = nil
	if c.s.fullscreen {
		c.s.fullscreen = false
		c.view.SetFullscreen(false)
	}
	c.view.HideMedia()
}

func (c *Controller) after(d time.Duration, fn func()) {
	c.clock.AfterFunc(d, fn)
}
