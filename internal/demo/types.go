// Package demo implements the scripted studio demo: an autoplay sequencer
// that types canned prompts and reveals pre-recorded clips, plus the manual
// generate/execute paths that run a canned progress animation.
//
// The Controller is a state machine. It owns no goroutines; every
// transition runs either from a front end call or from a clock.Clock
// callback, and front ends must make both happen on the same logical
// thread (a clock.Loop, or a bubbletea Update).
package demo

import (
	"errors"
	"time"
)

var (
	ErrUnknownMode = errors.New("unknown mode")
	ErrMissingView = errors.New("controller requires a view")
	ErrNoClock     = errors.New("controller requires a clock")
)

// Mode selects which input panel is active.
type Mode string

const (
	ModePrompt Mode = "prompt"
	ModeCode   Mode = "code"
)

// ParseMode converts a mode identifier coming from a front end.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModePrompt, ModeCode:
		return m, nil
	default:
		return "", ErrUnknownMode
	}
}

func (m Mode) valid() bool {
	return m == ModePrompt || m == ModeCode
}

// label is the wording used in the "Ready for ..." status.
func (m Mode) label() string {
	if m == ModeCode {
		return "code execution"
	}
	return "AI generation"
}

// Severity tags a status message.
type Severity string

const (
	SeverityInfo       Severity = "info"
	SeverityProcessing Severity = "processing"
	SeveritySuccess    Severity = "success"
)

// Trigger is a user-invocable action button.
type Trigger string

const (
	TriggerGenerate Trigger = "generate"
	TriggerExecute  Trigger = "execute"
)

// Field is a text-entry area.
type Field string

const (
	FieldPrompt Field = "prompt"
	FieldCode   Field = "code"
)

// Step is one scripted prompt and the clip shown after it is typed.
type Step struct {
	Text  string `json:"text"`
	Media string `json:"media"`
}

// DelayFunc returns the pause after each typed character.
type DelayFunc func() time.Duration

// Status is the last status line shown.
type Status struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// MediaInfo describes the clip on the media surface.
type MediaInfo struct {
	Ref      string `json:"ref"`
	Duration string `json:"duration"`
	Quality  string `json:"quality"`
	Status   string `json:"status"`
}

// DownloadRequest is a save-as of the loaded clip.
type DownloadRequest struct {
	Ref      string `json:"ref"`
	Filename string `json:"filename"`
}

// DownloadFilename is the suggested name for every download.
const DownloadFilename = "physics-animation.mp4"

// State is a point-in-time copy of the controller's observable state.
type State struct {
	Mode        Mode             `json:"mode"`
	Prompt      string           `json:"prompt"`
	Code        string           `json:"code"`
	Processing  bool             `json:"processing"`
	Autoplaying bool             `json:"autoplaying"`
	Typing      bool             `json:"typing"`
	Cursor      int              `json:"cursor"`
	Status      Status           `json:"status"`
	Progress    int              `json:"progress"`
	Media       *MediaInfo       `json:"media,omitempty"`
	Loaded      string           `json:"loaded,omitempty"`
	Fullscreen  bool             `json:"fullscreen"`
	Triggers    map[Trigger]bool `json:"triggers"`
}
