package demo

// View is the display surface the controller drives. Implementations only
// render; they never call back into the controller from these methods.
type View interface {
	SetStatus(message string, severity Severity)
	SetProgress(percent int)
	SetFieldText(field Field, text string)
	SetMode(mode Mode)
	RevealMedia(info MediaInfo)
	HideMedia()
	SetTriggerEnabled(trigger Trigger, enabled bool)
	SetFullscreen(on bool)
}

// Player sets a playable source and requests playback.
type Player interface {
	Load(ref string)
	Play() error
}

// Observer receives notable controller events, mainly for metrics.
type Observer interface {
	StepStarted(index int, step Step)
	ActionStarted(action string)
	PlaybackFailed(ref string, err error)
}

type nopPlayer struct{}

func (nopPlayer) Load(string) {}
func (nopPlayer) Play() error { return nil }

type nopObserver struct{}

func (nopObserver) StepStarted(int, Step) {}
func (nopObserver) ActionStarted(string) {}
func (nopObserver) PlaybackFailed(string, error) {}
