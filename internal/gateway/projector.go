package gateway

import (
	"log/slog"

	"github.com/graphybook/studio/internal/demo"
	"github.com/graphybook/studio/internal/events"
)

// Projector renders the controller onto the event bus. It implements
// demo.View and demo.Player; browsers replay the events on their DOM.
type Projector struct {
	bus    *events.Bus
	url    func(ref string) string
	log    *slog.Logger
	loaded string
}

// NewProjector returns a projector publishing on bus. url maps a media ref
// to the path browsers fetch it from.
func NewProjector(bus *events.Bus, url func(ref string) string, log *slog.Logger) *Projector {
	if url == nil {
		url = func(ref string) string { return ref }
	}
	if log == nil {
		log = slog.Default()
	}
	return &Projector{bus: bus, url: url, log: log}
}

func (p *Projector) publish(payload events.EventPayload) {
	if err := p.bus.Publish(events.NewTypedEvent(events.SourceController, payload)); err != nil {
		p.log.Debug("projector publish dropped", "event", payload.EventType(), "error", err)
	}
}

func (p *Projector) SetStatus(message string, severity demo.Severity) {
	p.publish(events.StatusPayload{Message: message, Severity: string(severity)})
}

func (p *Projector) SetProgress(percent int) {
	p.publish(events.ProgressPayload{Percent: percent})
}

func (p *Projector) SetFieldText(field demo.Field, text string) {
	p.publish(events.FieldPayload{Field: string(field), Text: text})
}

func (p *Projector) SetMode(mode demo.Mode) {
	p.publish(events.ModePayload{Mode: string(mode)})
}

func (p *Projector) RevealMedia(info demo.MediaInfo) {
	p.publish(events.MediaRevealPayload{
		Ref:      info.Ref,
		Duration: info.Duration,
		Quality:  info.Quality,
		Status:   info.Status,
	})
}

func (p *Projector) HideMedia() {
	p.publish(events.MediaHidePayload{})
}

func (p *Projector) SetTriggerEnabled(trigger demo.Trigger, enabled bool) {
	p.publish(events.TriggerPayload{Trigger: string(trigger), Enabled: enabled})
}

func (p *Projector) SetFullscreen(on bool) {
	p.publish(events.FullscreenPayload{On: on})
}

// Load remembers the clip for the next Play.
func (p *Projector) Load(ref string) {
	p.loaded = ref
}

// Play asks browsers to start the loaded clip. A browser that refuses
// reports back with playback_failed.
func (p *Projector) Play() error {
	p.publish(events.MediaPlayPayload{Ref: p.loaded, URL: p.url(p.loaded)})
	return nil
}
