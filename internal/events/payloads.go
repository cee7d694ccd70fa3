package events

import (
	"encoding/json"
	"time"
)

// EventPayload is the interface all typed payloads implement.
type EventPayload interface {
	EventType() EventType
}

// =============================================================================
// STATUS & PROGRESS
// =============================================================================

type StatusPayload struct {
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

func (StatusPayload) EventType() EventType { return EventStatus }

type ProgressPayload struct {
	Percent int `json:"percent"`
}

func (ProgressPayload) EventType() EventType { return EventProgress }

// =============================================================================
// INPUTS
// =============================================================================

type FieldPayload struct {
	Field string `json:"field"`
	Text  string `json:"text"`
}

func (FieldPayload) EventType() EventType { return EventField }

type ModePayload struct {
	Mode string `json:"mode"`
}

func (ModePayload) EventType() EventType { return EventMode }

type TriggerPayload struct {
	Trigger string `json:"trigger"`
	Enabled bool   `json:"enabled"`
}

func (TriggerPayload) EventType() EventType { return EventTrigger }

// =============================================================================
// MEDIA
// =============================================================================

type MediaRevealPayload struct {
	Ref      string `json:"ref"`
	Duration string `json:"duration"`
	Quality  string `json:"quality"`
	Status   string `json:"status"`
}

func (MediaRevealPayload) EventType() EventType { return EventMediaReveal }

type MediaHidePayload struct{}

func (MediaHidePayload) EventType() EventType { return EventMediaHide }

// MediaPlayPayload asks front ends to load and start a clip.
type MediaPlayPayload struct {
	Ref string `json:"ref"`
	URL string `json:"url"` // where the web studio fetches the clip
}

func (MediaPlayPayload) EventType() EventType { return EventMediaPlay }

type FullscreenPayload struct {
	On bool `json:"on"`
}

func (FullscreenPayload) EventType() EventType { return EventFullscreen }

// =============================================================================
// TYPED EVENT CONSTRUCTORS
// =============================================================================

func NewTypedEvent(source EventSource, payload EventPayload) Event {
	return Event{
		ID:        generateEventID(),
		Type:      payload.EventType(),
		Timestamp: time.Now(),
		Source:    source,
		Payload:   toMap(payload),
	}
}

func toMap(v any) map[string]any {
	var result map[string]any
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}
	return result
}

// =============================================================================
// TYPED PAYLOAD EXTRACTORS
// =============================================================================

// ExtractPayload decodes e's payload into T. It reports false when the
// event is of another type.
func ExtractPayload[T EventPayload](e Event) (T, bool) {
	var result T
	if result.EventType() != e.Type {
		return result, false
	}
	data, err := json.Marshal(e.Payload)
	if err != nil {
		return result, false
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, false
	}
	return result, true
}
