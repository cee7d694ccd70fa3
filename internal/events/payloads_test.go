package events

import "testing"

func TestTypedEvent_Status(t *testing.T) {
	evt := NewTypedEvent(SourceController, StatusPayload{Message: "⚡ Executing your code...", Severity: "processing"})

	if evt.Type != EventStatus {
		t.Fatalf("expected type %q, got %q", EventStatus, evt.Type)
	}
	got, ok := ExtractPayload[StatusPayload](evt)
	if !ok {
		t.Fatal("ExtractPayload returned false")
	}
	if got.Message != "⚡ Executing your code..." || got.Severity != "processing" {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestTypedEvent_MediaReveal(t *testing.T) {
	payload := MediaRevealPayload{Ref: "vids/derivatives.mov", Duration: "Auto", Quality: "720p", Status: "Playing"}
	evt := NewTypedEvent(SourceController, payload)

	if evt.Type != EventMediaReveal {
		t.Fatalf("expected type %q, got %q", EventMediaReveal, evt.Type)
	}
	got, ok := ExtractPayload[MediaRevealPayload](evt)
	if !ok {
		t.Fatal("ExtractPayload returned false")
	}
	if got != payload {
		t.Fatalf("expected %+v, got %+v", payload, got)
	}
}

func TestTypedEvent_Trigger(t *testing.T) {
	evt := NewTypedEvent(SourceController, TriggerPayload{Trigger: "execute", Enabled: true})

	got, ok := ExtractPayload[TriggerPayload](evt)
	if !ok {
		t.Fatal("ExtractPayload returned false")
	}
	if got.Trigger != "execute" || !got.Enabled {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestExtractPayload_WrongType(t *testing.T) {
	evt := NewTypedEvent(SourceController, ProgressPayload{Percent: 30})

	if _, ok := ExtractPayload[StatusPayload](evt); ok {
		t.Error("expected false for mismatched event type")
	}
}

func TestEventTypes(t *testing.T) {
	tests := []struct {
		payload  EventPayload
		expected EventType
	}{
		{StatusPayload{}, EventStatus},
		{ProgressPayload{}, EventProgress},
		{FieldPayload{}, EventField},
		{ModePayload{}, EventMode},
		{TriggerPayload{}, EventTrigger},
		{MediaRevealPayload{}, EventMediaReveal},
		{MediaHidePayload{}, EventMediaHide},
		{MediaPlayPayload{}, EventMediaPlay},
		{FullscreenPayload{}, EventFullscreen},
	}

	for _, tt := range tests {
		if got := tt.payload.EventType(); got != tt.expected {
			t.Errorf("%T.EventType() = %q, want %q", tt.payload, got, tt.expected)
		}
	}
}
