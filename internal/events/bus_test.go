package events

import (
	"errors"
	"strconv"
	"testing"
)

func TestBusPublishSubscribe(t *testing.T) {
	bus := NewBus(64)
	defer bus.Close()

	var received []Event
	bus.Subscribe(func(e Event) {
		received = append(received, e)
	}, EventStatus)

	bus.Publish(NewTypedEvent(SourceController, StatusPayload{Message: "ready"}))
	bus.Publish(NewTypedEvent(SourceController, ProgressPayload{Percent: 10}))

	if len(received) != 1 {
		t.Fatalf("expected 1 event, got %d", len(received))
	}
	if received[0].Type != EventStatus {
		t.Errorf("expected studio.status, got %s", received[0].Type)
	}
}

func TestBusSubscribeAll(t *testing.T) {
	bus := NewBus(64)
	defer bus.Close()

	count := 0
	bus.Subscribe(func(e Event) { count++ })

	bus.Publish(NewTypedEvent(SourceController, StatusPayload{Message: "ready"}))
	bus.Publish(NewTypedEvent(SourceController, ProgressPayload{Percent: 10}))

	if count != 2 {
		t.Errorf("expected 2 events, got %d", count)
	}
}

func TestBusPreservesOrder(t *testing.T) {
	bus := NewBus(256)
	defer bus.Close()

	var texts []string
	var seqs []uint64
	bus.Subscribe(func(e Event) {
		p, _ := ExtractPayload[FieldPayload](e)
		texts = append(texts, p.Text)
		seqs = append(seqs, e.Seq)
	}, EventField)

	for i := 0; i < 100; i++ {
		bus.Publish(NewTypedEvent(SourceController, FieldPayload{Field: "prompt", Text: strconv.Itoa(i)}))
	}

	if len(texts) != 100 {
		t.Fatalf("expected 100 events, got %d", len(texts))
	}
	for i, text := range texts {
		if text != strconv.Itoa(i) {
			t.Fatalf("event %d out of order: got %q", i, text)
		}
		if seqs[i] != uint64(i+1) {
			t.Fatalf("event %d has seq %d, want %d", i, seqs[i], i+1)
		}
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus(8)
	defer bus.Close()

	count := 0
	unsub := bus.Subscribe(func(Event) { count++ })
	bus.Publish(NewTypedEvent(SourceController, MediaHidePayload{}))
	unsub()
	bus.Publish(NewTypedEvent(SourceController, MediaHidePayload{}))

	if count != 1 {
		t.Errorf("expected 1 delivery, got %d", count)
	}
}

func TestBusClosed(t *testing.T) {
	bus := NewBus(8)
	bus.Close()

	err := bus.Publish(NewTypedEvent(SourceController, MediaHidePayload{}))
	if !errors.Is(err, ErrBusClosed) {
		t.Errorf("expected ErrBusClosed, got %v", err)
	}
	if len(bus.History(10)) != 0 {
		t.Error("closed bus should not record events")
	}
}

func TestRingBuffer(t *testing.T) {
	rb := NewRingBuffer(3)

	for i := 0; i < 5; i++ {
		rb.Add(NewEvent(EventProgress, SourceController, map[string]any{"i": i}))
	}

	events := rb.Get(10)
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	// Oldest retained first.
	if got := events[0].Payload["i"]; got != 2 {
		t.Errorf("expected oldest retained i=2, got %v", got)
	}
	if got := events[2].Payload["i"]; got != 4 {
		t.Errorf("expected newest i=4, got %v", got)
	}
	if rb.Get(0) != nil {
		t.Error("expected nil for limit 0")
	}
}

func TestSubscribeChan(t *testing.T) {
	bus := NewBus(64)
	defer bus.Close()

	ch, unsub := bus.SubscribeChan(8, EventMode)

	bus.Publish(NewTypedEvent(SourceController, ModePayload{Mode: "code"}))

	select {
	case e := <-ch:
		if e.Type != EventMode {
			t.Errorf("expected studio.mode, got %s", e.Type)
		}
	default:
		t.Fatal("event was not delivered synchronously")
	}

	unsub()
	unsub()
	if _, ok := <-ch; ok {
		t.Error("expected channel closed after unsubscribe")
	}
}

func TestSubscribeChanDropsWhenFull(t *testing.T) {
	bus := NewBus(64)
	defer bus.Close()

	ch, unsub := bus.SubscribeChan(1)
	defer unsub()

	bus.Publish(NewTypedEvent(SourceController, ProgressPayload{Percent: 1}))
	bus.Publish(NewTypedEvent(SourceController, ProgressPayload{Percent: 2}))

	if len(ch) != 1 {
		t.Errorf("expected 1 buffered event, got %d", len(ch))
	}
	if len(bus.History(10)) != 2 {
		t.Error("history should keep dropped events")
	}
}
