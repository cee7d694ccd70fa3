// Package events provides the in-memory event bus that carries studio
// view updates from the controller to its front ends.
package events

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrBusClosed = errors.New("event bus is closed")
)

// EventType represents the type of event.
type EventType string

const (
	EventStatus      EventType = "studio.status"
	EventProgress    EventType = "studio.progress"
	EventField       EventType = "studio.field"
	EventMode        EventType = "studio.mode"
	EventTrigger     EventType = "studio.trigger"
	EventMediaReveal EventType = "studio.media.reveal"
	EventMediaHide   EventType = "studio.media.hide"
	EventMediaPlay   EventType = "studio.media.play"
	EventFullscreen  EventType = "studio.fullscreen"
)

// EventSource identifies the component that emitted an event.
type EventSource string

const (
	SourceController EventSource = "controller"
	SourceWS         EventSource = "ws"
	SourceTUI        EventSource = "tui"
)

// Event represents an event in the system.
type Event struct {
	ID        string         `json:"id"`
	Seq       uint64         `json:"seq"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Source    EventSource    `json:"source"`
	Payload   map[string]any `json:"payload"`
}

// eventIDCounter is used to generate sequential event IDs.
var eventIDCounter uint64

// NewEvent creates a new event with the current timestamp.
func NewEvent(eventType EventType, source EventSource, payload map[string]any) Event {
	return Event{
		ID:        generateEventID(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    source,
		Payload:   payload,
	}
}

func generateEventID() string {
	seq := atomic.AddUint64(&eventIDCounter, 1)
	return fmt.Sprintf("%d-%d", time.Now().UnixNano(), seq)
}

// Subscriber is a function that receives events. It runs on the
// publisher's goroutine and must not block.
type Subscriber func(Event)

type subscription struct {
	id         int
	eventTypes []EventType
	handler    Subscriber
}

// Bus is an in-memory event bus. Publish delivers to every matching
// subscriber before returning, in subscription order, so subscribers see
// events in exactly the order they were published.
type Bus struct {
	mu          sync.RWMutex
	pubMu       sync.Mutex
	subscribers map[int]*subscription
	nextID      int
	seq         uint64
	ringBuffer  *RingBuffer
	closed      bool
}

// NewBus creates a new event bus keeping the last historySize events.
func NewBus(historySize int) *Bus {
	if historySize < 1 {
		historySize = 1
	}
	return &Bus{
		subscribers: make(map[int]*subscription),
		ringBuffer:  NewRingBuffer(historySize),
	}
}

func (b *Bus) matches(sub *subscription, event Event) bool {
	if len(sub.eventTypes) == 0 {
		return true
	}
	return slices.Contains(sub.eventTypes, event.Type)
}

// Publish stamps the event with the next sequence number, records it and
// hands it to subscribers.
func (b *Bus) Publish(event Event) error {
	b.pubMu.Lock()
	defer b.pubMu.Unlock()

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBusClosed
	}
	b.seq++
	event.Seq = b.seq
	subs := make([]*subscription, 0, len(b.subscribers))
	for _, sub := range b.subscribers {
		if b.matches(sub, event) {
			subs = append(subs, sub)
		}
	}
	b.mu.RUnlock()

	slices.SortFunc(subs, func(a, c *subscription) int { return a.id - c.id })

	b.ringBuffer.Add(event)
	for _, sub := range subs {
		sub.handler(event)
	}
	return nil
}

// Subscribe registers a handler for specific event types.
// Returns an unsubscribe function.
func (b *Bus) Subscribe(handler Subscriber, eventTypes ...EventType) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	b.subscribers[id] = &subscription{
		id:         id,
		eventTypes: eventTypes,
		handler:    handler,
	}

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subscribers, id)
	}
}

// SubscribeChan returns a channel that receives events. Events are dropped
// when the channel is full.
func (b *Bus) SubscribeChan(bufSize int, eventTypes ...EventType) (<-chan Event, func()) {
	ch := make(chan Event, bufSize)
	var once sync.Once

	unsubscribe := b.Subscribe(func(e Event) {
		select {
		case ch <- e:
		default:
		}
	}, eventTypes...)

	return ch, func() {
		once.Do(func() {
			unsubscribe()
			// Publish holds pubMu while delivering, so no send is in flight.
			b.pubMu.Lock()
			close(ch)
			b.pubMu.Unlock()
		})
	}
}

// History returns recent events from the ring buffer, oldest first.
func (b *Bus) History(limit int) []Event {
	return b.ringBuffer.Get(limit)
}

// Close shuts down the event bus. Later publishes fail with ErrBusClosed.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}

// RingBuffer is a circular buffer for storing recent events.
type RingBuffer struct {
	mu     sync.RWMutex
	events []Event
	size   int
	pos    int
	count  int
}

// NewRingBuffer creates a new ring buffer.
func NewRingBuffer(size int) *RingBuffer {
	return &RingBuffer{
		events: make([]Event, size),
		size:   size,
	}
}

func (r *RingBuffer) Add(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events[r.pos] = event
	r.pos = (r.pos + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

func (r *RingBuffer) Get(n int) []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n > r.count {
		n = r.count
	}
	if n <= 0 {
		return nil
	}

	result := make([]Event, n)
	start := (r.pos - n + r.size) % r.size
	for i := 0; i < n; i++ {
		result[i] = r.events[(start+i)%r.size]
	}
	return result
}
