package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/graphybook/studio/internal/events"
)

// ErrUnknownMethod is returned by handlers for methods they do not serve.
var ErrUnknownMethod = errors.New("unknown method")

// Handler serves one request frame. It runs inside Options.Run.
type Handler func(ctx context.Context, method Method, params json.RawMessage) (any, error)

// Options wires a Hub to the component it fronts.
type Options struct {
	// Run executes fn on the component's logical thread and waits for it.
	Run func(ctx context.Context, fn func()) error
	// Snapshot returns the state sent to newly connected clients.
	Snapshot func() any
	Handler  Handler
	// OnClients is told the client count after every connect and disconnect.
	OnClients func(n int)
	Logger    *slog.Logger
}

// Client represents a connected WebSocket client.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	hub  *Hub
}

// Hub manages WebSocket clients and bridges them to the event bus.
type Hub struct {
	mu          sync.RWMutex
	clients     map[*Client]struct{}
	bus         *events.Bus
	opts        Options
	log         *slog.Logger
	unsubscribe func()
}

// NewHub creates a new WebSocket hub connected to an event bus.
func NewHub(bus *events.Bus, opts Options) *Hub {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	if opts.Run == nil {
		opts.Run = func(_ context.Context, fn func()) error {
			fn()
			return nil
		}
	}
	h := &Hub{
		clients: make(map[*Client]struct{}),
		bus:     bus,
		opts:    opts,
		log:     log,
	}

	// Subscribe to all events and bridge to WS clients
	h.unsubscribe = bus.Subscribe(func(e events.Event) {
		frame, err := NewEventFrame(string(e.Type), e.Seq, e.Payload)
		if err != nil {
			h.log.Error("marshal event frame", "error", err)
			return
		}
		data, err := MarshalFrame(frame)
		if err != nil {
			h.log.Error("marshal frame", "error", err)
			return
		}
		h.broadcast(data)
	})

	return h
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// broadcast sends data to all connected clients.
func (h *Hub) broadcast(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		c.enqueue(data)
	}
}

// register adds a client to the hub.
func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	h.log.Info("ws client connected", "client", c.id, "clients", n)
	if h.opts.OnClients != nil {
		h.opts.OnClients(n)
	}
}

// unregister removes a client from the hub.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()

	if !ok {
		return
	}
	h.log.Info("ws client disconnected", "client", c.id, "clients", n)
	if h.opts.OnClients != nil {
		h.opts.OnClients(n)
	}
}

// ServeWS handles a WebSocket upgrade and manages the client lifecycle.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow any origin for dev
	})
	if err != nil {
		h.log.Error("ws accept", "error", err)
		return
	}

	client := &Client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, 256),
		hub:  h,
	}

	ctx := events.ContextWithClientID(r.Context(), client.id)

	// The snapshot and the registration happen in one step on the
	// component's thread, so no event falls between them.
	err = h.opts.Run(ctx, func() {
		if h.opts.Snapshot != nil {
			frame, ferr := NewStateFrame(h.opts.Snapshot())
			if ferr == nil {
				client.sendFrame(frame)
			}
		}
		h.register(client)
	})
	if err != nil {
		h.log.Warn("ws attach", "client", client.id, "error", err)
		conn.Close(websocket.StatusInternalError, "studio unavailable")
		return
	}

	go client.writePump(ctx)
	client.readPump(ctx)
}

// readPump reads frames from the WS connection and dispatches them.
func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				c.hub.log.Debug("ws read closed", "client", c.id, "status", websocket.CloseStatus(err))
			} else {
				c.hub.log.Debug("ws read error", "client", c.id, "error", err)
			}
			return
		}

		frame, err := UnmarshalFrame(data)
		if err != nil {
			c.hub.log.Error("ws unmarshal frame", "client", c.id, "error", err)
			continue
		}

		c.handleFrame(ctx, frame)
	}
}

// handleFrame processes an incoming WS frame.
func (c *Client) handleFrame(ctx context.Context, frame Frame) {
	switch frame.Type {
	case FrameTypeRequest:
		c.handleRequest(ctx, frame)
	default:
		c.hub.log.Debug("ws unknown frame type", "type", frame.Type)
	}
}

// handleRequest runs the request on the component's thread and replies.
func (c *Client) handleRequest(ctx context.Context, frame Frame) {
	if c.hub.opts.Handler == nil {
		c.sendError(frame.ID, ErrUnknownMethod.Error()+": "+frame.Method)
		return
	}

	var (
		result any
		herr   error
	)
	err := c.hub.opts.Run(ctx, func() {
		result, herr = c.hub.opts.Handler(ctx, Method(frame.Method), frame.Params)
	})
	if err == nil {
		err = herr
	}
	if err != nil {
		c.hub.log.Debug("ws request failed", "client", c.id, "method", frame.Method, "error", err)
		c.sendError(frame.ID, err.Error())
		return
	}
	if result == nil {
		result = map[string]string{"status": "ok"}
	}
	c.sendOK(frame.ID, result)
}

// writePump writes queued messages to the WS connection.
func (c *Client) writePump(ctx context.Context) {
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// enqueue drops data when the client is too slow.
func (c *Client) enqueue(data []byte) {
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) sendFrame(f Frame) {
	data, err := MarshalFrame(f)
	if err != nil {
		return
	}
	c.enqueue(data)
}

func (c *Client) sendOK(id string, payload any) {
	f, err := NewResponseFrame(id, true, payload, "")
	if err != nil {
		return
	}
	c.sendFrame(f)
}

func (c *Client) sendError(id string, errMsg string) {
	f, err := NewResponseFrame(id, false, nil, errMsg)
	if err != nil {
		return
	}
	c.sendFrame(f)
}

// Close shuts down the hub and all client connections.
func (h *Hub) Close() {
	if h.unsubscribe != nil {
		h.unsubscribe()
	}
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.conn.Close(websocket.StatusGoingAway, "server shutdown")
	}
}
