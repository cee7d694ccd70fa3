package gateway

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/graphybook/studio/internal/events"
	"github.com/graphybook/studio/internal/gateway/ws"
	"github.com/graphybook/studio/internal/media"
)

//go:embed web
var webFS embed.FS

// ServerOptions configures the web studio server.
type ServerOptions struct {
	Host    string
	Port    int
	Bus     *events.Bus
	Studio  *Studio
	Library *media.Library
	Metrics *Metrics
	// MediaRefs are the clips the demo needs; /api/assets reports missing ones.
	MediaRefs []string
	Logger    *slog.Logger
}

// Server is the web studio HTTP server.
type Server struct {
	httpServer *http.Server
	hub        *ws.Hub
	bus        *events.Bus
	studio     *Studio
	library    *media.Library
	refs       []string
	log        *slog.Logger
}

// NewServer creates a new web studio server.
func NewServer(opts ServerOptions) *Server {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}

	hubOpts := opts.Studio.HubOptions()
	hubOpts.OnClients = metrics.SetClients
	hub := ws.NewHub(opts.Bus, hubOpts)

	s := &Server{
		hub:     hub,
		bus:     opts.Bus,
		studio:  opts.Studio,
		library: opts.Library,
		refs:    opts.MediaRefs,
		log:     log,
	}

	site, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	// Routes
	r.Get("/", s.handleIndex(site))
	r.Handle("/static/*", http.FileServer(http.FS(site)))
	r.Handle(media.RoutePrefix+"*", http.StripPrefix(media.RoutePrefix, http.FileServer(http.FS(opts.Library.FS()))))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/state", s.handleState)
		r.Get("/events", s.handleEvents)
		r.Get("/assets", s.handleAssets)
		r.Get("/download", s.handleDownload)
		r.Get("/ws", hub.ServeWS)
	})
	r.Handle("/metrics", metrics.Handler())

	s.httpServer = &http.Server{
		Addr:              net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port)),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening. It blocks until the server is stopped.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	s.log.Info("GraphyBOOK studio listening", "url", "http://"+ln.Addr().String()+"/")
	if err := s.httpServer.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleIndex(site fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := fs.ReadFile(site, "index.html")
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"status": "ok", "clients": s.hub.Clients()})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	st, err := s.studio.Snapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, st)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limitStr := r.URL.Query().Get("limit")
	limit := 50
	if limitStr != "" {
		fmt.Sscanf(limitStr, "%d", &limit)
	}

	history := s.bus.History(limit)

	// Format timestamps nicely
	type eventJSON struct {
		ID        string             `json:"id"`
		Seq       uint64             `json:"seq"`
		Type      string             `json:"type"`
		Timestamp string             `json:"timestamp"`
		Source    events.EventSource `json:"source"`
		Payload   map[string]any     `json:"payload"`
	}

	result := make([]eventJSON, len(history))
	for i, e := range history {
		result[i] = eventJSON{
			ID:        e.ID,
			Seq:       e.Seq,
			Type:      string(e.Type),
			Timestamp: e.Timestamp.Format(time.RFC3339Nano),
			Source:    e.Source,
			Payload:   e.Payload,
		}
	}

	writeJSON(w, result)
}

type assetsResponse struct {
	Root    string   `json:"root"`
	Clips   []string `json:"clips"`
	Missing []string `json:"missing"`
}

func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	clips, err := s.library.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, assetsResponse{
		Root:    s.library.Root(),
		Clips:   clips,
		Missing: s.library.Missing(s.refs),
	})
}

// handleDownload serves the loaded clip as an attachment.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	req, ok, err := s.studio.Download(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if !ok {
		http.Error(w, "no clip loaded", http.StatusNotFound)
		return
	}

	path, err := s.library.Resolve(req.Ref)
	if err != nil {
		status := http.StatusNotFound
		if errors.Is(err, media.ErrOutsideLibrary) {
			status = http.StatusForbidden
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", req.Filename))
	http.ServeFile(w, r, path)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
