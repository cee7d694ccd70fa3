// Package heartbeat advertises a running web studio through a small JSON
// file, so other commands can find it without a fixed port.
package heartbeat

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultInterval is how often a Writer refreshes its file.
const DefaultInterval = 30 * time.Second

// Status is the liveness of the studio that wrote a beat.
type Status string

const (
	StatusAlive Status = "alive"
	StatusStale Status = "stale"
	StatusDead  Status = "dead"
)

// Beat is the content of the heartbeat file.
type Beat struct {
	PID       int       `json:"pid"`
	URL       string    `json:"url"`
	StartedAt time.Time `json:"started_at"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
}

// Writer keeps the heartbeat file fresh while a studio serves.
type Writer struct {
	path     string
	url      string
	interval time.Duration
	started  time.Time
}

// NewWriter returns a writer for the studio reachable at url. A zero
// interval means DefaultInterval.
func NewWriter(path, url string, interval time.Duration) *Writer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Writer{path: path, url: url, interval: interval}
}

// Run writes a beat immediately and then every interval until ctx is done.
// The file is removed on return.
func (w *Writer) Run(ctx context.Context) error {
	w.started = time.Now()
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("create heartbeat dir: %w", err)
	}
	if err := w.write(); err != nil {
		return err
	}
	defer os.Remove(w.path)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := w.write(); err != nil {
				return err
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func (w *Writer) write() error {
	now := time.Now()
	data, err := json.MarshalIndent(Beat{
		PID:       os.Getpid(),
		URL:       w.url,
		StartedAt: w.started,
		Timestamp: now,
		Uptime:    now.Sub(w.started).Truncate(time.Second).String(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal heartbeat: %w", err)
	}

	// tmp + rename so readers never see a partial file
	tmp := w.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write heartbeat: %w", err)
	}
	return os.Rename(tmp, w.path)
}

// Check reads a heartbeat file. A beat older than maxAge is stale; a
// missing file means no studio is running.
func Check(path string, maxAge time.Duration) (Status, *Beat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return StatusDead, nil, nil
		}
		return StatusDead, nil, fmt.Errorf("read heartbeat: %w", err)
	}

	var b Beat
	if err := json.Unmarshal(data, &b); err != nil {
		return StatusDead, nil, fmt.Errorf("unmarshal heartbeat: %w", err)
	}
	if time.Since(b.Timestamp) > maxAge {
		return StatusStale, &b, nil
	}
	return StatusAlive, &b, nil
}
