// Package storage persists studio sessions on disk.
package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/graphybook/studio/internal/events"
)

const recorderBuffer = 4096

// Recorder appends every bus event to a JSONL file, one event per line.
type Recorder struct {
	path        string
	events      <-chan events.Event
	unsubscribe func()
}

// NewRecorder subscribes to bus immediately, so events published before
// Run starts are kept. Events beyond the buffer are dropped.
func NewRecorder(path string, bus *events.Bus) *Recorder {
	ch, unsub := bus.SubscribeChan(recorderBuffer)
	return &Recorder{path: path, events: ch, unsubscribe: unsub}
}

// Run writes events until ctx is done, then drains what is queued and
// closes the file.
func (r *Recorder) Run(ctx context.Context) error {
	defer r.unsubscribe()

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create recording dir: %w", err)
	}
	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	enc := json.NewEncoder(bw)
	for {
		select {
		case e := <-r.events:
			if err := enc.Encode(e); err != nil {
				return fmt.Errorf("write event: %w", err)
			}
			// Flush whenever the queue runs dry.
			if len(r.events) == 0 {
				if err := bw.Flush(); err != nil {
					return fmt.Errorf("flush recording: %w", err)
				}
			}
		case <-ctx.Done():
			return r.drain(enc, bw)
		}
	}
}

func (r *Recorder) drain(enc *json.Encoder, bw *bufio.Writer) error {
	for {
		select {
		case e := <-r.events:
			if err := enc.Encode(e); err != nil {
				return fmt.Errorf("write event: %w", err)
			}
		default:
			return bw.Flush()
		}
	}
}

// ReadRecording loads the events of a recording in file order.
func ReadRecording(path string) ([]events.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()

	var out []events.Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for line := 1; scanner.Scan(); line++ {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var e events.Event
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, e)
	}
	return out, scanner.Err()
}
