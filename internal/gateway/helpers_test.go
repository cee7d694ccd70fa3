package gateway

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/graphybook/studio/internal/clock"
	"github.com/graphybook/studio/internal/demo"
	"github.com/graphybook/studio/internal/events"
	"github.com/graphybook/studio/internal/media"
)

type testEnv struct {
	bus     *events.Bus
	loop    *clock.Loop
	lib     *media.Library
	ctrl    *demo.Controller
	studio  *Studio
	metrics *Metrics
	srv     *Server
	ctx     context.Context
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// instantExecute finishes as soon as it starts.
func instantExecute() demo.Script {
	sc := demo.ExecuteScript()
	sc.Steps = nil
	return sc
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	root := t.TempDir()
	for _, name := range []string{"derivatives.mov", "linear_alzebra.mov"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("clip:"+name), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	env := &testEnv{
		bus:     events.NewBus(256),
		loop:    clock.NewLoop(64),
		lib:     media.NewLibrary(root),
		metrics: NewMetrics(),
		ctx:     ctx,
	}
	go env.loop.Run(ctx)

	proj := NewProjector(env.bus, env.lib.URL, discardLogger)
	err := env.loop.Call(ctx, func() {
		var err error
		env.ctrl, err = demo.New(demo.Options{
			View:        proj,
			Player:      proj,
			Clock:       env.loop,
			Observer:    env.metrics,
			Logger:      discardLogger,
			TypingDelay: demo.FixedDelay(time.Millisecond),
			Execute:     instantExecute(),
		})
		if err != nil {
			t.Errorf("demo.New: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("loop call: %v", err)
	}

	env.studio = NewStudio(env.ctrl, env.loop, env.lib.URL, discardLogger)
	env.srv = NewServer(ServerOptions{
		Host:      "127.0.0.1",
		Port:      0,
		Bus:       env.bus,
		Studio:    env.studio,
		Library:   env.lib,
		Metrics:   env.metrics,
		MediaRefs: []string{"vids/derivatives.mov", "vids/quantum_wave_function.mov"},
		Logger:    discardLogger,
	})
	t.Cleanup(func() { env.srv.hub.Close() })
	return env
}

// on runs fn on the controller's loop.
func (e *testEnv) on(t *testing.T, fn func()) {
	t.Helper()
	if err := e.loop.Call(e.ctx, fn); err != nil {
		t.Fatalf("loop call: %v", err)
	}
}
