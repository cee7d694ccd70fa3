package tui

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/graphybook/studio/internal/clock"
	"github.com/graphybook/studio/internal/demo"
	"github.com/graphybook/studio/internal/media"
)

var testEpoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func instantScript(sc demo.Script) demo.Script {
	sc.Steps = nil
	return sc
}

func newTestApp(t *testing.T) (*App, *clock.Fake) {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "derivatives.mov"), []byte("clip"), 0o644); err != nil {
		t.Fatal(err)
	}

	clk := clock.NewFake(testEpoch)
	app, err := NewApp(Options{
		Demo: demo.Options{
			Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
			TypingDelay: demo.FixedDelay(time.Millisecond),
			Generate:    instantScript(demo.GenerateScript()),
			Execute:     instantScript(demo.ExecuteScript()),
		},
		Clock:       clk,
		Library:     media.NewLibrary(root),
		DownloadDir: t.TempDir(),
		ClipLength:  2 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return app, clk
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewApp_RequiresClock(t *testing.T) {
	if _, err := NewApp(Options{}); !errors.Is(err, demo.ErrNoClock) {
		t.Errorf("expected ErrNoClock, got %v", err)
	}
}

func TestApp_InitialView(t *testing.T) {
	app, _ := newTestApp(t)

	if app.mode != demo.ModePrompt {
		t.Errorf("expected prompt mode, got %q", app.mode)
	}
	if !strings.HasPrefix(app.status.Message, "🚀 GraphyBOOK Demo Ready") {
		t.Errorf("unexpected status %q", app.status.Message)
	}
	out := app.View()
	if !strings.Contains(out, "Your animation will appear here") {
		t.Error("expected media placeholder in view")
	}
	if !strings.Contains(out, "GraphyBOOK") {
		t.Error("expected title in view")
	}
}

func TestApp_TypingEnablesGenerate(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(keyRunes("a"))

	if got := app.ctrl.Snapshot().Prompt; got != "a" {
		t.Errorf("expected controller prompt %q, got %q", "a", got)
	}
	if !app.triggers[demo.TriggerGenerate] {
		t.Error("expected generate enabled after typing")
	}
}

func TestApp_TabSwitchesMode(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	if app.mode != demo.ModeCode {
		t.Fatalf("expected code mode, got %q", app.mode)
	}
	if app.status.Message != "Ready for code execution" {
		t.Errorf("unexpected status %q", app.status.Message)
	}

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	if app.mode != demo.ModePrompt {
		t.Errorf("expected prompt mode again, got %q", app.mode)
	}
}

func TestApp_AutoplayPlaysAndAdvances(t *testing.T) {
	app, clk := newTestApp(t)
	app.Init()
	steps := app.ctrl.Steps()

	for i := 0; i < 10000 && app.media == nil; i++ {
		if !clk.Step() {
			t.Fatal("clock ran dry before the first clip")
		}
	}
	if app.media == nil {
		t.Fatal("expected first clip revealed")
	}
	if got := app.prompt.Value(); got != steps[0].Text {
		t.Errorf("expected typed prompt %q, got %q", steps[0].Text, got)
	}
	if !app.player.Playing() {
		t.Fatal("expected player running")
	}

	// Clip ends, then the resume delay, then the next step clears the prompt.
	clk.Advance(2 * time.Second)
	if app.player.Playing() {
		t.Error("expected clip finished")
	}
	clk.Advance(demo.DefaultTiming().ResumeDelay)
	if app.media != nil {
		t.Error("expected media hidden while the next prompt types")
	}
	if cur := app.ctrl.Snapshot().Cursor; cur != 1 {
		t.Errorf("expected cursor 1, got %d", cur)
	}
}

func TestApp_GenerateStopsAutoplay(t *testing.T) {
	app, clk := newTestApp(t)
	app.Init()
	clk.Advance(demo.DefaultTiming().StartDelay + demo.DefaultTiming().StartingPause + 5*time.Millisecond)

	if !app.ctrl.Snapshot().Typing {
		t.Fatal("expected autoplay typing")
	}
	app.Update(tea.KeyMsg{Type: tea.KeyCtrlG})

	st := app.ctrl.Snapshot()
	if st.Autoplaying {
		t.Error("expected autoplay stopped")
	}
	if app.media == nil || app.media.Ref != demo.GenerateFallback {
		t.Errorf("expected generate fallback clip, got %+v", app.media)
	}
	if app.percent != 100 {
		t.Errorf("expected progress 100, got %d", app.percent)
	}
}

func TestApp_DownloadNothingLoaded(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if cmd != nil {
		t.Error("expected no export command")
	}
	if app.notice != "Nothing to download yet" {
		t.Errorf("unexpected notice %q", app.notice)
	}
}

func TestApp_DownloadExportsClip(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(keyRunes("x"))
	app.Update(tea.KeyMsg{Type: tea.KeyCtrlG})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if cmd == nil {
		t.Fatal("expected an export command")
	}
	msg := cmd()
	app.Update(msg)

	want := filepath.Join(app.downloadDir, demo.DownloadFilename)
	if app.noticeErr || app.notice != "Saved "+want {
		t.Errorf("unexpected notice %q", app.notice)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected exported file: %v", err)
	}
}

func TestApp_FullscreenAndHelp(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	if app.fullscreen {
		t.Error("fullscreen must stay off without a clip")
	}

	app.Update(keyRunes("x"))
	app.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	app.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	if !app.fullscreen {
		t.Fatal("expected fullscreen on")
	}
	if !strings.Contains(app.View(), "derivatives.mov") {
		t.Error("expected clip name in fullscreen view")
	}
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if app.fullscreen {
		t.Error("expected esc to leave fullscreen")
	}

	app.Update(tea.KeyMsg{Type: tea.KeyF1})
	if !app.showHelp {
		t.Fatal("expected help shown")
	}
	// Keys go to the overlay, not the prompt.
	app.Update(keyRunes("z"))
	if got := app.ctrl.Snapshot().Prompt; got != "x" {
		t.Errorf("expected prompt untouched under help, got %q", got)
	}
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if app.showHelp {
		t.Error("expected esc to close help")
	}
}

func TestApp_Quit(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
