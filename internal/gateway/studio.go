package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/graphybook/studio/internal/demo"
	"github.com/graphybook/studio/internal/events"
	"github.com/graphybook/studio/internal/gateway/ws"
)

var ErrInvalidParams = errors.New("invalid params")

// Runner executes fn on the controller's logical thread and waits for it.
// *clock.Loop implements it.
type Runner interface {
	Call(ctx context.Context, fn func()) error
}

// Studio serializes front end requests onto the controller.
type Studio struct {
	ctrl *demo.Controller
	run  Runner
	url  func(ref string) string
	log  *slog.Logger
}

// NewStudio binds a controller to the runner that owns it. url maps media
// refs to browser paths, as for NewProjector.
func NewStudio(ctrl *demo.Controller, run Runner, url func(ref string) string, log *slog.Logger) *Studio {
	if url == nil {
		url = func(ref string) string { return ref }
	}
	if log == nil {
		log = slog.Default()
	}
	return &Studio{ctrl: ctrl, run: run, url: url, log: log}
}

// ClientState is the snapshot sent to a connecting browser.
type ClientState struct {
	demo.State
	MediaURL string `json:"media_url,omitempty"`
}

func (s *Studio) clientState() ClientState {
	st := ClientState{State: s.ctrl.Snapshot()}
	if st.Media != nil {
		st.MediaURL = s.url(st.Media.Ref)
	}
	return st
}

// Snapshot reads the controller state on its thread.
func (s *Studio) Snapshot(ctx context.Context) (demo.State, error) {
	var st demo.State
	err := s.run.Call(ctx, func() { st = s.ctrl.Snapshot() })
	return st, err
}

// Download returns the save-as request for the loaded clip.
func (s *Studio) Download(ctx context.Context) (demo.DownloadRequest, bool, error) {
	var (
		req demo.DownloadRequest
		ok  bool
	)
	err := s.run.Call(ctx, func() { req, ok = s.ctrl.Download() })
	return req, ok, err
}

// HubOptions wires a ws.Hub to this studio.
func (s *Studio) HubOptions() ws.Options {
	return ws.Options{
		Run:      s.run.Call,
		Snapshot: func() any { return s.clientState() },
		Handler:  s.handle,
		Logger:   s.log,
	}
}

type switchModeParams struct {
	Mode string `json:"mode"`
}

type setFieldParams struct {
	Field string `json:"field"`
	Text  string `json:"text"`
}

type playbackFailedParams struct {
	Reason string `json:"reason"`
}

// handle runs on the controller's thread.
func (s *Studio) handle(ctx context.Context, method ws.Method, params json.RawMessage) (any, error) {
	s.log.Debug("studio request", "client", events.ClientIDFromContext(ctx), "method", method)

	switch method {
	case ws.MethodSwitchMode:
		var p switchModeParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		mode, err := demo.ParseMode(p.Mode)
		if err != nil {
			return nil, fmt.Errorf("%w: mode %q", err, p.Mode)
		}
		return nil, s.ctrl.SwitchMode(mode)

	case ws.MethodSetField:
		var p setFieldParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		switch demo.Field(p.Field) {
		case demo.FieldPrompt:
			s.ctrl.SetPromptText(p.Text)
		case demo.FieldCode:
			s.ctrl.SetCodeText(p.Text)
		default:
			return nil, fmt.Errorf("%w: unknown field %q", ErrInvalidParams, p.Field)
		}
		return nil, nil

	case ws.MethodGenerate:
		s.ctrl.Generate()
		return nil, nil

	case ws.MethodExecute:
		s.ctrl.Execute()
		return nil, nil

	case ws.MethodMediaEnded:
		s.ctrl.MediaEnded()
		return nil, nil

	case ws.MethodPlaybackFailed:
		var p playbackFailedParams
		if len(params) > 0 {
			if err := decodeParams(params, &p); err != nil {
				return nil, err
			}
		}
		if p.Reason == "" {
			p.Reason = "playback refused"
		}
		s.ctrl.PlaybackFailed(p.Reason)
		return nil, nil

	case ws.MethodToggleFullscreen:
		s.ctrl.ToggleFullscreen()
		return nil, nil

	case ws.MethodState:
		return s.clientState(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ws.ErrUnknownMethod, method)
	}
}

func decodeParams(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: missing params", ErrInvalidParams)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}
