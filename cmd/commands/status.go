package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	wsclient "github.com/graphybook/studio/clients/ws"
	"github.com/graphybook/studio/internal/config"
	"github.com/graphybook/studio/internal/gateway"
	wsprotocol "github.com/graphybook/studio/internal/gateway/ws"
	"github.com/graphybook/studio/internal/heartbeat"
)

// NewStatusCommand returns the status subcommand.
func NewStatusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show the state of a running web studio",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "url",
				Usage: "Studio WebSocket URL (default: discovered from the heartbeat file)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Connection timeout",
				Value: 5 * time.Second,
			},
		},
		Action: runStatus,
	}
}

func runStatus(ctx context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer
	target := cmd.String("url")
	if target == "" {
		status, beat, err := heartbeat.Check(config.HeartbeatPath(), 2*heartbeat.DefaultInterval)
		if err != nil {
			return fmt.Errorf("check heartbeat: %w", err)
		}
		switch status {
		case heartbeat.StatusDead:
			fmt.Fprintln(w, "Studio: NOT RUNNING")
			return nil
		case heartbeat.StatusStale:
			fmt.Fprintf(w, "Studio: STALE (PID %d, last heartbeat %s ago)\n",
				beat.PID, time.Since(beat.Timestamp).Truncate(time.Second))
			return nil
		}
		fmt.Fprintf(w, "Studio: ALIVE (PID %d, uptime %s) at %s\n", beat.PID, beat.Uptime, beat.URL)
		if target, err = socketURL(beat.URL); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
	defer cancel()

	client, err := wsclient.Dial(ctx, target)
	if err != nil {
		return fmt.Errorf("connect to studio: %w", err)
	}
	defer client.Close()

	// The hub greets every connection with a state frame.
	frame, err := client.ReadFrame()
	if err != nil {
		return fmt.Errorf("read state: %w", err)
	}
	if frame.Type != wsprotocol.FrameTypeState {
		return fmt.Errorf("expected state frame, got %q", frame.Type)
	}
	var st gateway.ClientState
	if err := json.Unmarshal(frame.Payload, &st); err != nil {
		return fmt.Errorf("decode state: %w", err)
	}
	printState(w, st)
	return nil
}

// socketURL turns the advertised page URL into its /api/ws endpoint.
func socketURL(page string) (string, error) {
	u, err := url.Parse(page)
	if err != nil {
		return "", fmt.Errorf("parse studio url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/api/ws"
	return u.String(), nil
}

func printState(w io.Writer, st gateway.ClientState) {
	fmt.Fprintf(w, "Mode:      %s\n", st.Mode)
	fmt.Fprintf(w, "Status:    [%s] %s\n", st.Status.Severity, st.Status.Message)
	fmt.Fprintf(w, "Progress:  %d%%\n", st.Progress)

	switch {
	case st.Processing:
		fmt.Fprintln(w, "Activity:  processing")
	case st.Typing:
		fmt.Fprintf(w, "Activity:  typing step %d\n", st.Cursor+1)
	case st.Autoplaying:
		fmt.Fprintf(w, "Activity:  autoplay, next step %d\n", st.Cursor+1)
	default:
		fmt.Fprintln(w, "Activity:  idle")
	}

	if st.Media != nil {
		fmt.Fprintf(w, "Media:     %s (%s)\n", st.Media.Ref, st.MediaURL)
	} else {
		fmt.Fprintln(w, "Media:     none")
	}

	triggers := make([]string, 0, len(st.Triggers))
	for t, on := range st.Triggers {
		state := "off"
		if on {
			state = "on"
		}
		triggers = append(triggers, string(t)+"="+state)
	}
	slices.Sort(triggers)
	fmt.Fprintf(w, "Triggers:  %s\n", strings.Join(triggers, " "))
	if st.Fullscreen {
		fmt.Fprintln(w, "Fullscreen: on")
	}
}
