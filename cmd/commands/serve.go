package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/graphybook/studio/internal/clock"
	"github.com/graphybook/studio/internal/config"
	"github.com/graphybook/studio/internal/demo"
	"github.com/graphybook/studio/internal/events"
	"github.com/graphybook/studio/internal/gateway"
	"github.com/graphybook/studio/internal/heartbeat"
	"github.com/graphybook/studio/internal/media"
	"github.com/graphybook/studio/internal/storage"
)

const loopQueueSize = 256

// NewServeCommand returns the serve subcommand.
func NewServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web studio",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to listen on",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on",
			},
			&cli.StringFlag{
				Name:  "assets",
				Usage: "Media library directory",
			},
			&cli.StringFlag{
				Name:  "record",
				Usage: "Append every studio event to this JSONL file",
			},
		},
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// CLI flags override config
	if cmd.IsSet("host") {
		cfg.Studio.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Studio.Port = cmd.Int("port")
	}
	if cmd.IsSet("assets") {
		cfg.Studio.MediaDir = cmd.String("assets")
	}

	log := newLogger(cmd, cfg, os.Stderr)
	lib := media.NewLibrary(cfg.Studio.MediaDir)
	opts := demoOptions(cfg)
	refs := mediaRefs(opts)
	if missing := lib.Missing(refs); len(missing) > 0 {
		log.Warn("demo media missing from library", "root", lib.Root(), "missing", missing)
	}

	bus := events.NewBus(cfg.Events.BufferSize)
	defer bus.Close()

	var rec *storage.Recorder
	if path := cmd.String("record"); path != "" {
		// Subscribed before the controller exists, so the first status is kept.
		rec = storage.NewRecorder(path, bus)
	}

	loop := clock.NewLoop(loopQueueSize)
	metrics := gateway.NewMetrics()
	proj := gateway.NewProjector(bus, lib.URL, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := loop.Run(gctx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	if rec != nil {
		g.Go(func() error { return rec.Run(gctx) })
	}

	// The controller lives on the loop from construction on.
	opts.View = proj
	opts.Player = proj
	opts.Clock = loop
	opts.Observer = metrics
	opts.Logger = log
	var ctrl *demo.Controller
	var newErr error
	if err := loop.Call(gctx, func() {
		ctrl, newErr = demo.New(opts)
		if newErr == nil {
			ctrl.Start()
		}
	}); err != nil {
		return fmt.Errorf("start controller: %w", err)
	}
	if newErr != nil {
		loop.Close()
		return fmt.Errorf("init demo: %w", newErr)
	}

	server := gateway.NewServer(gateway.ServerOptions{
		Host:      cfg.Studio.Host,
		Port:      cfg.Studio.Port,
		Bus:       bus,
		Studio:    gateway.NewStudio(ctrl, loop, lib.URL, log),
		Library:   lib,
		Metrics:   metrics,
		MediaRefs: refs,
		Logger:    log,
	})
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	url := "http://" + net.JoinHostPort(cfg.Studio.Host, strconv.Itoa(cfg.Studio.Port)) + "/"
	hb := heartbeat.NewWriter(config.HeartbeatPath(), url, 0)
	g.Go(func() error {
		if err := hb.Run(gctx); err != nil {
			// Discovery is optional; the studio keeps serving.
			log.Warn("heartbeat stopped", "error", err)
		}
		return nil
	})

	return g.Wait()
}
