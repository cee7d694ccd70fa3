package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/graphybook/studio/clients/tui"
	"github.com/graphybook/studio/internal/media"
)

var ErrNotTerminal = errors.New("tui requires an interactive terminal")

// NewTUICommand returns the tui subcommand.
func NewTUICommand() *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Run the studio in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "assets",
				Usage: "Media library directory",
			},
		},
		Action: runTUI,
	}
}

func runTUI(ctx context.Context, cmd *cli.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.IsSet("assets") {
		cfg.Studio.MediaDir = cmd.String("assets")
	}

	// The TUI owns the terminal, so logs go to a file.
	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	log := newLogger(cmd, cfg, f)

	opts := demoOptions(cfg)
	opts.Logger = log
	lib := media.NewLibrary(cfg.Studio.MediaDir)
	if missing := lib.Missing(mediaRefs(opts)); len(missing) > 0 {
		log.Warn("demo media missing from library", "root", lib.Root(), "missing", missing)
	}

	return tui.Run(ctx, tui.Options{
		Demo:        opts,
		Library:     lib,
		DownloadDir: cfg.Studio.DownloadDir,
		ClipLength:  cfg.Player.ClipLength.Duration(),
	})
}
