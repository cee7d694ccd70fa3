package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/graphybook/studio/internal/media"
)

// NewAssetsCommand returns the assets subcommand.
func NewAssetsCommand() *cli.Command {
	return &cli.Command{
		Name:  "assets",
		Usage: "List the media library and the demo clips it lacks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "assets",
				Usage: "Media library directory",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.IsSet("assets") {
				cfg.Studio.MediaDir = cmd.String("assets")
			}
			return printAssets(cmd.Root().Writer, media.NewLibrary(cfg.Studio.MediaDir), mediaRefs(demoOptions(cfg)))
		},
	}
}

func printAssets(w io.Writer, lib *media.Library, refs []string) error {
	clips, err := lib.List()
	if err != nil {
		return fmt.Errorf("list media: %w", err)
	}

	fmt.Fprintf(w, "Library: %s\n", lib.Root())
	if len(clips) == 0 {
		fmt.Fprintln(w, "  (no clips)")
	}
	for _, c := range clips {
		fmt.Fprintf(w, "  %s\n", c)
	}

	missing := lib.Missing(refs)
	if len(missing) == 0 {
		fmt.Fprintf(w, "All %d demo clips present.\n", len(refs))
		return nil
	}
	fmt.Fprintf(w, "Missing %d of %d demo clips:\n", len(missing), len(refs))
	for _, m := range missing {
		fmt.Fprintf(w, "  %s\n", m)
	}
	return nil
}
