package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/nborders/grove/internal"
	pkgconfig "github.com/nborders/grove/pkg/config"
)

func run(ctx context.Context, cmd *cli.Command) error {
	cfg := internal.NewDefaultConfig()

	if configPath := cmd.String("config"); configPath != "" {
		if err := pkgconfig.Load(configPath, cfg); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Flags override the config file; validation runs after overrides.
	if v := cmd.String("source"); v != "" {
		cfg.Source.Path = v
	}
	if v := cmd.String("out"); v != "" {
		cfg.Output.Path = v
	}
	if cmd.IsSet("workers") {
		cfg.App.Workers = int(cmd.Int("workers"))
	}
	if cmd.Bool("watch") {
		cfg.App.Watch = true
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:   "grove",
		Usage:  "Convert an outliner graph snapshot into a Logseq-compatible Markdown vault",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Sources: cli.EnvVars("GROVE_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Usage:   "Path to the graph snapshot (.db, .sqlite, .sqlite3 or .json)",
				Sources: cli.EnvVars("GROVE_SOURCE"),
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output vault root directory",
				Sources: cli.EnvVars("GROVE_OUT"),
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of pages exported concurrently",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Keep running and re-export when the snapshot changes",
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
