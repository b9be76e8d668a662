package main

import (
	"context"
	"os"

	"github.com/avelinek/hitset/internal/shared"
	"github.com/avelinek/hitset/internal/ui"
	"github.com/urfave/cli/v3"
)

// setupCommand bootstraps a local working directory
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create a starter config file and initialize the snapshot database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path for the generated config file",
				Value: "config.toml",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing config file with the current settings",
			},
		},
		Action: r.Setup,
	}
}

// Setup writes the config file and runs database migrations. A fresh file
// starts from the embedded example; with --force an existing file is
// replaced with the runner's effective configuration.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")

	if _, err := os.Stat(path); err == nil && !cmd.Bool("force") {
		r.logger.Warn("config file already exists, skipping", "path", path)
	} else {
		if err == nil {
			err = shared.SaveConfig(path, r.config)
		} else {
			err = shared.CreateConfigFile(path)
		}
		if err != nil {
			return err
		}
		if err := r.writePlainln("%s", ui.Styles.OK("✓ Wrote "+path)); err != nil {
			return err
		}
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := r.writePlainln("%s", ui.Styles.OK("✓ Database ready: "+r.config.Database.Path)); err != nil {
		return err
	}
	return r.writePlain("%s\n", ui.Styles.Help("Set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET or edit "+path))
}
