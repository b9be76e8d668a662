// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// catalogCommand handles Spotify catalog operations
func catalogCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "catalog",
		Aliases: []string{"cat"},
		Usage:   "Spotify catalog operations",
		Commands: []*cli.Command{
			{
				Name:  "search",
				Usage: "Search for playlists matching a query",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Search query",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of playlists to return",
						Value: int64(r.config.Dataset.SearchLimit),
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CatalogSearch,
			},
			{
				Name:  "fetch",
				Usage: "Fetch tracks of the first playlist matching a query",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Search query",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Search page size",
						Value: int64(r.config.Dataset.SearchLimit),
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (stdout when omitted)",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format: csv, markdown, txt",
						Value: "csv",
					},
				},
				Action: r.CatalogFetch,
			},
		},
	}
}

// datasetCommand handles the cleaning and labeling pipeline
func datasetCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "dataset",
		Aliases: []string{"ds"},
		Usage:   "Dataset cleaning and labeling",
		Commands: []*cli.Command{
			{
				Name:  "prepare",
				Usage: "Load, clean, and label a track CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Input CSV path",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "threshold",
						Usage: "Popularity cutoff for hits (strictly greater than)",
					},
					&cli.StringFlag{
						Name:  "id-column",
						Usage: "Identity column used for deduplication",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the labeled table to this CSV path",
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Persist the run as a snapshot in the database",
					},
				},
				Action: r.DatasetPrepare,
			},
		},
	}
}

// snapshotsCommand lists persisted pipeline runs
func snapshotsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "snapshots",
		Usage: "List persisted dataset snapshots",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of snapshots to list",
				Value: 20,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Snapshots,
	}
}
