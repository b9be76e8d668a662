package main

import (
	"context"
	"fmt"
	"os"

	"github.com/avelinek/hitset/internal/formatter"
	"github.com/avelinek/hitset/internal/shared"
	"github.com/avelinek/hitset/internal/ui"
	"github.com/urfave/cli/v3"
)

// CatalogSearch searches the catalog for playlists and prints the usable results.
func (r *Runner) CatalogSearch(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil {
		return fmt.Errorf("%w: catalog service not configured, set Spotify credentials", shared.ErrServiceUnavailable)
	}

	query := cmd.String("query")
	limit := cmd.Int("limit")

	if err := r.catalog.Authenticate(ctx); err != nil {
		return err
	}
	r.logger.Info("connected to the catalog API", "service", r.catalog.Name())

	playlists, err := r.catalog.SearchPlaylists(ctx, query, int(limit))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, true)
	}

	if err := r.writePlain("%s\n", ui.Styles.Title(fmt.Sprintf("Playlists matching %q", query))); err != nil {
		return err
	}
	for i, playlist := range playlists {
		if err := r.writePlain("%d. %s %s\n", i+1, playlist.Name, ui.Styles.Help(playlist.ID)); err != nil {
			return err
		}
	}

	return nil
}

// CatalogFetch runs the harvest flow and exports the resulting track table.
func (r *Runner) CatalogFetch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.String("query")
	limit := cmd.Int("limit")
	output := cmd.String("output")
	format := cmd.String("format")

	progress, stop := r.logProgress()
	result, err := r.engine.Harvest(ctx, progress, query, int(limit))
	stop()
	if err != nil {
		return err
	}

	r.logger.Info("collected track data",
		"playlist", result.Playlist.Name,
		"tracks", len(result.Records))

	var data []byte
	switch format {
	case "csv":
		data, err = formatter.ExportToCSV(result.Table)
	case "markdown", "md":
		data, err = formatter.ExportToMarkdown(result.Playlist, result.Table)
	case "txt", "text":
		data, err = formatter.ExportToText(result.Playlist, result.Table)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidInput, format)
	}
	if err != nil {
		return err
	}

	if output == "" {
		return r.writePlain("%s", string(data))
	}

	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	r.writePlainln("%s", ui.Styles.OK(fmt.Sprintf("✓ Exported %d tracks to %s", len(result.Records), output)))
	return nil
}
