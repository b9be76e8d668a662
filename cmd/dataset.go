package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/avelinek/hitset/internal/formatter"
	"github.com/avelinek/hitset/internal/models"
	"github.com/avelinek/hitset/internal/repositories"
	"github.com/avelinek/hitset/internal/shared"
	"github.com/avelinek/hitset/internal/tasks"
	"github.com/avelinek/hitset/internal/ui"
	"github.com/urfave/cli/v3"
)

// DatasetPrepare loads, cleans, and labels a CSV dataset.
//
// A missing input file is reported and swallowed: the command logs the
// diagnostic and exits cleanly with no result, matching the library contract.
func (r *Runner) DatasetPrepare(ctx context.Context, cmd *cli.Command) error {
	opts := tasks.PrepareOpts{
		Path:      cmd.String("input"),
		IDColumn:  cmd.String("id-column"),
		Threshold: int(cmd.Int("threshold")),
	}
	if opts.IDColumn == "" {
		opts.IDColumn = r.config.Dataset.IDColumn
	}
	if opts.Threshold <= 0 {
		opts.Threshold = r.config.Dataset.HitThreshold
	}

	progress, stop := r.logProgress()
	result, err := r.engine.Prepare(ctx, progress, opts)
	stop()
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			r.logger.Error("dataset file not found", "err", err)
			return nil
		}
		return err
	}

	r.logger.Info("dataset loaded", "rows", result.Clean.RowsIn)
	r.logger.Info("dataset cleaned",
		"missing_dropped", result.Clean.MissingDropped,
		"index_column_dropped", result.Clean.DroppedIndexColumn,
		"duplicates_removed", result.Clean.DuplicatesRemoved,
		"rows", result.Clean.RowsOut)
	r.logger.Info("hits labeled",
		"threshold", result.Label.Threshold,
		"hits", result.Label.Hits,
		"non_hits", result.Label.NonHits)

	summaryErr := r.writePlain("%s", ui.Summary("Dataset summary", [][2]string{
		{"Input", opts.Path},
		{"Rows in", strconv.Itoa(result.Clean.RowsIn)},
		{"Missing dropped", strconv.Itoa(result.Clean.MissingDropped)},
		{"Duplicates removed", strconv.Itoa(result.Clean.DuplicatesRemoved)},
		{"Rows out", strconv.Itoa(result.Clean.RowsOut)},
		{"Hit threshold", "> " + strconv.Itoa(result.Label.Threshold)},
		{"Hits / non-hits", fmt.Sprintf("%d / %d", result.Label.Hits, result.Label.NonHits)},
	}))
	if summaryErr != nil {
		return summaryErr
	}

	if output := cmd.String("output"); output != "" {
		data, err := formatter.ExportToCSV(result.Table)
		if err != nil {
			return err
		}
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
		if err := r.writePlainln("%s", ui.Styles.OK("✓ Labeled table written to "+output)); err != nil {
			return err
		}
	}

	if cmd.Bool("save") {
		id, err := r.saveSnapshot(opts, result)
		if err != nil {
			return err
		}
		if err := r.writePlainln("%s", ui.Styles.OK("✓ Snapshot saved: "+id)); err != nil {
			return err
		}
	}

	return nil
}

// saveSnapshot persists a prepared table and its reports to the snapshot database.
func (r *Runner) saveSnapshot(opts tasks.PrepareOpts, result *tasks.PrepareResult) (string, error) {
	db, err := r.openDatabase()
	if err != nil {
		return "", err
	}
	defer db.Close()

	snapshot := &models.Snapshot{
		Source:            opts.Path,
		RowsIn:            result.Clean.RowsIn,
		RowsOut:           result.Clean.RowsOut,
		MissingDropped:    result.Clean.MissingDropped,
		DuplicatesRemoved: result.Clean.DuplicatesRemoved,
		HitThreshold:      result.Label.Threshold,
		Hits:              result.Label.Hits,
		NonHits:           result.Label.NonHits,
	}

	if err := repositories.NewSnapshotRepository(db).Create(snapshot); err != nil {
		return "", err
	}

	if err := repositories.NewLabeledTrackRepository(db).CreateFromTable(snapshot.ID, result.Table); err != nil {
		return "", err
	}

	return snapshot.ID, nil
}

// Snapshots lists persisted pipeline runs, newest first.
func (r *Runner) Snapshots(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	snapshots, err := repositories.NewSnapshotRepository(db).List(int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(snapshots, true)
	}

	if len(snapshots) == 0 {
		return r.writePlain("no snapshots stored\n")
	}

	if err := r.writePlain("%s\n", ui.Styles.Title("Snapshots")); err != nil {
		return err
	}
	for _, snapshot := range snapshots {
		err := r.writePlain("%s  %s  rows=%d hits=%d/%d threshold=%d %s\n",
			snapshot.ID,
			snapshot.CreatedAt.Format("2006-01-02 15:04"),
			snapshot.RowsOut,
			snapshot.Hits,
			snapshot.Hits+snapshot.NonHits,
			snapshot.HitThreshold,
			ui.Styles.Help(snapshot.Source),
		)
		if err != nil {
			return err
		}
	}

	return nil
}
