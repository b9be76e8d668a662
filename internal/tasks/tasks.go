// package tasks orchestrates the two hitset flows: harvesting playlist
// tracks from a catalog service and preparing a CSV dataset for analysis.
//
// Operations emit progress updates via channels for non-blocking status
// reporting to the CLI layer.
package tasks

import (
	"context"
	"fmt"

	"github.com/avelinek/hitset/internal/dataset"
	"github.com/avelinek/hitset/internal/models"
	"github.com/avelinek/hitset/internal/services"
	"github.com/avelinek/hitset/internal/shared"
)

// HarvestResult contains everything produced by a catalog harvest.
type HarvestResult struct {
	Playlist models.Playlist      // First valid playlist matching the query
	Records  []models.TrackRecord // Flattened tracks, nulls skipped
	Table    *dataset.Table       // Records in tabular form
}

// PrepareOpts configures a dataset preparation run.
type PrepareOpts struct {
	Path      string // Input CSV path
	IDColumn  string // Identity column for dedup; defaults to track_id
	Threshold int    // Popularity cutoff; values <= 0 use the default of 87
}

// PrepareResult contains the cleaned, labeled table and per-stage reports.
type PrepareResult struct {
	Table *dataset.Table
	Clean dataset.CleanReport
	Label dataset.LabelReport
}

// Engine defines the pipeline operations the CLI drives.
type Engine interface {
	// Harvest authenticates, searches for the first valid playlist matching
	// query, fetches its tracks, and flattens them into a table.
	Harvest(ctx context.Context, progress chan<- ProgressUpdate, query string, limit int) (*HarvestResult, error)

	// Prepare loads a CSV dataset, cleans it, and labels hits.
	Prepare(ctx context.Context, progress chan<- ProgressUpdate, opts PrepareOpts) (*PrepareResult, error)
}

// DatasetEngine implements Engine over a catalog [services.Service].
type DatasetEngine struct {
	catalog services.Service
}

// NewDatasetEngine creates a DatasetEngine. The catalog service may be nil
// when only Prepare is used.
func NewDatasetEngine(catalog services.Service) *DatasetEngine {
	return &DatasetEngine{catalog: catalog}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *DatasetEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Harvest runs the catalog fetch flow: authenticate, search, fetch, flatten.
func (e *DatasetEngine) Harvest(ctx context.Context, progress chan<- ProgressUpdate, query string, limit int) (*HarvestResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog service not configured", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, authenticatingUpdate(e.catalog.Name()))
	if err := e.catalog.Authenticate(ctx); err != nil {
		return nil, err
	}

	e.sendProgress(progress, searchingUpdate(query))
	playlists, err := e.catalog.SearchPlaylists(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	if len(playlists) == 0 {
		return nil, fmt.Errorf("%w: no playlists for query %q", shared.ErrEmptyResult, query)
	}

	// first valid result wins
	playlist := playlists[0]

	e.sendProgress(progress, fetchingUpdate(playlist.Name))
	records, err := e.catalog.PlaylistTracks(ctx, playlist.ID)
	if err != nil {
		return nil, err
	}

	return &HarvestResult{
		Playlist: playlist,
		Records:  records,
		Table:    dataset.ToTable(records),
	}, nil
}

// Prepare runs the dataset cleaning flow: load, clean, label.
func (e *DatasetEngine) Prepare(ctx context.Context, progress chan<- ProgressUpdate, opts PrepareOpts) (*PrepareResult, error) {
	if opts.IDColumn == "" {
		opts.IDColumn = dataset.DefaultIDColumn
	}
	if opts.Threshold <= 0 {
		opts.Threshold = dataset.DefaultHitThreshold
	}

	e.sendProgress(progress, loadingUpdate(opts.Path))
	table, err := dataset.LoadTable(opts.Path)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.sendProgress(progress, cleaningUpdate(table.Len()))
	cleaned, cleanReport, err := dataset.CleanTable(table, opts.IDColumn)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.sendProgress(progress, labelingUpdate(opts.Threshold))
	labelReport, err := dataset.LabelHits(cleaned, opts.Threshold)
	if err != nil {
		return nil, err
	}

	return &PrepareResult{
		Table: cleaned,
		Clean: cleanReport,
		Label: labelReport,
	}, nil
}
