package tasks

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/avelinek/hitset/internal/models"
	"github.com/avelinek/hitset/internal/shared"
	hitsettest "github.com/avelinek/hitset/internal/testing"
)

func TestHarvest(t *testing.T) {
	records := []models.TrackRecord{
		{Name: "Song A", ID: "t1", Popularity: 90, Artists: []string{"A"}},
		{Name: "Song B", ID: "t2", Popularity: 40, Artists: []string{"B", "C"}},
	}

	t.Run("Happy Path", func(t *testing.T) {
		mock := &hitsettest.MockService{
			Playlists: []models.Playlist{{ID: "p1", Name: "Workout"}},
			Records:   records,
		}
		engine := NewDatasetEngine(mock)

		progress := make(chan ProgressUpdate, 8)
		result, err := engine.Harvest(context.Background(), progress, "workout", 5)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if mock.AuthCalls != 1 {
			t.Errorf("expected one Authenticate call, got %d", mock.AuthCalls)
		}
		if mock.LastQuery != "workout" {
			t.Errorf("expected query to be forwarded, got %q", mock.LastQuery)
		}
		if mock.LastPlaylistID != "p1" {
			t.Errorf("expected tracks fetched for first playlist, got %q", mock.LastPlaylistID)
		}

		if result.Playlist.Name != "Workout" {
			t.Errorf("unexpected playlist: %+v", result.Playlist)
		}
		if result.Table.Len() != 2 {
			t.Errorf("expected 2 table rows, got %d", result.Table.Len())
		}
		if pop, err := result.Table.Int(0, "popularity"); err != nil || pop != 90 {
			t.Errorf("expected popularity 90 in table, got %d (%v)", pop, err)
		}

		close(progress)
		var phases []Phase
		for update := range progress {
			phases = append(phases, update.Phase)
		}
		if len(phases) != 3 || phases[0] != PhaseAuthenticating || phases[1] != PhaseSearching || phases[2] != PhaseFetching {
			t.Errorf("unexpected progress phases: %v", phases)
		}
	})

	t.Run("Takes First Playlist", func(t *testing.T) {
		mock := &hitsettest.MockService{
			Playlists: []models.Playlist{{ID: "first", Name: "First"}, {ID: "second", Name: "Second"}},
			Records:   records,
		}
		engine := NewDatasetEngine(mock)

		result, err := engine.Harvest(context.Background(), nil, "q", 5)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Playlist.ID != "first" {
			t.Errorf("expected first playlist to win, got %s", result.Playlist.ID)
		}
	})

	t.Run("No Catalog Service", func(t *testing.T) {
		engine := NewDatasetEngine(nil)
		_, err := engine.Harvest(context.Background(), nil, "q", 5)
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("Auth Failure Propagates", func(t *testing.T) {
		mock := &hitsettest.MockService{AuthErr: fmt.Errorf("%w: bad secret", shared.ErrAuthFailed)}
		engine := NewDatasetEngine(mock)

		_, err := engine.Harvest(context.Background(), nil, "q", 5)
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
		if mock.SearchCalls != 0 {
			t.Error("search should not run after failed authentication")
		}
	})

	t.Run("Empty Search Propagates", func(t *testing.T) {
		mock := &hitsettest.MockService{SearchErr: fmt.Errorf("%w: none", shared.ErrEmptyResult)}
		engine := NewDatasetEngine(mock)

		_, err := engine.Harvest(context.Background(), nil, "q", 5)
		if !errors.Is(err, shared.ErrEmptyResult) {
			t.Errorf("expected ErrEmptyResult, got %v", err)
		}
		if mock.TrackCalls != 0 {
			t.Error("track fetch should not run after empty search")
		}
	})
}

func TestPrepare(t *testing.T) {
	t.Run("Full Pipeline", func(t *testing.T) {
		path := hitsettest.WriteTempCSV(t,
			"track_id,popularity,index\n"+
				"a,90,0\n"+
				"a,50,1\n"+
				"b,95,2\n"+
				"c,,3\n")

		engine := NewDatasetEngine(nil)
		progress := make(chan ProgressUpdate, 8)
		result, err := engine.Prepare(context.Background(), progress, PrepareOpts{Path: path})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.Clean.RowsIn != 4 || result.Clean.RowsOut != 2 {
			t.Errorf("unexpected clean report: %+v", result.Clean)
		}
		if result.Clean.MissingDropped != 1 || result.Clean.DuplicatesRemoved != 1 {
			t.Errorf("unexpected drop counts: %+v", result.Clean)
		}
		if !result.Clean.DroppedIndexColumn {
			t.Error("expected index column to be dropped")
		}

		if result.Label.Threshold != 87 {
			t.Errorf("expected default threshold 87, got %d", result.Label.Threshold)
		}
		if result.Label.Hits != 2 || result.Label.NonHits != 0 {
			t.Errorf("unexpected label report: %+v", result.Label)
		}

		if result.Table.HasColumn("index") {
			t.Error("prepared table still has index column")
		}
		if !result.Table.HasColumn("is_hit") {
			t.Error("prepared table missing is_hit column")
		}
	})

	t.Run("Missing Input File", func(t *testing.T) {
		engine := NewDatasetEngine(nil)
		_, err := engine.Prepare(context.Background(), nil, PrepareOpts{Path: t.TempDir() + "/missing.csv"})
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Missing Identity Column", func(t *testing.T) {
		path := hitsettest.WriteTempCSV(t, "name,popularity\nx,10\n")

		engine := NewDatasetEngine(nil)
		_, err := engine.Prepare(context.Background(), nil, PrepareOpts{Path: path})
		if !errors.Is(err, shared.ErrMissingColumn) {
			t.Errorf("expected ErrMissingColumn, got %v", err)
		}
	})

	t.Run("Custom Threshold", func(t *testing.T) {
		path := hitsettest.WriteTempCSV(t, "track_id,popularity\na,50\nb,10\n")

		engine := NewDatasetEngine(nil)
		result, err := engine.Prepare(context.Background(), nil, PrepareOpts{Path: path, Threshold: 40})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Label.Hits != 1 || result.Label.NonHits != 1 {
			t.Errorf("unexpected label report at threshold 40: %+v", result.Label)
		}
	})

	t.Run("Cancelled Context", func(t *testing.T) {
		path := hitsettest.WriteTempCSV(t, "track_id,popularity\na,50\n")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		engine := NewDatasetEngine(nil)
		if _, err := engine.Prepare(ctx, nil, PrepareOpts{Path: path}); err == nil {
			t.Error("expected error from cancelled context")
		}
	})
}
