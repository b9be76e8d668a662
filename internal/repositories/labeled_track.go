package repositories

import (
	"database/sql"
	"fmt"

	"github.com/avelinek/hitset/internal/dataset"
	"github.com/avelinek/hitset/internal/shared"
)

// LabeledTrack is one persisted row of a prepared table.
type LabeledTrack struct {
	SnapshotID string
	TrackID    string
	Name       string
	Artists    string
	Popularity int
	IsHit      int
}

// LabeledTrackRepository persists the per-row results of a prepared table.
type LabeledTrackRepository struct {
	db *sql.DB
}

// NewLabeledTrackRepository creates a LabeledTrackRepository with the given database connection
func NewLabeledTrackRepository(db *sql.DB) *LabeledTrackRepository {
	return &LabeledTrackRepository{db: db}
}

// CreateFromTable inserts every row of a cleaned, labeled table under the
// given snapshot ID in one transaction. The table must carry track_id,
// popularity, and is_hit columns; name and artists are stored when present.
func (r *LabeledTrackRepository) CreateFromTable(snapshotID string, table *dataset.Table) error {
	for _, required := range []string{"track_id", "popularity", "is_hit"} {
		if !table.HasColumn(required) {
			return fmt.Errorf("%w: %s", shared.ErrMissingColumn, required)
		}
	}

	return inTx(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO labeled_tracks (snapshot_id, track_id, name, artists, popularity, is_hit)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for i := 0; i < table.Len(); i++ {
			trackID, _ := table.Cell(i, "track_id")

			popularity, err := table.Int(i, "popularity")
			if err != nil {
				return err
			}
			isHit, err := table.Int(i, "is_hit")
			if err != nil {
				return err
			}

			name, _ := table.Cell(i, "name")
			artists, _ := table.Cell(i, "artists")

			if _, err := stmt.Exec(snapshotID, trackID, name, artists, popularity, isHit); err != nil {
				return fmt.Errorf("failed to insert track %s: %w", trackID, err)
			}
		}

		return nil
	})
}

// ListBySnapshot returns the labeled tracks of a snapshot in insertion order.
func (r *LabeledTrackRepository) ListBySnapshot(snapshotID string) ([]LabeledTrack, error) {
	query := `
		SELECT snapshot_id, track_id, name, artists, popularity, is_hit
		FROM labeled_tracks
		WHERE snapshot_id = ?
		ORDER BY rowid
	`

	rows, err := r.db.Query(query, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to list labeled tracks: %w", err)
	}
	defer rows.Close()

	var tracks []LabeledTrack
	for rows.Next() {
		var track LabeledTrack
		if err := rows.Scan(&track.SnapshotID, &track.TrackID, &track.Name, &track.Artists, &track.Popularity, &track.IsHit); err != nil {
			return nil, fmt.Errorf("failed to scan labeled track: %w", err)
		}
		tracks = append(tracks, track)
	}

	return tracks, rows.Err()
}

// CountHits returns the hit and non-hit counts stored for a snapshot.
func (r *LabeledTrackRepository) CountHits(snapshotID string) (hits, nonHits int, err error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN is_hit = 1 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN is_hit = 0 THEN 1 ELSE 0 END), 0)
		FROM labeled_tracks
		WHERE snapshot_id = ?
	`

	if err := r.db.QueryRow(query, snapshotID).Scan(&hits, &nonHits); err != nil {
		return 0, 0, fmt.Errorf("failed to count hits: %w", err)
	}

	return hits, nonHits, nil
}
