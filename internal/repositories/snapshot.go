package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/avelinek/hitset/internal/models"
	"github.com/avelinek/hitset/internal/shared"
)

// SnapshotRepository persists [models.Snapshot] rows.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a SnapshotRepository with the given database connection
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Create inserts a snapshot, generating its ID and creation time when unset.
func (r *SnapshotRepository) Create(snapshot *models.Snapshot) error {
	if snapshot.ID == "" {
		snapshot.ID = shared.GenerateID()
	}
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO snapshots (id, source, rows_in, rows_out, missing_dropped, duplicates_removed, hit_threshold, hits, non_hits, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		snapshot.ID,
		snapshot.Source,
		snapshot.RowsIn,
		snapshot.RowsOut,
		snapshot.MissingDropped,
		snapshot.DuplicatesRemoved,
		snapshot.HitThreshold,
		snapshot.Hits,
		snapshot.NonHits,
		snapshot.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	return nil
}

// Get retrieves a snapshot by ID.
func (r *SnapshotRepository) Get(id string) (*models.Snapshot, error) {
	query := `
		SELECT id, source, rows_in, rows_out, missing_dropped, duplicates_removed, hit_threshold, hits, non_hits, created_at
		FROM snapshots
		WHERE id = ?
	`

	snapshot, err := r.scanOne(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: snapshot %s", shared.ErrNotFound, id)
	}
	return snapshot, err
}

// List returns the most recent snapshots, newest first.
func (r *SnapshotRepository) List(limit int) ([]models.Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, source, rows_in, rows_out, missing_dropped, duplicates_removed, hit_threshold, hits, non_hits, created_at
		FROM snapshots
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []models.Snapshot
	for rows.Next() {
		snapshot, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, *snapshot)
	}

	return snapshots, rows.Err()
}

// Delete removes a snapshot together with its labeled tracks.
// Tracks are deleted explicitly; sqlite foreign-key enforcement is off by default.
func (r *SnapshotRepository) Delete(id string) error {
	return inTx(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM labeled_tracks WHERE snapshot_id = ?", id); err != nil {
			return fmt.Errorf("failed to delete labeled tracks: %w", err)
		}

		result, err := tx.Exec("DELETE FROM snapshots WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("failed to delete snapshot: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check delete result: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("%w: snapshot %s", shared.ErrNotFound, id)
		}

		return nil
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *SnapshotRepository) scanOne(row scanner) (*models.Snapshot, error) {
	var snapshot models.Snapshot
	var createdAt any

	err := row.Scan(
		&snapshot.ID,
		&snapshot.Source,
		&snapshot.RowsIn,
		&snapshot.RowsOut,
		&snapshot.MissingDropped,
		&snapshot.DuplicatesRemoved,
		&snapshot.HitThreshold,
		&snapshot.Hits,
		&snapshot.NonHits,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}

	snapshot.CreatedAt, err = scanTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &snapshot, nil
}
