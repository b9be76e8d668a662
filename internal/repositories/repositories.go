// package repositories provides the sqlite persistence layer for prepared
// dataset snapshots.
//
// A snapshot records one run of the cleaning and labeling pipeline together
// with its per-row results, so earlier runs stay queryable after the source
// CSV changes.
package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// scanTime normalizes sqlite timestamp values into time.Time.
func scanTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", t, err)
		}
		return parsed, nil
	case []byte:
		return scanTime(string(t))
	default:
		return time.Time{}, fmt.Errorf("unexpected timestamp type %T", v)
	}
}

// inTx runs fn inside a transaction, committing on success.
func inTx(db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
