// Package dataset implements the tabular pipeline that turns a raw track
// CSV into a labeled hit-classification table.
//
// The pipeline is strictly linear:
//
//	LoadTable -> CleanTable -> LabelHits
//
// # Cleaning
//
// [CleanTable] applies three ordered passes: rows with any missing value are
// dropped, a leftover serialization column named "index" is removed, and
// duplicate rows sharing the identity column are reduced to their first
// occurrence. The duplicate count in [CleanReport] is computed after the
// first two passes, so rows removed for missing values never count as
// duplicates.
//
// # Labeling
//
// [LabelHits] writes a boolean-as-integer is_hit column: 1 when popularity
// strictly exceeds the threshold, 0 otherwise. The column is overwritten on
// re-label, making the operation idempotent.
//
// # Errors
//
// Failures wrap sentinels from the shared package: [shared.ErrNotFound] for
// an unreadable path, [shared.ErrMissingColumn] when the identity or
// popularity column is absent, [shared.ErrInvalidInput] for malformed rows.
// Callers branch with [errors.Is]; nothing in this package logs or prints.
package dataset
