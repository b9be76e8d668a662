package dataset

import (
	"fmt"

	"github.com/avelinek/hitset/internal/shared"
)

// DefaultIDColumn is the identity column used to deduplicate tracks.
const DefaultIDColumn = "track_id"

// indexColumn is a serialization artifact carried by some exports; it has
// no domain meaning and is removed during cleaning.
const indexColumn = "index"

// CleanReport summarizes what CleanTable removed.
type CleanReport struct {
	RowsIn             int
	MissingDropped     int
	DroppedIndexColumn bool
	DuplicatesRemoved  int
	RowsOut            int
}

// CleanTable normalizes a raw table into one safe for labeling.
//
// Three passes run in fixed order: rows containing any missing value are
// dropped, the "index" column is removed when present, and rows sharing the
// same idColumn value are reduced to their first occurrence in row order.
// The input table is not modified.
//
// Returns an error wrapping [shared.ErrMissingColumn] when idColumn is
// absent; deduplication cannot run without an identity column.
func CleanTable(t *Table, idColumn string) (*Table, CleanReport, error) {
	if idColumn == "" {
		idColumn = DefaultIDColumn
	}

	report := CleanReport{RowsIn: t.Len()}

	out := New(t.Columns())
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		if hasMissing(row) {
			continue
		}
		if err := out.AppendRow(row); err != nil {
			return nil, report, err
		}
	}
	report.MissingDropped = report.RowsIn - out.Len()

	report.DroppedIndexColumn = out.DropColumn(indexColumn)

	if !out.HasColumn(idColumn) {
		return nil, report, fmt.Errorf("%w: %s", shared.ErrMissingColumn, idColumn)
	}

	seen := make(map[string]struct{}, out.Len())
	deduped := New(out.Columns())
	for i := 0; i < out.Len(); i++ {
		id, _ := out.Cell(i, idColumn)
		if _, dup := seen[id]; dup {
			report.DuplicatesRemoved++
			continue
		}
		seen[id] = struct{}{}
		if err := deduped.AppendRow(out.Row(i)); err != nil {
			return nil, report, err
		}
	}

	report.RowsOut = deduped.Len()
	return deduped, report, nil
}

func hasMissing(row []string) bool {
	for _, cell := range row {
		if cell == "" {
			return true
		}
	}
	return false
}
