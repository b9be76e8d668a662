package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/avelinek/hitset/internal/models"
	"github.com/avelinek/hitset/internal/shared"
)

// ArtistSeparator joins a track's artist list into a single CSV cell.
const ArtistSeparator = ";"

// Table is an ordered grid of named columns over CSV-native string cells.
// A missing value is an empty cell. Every row has exactly one cell per column.
type Table struct {
	columns []string
	rows    [][]string
}

// New creates an empty Table with the given column names.
func New(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{columns: cols}
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.columns)
}

// HasColumn reports whether a column with the given name exists.
func (t *Table) HasColumn(name string) bool {
	return t.columnIndex(name) >= 0
}

func (t *Table) columnIndex(name string) int {
	for i, col := range t.columns {
		if col == name {
			return i
		}
	}
	return -1
}

// AppendRow adds a row to the table. The row must have one cell per column.
func (t *Table) AppendRow(cells []string) error {
	if len(cells) != len(t.columns) {
		return fmt.Errorf("%w: row has %d cells, table has %d columns", shared.ErrInvalidInput, len(cells), len(t.columns))
	}
	row := make([]string, len(cells))
	copy(row, cells)
	t.rows = append(t.rows, row)
	return nil
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []string {
	row := make([]string, len(t.rows[i]))
	copy(row, t.rows[i])
	return row
}

// Cell returns the value at row i in the named column.
// The second return value is false when the column does not exist.
func (t *Table) Cell(i int, column string) (string, bool) {
	idx := t.columnIndex(column)
	if idx < 0 || i < 0 || i >= len(t.rows) {
		return "", false
	}
	return t.rows[i][idx], true
}

// Int parses the value at row i in the named column as an integer.
func (t *Table) Int(i int, column string) (int, error) {
	cell, ok := t.Cell(i, column)
	if !ok {
		return 0, fmt.Errorf("%w: %s", shared.ErrMissingColumn, column)
	}
	v, err := strconv.Atoi(strings.TrimSpace(cell))
	if err != nil {
		return 0, fmt.Errorf("%w: column %s row %d: %v", shared.ErrInvalidInput, column, i, err)
	}
	return v, nil
}

// SetColumn adds the named column, or overwrites it when it already exists.
// values must contain one cell per existing row.
func (t *Table) SetColumn(name string, values []string) error {
	if len(values) != len(t.rows) {
		return fmt.Errorf("%w: got %d values for %d rows", shared.ErrInvalidInput, len(values), len(t.rows))
	}

	idx := t.columnIndex(name)
	if idx >= 0 {
		for i := range t.rows {
			t.rows[i][idx] = values[i]
		}
		return nil
	}

	t.columns = append(t.columns, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], values[i])
	}
	return nil
}

// DropColumn removes the named column from the table and every row.
// Returns false when no such column exists.
func (t *Table) DropColumn(name string) bool {
	idx := t.columnIndex(name)
	if idx < 0 {
		return false
	}

	t.columns = append(t.columns[:idx], t.columns[idx+1:]...)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i][:idx], t.rows[i][idx+1:]...)
	}
	return true
}

// ToTable flattens fetched track records into a Table with the same shape
// the cleaning pipeline expects: name, track_id, popularity, artists.
func ToTable(records []models.TrackRecord) *Table {
	t := New([]string{"name", "track_id", "popularity", "artists"})
	for _, rec := range records {
		// AppendRow cannot fail here, the cell count is fixed
		t.AppendRow([]string{
			rec.Name,
			rec.ID,
			strconv.Itoa(rec.Popularity),
			strings.Join(rec.Artists, ArtistSeparator),
		})
	}
	return t
}
