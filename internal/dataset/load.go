package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/avelinek/hitset/internal/shared"
)

// LoadTable reads a comma-delimited file with a header row into a Table.
//
// Returns an error wrapping [shared.ErrNotFound] when the path does not
// resolve to an existing file, and [shared.ErrInvalidInput] when the file
// has no header row or a data row disagrees with the header width.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", shared.ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s has no header row", shared.ErrInvalidInput, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	table := New(header)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", shared.ErrInvalidInput, path, err)
		}
		if err := table.AppendRow(record); err != nil {
			return nil, err
		}
	}

	return table, nil
}
