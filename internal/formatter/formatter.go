// package formatter exports tables to interchange formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/avelinek/hitset/internal/dataset"
	"github.com/avelinek/hitset/internal/models"
)

// ExportToCSV renders a table as comma-delimited bytes with a header row.
// The output round-trips through [dataset.LoadTable].
func ExportToCSV(table *dataset.Table) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(table.Columns()); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := 0; i < table.Len(); i++ {
		if err := writer.Write(table.Row(i)); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders a harvested playlist table as a Markdown document.
func ExportToMarkdown(playlist models.Playlist, table *dataset.Table) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", playlist.Name))
	buf.WriteString(fmt.Sprintf("**Playlist ID**: %s\n", playlist.ID))
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", table.Len()))

	buf.WriteString("## Tracks\n\n")
	for i := 0; i < table.Len(); i++ {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, trackLine(table, i)))
	}

	return buf.Bytes(), nil
}

// ExportToText renders a harvested playlist table as plain text.
func ExportToText(playlist models.Playlist, table *dataset.Table) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s (%s)\n", playlist.Name, playlist.ID))
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", table.Len()))

	for i := 0; i < table.Len(); i++ {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, trackLine(table, i)))
	}

	return buf.Bytes(), nil
}

// trackLine formats one row as "Artists - Name [popularity]", degrading
// gracefully when columns are absent.
func trackLine(table *dataset.Table, i int) string {
	name, _ := table.Cell(i, "name")
	if name == "" {
		name, _ = table.Cell(i, "track_id")
	}

	line := name
	if artists, ok := table.Cell(i, "artists"); ok && artists != "" {
		line = fmt.Sprintf("%s - %s", strings.ReplaceAll(artists, dataset.ArtistSeparator, ", "), name)
	}
	if popularity, ok := table.Cell(i, "popularity"); ok && popularity != "" {
		line = fmt.Sprintf("%s [%s]", line, popularity)
	}
	return line
}
