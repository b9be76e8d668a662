package formatter

import (
	"os"
	"strings"
	"testing"

	"github.com/avelinek/hitset/internal/dataset"
	"github.com/avelinek/hitset/internal/models"
)

func harvestTable(t *testing.T) *dataset.Table {
	t.Helper()
	return dataset.ToTable([]models.TrackRecord{
		{Name: "Dancing On My Own", ID: "t1", Popularity: 81, Artists: []string{"Robyn"}},
		{Name: "With Every Heartbeat", ID: "t2", Popularity: 66, Artists: []string{"Robyn", "Kleerup"}},
	})
}

func TestExportToCSV(t *testing.T) {
	t.Run("Header And Rows", func(t *testing.T) {
		data, err := ExportToCSV(harvestTable(t))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected 3 lines, got %d", len(lines))
		}
		if lines[0] != "name,track_id,popularity,artists" {
			t.Errorf("unexpected header: %s", lines[0])
		}
		if !strings.Contains(lines[2], "Robyn;Kleerup") {
			t.Errorf("expected joined artists in row, got %s", lines[2])
		}
	})

	t.Run("Round Trips Through LoadTable", func(t *testing.T) {
		data, err := ExportToCSV(harvestTable(t))
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}

		path := t.TempDir() + "/roundtrip.csv"
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatalf("failed to write csv: %v", err)
		}

		table, err := dataset.LoadTable(path)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if table.Len() != 2 || table.Width() != 4 {
			t.Errorf("round trip changed shape: %d rows %d cols", table.Len(), table.Width())
		}
		if pop, err := table.Int(0, "popularity"); err != nil || pop != 81 {
			t.Errorf("round trip changed popularity: %d (%v)", pop, err)
		}
	})

	t.Run("Empty Table", func(t *testing.T) {
		data, err := ExportToCSV(dataset.New([]string{"a", "b"}))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if strings.TrimSpace(string(data)) != "a,b" {
			t.Errorf("expected header only, got %q", string(data))
		}
	})
}

func TestExportToMarkdown(t *testing.T) {
	playlist := models.Playlist{ID: "p1", Name: "Throwback"}

	data, err := ExportToMarkdown(playlist, harvestTable(t))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	out := string(data)

	if !strings.HasPrefix(out, "# Throwback\n") {
		t.Errorf("expected playlist title heading, got %q", out)
	}
	if !strings.Contains(out, "1. Robyn - Dancing On My Own [81]") {
		t.Errorf("expected formatted track line, got %q", out)
	}
	if !strings.Contains(out, "Robyn, Kleerup - With Every Heartbeat") {
		t.Errorf("expected multi-artist line, got %q", out)
	}
}

func TestExportToText(t *testing.T) {
	playlist := models.Playlist{ID: "p1", Name: "Throwback"}

	data, err := ExportToText(playlist, harvestTable(t))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	out := string(data)

	if !strings.Contains(out, "Playlist: Throwback (p1)") {
		t.Errorf("expected playlist header, got %q", out)
	}
	if !strings.Contains(out, "Tracks: 2") {
		t.Errorf("expected track count, got %q", out)
	}
}
