// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/avelinek/hitset/internal/models"
)

// MockService is a configurable test double for [services.Service].
type MockService struct {
	Playlists []models.Playlist
	Records   []models.TrackRecord

	AuthErr   error
	SearchErr error
	TracksErr error

	AuthCalls   int
	SearchCalls int
	TrackCalls  int

	LastQuery      string
	LastLimit      int
	LastPlaylistID string
}

func (m *MockService) Authenticate(ctx context.Context) error {
	m.AuthCalls++
	return m.AuthErr
}

func (m *MockService) SearchPlaylists(ctx context.Context, query string, limit int) ([]models.Playlist, error) {
	m.SearchCalls++
	m.LastQuery = query
	m.LastLimit = limit
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.Playlists, nil
}

func (m *MockService) PlaylistTracks(ctx context.Context, playlistID string) ([]models.TrackRecord, error) {
	m.TrackCalls++
	m.LastPlaylistID = playlistID
	if m.TracksErr != nil {
		return nil, m.TracksErr
	}
	return m.Records, nil
}

func (m *MockService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// WriteTempCSV writes contents to a file inside a test temp dir and returns its path.
func WriteTempCSV(t *testing.T, contents string) string {
	t.Helper()
	path := t.TempDir() + "/dataset.csv"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write temp csv: %v", err)
	}
	return path
}

// MustReadFile reads a file or fails the test.
func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// AssertFileExists fails the test when path does not exist.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
