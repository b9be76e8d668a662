// package services defines interface Service for talking to remote music-catalog APIs
package services

import (
	"context"

	"github.com/avelinek/hitset/internal/models"
)

// Service defines the operations the harvest flow needs from a music catalog.
type Service interface {
	// Authenticate performs machine-to-machine authentication with the catalog.
	// Returns an error wrapping shared.ErrAuthFailed when credentials are rejected.
	Authenticate(ctx context.Context) error

	// SearchPlaylists searches the catalog for playlists matching query.
	// Null entries in the remote response are skipped; the result preserves
	// the remaining order. Returns an error wrapping shared.ErrEmptyResult
	// when no usable playlist is found.
	SearchPlaylists(ctx context.Context, query string, limit int) ([]models.Playlist, error)

	// PlaylistTracks fetches the tracks of a playlist in a single page.
	// Null tracks are skipped. Returns an error wrapping shared.ErrEmptyResult
	// when the playlist has no usable tracks.
	PlaylistTracks(ctx context.Context, playlistID string) ([]models.TrackRecord, error)

	// Name returns the name of the catalog (e.g., "Spotify")
	Name() string
}
