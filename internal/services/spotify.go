// Spotify Web API implementation of [Service]
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/avelinek/hitset/internal/models"
	"github.com/avelinek/hitset/internal/shared"
	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// DefaultSearchLimit matches the page size the harvest flow asks for.
	DefaultSearchLimit = 5

	maxSearchLimit    = 50
	requestsPerSecond = 5
)

// spotifyArtist is the artist object nested in a track.
type spotifyArtist struct {
	Name string `json:"name"`
}

// spotifyTrack is a track object. Pointer fields on the wire may be null.
type spotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Popularity int             `json:"popularity"`
	Artists    []spotifyArtist `json:"artists"`
}

// spotifyPlaylist is the simplified playlist object used in search results.
type spotifyPlaylist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// searchResponse is the envelope of GET /search?type=playlist.
// Items can contain literal nulls, so they decode as pointers.
type searchResponse struct {
	Playlists struct {
		Items []*spotifyPlaylist `json:"items"`
	} `json:"playlists"`
}

// playlistTracksResponse is one page of GET /playlists/{id}/tracks.
// A removed or region-blocked entry carries a null track.
type playlistTracksResponse struct {
	Items []struct {
		Track *spotifyTrack `json:"track"`
	} `json:"items"`
	Total int `json:"total"`
}

// SpotifyService implements [Service] against the Spotify Web API using the
// OAuth2 client-credentials flow. Requests are paced with a [rate.Limiter].
type SpotifyService struct {
	conf    *clientcredentials.Config
	http    *resty.Client
	limiter *rate.Limiter
	baseURL string
}

// NewSpotifyService creates a Spotify catalog service with the given client credentials.
func NewSpotifyService(clientID, clientSecret string) (*SpotifyService, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: client id", shared.ErrMissingCredentials)
	}
	if clientSecret == "" {
		return nil, fmt.Errorf("%w: client secret", shared.ErrMissingCredentials)
	}

	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyTokenURL,
	}

	return &SpotifyService{
		conf:    conf,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		baseURL: spotifyBaseURL,
	}, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// Authenticate fetches an initial token via the client-credentials flow and
// builds the request client. The underlying [clientcredentials.Config] client
// refreshes expired tokens transparently afterwards.
func (s *SpotifyService) Authenticate(ctx context.Context) error {
	if _, err := s.conf.Token(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	s.http = resty.NewWithClient(s.conf.Client(ctx)).SetBaseURL(s.baseURL)
	return nil
}

// doGet performs a paced, authenticated GET and decodes the JSON body into result.
func (s *SpotifyService) doGet(ctx context.Context, path string, params map[string]string, result any) error {
	if s.http == nil {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(result).
		Get(path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if resp.IsError() {
		return fmt.Errorf("%w: status %d for %s", shared.ErrAPIRequest, resp.StatusCode(), path)
	}

	return nil
}

// SearchPlaylists searches for playlists matching query, skipping null items.
func (s *SpotifyService) SearchPlaylists(ctx context.Context, query string, limit int) ([]models.Playlist, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	var result searchResponse
	params := map[string]string{
		"q":     query,
		"type":  "playlist",
		"limit": strconv.Itoa(limit),
	}
	if err := s.doGet(ctx, "/search", params, &result); err != nil {
		return nil, err
	}

	var playlists []models.Playlist
	for _, item := range result.Playlists.Items {
		if item == nil {
			continue
		}
		playlists = append(playlists, models.Playlist{ID: item.ID, Name: item.Name})
	}

	if len(playlists) == 0 {
		return nil, fmt.Errorf("%w: no playlists for query %q", shared.ErrEmptyResult, query)
	}

	return playlists, nil
}

// PlaylistTracks fetches one page of a playlist's tracks and flattens them,
// skipping null tracks and preserving artist order.
func (s *SpotifyService) PlaylistTracks(ctx context.Context, playlistID string) ([]models.TrackRecord, error) {
	if playlistID == "" {
		return nil, fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}

	var result playlistTracksResponse
	if err := s.doGet(ctx, "/playlists/"+playlistID+"/tracks", nil, &result); err != nil {
		return nil, err
	}

	var records []models.TrackRecord
	for _, item := range result.Items {
		if item.Track == nil {
			continue
		}

		artists := make([]string, 0, len(item.Track.Artists))
		for _, artist := range item.Track.Artists {
			artists = append(artists, artist.Name)
		}

		records = append(records, models.TrackRecord{
			Name:       item.Track.Name,
			ID:         item.Track.ID,
			Popularity: item.Track.Popularity,
			Artists:    artists,
		})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: playlist %s has no usable tracks", shared.ErrEmptyResult, playlistID)
	}

	return records, nil
}
