package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avelinek/hitset/internal/shared"
)

// newTestServer serves a fake token endpoint plus the given API handlers.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"test_token","token_type":"Bearer","expires_in":3600}`))
	})
	for path, handler := range handlers {
		mux.HandleFunc(path, handler)
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// newTestService points a SpotifyService at the test server.
func newTestService(t *testing.T, server *httptest.Server) *SpotifyService {
	t.Helper()

	srv, err := NewSpotifyService("test_client_id", "test_client_secret")
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	srv.conf.TokenURL = server.URL + "/api/token"
	srv.baseURL = server.URL
	return srv
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

func TestNewSpotifyService(t *testing.T) {
	t.Run("With Valid Credentials", func(t *testing.T) {
		srv, err := NewSpotifyService("id", "secret")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if srv.Name() != "Spotify" {
			t.Errorf("expected service name 'Spotify', got %s", srv.Name())
		}
	})

	t.Run("Missing Client ID", func(t *testing.T) {
		if _, err := NewSpotifyService("", "secret"); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("Missing Client Secret", func(t *testing.T) {
		if _, err := NewSpotifyService("id", ""); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})
}

func TestSpotifyAuthenticate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := newTestServer(t, nil)
		srv := newTestService(t, server)

		if err := srv.Authenticate(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if srv.http == nil {
			t.Error("expected request client to be built")
		}
	})

	t.Run("Rejected Credentials", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/token", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		server := httptest.NewServer(mux)
		t.Cleanup(server.Close)

		srv := newTestService(t, server)
		err := srv.Authenticate(context.Background())
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
	})

	t.Run("Requests Before Authenticate Fail", func(t *testing.T) {
		srv, err := NewSpotifyService("id", "secret")
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		_, err = srv.SearchPlaylists(context.Background(), "workout", 5)
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})
}

func TestSpotifySearchPlaylists(t *testing.T) {
	t.Run("Skips Null Items", func(t *testing.T) {
		server := newTestServer(t, map[string]http.HandlerFunc{
			"/search": jsonHandler(http.StatusOK,
				`{"playlists":{"items":[null,{"id":"x","name":"Y"},null]}}`),
		})
		srv := newTestService(t, server)
		if err := srv.Authenticate(context.Background()); err != nil {
			t.Fatalf("authenticate failed: %v", err)
		}

		playlists, err := srv.SearchPlaylists(context.Background(), "workout", 5)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(playlists) != 1 {
			t.Fatalf("expected 1 playlist, got %d", len(playlists))
		}
		if playlists[0].ID != "x" || playlists[0].Name != "Y" {
			t.Errorf("expected playlist (x, Y), got (%s, %s)", playlists[0].ID, playlists[0].Name)
		}
	})

	t.Run("All Items Null", func(t *testing.T) {
		server := newTestServer(t, map[string]http.HandlerFunc{
			"/search": jsonHandler(http.StatusOK, `{"playlists":{"items":[null,null]}}`),
		})
		srv := newTestService(t, server)
		if err := srv.Authenticate(context.Background()); err != nil {
			t.Fatalf("authenticate failed: %v", err)
		}

		_, err := srv.SearchPlaylists(context.Background(), "workout", 5)
		if !errors.Is(err, shared.ErrEmptyResult) {
			t.Errorf("expected ErrEmptyResult, got %v", err)
		}
	})

	t.Run("Missing Query", func(t *testing.T) {
		server := newTestServer(t, nil)
		srv := newTestService(t, server)
		if err := srv.Authenticate(context.Background()); err != nil {
			t.Fatalf("authenticate failed: %v", err)
		}

		_, err := srv.SearchPlaylists(context.Background(), "", 5)
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("API Error Status", func(t *testing.T) {
		server := newTestServer(t, map[string]http.HandlerFunc{
			"/search": jsonHandler(http.StatusTooManyRequests, `{"error":{"status":429}}`),
		})
		srv := newTestService(t, server)
		if err := srv.Authenticate(context.Background()); err != nil {
			t.Fatalf("authenticate failed: %v", err)
		}

		_, err := srv.SearchPlaylists(context.Background(), "workout", 5)
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("Sends Expected Query Params", func(t *testing.T) {
		var gotQuery, gotType, gotLimit string
		server := newTestServer(t, map[string]http.HandlerFunc{
			"/search": func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.Query().Get("q")
				gotType = r.URL.Query().Get("type")
				gotLimit = r.URL.Query().Get("limit")
				jsonHandler(http.StatusOK, `{"playlists":{"items":[{"id":"x","name":"Y"}]}}`)(w, r)
			},
		})
		srv := newTestService(t, server)
		if err := srv.Authenticate(context.Background()); err != nil {
			t.Fatalf("authenticate failed: %v", err)
		}

		if _, err := srv.SearchPlaylists(context.Background(), "workout", 0); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if gotQuery != "workout" || gotType != "playlist" || gotLimit != "5" {
			t.Errorf("unexpected params q=%s type=%s limit=%s", gotQuery, gotType, gotLimit)
		}
	})
}

func TestSpotifyPlaylistTracks(t *testing.T) {
	const tracksBody = `{
		"items": [
			{"track": {"id": "t1", "name": "Dancing On My Own", "popularity": 81,
				"artists": [{"name": "Robyn"}]}},
			{"track": null},
			{"track": {"id": "t2", "name": "With Every Heartbeat", "popularity": 66,
				"artists": [{"name": "Robyn"}, {"name": "Kleerup"}]}}
		],
		"total": 3
	}`

	t.Run("Flattens And Skips Null Tracks", func(t *testing.T) {
		server := newTestServer(t, map[string]http.HandlerFunc{
			"/playlists/p1/tracks": jsonHandler(http.StatusOK, tracksBody),
		})
		srv := newTestService(t, server)
		if err := srv.Authenticate(context.Background()); err != nil {
			t.Fatalf("authenticate failed: %v", err)
		}

		records, err := srv.PlaylistTracks(context.Background(), "p1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
		if records[0].ID != "t1" || records[0].Popularity != 81 {
			t.Errorf("unexpected first record: %+v", records[0])
		}
		if len(records[1].Artists) != 2 || records[1].Artists[0] != "Robyn" || records[1].Artists[1] != "Kleerup" {
			t.Errorf("expected artists in source order, got %v", records[1].Artists)
		}
	})

	t.Run("No Usable Tracks", func(t *testing.T) {
		server := newTestServer(t, map[string]http.HandlerFunc{
			"/playlists/p2/tracks": jsonHandler(http.StatusOK, `{"items":[{"track":null}],"total":1}`),
		})
		srv := newTestService(t, server)
		if err := srv.Authenticate(context.Background()); err != nil {
			t.Fatalf("authenticate failed: %v", err)
		}

		_, err := srv.PlaylistTracks(context.Background(), "p2")
		if !errors.Is(err, shared.ErrEmptyResult) {
			t.Errorf("expected ErrEmptyResult, got %v", err)
		}
	})

	t.Run("Missing Playlist ID", func(t *testing.T) {
		server := newTestServer(t, nil)
		srv := newTestService(t, server)
		if err := srv.Authenticate(context.Background()); err != nil {
			t.Fatalf("authenticate failed: %v", err)
		}

		_, err := srv.PlaylistTracks(context.Background(), "")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("Service Interface", func(t *testing.T) {
		srv, err := NewSpotifyService("id", "secret")
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}
		var _ Service = srv
	})
}
