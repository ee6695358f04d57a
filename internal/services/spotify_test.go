package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/finallyfriday/encore/internal/shared"
	"golang.org/x/oauth2"
)

func testCredentials() map[string]string {
	return map[string]string{
		"client_id":     "test_client_id",
		"client_secret": "test_client_secret",
	}
}

// newSpotifyServer returns an authenticated service pointed at a test server.
func newSpotifyServer(t *testing.T, handler http.HandlerFunc) *SpotifyService {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	srv, err := NewSpotifyService(testCredentials())
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	token := &oauth2.Token{AccessToken: "test_token", Expiry: time.Now().Add(time.Hour)}
	if err := srv.Authenticate(context.Background(), token); err != nil {
		t.Fatalf("failed to authenticate: %v", err)
	}

	srv.baseURL = ts.URL
	return srv
}

func TestNewSpotifyService(t *testing.T) {
	t.Run("Valid Credentials", func(t *testing.T) {
		srv, err := NewSpotifyService(testCredentials())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if srv.Name() != "Spotify" {
			t.Errorf("expected service name Spotify, got %s", srv.Name())
		}
	})

	t.Run("Missing Client ID", func(t *testing.T) {
		_, err := NewSpotifyService(map[string]string{"client_secret": "s"})
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("Missing Client Secret", func(t *testing.T) {
		_, err := NewSpotifyService(map[string]string{"client_id": "i"})
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("Default Redirect URI", func(t *testing.T) {
		srv, err := NewSpotifyService(testCredentials())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if srv.config.RedirectURL != "http://localhost:8080/callback" {
			t.Errorf("expected default redirect URI, got %s", srv.config.RedirectURL)
		}
	})
}

func TestGetAuthURL(t *testing.T) {
	srv, err := NewSpotifyService(testCredentials())
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	authURL := srv.GetAuthURL("test_state")
	if !strings.Contains(authURL, "accounts.spotify.com") {
		t.Error("auth URL should contain the Spotify accounts domain")
	}
	if !strings.Contains(authURL, "test_client_id") {
		t.Error("auth URL should contain the client_id")
	}
	if !strings.Contains(authURL, "test_state") {
		t.Error("auth URL should contain the state")
	}
	if !strings.Contains(authURL, "playlist-modify-public") {
		t.Error("auth URL should request the playlist scopes")
	}
}

func TestAuthenticate(t *testing.T) {
	srv, err := NewSpotifyService(testCredentials())
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	t.Run("Nil Token", func(t *testing.T) {
		if err := srv.Authenticate(context.Background(), nil); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("Empty Access Token", func(t *testing.T) {
		err := srv.Authenticate(context.Background(), &oauth2.Token{})
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("Valid Token", func(t *testing.T) {
		token := &oauth2.Token{AccessToken: "abc", Expiry: time.Now().Add(time.Hour)}
		if err := srv.Authenticate(context.Background(), token); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if srv.token == nil || srv.token.AccessToken != "abc" {
			t.Error("expected the token to be installed")
		}
	})

	t.Run("Requests Without Token Fail", func(t *testing.T) {
		fresh, err := NewSpotifyService(testCredentials())
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		_, err = fresh.SearchTrack(context.Background(), "Engel", "Rammstein")
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})
}

func TestSearchTrack(t *testing.T) {
	t.Run("Top Match", func(t *testing.T) {
		var gotQuery, gotLimit string

		srv := newSpotifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("q")
			gotLimit = r.URL.Query().Get("limit")
			fmt.Fprint(w, `{"tracks": {"items": [
				{"id": "t1", "uri": "spotify:track:t1", "name": "Engel",
				 "artists": [{"name": "Rammstein"}, {"name": "Someone Else"}],
				 "album": {"name": "Sehnsucht"}}
			]}}`)
		})

		track, err := srv.SearchTrack(context.Background(), "Engel", "Rammstein")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if gotQuery != "Engel Rammstein" {
			t.Errorf("expected query 'Engel Rammstein', got %q", gotQuery)
		}
		if gotLimit != "1" {
			t.Errorf("expected limit 1, got %q", gotLimit)
		}

		if track.URI != "spotify:track:t1" {
			t.Errorf("expected track URI, got %s", track.URI)
		}
		if track.Artist != "Rammstein" {
			t.Errorf("expected first artist only, got %s", track.Artist)
		}
		if track.Album != "Sehnsucht" {
			t.Errorf("expected album Sehnsucht, got %s", track.Album)
		}
	})

	t.Run("Collapses Query Whitespace", func(t *testing.T) {
		var gotQuery string
		srv := newSpotifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("q")
			fmt.Fprint(w, `{"tracks": {"items": [{"id": "t1", "uri": "u", "name": "n"}]}}`)
		})

		if _, err := srv.SearchTrack(context.Background(), "  Mein  Herz ", "Rammstein"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gotQuery != "Mein Herz Rammstein" {
			t.Errorf("expected collapsed query, got %q", gotQuery)
		}
	})

	t.Run("No Results", func(t *testing.T) {
		srv := newSpotifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"tracks": {"items": []}}`)
		})

		_, err := srv.SearchTrack(context.Background(), "Nothing", "Nobody")
		if !errors.Is(err, shared.ErrTrackNotFound) {
			t.Errorf("expected ErrTrackNotFound, got %v", err)
		}
	})

	t.Run("Expired Token", func(t *testing.T) {
		srv := newSpotifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := srv.SearchTrack(context.Background(), "Engel", "Rammstein")
		if !errors.Is(err, shared.ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}
	})
}

func TestGetPlaylists(t *testing.T) {
	t.Run("Paginates", func(t *testing.T) {
		requests := 0

		var srv *SpotifyService
		srv = newSpotifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			requests++
			offset := r.URL.Query().Get("offset")
			if offset == "0" {
				next := srv.baseURL + "/me/playlists?limit=50&offset=50"
				fmt.Fprintf(w, `{"items": [{"id": "p1", "name": "First", "tracks": {"total": 10}}], "next": %q}`, next)
				return
			}
			fmt.Fprint(w, `{"items": [{"id": "p2", "name": "Second"}], "next": null}`)
		})

		playlists, err := srv.GetPlaylists(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if requests != 2 {
			t.Errorf("expected 2 page requests, got %d", requests)
		}
		if len(playlists) != 2 {
			t.Fatalf("expected 2 playlists, got %d", len(playlists))
		}
		if playlists[0].Name != "First" || playlists[0].TrackCount != 10 {
			t.Errorf("unexpected first playlist: %+v", playlists[0])
		}
		if playlists[1].ID != "p2" {
			t.Errorf("unexpected second playlist: %+v", playlists[1])
		}
	})
}

func TestCreatePlaylist(t *testing.T) {
	t.Run("Creates For Current User", func(t *testing.T) {
		var createdName string
		var createdPublic bool

		srv := newSpotifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/me":
				fmt.Fprint(w, `{"id": "user42"}`)
			case r.URL.Path == "/users/user42/playlists" && r.Method == http.MethodPost:
				var body struct {
					Name   string `json:"name"`
					Public bool   `json:"public"`
				}
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Errorf("failed to decode create body: %v", err)
				}
				createdName = body.Name
				createdPublic = body.Public
				fmt.Fprintf(w, `{"id": "new_playlist", "name": %q, "public": true}`, body.Name)
			default:
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
				w.WriteHeader(http.StatusNotFound)
			}
		})

		playlist, err := srv.CreatePlaylist(context.Background(), "Concerts_2019")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if createdName != "Concerts_2019" {
			t.Errorf("expected playlist name in request body, got %q", createdName)
		}
		if !createdPublic {
			t.Error("expected a public playlist")
		}
		if playlist.ID != "new_playlist" {
			t.Errorf("expected playlist ID new_playlist, got %s", playlist.ID)
		}
	})

	t.Run("Caches User ID", func(t *testing.T) {
		meRequests := 0

		srv := newSpotifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/me" {
				meRequests++
				fmt.Fprint(w, `{"id": "user42"}`)
				return
			}
			fmt.Fprint(w, `{"id": "p", "name": "n"}`)
		})

		for i := 0; i < 2; i++ {
			if _, err := srv.CreatePlaylist(context.Background(), "x"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		}

		if meRequests != 1 {
			t.Errorf("expected one /me request, got %d", meRequests)
		}
	})
}

func TestAddTracks(t *testing.T) {
	t.Run("Single Batch", func(t *testing.T) {
		var gotPath string
		var gotURIs []string

		srv := newSpotifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			var body struct {
				URIs []string `json:"uris"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("failed to decode add body: %v", err)
			}
			gotURIs = body.URIs
			w.WriteHeader(http.StatusCreated)
		})

		uris := []string{"spotify:track:a", "spotify:track:b"}
		if err := srv.AddTracks(context.Background(), "p1", uris); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if gotPath != "/playlists/p1/tracks" {
			t.Errorf("unexpected path: %s", gotPath)
		}
		if len(gotURIs) != 2 || gotURIs[0] != "spotify:track:a" {
			t.Errorf("unexpected URIs: %v", gotURIs)
		}
	})

	t.Run("Empty Batch", func(t *testing.T) {
		srv := newSpotifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected for an empty batch")
		})

		if err := srv.AddTracks(context.Background(), "p1", nil); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}
