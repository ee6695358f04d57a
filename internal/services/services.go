package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/finallyfriday/encore/internal/models"
	"golang.org/x/oauth2"
)

// SetlistService searches a setlist database for a concert by artist and date.
type SetlistService interface {
	// FindSetlist queries the search endpoint for the given artist and
	// concert date. It returns the parsed response alongside the raw body so
	// the document can be persisted verbatim.
	//
	// Returns an error wrapping [shared.ErrSetlistNotFound] when the search
	// succeeds but no non-empty setlist exists, and one wrapping
	// [shared.ErrRetriesExhausted] when every retry failed.
	FindSetlist(ctx context.Context, artist string, date time.Time) (*models.SetlistResponse, json.RawMessage, error)

	// Name returns the name of the service (e.g. "setlist.fm")
	Name() string
}

// PlaylistService provides track search and playlist CRUD on a music catalog.
type PlaylistService interface {
	// SearchTrack searches for a track by title and artist and returns the
	// single best match, or an error wrapping [shared.ErrTrackNotFound].
	SearchTrack(ctx context.Context, title, artist string) (*models.Track, error)

	// GetPlaylists retrieves all playlists of the authenticated user.
	GetPlaylists(ctx context.Context) ([]models.Playlist, error)

	// CreatePlaylist creates a new playlist with the given name.
	CreatePlaylist(ctx context.Context, name string) (*models.Playlist, error)

	// AddTracks appends a batch of track URIs to a playlist in one call.
	AddTracks(ctx context.Context, playlistID string, uris []string) error

	// Name returns the name of the service (e.g. "Spotify")
	Name() string
}

// OAuthService is implemented by services that authenticate through an
// OAuth2 authorization-code flow.
type OAuthService interface {
	// GetAuthURL returns the authorization URL for user login.
	GetAuthURL(state string) string

	// GetOAuthConfig exposes the underlying OAuth2 config for the callback
	// handler's code exchange.
	GetOAuthConfig() *oauth2.Config
}
