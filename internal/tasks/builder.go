package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/finallyfriday/encore/internal/models"
	"github.com/finallyfriday/encore/internal/services"
	"github.com/finallyfriday/encore/internal/shared"
)

// Builder runs the playlist-building pipeline.
type Builder struct {
	catalog services.PlaylistService
	logger  *log.Logger
}

// NewBuilder creates a Builder over the given playlist service.
func NewBuilder(catalog services.PlaylistService, logger *log.Logger) *Builder {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Builder{catalog: catalog, logger: logger}
}

// Run reads every setlist document in inputDir, resolves each song against
// the catalog, and appends each concert's matches to the playlist in one
// batch call.
//
// When playlistName is set the user's playlists are searched for an exact
// name match (first match wins) and the playlist is created if absent. When
// empty a new playlist named Concerts_<input-dir-base> is always created.
func (b *Builder) Run(ctx context.Context, inputDir, playlistName string) (*BuildResult, error) {
	if b.catalog == nil {
		return nil, errors.New("playlist service not initialized")
	}

	playlist, created, err := b.resolvePlaylist(ctx, inputDir, playlistName)
	if err != nil {
		return nil, err
	}

	result := &BuildResult{Playlist: playlist, Created: created}

	files, err := shared.ListFiles(inputDir, ".json")
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		build := b.buildConcert(ctx, file, playlist)
		result.Concerts = append(result.Concerts, build)
		result.TotalAdded += build.Added
		for _, match := range build.Matches {
			if match.Err != nil {
				result.TotalMissed++
			}
		}
	}

	return result, nil
}

// resolvePlaylist looks up or creates the target playlist.
func (b *Builder) resolvePlaylist(ctx context.Context, inputDir, playlistName string) (*models.Playlist, bool, error) {
	if playlistName == "" {
		generated := fmt.Sprintf("Concerts_%s", filepath.Base(inputDir))
		b.logger.Info("no playlist name supplied, creating one", "name", generated)
		playlist, err := b.catalog.CreatePlaylist(ctx, generated)
		if err != nil {
			return nil, false, fmt.Errorf("failed to create playlist %q: %w", generated, err)
		}
		return playlist, true, nil
	}

	playlists, err := b.catalog.GetPlaylists(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to list playlists: %w", err)
	}

	for _, playlist := range playlists {
		if playlist.Name == playlistName {
			return &playlist, false, nil
		}
	}

	b.logger.Info("playlist not found, creating it", "name", playlistName)
	playlist, err := b.catalog.CreatePlaylist(ctx, playlistName)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create playlist %q: %w", playlistName, err)
	}

	return playlist, true, nil
}

// buildConcert resolves one setlist document and submits its matches.
func (b *Builder) buildConcert(ctx context.Context, file string, playlist *models.Playlist) ConcertBuild {
	name := strings.TrimSuffix(filepath.Base(file), ".json")
	build := ConcertBuild{Name: name}

	data, err := shared.VerifyAndReadFile(file)
	if err != nil {
		b.logger.Error("failed to read setlist document", "file", file, "error", err)
		build.Err = err
		return build
	}

	var setlist models.SetlistResponse
	if err := json.Unmarshal(data, &setlist); err != nil {
		b.logger.Error("failed to decode setlist document", "file", file, "error", err)
		build.Err = fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
		return build
	}

	artist := setlist.ArtistName()

	var uris []string
	for _, song := range setlist.Songs() {
		match := b.matchSong(ctx, song, artist, playlist.Name)
		build.Matches = append(build.Matches, match)
		if match.Track != nil {
			uris = append(uris, match.Track.URI)
		}
	}

	if len(uris) == 0 {
		b.logger.Error("no matching tracks found for concert", "concert", name)
		build.Err = fmt.Errorf("%w: no matching tracks for concert %q", shared.ErrTrackNotFound, name)
		return build
	}

	if err := b.catalog.AddTracks(ctx, playlist.ID, uris); err != nil {
		b.logger.Error("failed to add tracks to playlist", "concert", name, "playlist", playlist.Name, "error", err)
		build.Err = err
		return build
	}

	build.Added = len(uris)
	b.logger.Info("concert added", "concert", name, "tracks", build.Added)
	return build
}

// matchSong resolves a single song against the catalog.
//
// A found track whose title or first artist differs case-insensitively from
// the query is accepted anyway, with a warning; tolerance for minor metadata
// mismatches is intentional.
func (b *Builder) matchSong(ctx context.Context, song, artist, playlistName string) SongMatch {
	match := SongMatch{Song: song, Artist: artist}

	track, err := b.catalog.SearchTrack(ctx, song, artist)
	if err != nil {
		b.logger.Error("track not found", "artist", artist, "song", song)
		match.Err = err
		return match
	}

	if !strings.EqualFold(track.Artist, artist) || !strings.EqualFold(track.Title, song) {
		b.logger.Warn("accepted inexact match",
			"artist_found", track.Artist, "artist_query", artist,
			"track_found", track.Title, "track_query", song)
		match.Warned = true
	}

	b.logger.Debug("adding track to playlist", "artist", artist, "song", song, "playlist", playlistName)
	match.Track = track
	return match
}
