package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/finallyfriday/encore/internal/formatter"
	"github.com/finallyfriday/encore/internal/services"
	"github.com/finallyfriday/encore/internal/shared"
	"github.com/finallyfriday/encore/internal/tasks"
	"github.com/urfave/cli/v3"
)

// CreatePlaylist reads setlist documents from the input directory and appends
// their songs to a Spotify playlist, one batch per concert.
func (r *Runner) CreatePlaylist(ctx context.Context, cmd *cli.Command) error {
	r.applyDebug(cmd)

	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	if r.spotify == nil {
		service, err := services.NewSpotifyService(config.Spotify.Map())
		if err != nil {
			return err
		}

		token := config.Spotify.Token()
		if token == nil {
			return fmt.Errorf("%w: no spotify tokens in config, run encore auth first", shared.ErrNotAuthenticated)
		}
		if err := service.Authenticate(ctx, token); err != nil {
			return err
		}

		r.spotify = service
	}

	inputDir := filepath.Join(config.Directories.SetlistsDir, cmd.String("input_dir"))
	playlistName := cmd.String("playlist_name")
	r.logger.Info("building playlist", "input_dir", inputDir, "playlist_name", playlistName)

	builder := tasks.NewBuilder(r.spotify, r.logger)
	result, err := builder.Run(ctx, inputDir, playlistName)
	if err != nil {
		return err
	}

	return r.writePlain("%s", formatter.BuildSummary(result))
}
