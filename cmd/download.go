package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/finallyfriday/encore/internal/concerts"
	"github.com/finallyfriday/encore/internal/formatter"
	"github.com/finallyfriday/encore/internal/services"
	"github.com/finallyfriday/encore/internal/tasks"
	"github.com/urfave/cli/v3"
)

// DownloadSetlists reads a concerts CSV and downloads one setlist document
// per concert into the output directory.
func (r *Runner) DownloadSetlists(ctx context.Context, cmd *cli.Command) error {
	r.applyDebug(cmd)

	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	if r.setlists == nil {
		service, err := services.NewSetlistFMService(services.SetlistFMOpts{
			APIKey:           config.Setlistfm.APIKey,
			BaseURL:          config.Setlistfm.BaseURL,
			SearchEndpoint:   config.Setlistfm.SearchEndpoint,
			NumRetries:       config.Setlistfm.NumRetries,
			RetriableReasons: config.Setlistfm.RetriableReasons,
			RateLimit:        config.Setlistfm.RateLimit,
			Logger:           r.logger,
		})
		if err != nil {
			return err
		}
		r.setlists = service
	}

	concertsFile := filepath.Join(config.Directories.ConcertsDir, cmd.String("concerts_file"))
	concertList, err := concerts.ReadFile(concertsFile)
	if err != nil {
		return fmt.Errorf("failed to read concerts file %q: %w", concertsFile, err)
	}

	outputDir := filepath.Join(config.Directories.SetlistsDir, cmd.String("output_dir"))
	r.logger.Info("downloading setlists", "concerts", len(concertList), "output_dir", outputDir)

	fetcher := tasks.NewFetcher(r.setlists, r.logger)
	result, err := fetcher.Run(ctx, concertList, outputDir)
	if err != nil {
		return err
	}

	return r.writePlain("%s", formatter.FetchSummary(result))
}
