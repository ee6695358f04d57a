package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/finallyfriday/encore/internal/models"
	"github.com/finallyfriday/encore/internal/services"
	"github.com/finallyfriday/encore/internal/shared"
)

// Fetcher runs the setlist download pipeline.
type Fetcher struct {
	setlists services.SetlistService
	logger   *log.Logger
}

// NewFetcher creates a Fetcher over the given setlist service.
func NewFetcher(setlists services.SetlistService, logger *log.Logger) *Fetcher {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Fetcher{setlists: setlists, logger: logger}
}

// Run searches the setlist service for every concert and writes one indented
// JSON document per match into outputDir, named
// <display-date>_<sequence>_<group>.json with a 1-based sequence.
//
// Per-concert failures (not found, retries exhausted, write errors) are
// logged and recorded; the run continues with the next concert. Identical
// file names are overwritten silently.
func (f *Fetcher) Run(ctx context.Context, concertList []models.Concert, outputDir string) (*FetchResult, error) {
	if f.setlists == nil {
		return nil, errors.New("setlist service not initialized")
	}

	if err := shared.EnsureDir(outputDir); err != nil {
		return nil, err
	}

	result := &FetchResult{
		OutputDir: outputDir,
		Outcomes:  make([]FetchOutcome, 0, len(concertList)),
	}

	for i, concert := range concertList {
		outcome := FetchOutcome{Concert: concert}

		response, raw, err := f.setlists.FindSetlist(ctx, concert.Group, concert.Date)
		if err != nil {
			f.logger.Error("setlist fetch failed", "artist", concert.Group, "date", concert.Date.Format("2006-01-02"), "error", err)
			outcome.Err = err
			result.Outcomes = append(result.Outcomes, outcome)
			result.Skipped++
			continue
		}

		path := filepath.Join(outputDir, concert.FileName(i+1))
		if err := writeDocument(path, raw); err != nil {
			f.logger.Error("failed to write setlist document", "file", path, "error", err)
			outcome.Err = err
			result.Outcomes = append(result.Outcomes, outcome)
			result.Skipped++
			continue
		}

		outcome.File = path
		outcome.Songs = len(response.Songs())
		result.Outcomes = append(result.Outcomes, outcome)
		result.Written++

		f.logger.Info("setlist saved", "artist", response.ArtistName(), "file", path, "songs", outcome.Songs)
	}

	return result, nil
}

// writeDocument persists the raw API response, indented, overwriting any
// existing file of the same name.
func writeDocument(path string, raw []byte) error {
	indented, err := shared.IndentJSON(raw)
	if err != nil {
		return err
	}
	return os.WriteFile(path, indented, 0644)
}
