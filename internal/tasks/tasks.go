package tasks

import (
	"github.com/finallyfriday/encore/internal/models"
)

// FetchOutcome is the per-concert result of the download pipeline.
type FetchOutcome struct {
	Concert models.Concert // Concert row as read from the CSV
	File    string         // Path of the written document (empty on failure)
	Songs   int            // Songs in the persisted setlist
	Err     error          // Non-nil when the concert was skipped
}

// FetchResult aggregates a full download run.
type FetchResult struct {
	OutputDir string
	Outcomes  []FetchOutcome
	Written   int // Documents written
	Skipped   int // Concerts skipped (not found, retries exhausted, or other failures)
}

// SongMatch is the resolution result for a single song of a setlist.
type SongMatch struct {
	Song   string        // Song name as performed
	Artist string        // Performing artist used in the query
	Track  *models.Track // Accepted match (nil when the song was dropped)
	Warned bool          // Match accepted despite a metadata mismatch
	Err    error         // Non-nil when no match was found
}

// ConcertBuild is the per-document result of the playlist pipeline.
type ConcertBuild struct {
	Name    string // Document name without extension
	Matches []SongMatch
	Added   int   // Tracks submitted to the playlist for this concert
	Err     error // Non-nil when the batch submission failed or was skipped
}

// BuildResult aggregates a full playlist-building run.
type BuildResult struct {
	Playlist    *models.Playlist // Playlist every batch was appended to
	Created     bool             // Whether the playlist was created by this run
	Concerts    []ConcertBuild
	TotalAdded  int // Tracks added across all concerts
	TotalMissed int // Songs dropped because no match was found
}
