package models

import (
	"fmt"
	"time"
)

// Concert represents one row of a concerts CSV file.
//
// DisplayDate is the override date used for output naming; it defaults to
// the concert date when the row carries no override columns.
type Concert struct {
	Group       string    // Artist or group name as searched on setlist.fm
	Date        time.Time // Date the concert took place
	DisplayDate time.Time // Date used when naming the output document
}

// FileName returns the on-disk document name for this concert given its
// 1-based position in the concerts file.
//
// Collisions between identical names are not detected; a later write
// overwrites an earlier one.
func (c Concert) FileName(seq int) string {
	return fmt.Sprintf("%s_%d_%s.json", c.DisplayDate.Format("2006-01-02"), seq, c.Group)
}

// SetlistResponse is the setlist.fm search response, persisted verbatim as
// one JSON document per matched concert.
type SetlistResponse struct {
	Type         string    `json:"type"`
	ItemsPerPage int       `json:"itemsPerPage"`
	Page         int       `json:"page"`
	Total        int       `json:"total"`
	Setlists     []Setlist `json:"setlist"`
}

// Setlist is a single concert's setlist within a search response.
type Setlist struct {
	ID        string        `json:"id"`
	VersionID string        `json:"versionId"`
	EventDate string        `json:"eventDate"`
	Artist    SetlistArtist `json:"artist"`
	Venue     *Venue        `json:"venue,omitempty"`
	Sets      Sets          `json:"sets"`
	URL       string        `json:"url,omitempty"`
}

// SetlistArtist identifies the performing (or covered) artist.
type SetlistArtist struct {
	MBID     string `json:"mbid,omitempty"`
	Name     string `json:"name"`
	SortName string `json:"sortName,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Venue is where the concert took place.
type Venue struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	City *City  `json:"city,omitempty"`
}

// City locates a venue.
type City struct {
	Name    string `json:"name"`
	State   string `json:"state,omitempty"`
	Country struct {
		Code string `json:"code,omitempty"`
		Name string `json:"name,omitempty"`
	} `json:"country"`
}

// Sets wraps the list of sets played at a concert.
type Sets struct {
	Set []Set `json:"set"`
}

// Set is one segment of a concert (main set, encore, ...).
type Set struct {
	Name   string `json:"name,omitempty"`
	Encore int    `json:"encore,omitempty"`
	Songs  []Song `json:"song"`
}

// Song is a single performed song.
type Song struct {
	Name  string         `json:"name"`
	Info  string         `json:"info,omitempty"`
	Tape  bool           `json:"tape,omitempty"`
	Cover *SetlistArtist `json:"cover,omitempty"`
}

// HasSongs reports whether the response carries at least one setlist whose
// first entry has a non-empty list of sets. Only the first setlist is
// considered, matching how documents are consumed downstream.
func (r *SetlistResponse) HasSongs() bool {
	return len(r.Setlists) > 0 && len(r.Setlists[0].Sets.Set) > 0
}

// ArtistName returns the performing artist of the first setlist, or "" when
// the response is empty.
func (r *SetlistResponse) ArtistName() string {
	if len(r.Setlists) == 0 {
		return ""
	}
	return r.Setlists[0].Artist.Name
}

// Songs returns the song names of the first setlist, walking every set in
// order.
func (r *SetlistResponse) Songs() []string {
	if len(r.Setlists) == 0 {
		return nil
	}

	var songs []string
	for _, set := range r.Setlists[0].Sets.Set {
		for _, song := range set.Songs {
			songs = append(songs, song.Name)
		}
	}
	return songs
}

// Track represents a music track resolved against the external catalog.
type Track struct {
	URI    string // Opaque catalog identifier used when mutating playlists
	ID     string
	Title  string
	Artist string
	Album  string
}

// Playlist represents a playlist on the streaming service.
type Playlist struct {
	ID          string
	Name        string
	Description string
	TrackCount  int
	Public      bool
}
