// package testing contains shared testing utilities
package testing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/finallyfriday/encore/internal/models"
)

// MockSetlistService is a test double for [services.SetlistService].
//
// FindFn, when set, overrides the canned Response/Raw/Err fields.
type MockSetlistService struct {
	Response *models.SetlistResponse
	Raw      json.RawMessage
	Err      error
	Calls    int
	FindFn   func(artist string, date time.Time) (*models.SetlistResponse, json.RawMessage, error)
}

func (m *MockSetlistService) FindSetlist(ctx context.Context, artist string, date time.Time) (*models.SetlistResponse, json.RawMessage, error) {
	m.Calls++
	if m.FindFn != nil {
		return m.FindFn(artist, date)
	}
	return m.Response, m.Raw, m.Err
}

func (m *MockSetlistService) Name() string { return "mock setlists" }

// MockPlaylistService is a test double for [services.PlaylistService].
type MockPlaylistService struct {
	Playlists   []models.Playlist
	SearchFn    func(title, artist string) (*models.Track, error)
	AddErr      error
	CreateErr   error
	ListErr     error
	Created     []models.Playlist
	AddedBy     map[string][][]string // playlist ID → batches of URIs
	SearchCalls int
}

func (m *MockPlaylistService) SearchTrack(ctx context.Context, title, artist string) (*models.Track, error) {
	m.SearchCalls++
	if m.SearchFn != nil {
		return m.SearchFn(title, artist)
	}
	return nil, errors.New("no search function configured")
}

func (m *MockPlaylistService) GetPlaylists(ctx context.Context) ([]models.Playlist, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Playlists, nil
}

func (m *MockPlaylistService) CreatePlaylist(ctx context.Context, name string) (*models.Playlist, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	playlist := models.Playlist{
		ID:   fmt.Sprintf("created-%d", len(m.Created)+1),
		Name: name,
	}
	m.Created = append(m.Created, playlist)
	return &playlist, nil
}

func (m *MockPlaylistService) AddTracks(ctx context.Context, playlistID string, uris []string) error {
	if m.AddErr != nil {
		return m.AddErr
	}
	if m.AddedBy == nil {
		m.AddedBy = make(map[string][][]string)
	}
	batch := make([]string, len(uris))
	copy(batch, uris)
	m.AddedBy[playlistID] = append(m.AddedBy[playlistID], batch)
	return nil
}

func (m *MockPlaylistService) Name() string { return "mock catalog" }

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
