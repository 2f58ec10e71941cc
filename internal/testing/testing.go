// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/ytmeta/internal/catalog"
)

// ErrUpstream is the failure returned by stubs configured to fail.
var ErrUpstream = errors.New("upstream unavailable")

// StubGateway is a test double for [catalog.Gateway].
//
// Each call is answered by the matching func field; a nil field returns an empty payload.
// Calls are counted per method.
type StubGateway struct {
	SearchFn        func(query, filter string, limit int) ([]catalog.Entry, error)
	WatchPlaylistFn func(videoID string, limit int) (*catalog.WatchPlaylist, error)
	ArtistFn        func(channelID string) (*catalog.ArtistPage, error)
	AlbumFn         func(browseID string) (*catalog.AlbumPage, error)
	LyricsFn        func(browseID string) (*catalog.Lyrics, error)

	mu    sync.Mutex
	calls map[string]int
}

func (s *StubGateway) record(method string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = map[string]int{}
	}
	s.calls[method]++
}

// Calls returns how many times method was invoked.
func (s *StubGateway) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

func (s *StubGateway) Search(_ context.Context, query, filter string, limit int) ([]catalog.Entry, error) {
	s.record("Search")
	if s.SearchFn == nil {
		return nil, nil
	}
	return s.SearchFn(query, filter, limit)
}

func (s *StubGateway) WatchPlaylist(_ context.Context, videoID string, limit int) (*catalog.WatchPlaylist, error) {
	s.record("WatchPlaylist")
	if s.WatchPlaylistFn == nil {
		return &catalog.WatchPlaylist{}, nil
	}
	return s.WatchPlaylistFn(videoID, limit)
}

func (s *StubGateway) Artist(_ context.Context, channelID string) (*catalog.ArtistPage, error) {
	s.record("Artist")
	if s.ArtistFn == nil {
		return &catalog.ArtistPage{}, nil
	}
	return s.ArtistFn(channelID)
}

func (s *StubGateway) Album(_ context.Context, browseID string) (*catalog.AlbumPage, error) {
	s.record("Album")
	if s.AlbumFn == nil {
		return &catalog.AlbumPage{}, nil
	}
	return s.AlbumFn(browseID)
}

func (s *StubGateway) Lyrics(_ context.Context, browseID string) (*catalog.Lyrics, error) {
	s.record("Lyrics")
	if s.LyricsFn == nil {
		return nil, nil
	}
	return s.LyricsFn(browseID)
}

// Track builds a minimal upstream entry.
func Track(videoID, title string) catalog.Entry {
	return catalog.Entry{"videoId": videoID, "title": title}
}

// SeedEntry builds a search entry with the given artist and album ids.
func SeedEntry(videoID, artistID, albumID string) catalog.Entry {
	e := Track(videoID, "seed")
	if artistID != "" {
		e["artists"] = []any{map[string]any{"name": "Seed Artist", "id": artistID}}
	}
	if albumID != "" {
		e["album"] = map[string]any{"name": "Seed Album", "id": albumID}
	}
	return e
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

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
