// Package catalog is the boundary to the upstream music catalog.
//
// [Gateway] mirrors the five ytmusicapi calls the service depends on. [Client] implements it against
// a ytmusicapi sidecar proxy over HTTP; tests substitute their own Gateway.
//
// Payloads are kept as decoded JSON objects ([Entry]) because their field names differ between call
// sites. Mapping them onto songs is the job of the normalize package.
package catalog

import "context"

// FilterSongs restricts a search to songs.
const FilterSongs = "songs"

// Gateway is the upstream catalog provider.
type Gateway interface {
	// Search runs a free-text search limited to the given result filter.
	Search(ctx context.Context, query, filter string, limit int) ([]Entry, error)

	// WatchPlaylist returns the continuous playback queue starting at videoID.
	// The first track is the seed itself.
	WatchPlaylist(ctx context.Context, videoID string, limit int) (*WatchPlaylist, error)

	// Artist returns an artist page.
	Artist(ctx context.Context, channelID string) (*ArtistPage, error)

	// Album returns an album page with its track list.
	Album(ctx context.Context, browseID string) (*AlbumPage, error)

	// Lyrics returns the lyrics for a lyrics browse id, or nil when the provider has none.
	Lyrics(ctx context.Context, browseID string) (*Lyrics, error)
}
