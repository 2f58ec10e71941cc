package normalize

import (
	"fmt"
	"strings"

	"github.com/desertthunder/ytmeta/internal/catalog"
	"github.com/desertthunder/ytmeta/internal/models"
)

// Shape identifies which upstream call produced an entry.
type Shape int

const (
	ShapeSearch        Shape = iota // search results
	ShapeWatchPlaylist              // "up next" queue tracks
	ShapeAlbumTrack                 // album page tracks, laid out like watch-playlist tracks
	ShapeArtistPage                 // artist page songs shelf
)

func (s Shape) String() string {
	switch s {
	case ShapeSearch:
		return "search"
	case ShapeWatchPlaylist:
		return "watch_playlist"
	case ShapeAlbumTrack:
		return "album_track"
	case ShapeArtistPage:
		return "artist_page"
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// Mode selects which field table a [Parser] uses.
type Mode string

const (
	ModeStrict  Mode = "strict"
	ModeUnified Mode = "unified"
)

// ParseMode converts a config value into a [Mode].
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeStrict, ModeUnified:
		return m, nil
	case "":
		return ModeStrict, nil
	}
	return "", fmt.Errorf("unknown normalize mode %q", s)
}

type durationKind int

const (
	durationInteger durationKind = iota // already seconds
	durationText                        // "M:SS" style text
)

type durationField struct {
	key  string
	kind durationKind
}

// fieldMap lists, in lookup order, the keys a shape stores its thumbnails and duration under.
type fieldMap struct {
	thumbnails []string
	durations  []durationField
}

var (
	searchDuration = durationField{key: "duration_seconds", kind: durationInteger}
	lengthDuration = durationField{key: "length", kind: durationText}
)

var strictFields = map[Shape]fieldMap{
	ShapeSearch:        {thumbnails: []string{"thumbnails"}, durations: []durationField{searchDuration}},
	ShapeWatchPlaylist: {thumbnails: []string{"thumbnail"}, durations: []durationField{lengthDuration}},
	ShapeAlbumTrack:    {thumbnails: []string{"thumbnail"}, durations: []durationField{lengthDuration}},
	ShapeArtistPage:    {thumbnails: []string{"thumbnails"}},
}

var unifiedFields = map[Shape]fieldMap{
	ShapeSearch: {
		thumbnails: []string{"thumbnails", "thumbnail"},
		durations:  []durationField{searchDuration, lengthDuration},
	},
	ShapeWatchPlaylist: {
		thumbnails: []string{"thumbnail", "thumbnails"},
		durations:  []durationField{lengthDuration, searchDuration},
	},
	ShapeAlbumTrack: {
		thumbnails: []string{"thumbnail", "thumbnails"},
		durations:  []durationField{lengthDuration, searchDuration},
	},
	ShapeArtistPage: {thumbnails: []string{"thumbnails", "thumbnail"}},
}

// Parser maps catalog entries onto songs. The zero value is not usable; see [NewParser].
type Parser struct {
	mode           Mode
	fields         map[Shape]fieldMap
	artistFallback string
}

// Option configures a [Parser].
type Option func(*Parser)

// WithMode selects the strict or unified field table.
func WithMode(m Mode) Option {
	return func(p *Parser) {
		p.mode = m
	}
}

// WithArtistFallback sets the artist name used when an entry lists no named artists.
func WithArtistFallback(name string) Option {
	return func(p *Parser) {
		p.artistFallback = name
	}
}

// NewParser creates a strict parser with an empty artist fallback unless overridden.
func NewParser(opts ...Option) *Parser {
	p := &Parser{mode: ModeStrict}
	for _, opt := range opts {
		opt(p)
	}

	p.fields = strictFields
	if p.mode == ModeUnified {
		p.fields = unifiedFields
	}
	return p
}

// Mode returns the parser's field table mode.
func (p *Parser) Mode() Mode {
	return p.mode
}

// Parse maps a single entry. It reports false for an empty entry or an unknown shape.
func (p *Parser) Parse(shape Shape, entry catalog.Entry) (*models.Song, bool) {
	fields, ok := p.fields[shape]
	if !ok || entry.Empty() {
		return nil, false
	}

	title, _ := entry.String("title")
	videoID, _ := entry.String("videoId")

	song := &models.Song{
		Title:     title,
		VideoID:   videoID,
		Thumbnail: lastThumbnail(entry, fields.thumbnails),
		Duration:  duration(entry, fields.durations),
	}
	song.ArtistName, song.ArtistID = p.artists(entry)
	song.AlbumName, song.AlbumID = album(entry)

	return song, true
}

// ParseAll maps entries in order, skipping empty ones, and stops after limit songs.
// A limit of zero or less means no limit.
func (p *Parser) ParseAll(shape Shape, entries []catalog.Entry, limit int) []models.Song {
	songs := make([]models.Song, 0, len(entries))
	for _, entry := range entries {
		if limit > 0 && len(songs) >= limit {
			break
		}
		if song, ok := p.Parse(shape, entry); ok {
			songs = append(songs, *song)
		}
	}
	return songs
}

func (p *Parser) artists(entry catalog.Entry) (string, *string) {
	artists := entry.Objects("artists")

	names := make([]string, 0, len(artists))
	for _, a := range artists {
		if name, ok := a.String("name"); ok && name != "" {
			names = append(names, name)
		}
	}

	var id *string
	if len(artists) > 0 {
		id = nonEmpty(artists[0], "id")
	}

	if len(names) == 0 {
		return p.artistFallback, id
	}
	return strings.Join(names, ", "), id
}

func album(entry catalog.Entry) (*string, *string) {
	obj, ok := entry.Object("album")
	if !ok {
		return nil, nil
	}
	return nonEmpty(obj, "name"), nonEmpty(obj, "id")
}

// lastThumbnail returns the URL of the last (largest) thumbnail in the first non-empty list.
func lastThumbnail(entry catalog.Entry, keys []string) *string {
	for _, key := range keys {
		thumbs := entry.Objects(key)
		if len(thumbs) == 0 {
			continue
		}
		return nonEmpty(thumbs[len(thumbs)-1], "url")
	}
	return nil
}

func duration(entry catalog.Entry, fields []durationField) *int {
	for _, f := range fields {
		v, ok := entry[f.key]
		if !ok || v == nil {
			continue
		}

		var (
			secs  int
			valid bool
		)
		switch f.kind {
		case durationInteger:
			secs, valid = integerSeconds(v)
		case durationText:
			secs, valid = ParseDuration(v)
		}
		if valid {
			return &secs
		}
	}
	return nil
}

func nonEmpty(e catalog.Entry, key string) *string {
	s, ok := e.String(key)
	if !ok || s == "" {
		return nil
	}
	return &s
}
