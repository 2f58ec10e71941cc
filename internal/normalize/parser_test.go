package normalize

import (
	"encoding/json"
	"testing"

	"github.com/desertthunder/ytmeta/internal/catalog"
)

func decode(t *testing.T, raw string) catalog.Entry {
	t.Helper()
	var entry catalog.Entry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		t.Fatalf("failed to decode fixture: %v", err)
	}
	return entry
}

func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

const searchFixture = `{
	"title": "Bohemian Rhapsody",
	"videoId": "fJ9rUzIMcZQ",
	"artists": [{"name": "Queen", "id": "A1"}],
	"album": {"name": "A Night at the Opera", "id": "AL1"},
	"thumbnails": [{"url": "small"}, {"url": "big"}],
	"duration": "5:54",
	"duration_seconds": 354
}`

const watchFixture = `{
	"title": "Somebody to Love",
	"videoId": "kijpcUv-b8M",
	"artists": [{"name": "Queen", "id": "A1"}, {"name": "", "id": "A9"}, {"name": "Guest"}],
	"album": {"name": "A Day at the Races", "id": "AL2"},
	"thumbnail": [{"url": "t60"}, {"url": "t120"}, {"url": "t544"}],
	"length": "4:57"
}`

const artistFixture = `{
	"title": "Don't Stop Me Now",
	"videoId": "HgzGwKwLmgM",
	"artists": [{"name": "Queen", "id": "A1"}],
	"album": {"name": "Jazz", "id": "AL3"},
	"thumbnails": [{"url": "a1"}],
	"duration_seconds": 209,
	"length": "3:29"
}`

func TestParserSearch(t *testing.T) {
	p := NewParser()
	song, ok := p.Parse(ShapeSearch, decode(t, searchFixture))
	if !ok {
		t.Fatal("expected a song")
	}

	checks := []struct {
		field string
		got   any
		want  any
	}{
		{"title", song.Title, "Bohemian Rhapsody"},
		{"videoId", song.VideoID, "fJ9rUzIMcZQ"},
		{"artist_name", song.ArtistName, "Queen"},
		{"artistId", deref(song.ArtistID), "A1"},
		{"album_name", deref(song.AlbumName), "A Night at the Opera"},
		{"albumId", deref(song.AlbumID), "AL1"},
		{"thumbnail", deref(song.Thumbnail), "big"},
		{"duration", deref(song.Duration), 354},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.field, c.got, c.want)
		}
	}
}

func TestParserWatchPlaylist(t *testing.T) {
	p := NewParser()

	for _, shape := range []Shape{ShapeWatchPlaylist, ShapeAlbumTrack} {
		t.Run(shape.String(), func(t *testing.T) {
			song, ok := p.Parse(shape, decode(t, watchFixture))
			if !ok {
				t.Fatal("expected a song")
			}
			if song.ArtistName != "Queen, Guest" {
				t.Errorf("expected artist name 'Queen, Guest', got %q", song.ArtistName)
			}
			if deref(song.ArtistID) != "A1" {
				t.Errorf("expected artistId A1, got %v", deref(song.ArtistID))
			}
			if deref(song.Thumbnail) != "t544" {
				t.Errorf("expected thumbnail t544, got %v", deref(song.Thumbnail))
			}
			if deref(song.Duration) != 297 {
				t.Errorf("expected duration 297, got %v", deref(song.Duration))
			}
		})
	}
}

func TestParserArtistPage(t *testing.T) {
	song, ok := NewParser().Parse(ShapeArtistPage, decode(t, artistFixture))
	if !ok {
		t.Fatal("expected a song")
	}
	if song.Duration != nil {
		t.Errorf("expected no duration for artist page songs, got %d", *song.Duration)
	}
	if deref(song.Thumbnail) != "a1" {
		t.Errorf("expected thumbnail a1, got %v", deref(song.Thumbnail))
	}
	if deref(song.AlbumID) != "AL3" {
		t.Errorf("expected albumId AL3, got %v", deref(song.AlbumID))
	}
}

func TestParserEmptyEntries(t *testing.T) {
	p := NewParser()
	shapes := []Shape{ShapeSearch, ShapeWatchPlaylist, ShapeAlbumTrack, ShapeArtistPage}

	for _, shape := range shapes {
		t.Run(shape.String(), func(t *testing.T) {
			if song, ok := p.Parse(shape, nil); ok || song != nil {
				t.Errorf("expected no record for nil entry, got %+v", song)
			}
			if song, ok := p.Parse(shape, catalog.Entry{}); ok || song != nil {
				t.Errorf("expected no record for empty entry, got %+v", song)
			}
		})
	}

	t.Run("unknown shape", func(t *testing.T) {
		if _, ok := p.Parse(Shape(42), decode(t, searchFixture)); ok {
			t.Error("expected no record for unknown shape")
		}
	})
}

func TestParserMissingFields(t *testing.T) {
	p := NewParser()

	t.Run("degrade to absent", func(t *testing.T) {
		song, ok := p.Parse(ShapeSearch, decode(t, `{"title": "Bare", "videoId": "v1"}`))
		if !ok {
			t.Fatal("expected a song")
		}
		if song.ArtistName != "" {
			t.Errorf("expected empty artist name, got %q", song.ArtistName)
		}
		if song.ArtistID != nil || song.AlbumName != nil || song.AlbumID != nil || song.Thumbnail != nil || song.Duration != nil {
			t.Errorf("expected absent optional fields, got %+v", song)
		}
	})

	t.Run("null album and empty thumbnails", func(t *testing.T) {
		song, _ := p.Parse(ShapeSearch, decode(t, `{"videoId": "v1", "album": null, "thumbnails": [], "duration_seconds": null}`))
		if song.AlbumName != nil || song.Thumbnail != nil || song.Duration != nil {
			t.Errorf("expected absent optional fields, got %+v", song)
		}
	})

	t.Run("first artist without id", func(t *testing.T) {
		song, _ := p.Parse(ShapeSearch, decode(t, `{"videoId": "v1", "artists": [{"name": "A"}, {"name": "B", "id": "B1"}]}`))
		if song.ArtistID != nil {
			t.Errorf("expected absent artistId, got %v", *song.ArtistID)
		}
		if song.ArtistName != "A, B" {
			t.Errorf("expected 'A, B', got %q", song.ArtistName)
		}
	})

	t.Run("malformed length", func(t *testing.T) {
		song, _ := p.Parse(ShapeWatchPlaylist, decode(t, `{"videoId": "v1", "length": "live"}`))
		if song.Duration != nil {
			t.Errorf("expected absent duration, got %d", *song.Duration)
		}
	})

	t.Run("artist fallback", func(t *testing.T) {
		fp := NewParser(WithArtistFallback("N/A"))
		song, _ := fp.Parse(ShapeSearch, decode(t, `{"videoId": "v1", "artists": []}`))
		if song.ArtistName != "N/A" {
			t.Errorf("expected N/A, got %q", song.ArtistName)
		}
	})
}

func TestParserModes(t *testing.T) {
	// search-shaped fields arriving from a watch-playlist call
	const drifted = `{
		"videoId": "v1",
		"thumbnails": [{"url": "s"}, {"url": "l"}],
		"duration_seconds": 180
	}`

	t.Run("strict ignores foreign keys", func(t *testing.T) {
		song, _ := NewParser(WithMode(ModeStrict)).Parse(ShapeWatchPlaylist, decode(t, drifted))
		if song.Thumbnail != nil || song.Duration != nil {
			t.Errorf("expected strict parser to ignore search keys, got %+v", song)
		}
	})

	t.Run("unified falls back", func(t *testing.T) {
		song, _ := NewParser(WithMode(ModeUnified)).Parse(ShapeWatchPlaylist, decode(t, drifted))
		if deref(song.Thumbnail) != "l" {
			t.Errorf("expected thumbnail l, got %v", deref(song.Thumbnail))
		}
		if deref(song.Duration) != 180 {
			t.Errorf("expected duration 180, got %v", deref(song.Duration))
		}
	})

	t.Run("unified search reads length", func(t *testing.T) {
		song, _ := NewParser(WithMode(ModeUnified)).Parse(ShapeSearch, decode(t, `{"videoId": "v1", "length": "2:00", "thumbnail": [{"url": "x"}]}`))
		if deref(song.Duration) != 120 || deref(song.Thumbnail) != "x" {
			t.Errorf("unexpected song %+v", song)
		}
	})

	t.Run("unified artist page still has no duration", func(t *testing.T) {
		song, _ := NewParser(WithMode(ModeUnified)).Parse(ShapeArtistPage, decode(t, artistFixture))
		if song.Duration != nil {
			t.Errorf("expected no duration, got %d", *song.Duration)
		}
	})
}

func TestParseAll(t *testing.T) {
	p := NewParser()
	entries := []catalog.Entry{
		decode(t, `{"videoId": "a"}`),
		nil,
		decode(t, `{"videoId": "b"}`),
		{},
		decode(t, `{"videoId": "c"}`),
	}

	t.Run("skips empty entries", func(t *testing.T) {
		songs := p.ParseAll(ShapeSearch, entries, 0)
		if len(songs) != 3 {
			t.Fatalf("expected 3 songs, got %d", len(songs))
		}
		for i, want := range []string{"a", "b", "c"} {
			if songs[i].VideoID != want {
				t.Errorf("songs[%d] = %s, want %s", i, songs[i].VideoID, want)
			}
		}
	})

	t.Run("respects limit", func(t *testing.T) {
		if songs := p.ParseAll(ShapeSearch, entries, 2); len(songs) != 2 {
			t.Errorf("expected 2 songs, got %d", len(songs))
		}
	})

	t.Run("empty input yields empty slice", func(t *testing.T) {
		songs := p.ParseAll(ShapeSearch, nil, 0)
		if songs == nil || len(songs) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", songs)
		}
	})
}

func TestParseMode(t *testing.T) {
	tt := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{input: "strict", want: ModeStrict},
		{input: "Unified", want: ModeUnified},
		{input: "", want: ModeStrict},
		{input: "fuzzy", wantErr: true},
	}

	for _, tc := range tt {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseMode(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseMode(%q) = %s, want %s", tc.input, got, tc.want)
			}
		})
	}
}
