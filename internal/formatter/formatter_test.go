package formatter

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/ytmeta/internal/models"
	"github.com/desertthunder/ytmeta/internal/shared"
	th "github.com/desertthunder/ytmeta/internal/testing"
)

func ptr[T any](v T) *T { return &v }

func testSongs() []models.Song {
	return []models.Song{
		{
			Title:      "Bohemian Rhapsody",
			ArtistName: "Queen",
			VideoID:    "fJ9rUzIMcZQ",
			Thumbnail:  ptr("https://img/large.jpg"),
			Duration:   ptr(354),
			ArtistID:   ptr("UCiMhD4jzUqG-IgPzUmmytRQ"),
			AlbumName:  ptr("A Night at the Opera"),
			AlbumID:    ptr("MPREb_1"),
		},
		{
			Title:      "Under Pressure",
			ArtistName: "Queen, David Bowie",
			VideoID:    "a01QQZyl-_I",
		},
	}
}

func TestFormatDuration(t *testing.T) {
	tt := []struct {
		in   *int
		want string
	}{
		{nil, "-"},
		{ptr(0), "0:00"},
		{ptr(59), "0:59"},
		{ptr(354), "5:54"},
		{ptr(3600), "1:00:00"},
		{ptr(3725), "1:02:05"},
	}
	for _, tc := range tt {
		if got := FormatDuration(tc.in); got != tc.want {
			t.Errorf("FormatDuration() = %q, want %q", got, tc.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tt := []struct {
		in   string
		want Format
	}{
		{"", FormatJSON},
		{"JSON", FormatJSON},
		{"csv", FormatCSV},
		{"md", FormatMarkdown},
		{"markdown", FormatMarkdown},
		{" text ", FormatText},
	}
	for _, tc := range tt {
		got, err := ParseFormat(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}

	if _, err := ParseFormat("yaml"); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected invalid argument, got %v", err)
	}
}

func TestExporters(t *testing.T) {
	songs := testSongs()

	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(songs)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
		}
		if lines[0] != "Video ID,Title,Artist,Artist ID,Album,Album ID,Duration,Thumbnail" {
			t.Errorf("CSV missing headers, got: %s", lines[0])
		}
		if !strings.Contains(lines[1], "fJ9rUzIMcZQ,Bohemian Rhapsody,Queen,") || !strings.Contains(lines[1], ",354,") {
			t.Errorf("unexpected first row: %s", lines[1])
		}
		if lines[2] != `a01QQZyl-_I,Under Pressure,"Queen, David Bowie",,,,,` {
			t.Errorf("unexpected second row: %s", lines[2])
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown("Search: queen", songs)
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "# Search: queen") {
			t.Errorf("Markdown missing title")
		}
		if !strings.Contains(output, "**Tracks**: 2") {
			t.Errorf("Markdown missing track count")
		}
		if !strings.Contains(output, "1. Queen - Bohemian Rhapsody (A Night at the Opera) [5:54]") {
			t.Errorf("Markdown missing track1, got: %s", output)
		}
		if !strings.Contains(output, "2. Queen, David Bowie - Under Pressure [-]") {
			t.Errorf("Markdown missing track2 (no album), got: %s", output)
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText("Up next", songs)
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{"Up next", "Queen", "Bohemian Rhapsody", "5:54", "a01QQZyl-_I"} {
			if !strings.Contains(output, want) {
				t.Errorf("Text missing %q, got: %s", want, output)
			}
		}
	})

	t.Run("ExportToText with no songs", func(t *testing.T) {
		data, _ := ExportToText("", nil)
		if !strings.Contains(string(data), "No songs.") {
			t.Errorf("expected empty marker, got %q", data)
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(songs)
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		var decoded []map[string]any
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded[1]["albumId"] != nil {
			t.Errorf("expected null albumId, got %v", decoded[1]["albumId"])
		}
		if decoded[0]["artist_name"] != "Queen" {
			t.Errorf("unexpected artist_name %v", decoded[0]["artist_name"])
		}
	})
}

func TestSongs(t *testing.T) {
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			data, err := Songs(f, "Results", testSongs())
			if err != nil {
				t.Fatalf("Songs(%s) failed: %v", f, err)
			}
			if !strings.Contains(string(data), "Bohemian Rhapsody") {
				t.Errorf("output missing song title: %s", data)
			}
		})
	}

	if _, err := Songs(Format("xml"), "", nil); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected invalid argument, got %v", err)
	}
}

func TestRelated(t *testing.T) {
	songs := testSongs()
	bundle := models.RelatedContent{MoreFromArtist: songs[:1], MoreFromAlbum: songs[1:]}

	t.Run("csv", func(t *testing.T) {
		data, err := Related(FormatCSV, bundle)
		if err != nil {
			t.Fatalf("Related failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected 3 lines, got %d", len(lines))
		}
		if !strings.HasPrefix(lines[0], "Section,Video ID") {
			t.Errorf("unexpected header %s", lines[0])
		}
		if !strings.HasPrefix(lines[1], "artist,fJ9rUzIMcZQ") || !strings.HasPrefix(lines[2], "album,a01QQZyl-_I") {
			t.Errorf("unexpected rows %v", lines[1:])
		}
	})

	t.Run("markdown", func(t *testing.T) {
		data, _ := Related(FormatMarkdown, bundle)
		output := string(data)
		if !strings.Contains(output, "## More from the artist") || !strings.Contains(output, "## More from the album") {
			t.Errorf("missing sections: %s", output)
		}
	})

	t.Run("json", func(t *testing.T) {
		data, _ := Related(FormatJSON, models.NewRelatedContent())
		if !strings.Contains(string(data), `"more_from_artist": []`) {
			t.Errorf("expected empty list, got %s", data)
		}
	})

	t.Run("text", func(t *testing.T) {
		data, _ := Related(FormatText, models.NewRelatedContent())
		if strings.Count(string(data), "No songs.") != 2 {
			t.Errorf("expected two empty sections, got %s", data)
		}
	})
}

func TestLyrics(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		data, _ := Lyrics(FormatText, models.NewLyrics("Is this the real life?"))
		if string(data) != "Is this the real life?\n" {
			t.Errorf("unexpected output %q", data)
		}
	})

	t.Run("message", func(t *testing.T) {
		data, _ := Lyrics(FormatMarkdown, models.NewLyricsMessage("Lyrics not found for this song."))
		if string(data) != "Lyrics not found for this song.\n" {
			t.Errorf("unexpected output %q", data)
		}
	})

	t.Run("json", func(t *testing.T) {
		data, _ := Lyrics(FormatJSON, models.NewLyricsMessage("Could not retrieve lyrics."))
		if !strings.Contains(string(data), `"lyrics": null`) {
			t.Errorf("expected null lyrics, got %s", data)
		}
	})
}

func TestWriteExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "songs.csv")
	data, _ := ExportToCSV(testSongs())

	if err := WriteExport(path, data); err != nil {
		t.Fatalf("WriteExport failed: %v", err)
	}

	th.AssertFileExists(t, path)
	if th.MustReadFile(t, path) != string(data) {
		t.Error("written file does not match")
	}

	if err := WriteExport(filepath.Join(t.TempDir(), "missing", "songs.csv"), data); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
