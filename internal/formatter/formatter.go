// package formatter renders song lists, related-content bundles and lyrics for the terminal and for export
// (JSON, CSV, Markdown, styled text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/ytmeta/internal/models"
	"github.com/desertthunder/ytmeta/internal/shared"
)

// Format names an output rendering.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatCSV, FormatMarkdown, FormatText}

// ParseFormat resolves a format name. "md" is accepted for Markdown and "" means JSON.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, name)
}

// FormatDuration renders seconds as m:ss (or h:mm:ss). A nil duration renders as "-".
func FormatDuration(seconds *int) string {
	if seconds == nil {
		return "-"
	}
	s := *seconds
	if s >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", s/3600, s%3600/60, s%60)
	}
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ExportToJSON renders any value as indented JSON.
func ExportToJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

var csvHeaders = []string{"Video ID", "Title", "Artist", "Artist ID", "Album", "Album ID", "Duration", "Thumbnail"}

func csvRecord(song models.Song) []string {
	duration := ""
	if song.Duration != nil {
		duration = strconv.Itoa(*song.Duration)
	}
	return []string{
		song.VideoID,
		song.Title,
		song.ArtistName,
		deref(song.ArtistID),
		deref(song.AlbumName),
		deref(song.AlbumID),
		duration,
		deref(song.Thumbnail),
	}
}

// ExportToCSV converts songs to CSV with columns: Video ID, Title, Artist, Artist ID, Album, Album ID, Duration, Thumbnail
func ExportToCSV(songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range songs {
		if err := writer.Write(csvRecord(song)); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts songs to a Markdown list under the given heading
func ExportToMarkdown(title string, songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writeMarkdownSection(&buf, "#", title, songs)
	return buf.Bytes(), nil
}

func writeMarkdownSection(buf *bytes.Buffer, level, title string, songs []models.Song) {
	if title != "" {
		fmt.Fprintf(buf, "%s %s\n\n", level, title)
	}
	fmt.Fprintf(buf, "**Tracks**: %d\n\n", len(songs))

	for i, song := range songs {
		albumPart := ""
		if name := deref(song.AlbumName); name != "" {
			albumPart = fmt.Sprintf(" (%s)", name)
		}
		fmt.Fprintf(buf, "%d. %s - %s%s [%s]\n", i+1, song.ArtistName, song.Title, albumPart, FormatDuration(song.Duration))
	}
	buf.WriteString("\n")
}

// ExportToText converts songs to styled terminal text
func ExportToText(title string, songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writeTextSection(&buf, title, songs)
	return buf.Bytes(), nil
}

func writeTextSection(buf *bytes.Buffer, title string, songs []models.Song) {
	if title != "" {
		buf.WriteString(styles.Title(title))
		buf.WriteString("\n")
	}
	if len(songs) == 0 {
		buf.WriteString(styles.Help("No songs."))
		buf.WriteString("\n")
		return
	}

	for i, song := range songs {
		fmt.Fprintf(buf, "%2d. %s - %s %s\n", i+1, styles.Artist(song.ArtistName), song.Title, styles.Help("["+FormatDuration(song.Duration)+"]"))
		fmt.Fprintf(buf, "    %s\n", styles.Help(song.VideoID))
	}
}

// Songs renders a song list in the given format.
func Songs(format Format, title string, songs []models.Song) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ExportToJSON(songs)
	case FormatCSV:
		return ExportToCSV(songs)
	case FormatMarkdown:
		return ExportToMarkdown(title, songs)
	case FormatText:
		return ExportToText(title, songs)
	}
	return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
}

// Related renders a related-content bundle. CSV output adds a leading Section column.
func Related(format Format, bundle models.RelatedContent) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ExportToJSON(bundle)
	case FormatCSV:
		return relatedCSV(bundle)
	case FormatMarkdown:
		var buf bytes.Buffer
		writeMarkdownSection(&buf, "##", "More from the artist", bundle.MoreFromArtist)
		writeMarkdownSection(&buf, "##", "More from the album", bundle.MoreFromAlbum)
		return buf.Bytes(), nil
	case FormatText:
		var buf bytes.Buffer
		writeTextSection(&buf, "More from the artist", bundle.MoreFromArtist)
		buf.WriteString("\n")
		writeTextSection(&buf, "More from the album", bundle.MoreFromAlbum)
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
}

func relatedCSV(bundle models.RelatedContent) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(append([]string{"Section"}, csvHeaders...)); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	write := func(section string, songs []models.Song) error {
		for _, song := range songs {
			if err := writer.Write(append([]string{section}, csvRecord(song)...)); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	}
	if err := write("artist", bundle.MoreFromArtist); err != nil {
		return nil, err
	}
	if err := write("album", bundle.MoreFromAlbum); err != nil {
		return nil, err
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// Lyrics renders a lyrics result. Non-JSON formats print the lyrics text or the message.
func Lyrics(format Format, res models.LyricsResult) ([]byte, error) {
	if format == FormatJSON {
		return ExportToJSON(res)
	}
	if res.Found() {
		return []byte(*res.Lyrics + "\n"), nil
	}
	msg := deref(res.Message)
	if format == FormatText {
		msg = styles.Warn(msg)
	}
	return []byte(msg + "\n"), nil
}

// WriteExport writes rendered output to path.
func WriteExport(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
