package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/ytmeta/internal/formatter"
	"github.com/desertthunder/ytmeta/internal/shared"
	"github.com/urfave/cli/v3"
)

func requireArg(cmd *cli.Command, name string) (string, error) {
	v := strings.TrimSpace(cmd.StringArg(name))
	if v == "" {
		return "", fmt.Errorf("%w: <%s>", shared.ErrMissingArgument, name)
	}
	return v, nil
}

func limit(cmd *cli.Command) (int, error) {
	n := cmd.Int("limit")
	if n < 0 {
		return 0, fmt.Errorf("%w: --limit must not be negative", shared.ErrInvalidArgument)
	}
	return n, nil
}

// Search searches for songs matching the query argument.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.service()
	if err != nil {
		return err
	}
	query, err := requireArg(cmd, "query")
	if err != nil {
		return err
	}
	n, err := limit(cmd)
	if err != nil {
		return err
	}
	format, err := r.format(cmd)
	if err != nil {
		return err
	}

	r.logger.Debug("searching", "query", query, "limit", n)

	songs, err := svc.Search(ctx, query, n)
	if err != nil {
		return err
	}

	data, err := formatter.Songs(format, fmt.Sprintf("Search: %s", query), songs)
	if err != nil {
		return err
	}
	return r.emit(cmd, data)
}

// BatchSearch runs one search per positional argument and prints the results as JSON.
func (r *Runner) BatchSearch(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.service()
	if err != nil {
		return err
	}

	queries := []string{}
	for _, q := range cmd.Args().Slice() {
		if q = strings.TrimSpace(q); q != "" {
			queries = append(queries, q)
		}
	}
	if len(queries) == 0 {
		return fmt.Errorf("%w: at least one <query>", shared.ErrMissingArgument)
	}
	n, err := limit(cmd)
	if err != nil {
		return err
	}

	results, err := svc.BatchSearch(ctx, queries, n)
	if err != nil {
		return err
	}
	return r.writeJSON(results, cmd.Bool("pretty"))
}

// UpNext lists the tracks queued after the video_id argument.
func (r *Runner) UpNext(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.service()
	if err != nil {
		return err
	}
	videoID, err := requireArg(cmd, "video_id")
	if err != nil {
		return err
	}
	n, err := limit(cmd)
	if err != nil {
		return err
	}
	format, err := r.format(cmd)
	if err != nil {
		return err
	}

	songs, err := svc.UpNext(ctx, videoID, n)
	if err != nil {
		return err
	}

	data, err := formatter.Songs(format, "Up next", songs)
	if err != nil {
		return err
	}
	return r.emit(cmd, data)
}

// Related lists more songs from the artist and album of the video_id argument.
func (r *Runner) Related(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.service()
	if err != nil {
		return err
	}
	videoID, err := requireArg(cmd, "video_id")
	if err != nil {
		return err
	}
	format, err := r.format(cmd)
	if err != nil {
		return err
	}

	data, err := formatter.Related(format, svc.Related(ctx, videoID))
	if err != nil {
		return err
	}
	return r.emit(cmd, data)
}

// Lyrics prints the lyrics of the video_id argument, or the reason there are none.
func (r *Runner) Lyrics(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.service()
	if err != nil {
		return err
	}
	videoID, err := requireArg(cmd, "video_id")
	if err != nil {
		return err
	}
	format, err := r.format(cmd)
	if err != nil {
		return err
	}

	data, err := formatter.Lyrics(format, svc.Lyrics(ctx, videoID))
	if err != nil {
		return err
	}
	return r.emit(cmd, data)
}

// ArtistSongs lists songs from the artist page of the channel_id argument.
func (r *Runner) ArtistSongs(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.service()
	if err != nil {
		return err
	}
	channelID, err := requireArg(cmd, "channel_id")
	if err != nil {
		return err
	}
	n, err := limit(cmd)
	if err != nil {
		return err
	}
	format, err := r.format(cmd)
	if err != nil {
		return err
	}

	data, err := formatter.Songs(format, "Artist songs", svc.SongsByArtist(ctx, channelID, n))
	if err != nil {
		return err
	}
	return r.emit(cmd, data)
}

// AlbumSongs lists the tracks of the browse_id argument.
func (r *Runner) AlbumSongs(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.service()
	if err != nil {
		return err
	}
	browseID, err := requireArg(cmd, "browse_id")
	if err != nil {
		return err
	}
	format, err := r.format(cmd)
	if err != nil {
		return err
	}

	data, err := formatter.Songs(format, "Album tracks", svc.SongsByAlbum(ctx, browseID))
	if err != nil {
		return err
	}
	return r.emit(cmd, data)
}
