// package services implements the query operations of the metadata service on top of a [catalog.Gateway].
//
// Search, UpNext and BatchSearch return upstream failures to the caller. SongsByArtist,
// SongsByAlbum, Lyrics and the enrichment steps of Related swallow them, log the cause and
// return an empty result or a message instead.
package services

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytmeta/internal/catalog"
	"github.com/desertthunder/ytmeta/internal/models"
	"github.com/desertthunder/ytmeta/internal/normalize"
	"github.com/desertthunder/ytmeta/internal/shared"
	"golang.org/x/sync/errgroup"
)

const (
	// lyricsBrowsePrefix turns a video id into the provider's lyrics browse id.
	lyricsBrowsePrefix = "MPLYt"

	MsgLyricsNotFound    = "Lyrics not found for this song."
	MsgLyricsUnavailable = "Could not retrieve lyrics."

	DefaultRelatedArtistLimit = 10
	DefaultBatchConcurrency   = 4
)

// Operation names passed to [Opts.OnDegraded].
const (
	OpArtistSongs = "artist_songs"
	OpAlbumSongs  = "album_songs"
	OpSeedSearch  = "seed_search"
	OpLyrics      = "lyrics"
)

// Opts configures a [Service].
type Opts struct {
	Parser             *normalize.Parser
	Logger             *log.Logger
	RelatedArtistLimit int
	ConcurrentRelated  bool // run the artist and album lookups of Related in parallel
	BatchConcurrency   int

	// OnDegraded is called whenever an upstream failure is swallowed.
	OnDegraded func(operation string)
}

// Service answers metadata queries. It holds no per-request state and is safe for concurrent use.
type Service struct {
	catalog            catalog.Gateway
	parser             *normalize.Parser
	logger             *log.Logger
	relatedArtistLimit int
	concurrentRelated  bool
	batchConcurrency   int
	onDegraded         func(string)
}

// NewService creates a Service backed by the given gateway.
func NewService(gw catalog.Gateway, opts Opts) *Service {
	if opts.Parser == nil {
		opts.Parser = normalize.NewParser()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.RelatedArtistLimit <= 0 {
		opts.RelatedArtistLimit = DefaultRelatedArtistLimit
	}
	if opts.BatchConcurrency <= 0 {
		opts.BatchConcurrency = DefaultBatchConcurrency
	}
	if opts.OnDegraded == nil {
		opts.OnDegraded = func(string) {}
	}

	return &Service{
		catalog:            gw,
		parser:             opts.Parser,
		logger:             shared.WithLogger(opts.Logger, "component", "services"),
		relatedArtistLimit: opts.RelatedArtistLimit,
		concurrentRelated:  opts.ConcurrentRelated,
		batchConcurrency:   opts.BatchConcurrency,
		onDegraded:         opts.OnDegraded,
	}
}

// Search returns up to limit songs matching query, in upstream order.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]models.Song, error) {
	entries, err := s.catalog.Search(ctx, query, catalog.FilterSongs, limit)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return s.parser.ParseAll(normalize.ShapeSearch, entries, 0), nil
}

// BatchSearch runs Search for every query, at most batchConcurrency at a time.
//
// Results keep the order of queries. The first failing query fails the whole batch.
func (s *Service) BatchSearch(ctx context.Context, queries []string, limit int) ([]models.BatchSearchResult, error) {
	results := make([]models.BatchSearchResult, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)
	for i, query := range queries {
		g.Go(func() error {
			songs, err := s.Search(gctx, query, limit)
			if err != nil {
				return err
			}
			results[i] = models.BatchSearchResult{Query: query, Results: songs}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// UpNext returns up to limit tracks that follow videoID in its watch playlist.
//
// The playlist is requested with one extra entry because its first track is the seed itself,
// which is never returned.
func (s *Service) UpNext(ctx context.Context, videoID string, limit int) ([]models.Song, error) {
	if limit < 0 {
		limit = 0
	}

	playlist, err := s.catalog.WatchPlaylist(ctx, videoID, limit+1)
	if err != nil {
		return nil, fmt.Errorf("watch playlist %q: %w", videoID, err)
	}
	if playlist == nil || len(playlist.Tracks) == 0 {
		return []models.Song{}, nil
	}

	return s.parser.ParseAll(normalize.ShapeWatchPlaylist, head(playlist.Tracks[1:], limit), 0), nil
}

// SongsByArtist returns up to limit songs from an artist page. It never fails.
func (s *Service) SongsByArtist(ctx context.Context, artistID string, limit int) []models.Song {
	page, err := s.catalog.Artist(ctx, artistID)
	if err != nil {
		s.logger.Error("could not fetch artist tracks", "artist_id", artistID, "error", err)
		s.onDegraded(OpArtistSongs)
		return []models.Song{}
	}

	return s.parser.ParseAll(normalize.ShapeArtistPage, head(page.SongResults(), limit), 0)
}

// SongsByAlbum returns every track of an album. It never fails.
func (s *Service) SongsByAlbum(ctx context.Context, albumID string) []models.Song {
	page, err := s.catalog.Album(ctx, albumID)
	if err != nil {
		s.logger.Error("could not fetch album tracks", "album_id", albumID, "error", err)
		s.onDegraded(OpAlbumSongs)
		return []models.Song{}
	}
	if page == nil {
		return []models.Song{}
	}

	return s.parser.ParseAll(normalize.ShapeAlbumTrack, page.Tracks, 0)
}

// Related returns more songs from the artist and the album of the song identified by videoID.
//
// The seed song is resolved by searching for the video id as free text, since the catalog has
// no lookup by id. If that search fails or finds nothing the bundle is empty. The artist and
// album lookups are independent: either may come back empty without affecting the other.
func (s *Service) Related(ctx context.Context, videoID string) models.RelatedContent {
	bundle := models.NewRelatedContent()

	seeds, err := s.Search(ctx, videoID, 1)
	if err != nil {
		s.logger.Error("failed to find seed song for related content", "video_id", videoID, "error", err)
		s.onDegraded(OpSeedSearch)
		return bundle
	}
	if len(seeds) == 0 {
		s.logger.Debug("no seed song for related content", "video_id", videoID)
		return bundle
	}
	seed := seeds[0]

	byArtist := func() {
		if seed.ArtistID != nil {
			bundle.MoreFromArtist = s.SongsByArtist(ctx, *seed.ArtistID, s.relatedArtistLimit)
		}
	}
	byAlbum := func() {
		if seed.AlbumID != nil {
			bundle.MoreFromAlbum = s.SongsByAlbum(ctx, *seed.AlbumID)
		}
	}

	if !s.concurrentRelated {
		byArtist()
		byAlbum()
		return bundle
	}

	var g errgroup.Group
	g.Go(func() error { byArtist(); return nil })
	g.Go(func() error { byAlbum(); return nil })
	_ = g.Wait()

	return bundle
}

// Lyrics returns the lyrics for videoID, or a message when there are none or the lookup failed.
func (s *Service) Lyrics(ctx context.Context, videoID string) models.LyricsResult {
	lyrics, err := s.catalog.Lyrics(ctx, lyricsBrowsePrefix+videoID)
	if err != nil {
		s.logger.Error("could not retrieve lyrics", "video_id", videoID, "error", err)
		s.onDegraded(OpLyrics)
		return models.NewLyricsMessage(MsgLyricsUnavailable)
	}
	if lyrics == nil || lyrics.Lyrics == "" {
		return models.NewLyricsMessage(MsgLyricsNotFound)
	}
	return models.NewLyrics(lyrics.Lyrics)
}

func head(entries []catalog.Entry, n int) []catalog.Entry {
	if n <= 0 {
		return nil
	}
	if len(entries) > n {
		return entries[:n]
	}
	return entries
}
