package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytmeta/internal/models"
	"github.com/desertthunder/ytmeta/internal/shared"
	"github.com/gorilla/mux"
)

const (
	detailInternal = "An internal server error occurred"
	detailUpNext   = "Could not fetch 'Up Next' queue"
)

// Querier is the set of query operations the API exposes.
type Querier interface {
	Search(ctx context.Context, query string, limit int) ([]models.Song, error)
	BatchSearch(ctx context.Context, queries []string, limit int) ([]models.BatchSearchResult, error)
	UpNext(ctx context.Context, videoID string, limit int) ([]models.Song, error)
	Related(ctx context.Context, videoID string) models.RelatedContent
	Lyrics(ctx context.Context, videoID string) models.LyricsResult
	SongsByArtist(ctx context.Context, artistID string, limit int) []models.Song
	SongsByAlbum(ctx context.Context, albumID string) []models.Song
}

// APIOpts configures an [API].
type APIOpts struct {
	DefaultLimit int
	Logger       *log.Logger
}

// API serves the query endpoints.
type API struct {
	svc          Querier
	defaultLimit int
	logger       *log.Logger
}

// NewAPI creates an API backed by svc.
func NewAPI(svc Querier, opts APIOpts) *API {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 10
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &API{
		svc:          svc,
		defaultLimit: opts.DefaultLimit,
		logger:       shared.WithLogger(opts.Logger, "component", "server"),
	}
}

// Register adds every API route to r.
func (a *API) Register(r Router) {
	r.Handle(http.MethodGet, "/search", http.HandlerFunc(a.Search))
	r.Handle(http.MethodPost, "/search/batch", http.HandlerFunc(a.BatchSearch))
	r.Handle(http.MethodGet, "/upnext", http.HandlerFunc(a.UpNext))
	r.Handle(http.MethodGet, "/related", http.HandlerFunc(a.Related))
	r.Handle(http.MethodGet, "/lyrics", http.HandlerFunc(a.Lyrics))
	r.Handle(http.MethodGet, "/artists/{id}/songs", http.HandlerFunc(a.ArtistSongs))
	r.Handle(http.MethodGet, "/albums/{id}/songs", http.HandlerFunc(a.AlbumSongs))
}

// Search handles GET /search?query=&limit=.
func (a *API) Search(w http.ResponseWriter, r *http.Request) {
	query, err := requiredParam(r, "query")
	if err != nil {
		badRequest(w, err)
		return
	}
	limit, err := a.limitParam(r)
	if err != nil {
		badRequest(w, err)
		return
	}

	songs, err := a.svc.Search(r.Context(), query, limit)
	if err != nil {
		a.logger.Error("search failed", "query", query, "request_id", RequestID(r.Context()), "error", err)
		writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("%s: %v", detailInternal, err))
		return
	}

	writeJSON(w, http.StatusOK, songs)
}

// BatchSearch handles POST /search/batch with a [models.BatchSearchRequest] body.
func (a *API) BatchSearch(w http.ResponseWriter, r *http.Request) {
	var req models.BatchSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, fmt.Errorf("%w: invalid request body: %v", shared.ErrInvalidInput, err))
		return
	}

	queries := make([]string, 0, len(req.Queries))
	for _, q := range req.Queries {
		if q = strings.TrimSpace(q); q != "" {
			queries = append(queries, q)
		}
	}
	if len(queries) == 0 {
		badRequest(w, fmt.Errorf("%w: queries", shared.ErrMissingArgument))
		return
	}

	limit, err := a.limitParam(r)
	if err != nil {
		badRequest(w, err)
		return
	}

	results, err := a.svc.BatchSearch(r.Context(), queries, limit)
	if err != nil {
		a.logger.Error("batch search failed", "queries", len(queries), "request_id", RequestID(r.Context()), "error", err)
		writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("%s: %v", detailInternal, err))
		return
	}

	writeJSON(w, http.StatusOK, results)
}

// UpNext handles GET /upnext?video_id=&limit=.
func (a *API) UpNext(w http.ResponseWriter, r *http.Request) {
	videoID, err := requiredParam(r, "video_id")
	if err != nil {
		badRequest(w, err)
		return
	}
	limit, err := a.limitParam(r)
	if err != nil {
		badRequest(w, err)
		return
	}

	songs, err := a.svc.UpNext(r.Context(), videoID, limit)
	if err != nil {
		a.logger.Error("up next failed", "video_id", videoID, "request_id", RequestID(r.Context()), "error", err)
		writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("%s: %v", detailUpNext, err))
		return
	}

	writeJSON(w, http.StatusOK, songs)
}

// Related handles GET /related?video_id=. It always answers 200 once the parameter is present.
func (a *API) Related(w http.ResponseWriter, r *http.Request) {
	videoID, err := requiredParam(r, "video_id")
	if err != nil {
		badRequest(w, err)
		return
	}

	writeJSON(w, http.StatusOK, a.svc.Related(r.Context(), videoID))
}

// Lyrics handles GET /lyrics?video_id=.
func (a *API) Lyrics(w http.ResponseWriter, r *http.Request) {
	videoID, err := requiredParam(r, "video_id")
	if err != nil {
		badRequest(w, err)
		return
	}

	writeJSON(w, http.StatusOK, a.svc.Lyrics(r.Context(), videoID))
}

// ArtistSongs handles GET /artists/{id}/songs?limit=.
func (a *API) ArtistSongs(w http.ResponseWriter, r *http.Request) {
	limit, err := a.limitParam(r)
	if err != nil {
		badRequest(w, err)
		return
	}

	writeJSON(w, http.StatusOK, a.svc.SongsByArtist(r.Context(), mux.Vars(r)["id"], limit))
}

// AlbumSongs handles GET /albums/{id}/songs.
func (a *API) AlbumSongs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.svc.SongsByAlbum(r.Context(), mux.Vars(r)["id"]))
}

func requiredParam(r *http.Request, name string) (string, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return "", fmt.Errorf("%w: %s", shared.ErrMissingArgument, name)
	}
	return v, nil
}

func (a *API) limitParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return a.defaultLimit, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, fmt.Errorf("%w: limit must be a non-negative integer, got %q", shared.ErrInvalidArgument, raw)
	}
	return limit, nil
}

// HealthHandler answers liveness probes.
type HealthHandler struct{}

// Routes returns the HTTP routes this handler serves.
func (HealthHandler) Routes() []string {
	return []string{"/health"}
}

// ServeHTTP writes {"status":"ok"}.
func (HealthHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

func badRequest(w http.ResponseWriter, err error) {
	writeDetail(w, http.StatusBadRequest, err.Error())
}
