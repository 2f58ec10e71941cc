package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytmeta/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL string = "http://localhost:8080"
	defaultTimeout        = 15 * time.Second
)

// StatusError is returned when the proxy answers with a non-2xx status.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("catalog %s: status %d: %s", e.Endpoint, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("catalog %s: status %d", e.Endpoint, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return shared.ErrAPIRequest
}

// ClientOpts configures a [Client].
type ClientOpts struct {
	BaseURL    string
	AuthFile   string        // sent as X-Auth-File so the proxy can pick browser.json/oauth.json
	Token      string        // optional bearer token for the proxy
	Timeout    time.Duration // per request, defaults to 15s
	RateLimit  float64       // requests per second, <= 0 disables throttling
	Burst      int
	HTTPClient *http.Client
	Logger     *log.Logger
}

// Client implements [Gateway] against a ytmusicapi sidecar proxy.
//
// It is safe for concurrent use and meant to be created once per process.
type Client struct {
	baseURL    string
	authFile   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewClient creates a catalog client.
func NewClient(opts ClientOpts) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token, TokenType: "Bearer"})
		authed := oauth2.NewClient(ctx, src)
		authed.Timeout = httpClient.Timeout
		httpClient = authed
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	return &Client{
		baseURL:    opts.BaseURL,
		authFile:   opts.AuthFile,
		httpClient: httpClient,
		limiter:    limiter,
		logger:     shared.WithLogger(opts.Logger, "component", "catalog"),
	}
}

// Search calls GET /api/search.
func (c *Client) Search(ctx context.Context, query, filter string, limit int) ([]Entry, error) {
	params := url.Values{}
	params.Set("query", query)
	if filter != "" {
		params.Set("filter", filter)
	}
	params.Set("limit", strconv.Itoa(limit))

	var results []Entry
	if err := c.getJSON(ctx, "/api/search?"+params.Encode(), &results); err != nil {
		return nil, err
	}
	return results, nil
}

// WatchPlaylist calls GET /api/watch.
func (c *Client) WatchPlaylist(ctx context.Context, videoID string, limit int) (*WatchPlaylist, error) {
	params := url.Values{}
	params.Set("videoId", videoID)
	params.Set("limit", strconv.Itoa(limit))

	var playlist WatchPlaylist
	if err := c.getJSON(ctx, "/api/watch?"+params.Encode(), &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// Artist calls GET /api/artists/{channelId}.
func (c *Client) Artist(ctx context.Context, channelID string) (*ArtistPage, error) {
	var page ArtistPage
	if err := c.getJSON(ctx, "/api/artists/"+url.PathEscape(channelID), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Album calls GET /api/albums/{browseId}.
func (c *Client) Album(ctx context.Context, browseID string) (*AlbumPage, error) {
	var page AlbumPage
	if err := c.getJSON(ctx, "/api/albums/"+url.PathEscape(browseID), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Lyrics calls GET /api/lyrics/{browseId}.
//
// A 404 or a JSON null body means the provider has no lyrics and yields (nil, nil).
func (c *Client) Lyrics(ctx context.Context, browseID string) (*Lyrics, error) {
	var lyrics *Lyrics
	err := c.getJSON(ctx, "/api/lyrics/"+url.PathEscape(browseID), &lyrics)

	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return lyrics, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, result any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limiter: %v", shared.ErrTimeout, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.authFile != "" {
		req.Header.Set("X-Auth-File", c.authFile)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("catalog request", "endpoint", endpoint, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		statusErr := &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			statusErr.Detail = errResp.Detail
		}
		return statusErr
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
	}

	return nil
}
