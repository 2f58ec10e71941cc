package server

import (
	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytmeta/internal/shared"
)

// RouterOpts configures [NewRouter].
type RouterOpts struct {
	CORSOrigin   string
	DefaultLimit int
	Metrics      *Metrics // nil disables /metrics and request instrumentation
	Logger       *log.Logger
}

// NewRouter builds the facade: middleware, the health and metrics endpoints, and the API routes.
func NewRouter(svc Querier, opts RouterOpts) *BasicRouter {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	logger := shared.WithLogger(opts.Logger, "component", "server")

	r := NewBasicRouter()
	r.Use(Recovery(logger), RequestLogger(logger), CORS(opts.CORSOrigin))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
	}

	r.Handler(HealthHandler{})
	if opts.Metrics != nil {
		r.Handler(NewMetricsHandler(opts.Metrics))
	}

	NewAPI(svc, APIOpts{DefaultLimit: opts.DefaultLimit, Logger: opts.Logger}).Register(r)

	return r
}
