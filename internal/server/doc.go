// Package server provides the HTTP facade of the metadata service: routing, middleware and handlers.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses a gorilla/mux router internally, so path variables such as
// /artists/{id}/songs are available to handlers through [mux.Vars].
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
// [MetricsHandler] and [HealthHandler] are registered this way.
//
// # API
//
// [API] registers the query endpoints (search, up next, related, lyrics and the artist and album listings).
// Failures the caller must see are answered with a FastAPI-compatible body:
//
//	{"detail": "Could not fetch 'Up Next' queue: ..."}
//
// # Lifecycle
//
// [Server.Start] serves until its context is cancelled and then shuts down gracefully.
package server
