// Package normalize maps raw catalog entries onto [models.Song].
//
// Upstream payloads describe the same song differently depending on the call that produced them:
// search results carry `thumbnails` and an integer `duration_seconds`, watch-playlist and album
// tracks carry `thumbnail` and a text `length`, artist pages carry no duration at all. Each shape
// is described once in a field table and parsed by the same code.
//
// # Modes
//
// [ModeStrict] reads only the keys listed for the entry's shape. [ModeUnified] lets search,
// watch-playlist and album-track entries fall back to each other's keys, for proxies that do not
// keep field names consistent across calls. Artist-page entries never yield a duration.
//
// # Durations
//
// [ParseDuration] converts "SS", "MM:SS" or "HH:MM:SS" into seconds and reports false instead of
// failing on anything else.
package normalize
