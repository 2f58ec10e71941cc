// Package models defines the records returned by the metadata service.
//
//   - [Song] : the canonical song record every upstream shape is normalized into
//   - [RelatedContent] : "more from this artist" and "more from this album" for a seed song
//   - [LyricsResult] : lyrics text, or a message explaining why there is none
//   - [BatchSearchRequest] / [BatchSearchResult] : several searches in one call
//
// Records are built per request and never persisted.
package models
