package models

// Song is the canonical song record.
//
// Optional fields are pointers and serialize as null when the upstream entry did not carry them.
type Song struct {
	Title      string  `json:"title"`
	ArtistName string  `json:"artist_name"`
	VideoID    string  `json:"videoId"`
	Thumbnail  *string `json:"thumbnail"`
	Duration   *int    `json:"duration"`
	ArtistID   *string `json:"artistId"`
	AlbumName  *string `json:"album_name"`
	AlbumID    *string `json:"albumId"`
}

// RelatedContent bundles songs related to a seed song. Both lists are always non-nil.
type RelatedContent struct {
	MoreFromArtist []Song `json:"more_from_artist"`
	MoreFromAlbum  []Song `json:"more_from_album"`
}

// NewRelatedContent returns a bundle with two empty lists.
func NewRelatedContent() RelatedContent {
	return RelatedContent{MoreFromArtist: []Song{}, MoreFromAlbum: []Song{}}
}

// LyricsResult holds either lyrics text or a message, never both.
type LyricsResult struct {
	Lyrics  *string `json:"lyrics"`
	Message *string `json:"message"`
}

// NewLyrics returns a result carrying lyrics text.
func NewLyrics(text string) LyricsResult {
	return LyricsResult{Lyrics: &text}
}

// NewLyricsMessage returns a result carrying an explanatory message.
func NewLyricsMessage(msg string) LyricsResult {
	return LyricsResult{Message: &msg}
}

// Found reports whether lyrics text is present.
func (l LyricsResult) Found() bool {
	return l.Lyrics != nil
}

// BatchSearchRequest is the body of a batch search.
type BatchSearchRequest struct {
	Queries []string `json:"queries"`
}

// BatchSearchResult pairs a query with its search results.
type BatchSearchResult struct {
	Query   string `json:"query"`
	Results []Song `json:"results"`
}
