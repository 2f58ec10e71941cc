package catalog

// Entry is a single raw upstream item as decoded from JSON.
type Entry map[string]any

// Empty reports whether the entry carries no fields.
func (e Entry) Empty() bool {
	return len(e) == 0
}

// String returns the string value stored under key, if any.
func (e Entry) String(key string) (string, bool) {
	s, ok := e[key].(string)
	return s, ok
}

// Object returns the nested object stored under key, if any.
func (e Entry) Object(key string) (Entry, bool) {
	switch v := e[key].(type) {
	case map[string]any:
		return Entry(v), true
	case Entry:
		return v, true
	}
	return nil, false
}

// Objects returns the list of nested objects stored under key.
//
// Items that are not objects are dropped.
func (e Entry) Objects(key string) []Entry {
	var items []any
	switch v := e[key].(type) {
	case []any:
		items = v
	case []Entry:
		return v
	case []map[string]any:
		out := make([]Entry, len(v))
		for i, m := range v {
			out[i] = Entry(m)
		}
		return out
	default:
		return nil
	}

	out := make([]Entry, 0, len(items))
	for _, item := range items {
		switch obj := item.(type) {
		case map[string]any:
			out = append(out, Entry(obj))
		case Entry:
			out = append(out, obj)
		}
	}
	return out
}

// WatchPlaylist is the "up next" queue for a track.
type WatchPlaylist struct {
	Tracks []Entry `json:"tracks"`
}

// ArtistPage is an artist page. Only the songs section is decoded.
type ArtistPage struct {
	Name  string         `json:"name"`
	Songs *ArtistSection `json:"songs"`
}

// ArtistSection is one shelf of an artist page.
type ArtistSection struct {
	BrowseID string  `json:"browseId"`
	Results  []Entry `json:"results"`
}

// SongResults returns the songs shelf, or nil when the page has none.
func (a *ArtistPage) SongResults() []Entry {
	if a == nil || a.Songs == nil {
		return nil
	}
	return a.Songs.Results
}

// AlbumPage is an album page.
type AlbumPage struct {
	Title  string  `json:"title"`
	Tracks []Entry `json:"tracks"`
}

// Lyrics is the provider's lyrics payload.
type Lyrics struct {
	Lyrics string `json:"lyrics"`
	Source string `json:"source"`
}
