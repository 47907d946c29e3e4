package model

// Playlist is a named ordered sequence of cifra filenames. The sequence is
// the play order; duplicates are allowed and entries are not checked
// against the catalog.
type Playlist struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Songs   []string `json:"songs"`
	Created string   `json:"created"` // YYYY-MM-DD
}

// PlaylistDocument is the on-disk shape of the playlists store.
type PlaylistDocument struct {
	Playlists []Playlist `json:"playlists"`
}
