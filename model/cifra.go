package model

import (
	"encoding/json"
	"strings"
)

// CifraExt is the only file extension the catalog recognizes.
const CifraExt = ".txt"

// UnknownArtist is reported for filenames that do not follow the
// "Artist - Song" convention.
const UnknownArtist = "Desconhecido"

// songSeparator splits artist from song in a cifra filename.
const songSeparator = " - "

// Catalog node types.
const (
	NodeCategory = "category"
	NodeCifra    = "cifra"
)

// CifraFile is one entry of the flat catalog view.
type CifraFile struct {
	Filename string `json:"filename"` // Root-relative slash path, extension included
	Artist   string `json:"artist"`
	Song     string `json:"song"`
	FullName string `json:"fullName"` // Basename without extension
}

// CatalogNode is one entry of the catalog tree. Category nodes mirror
// directories and carry children; cifra nodes carry the root-relative
// path of the file.
type CatalogNode struct {
	Name     string        `json:"name"`
	Type     string        `json:"type"`
	Path     string        `json:"path,omitempty"`
	Children []CatalogNode `json:"children,omitempty"`
}

// MarshalJSON keeps the two node shapes the web client expects: category
// nodes always carry a children array, even when the directory is empty;
// cifra leaves carry a path and no children key at all.
func (n CatalogNode) MarshalJSON() ([]byte, error) {
	if n.Type == NodeCategory {
		children := n.Children
		if children == nil {
			children = []CatalogNode{}
		}
		return json.Marshal(struct {
			Name     string        `json:"name"`
			Type     string        `json:"type"`
			Children []CatalogNode `json:"children"`
		}{n.Name, n.Type, children})
	}
	return json.Marshal(struct {
		Name string `json:"name"`
		Type string `json:"type"`
		Path string `json:"path"`
	}{n.Name, n.Type, n.Path})
}

// ParseSongName splits a filename (without extension) into artist and song
// on the first " - ". Names without the separator belong to UnknownArtist
// and keep the whole name as the song title. Total over any input.
func ParseSongName(name string) (artist, song string) {
	if a, s, ok := strings.Cut(name, songSeparator); ok {
		return a, s
	}
	return UnknownArtist, name
}

// NewCifraFile builds the flat record for a root-relative cifra path.
// Artist and song are derived from the basename only; category
// directories in the path do not take part in parsing.
func NewCifraFile(relPath string) CifraFile {
	base := relPath
	if i := strings.LastIndexByte(relPath, '/'); i >= 0 {
		base = relPath[i+1:]
	}
	full := strings.TrimSuffix(base, CifraExt)
	artist, song := ParseSongName(full)
	return CifraFile{
		Filename: relPath,
		Artist:   artist,
		Song:     song,
		FullName: full,
	}
}
