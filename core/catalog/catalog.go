package catalog

import (
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"cifrateca/model"
)

// minSearchLength is the shortest query Search accepts; anything shorter
// yields an empty result rather than an error.
const minSearchLength = 2

// pathLockCount sizes the striped lock pool. A collision only costs extra
// serialization between two unrelated paths.
const pathLockCount = 64

// Service performs every filesystem operation of the cifra catalog. Each
// call works directly against the directory tree, so edits made outside
// the API show up on the next listing. Nothing is cached.
type Service struct {
	root string

	// Striped per-path locks so a delete cannot race an upload to the
	// same file. Operations on distinct paths run in parallel unless
	// their stripes collide.
	pathLocks [pathLockCount]sync.Mutex
}

// NewService creates a catalog service rooted at dir. The caller is
// responsible for the directory existing.
func NewService(dir string) *Service {
	return &Service{root: dir}
}

// Root returns the catalog root directory.
func (s *Service) Root() string {
	return s.root
}

// Tree walks the catalog root and returns the full category/cifra tree in
// directory iteration order. Directories become category nodes, .txt files
// become cifra leaves; anything else (other files, symlinks, specials) is
// skipped. Any unreadable directory fails the whole listing; no partial
// tree is returned.
func (s *Service) Tree() ([]model.CatalogNode, error) {
	return s.walk(s.root)
}

func (s *Service) walk(dir string) ([]model.CatalogNode, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading catalog directory %s: %w", dir, err)
	}

	nodes := make([]model.CatalogNode, 0, len(entries))
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		switch {
		case entry.IsDir():
			children, err := s.walk(full)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, model.CatalogNode{
				Name:     entry.Name(),
				Type:     model.NodeCategory,
				Children: children,
			})
		case entry.Type().IsRegular() && strings.HasSuffix(entry.Name(), model.CifraExt):
			rel, err := filepath.Rel(s.root, full)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, model.CatalogNode{
				Name: strings.TrimSuffix(entry.Name(), model.CifraExt),
				Type: model.NodeCifra,
				Path: filepath.ToSlash(rel),
			})
		}
	}
	return nodes, nil
}

// Flat returns the catalog as an ordered flat list of cifra records, the
// leaves of Tree in traversal order.
func (s *Service) Flat() ([]model.CifraFile, error) {
	tree, err := s.Tree()
	if err != nil {
		return nil, err
	}
	return flatten(tree, make([]model.CifraFile, 0, 16)), nil
}

func flatten(nodes []model.CatalogNode, out []model.CifraFile) []model.CifraFile {
	for _, n := range nodes {
		if n.Type == model.NodeCategory {
			out = flatten(n.Children, out)
			continue
		}
		out = append(out, model.NewCifraFile(n.Path))
	}
	return out
}

// Search returns the flat catalog entries whose filename, artist or song
// contains the query, case-insensitively. Queries shorter than two runes
// return an empty list, not an error.
func (s *Service) Search(query string) ([]model.CifraFile, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(query) < minSearchLength {
		return []model.CifraFile{}, nil
	}

	all, err := s.Flat()
	if err != nil {
		return nil, err
	}

	results := make([]model.CifraFile, 0, len(all))
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Filename), query) ||
			strings.Contains(strings.ToLower(c.Artist), query) ||
			strings.Contains(strings.ToLower(c.Song), query) {
			results = append(results, c)
		}
	}
	return results, nil
}

// ReadContent returns the raw bytes of one cifra. The content is opaque
// text; it is passed through verbatim.
func (s *Service) ReadContent(relPath string) ([]byte, error) {
	full, err := s.resolve(relPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(full)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrCifraNotFound, relPath)
	}
	if err != nil {
		return nil, fmt.Errorf("reading cifra %s: %w", relPath, err)
	}
	return data, nil
}

// SaveCifra writes an uploaded cifra under the catalog root, creating
// category directories as needed, and returns the stored root-relative
// path. Only .txt names are accepted. Writes to the same destination are
// serialized.
func (s *Service) SaveCifra(relPath string, r io.Reader) (string, error) {
	if !strings.HasSuffix(relPath, model.CifraExt) {
		return "", fmt.Errorf("%w: %s", ErrNotText, relPath)
	}

	full, err := s.resolve(relPath)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(s.root, full)
	if err != nil {
		return "", err
	}
	stored := filepath.ToSlash(rel)

	lock := s.pathLock(stored)
	lock.Lock()
	defer lock.Unlock()

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", fmt.Errorf("creating category directory for %s: %w", stored, err)
	}

	out, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("creating cifra %s: %w", stored, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		return "", fmt.Errorf("writing cifra %s: %w", stored, err)
	}
	return stored, nil
}

// Remove deletes one cifra from the catalog.
func (s *Service) Remove(relPath string) error {
	full, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(s.root, full)
	if err != nil {
		return err
	}

	lock := s.pathLock(filepath.ToSlash(rel))
	lock.Lock()
	defer lock.Unlock()

	info, err := os.Stat(full)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrCifraNotFound, relPath)
	}
	if err != nil {
		return fmt.Errorf("removing cifra %s: %w", relPath, err)
	}
	// Only catalog leaves are deletable; category directories and files
	// without the text extension are not addressable through the API.
	if !info.Mode().IsRegular() || !strings.HasSuffix(full, model.CifraExt) {
		return fmt.Errorf("%w: %s", ErrCifraNotFound, relPath)
	}

	if err := os.Remove(full); err != nil {
		return fmt.Errorf("removing cifra %s: %w", relPath, err)
	}
	return nil
}

// resolve joins relPath under the root and rejects anything that resolves
// outside of it.
func (s *Service) resolve(relPath string) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(relPath))
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrForbiddenPath, relPath)
	}
	return full, nil
}

func (s *Service) pathLock(rel string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(rel))
	return &s.pathLocks[h.Sum32()%pathLockCount]
}
