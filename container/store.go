package container

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// markerName is the file identifying a directory as a container store.
const markerName = ".container"

// markerContent doubles as the store's format version.
const markerContent = "go-h5sparse container v1\n"

// Store is a hierarchical container rooted at a directory, or held entirely
// in memory when created with NewMemory.
type Store struct {
	dir    string // "" for a memory store
	root   *Group
	closed bool
}

// Create creates a new store at the given directory. The directory must not
// already contain a store (or anything else).
func Create(dir string) (*Store, error) {
	entries, err := os.ReadDir(dir)
	if err == nil && len(entries) > 0 {
		return nil, fmt.Errorf("creating store at %s: %w", dir, ErrExists)
	}
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("creating store at %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store at %s: %w", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, markerName), []byte(markerContent), 0o644); err != nil {
		return nil, fmt.Errorf("creating store at %s: %w", dir, err)
	}

	s := &Store{dir: dir}
	s.root = newGroup(s, nil, "")
	return s, nil
}

// Open opens an existing store directory and loads its hierarchy. Array
// payloads stay on disk and are read on demand.
func Open(dir string) (*Store, error) {
	marker, err := os.ReadFile(filepath.Join(dir, markerName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("opening store at %s: %w", dir, ErrNotStore)
		}
		return nil, fmt.Errorf("opening store at %s: %w", dir, err)
	}
	if string(marker) != markerContent {
		return nil, fmt.Errorf("opening store at %s: %w", dir, ErrNotStore)
	}

	s := &Store{dir: dir}
	s.root = newGroup(s, nil, "")
	if err := s.loadGroup(s.root); err != nil {
		return nil, fmt.Errorf("opening store at %s: %w", dir, err)
	}
	return s, nil
}

// NewMemory creates a store with no backing directory. All payloads are
// held in memory; Close discards them.
func NewMemory() *Store {
	s := &Store{}
	s.root = newGroup(s, nil, "")
	return s
}

// Root returns the store's root group.
func (s *Store) Root() *Group {
	return s.root
}

// Dir returns the backing directory, or "" for a memory store.
func (s *Store) Dir() string {
	return s.dir
}

// InMemory reports whether the store has no backing directory.
func (s *Store) InMemory() bool {
	return s.dir == ""
}

// Close marks the store closed. All writes are already on disk (the store
// writes through), so Close performs no I/O.
func (s *Store) Close() error {
	s.closed = true
	return nil
}

func (s *Store) check() error {
	if s.closed {
		return ErrClosed
	}
	return nil
}

// fsPath maps a group path like "/a/b" to its on-disk directory.
func (s *Store) fsPath(groupPath string) string {
	rel := strings.TrimPrefix(groupPath, "/")
	return filepath.Join(s.dir, filepath.FromSlash(rel))
}

// loadGroup populates g (and its subtree) from the store directory.
func (s *Store) loadGroup(g *Group) error {
	dir := s.fsPath(g.Path())

	attrs, err := readAttrs(filepath.Join(dir, attrsName))
	if err != nil {
		return fmt.Errorf("group %s: %w", g.Path(), err)
	}
	g.attrs = attrs

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("group %s: %w", g.Path(), err)
	}
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		switch {
		case e.IsDir():
			child := newGroup(s, g, name)
			if err := s.loadGroup(child); err != nil {
				return err
			}
			g.groups[name] = child
		case strings.HasSuffix(name, arraySuffix):
			arrName := strings.TrimSuffix(name, arraySuffix)
			arr, err := loadArray(g, arrName)
			if err != nil {
				return fmt.Errorf("group %s: array %s: %w", g.Path(), arrName, err)
			}
			g.arrays[arrName] = arr
		}
	}
	return nil
}
