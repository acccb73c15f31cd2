package container

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
)

// Group is a node in the store hierarchy. It owns named child groups and
// arrays plus a flat set of attributes.
type Group struct {
	store  *Store
	parent *Group
	name   string

	attrs  map[string]any
	groups map[string]*Group
	arrays map[string]*Array
}

func newGroup(s *Store, parent *Group, name string) *Group {
	return &Group{
		store:  s,
		parent: parent,
		name:   name,
		attrs:  make(map[string]any),
		groups: make(map[string]*Group),
		arrays: make(map[string]*Array),
	}
}

// Name returns the group name ("/" for the root group).
func (g *Group) Name() string {
	if g.parent == nil {
		return "/"
	}
	return g.name
}

// Path returns the full path to this group.
func (g *Group) Path() string {
	if g.parent == nil {
		return "/"
	}
	return path.Join(g.parent.Path(), g.name)
}

// Store returns the store this group belongs to.
func (g *Group) Store() *Store {
	return g.store
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if strings.ContainsAny(name, "/\\") || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func (g *Group) taken(name string) bool {
	_, inGroups := g.groups[name]
	_, inArrays := g.arrays[name]
	return inGroups || inArrays
}

// CreateGroup creates a child group.
func (g *Group) CreateGroup(name string) (*Group, error) {
	if err := g.store.check(); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if g.taken(name) {
		return nil, fmt.Errorf("creating group %q: %w", name, ErrExists)
	}

	child := newGroup(g.store, g, name)
	if !g.store.InMemory() {
		if err := os.Mkdir(g.store.fsPath(child.Path()), 0o755); err != nil {
			return nil, fmt.Errorf("creating group %q: %w", name, err)
		}
	}
	g.groups[name] = child
	return child, nil
}

// OpenGroup returns the named child group.
func (g *Group) OpenGroup(name string) (*Group, error) {
	if child, ok := g.groups[name]; ok {
		return child, nil
	}
	if _, ok := g.arrays[name]; ok {
		return nil, fmt.Errorf("opening group %q: %w", name, ErrNotGroup)
	}
	return nil, fmt.Errorf("opening group %q: %w", name, ErrNotFound)
}

// OpenArray returns the named child array.
func (g *Group) OpenArray(name string) (*Array, error) {
	if arr, ok := g.arrays[name]; ok {
		return arr, nil
	}
	if _, ok := g.groups[name]; ok {
		return nil, fmt.Errorf("opening array %q: %w", name, ErrNotArray)
	}
	return nil, fmt.Errorf("opening array %q: %w", name, ErrNotFound)
}

// IsGroup reports whether the named child exists and is a group.
func (g *Group) IsGroup(name string) bool {
	_, ok := g.groups[name]
	return ok
}

// Keys returns the sorted names of all children (groups and arrays).
func (g *Group) Keys() []string {
	names := make([]string, 0, len(g.groups)+len(g.arrays))
	for name := range g.groups {
		names = append(names, name)
	}
	for name := range g.arrays {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NumChildren returns the number of children in this group.
func (g *Group) NumChildren() int {
	return len(g.groups) + len(g.arrays)
}

// Delete removes the named child. Deleting a group removes its whole
// subtree.
func (g *Group) Delete(name string) error {
	if err := g.store.check(); err != nil {
		return err
	}
	if child, ok := g.groups[name]; ok {
		if !g.store.InMemory() {
			if err := os.RemoveAll(g.store.fsPath(child.Path())); err != nil {
				return fmt.Errorf("deleting group %q: %w", name, err)
			}
		}
		delete(g.groups, name)
		return nil
	}
	if arr, ok := g.arrays[name]; ok {
		if !g.store.InMemory() {
			if err := os.Remove(arr.fsPath()); err != nil {
				return fmt.Errorf("deleting array %q: %w", name, err)
			}
		}
		delete(g.arrays, name)
		return nil
	}
	return fmt.Errorf("deleting %q: %w", name, ErrNotFound)
}
