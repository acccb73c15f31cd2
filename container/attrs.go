package container

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	gojson "github.com/goccy/go-json"
)

// attrsName is the per-group file holding the attribute set.
const attrsName = ".attrs.json"

// SetAttr sets a group attribute. Values must survive a JSON round-trip;
// use the typed accessors to read them back.
func (g *Group) SetAttr(name string, value any) error {
	if err := g.store.check(); err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("setting attribute: %w", ErrInvalidName)
	}
	g.attrs[name] = value
	return g.flushAttrs()
}

// Attr returns the raw attribute value.
func (g *Group) Attr(name string) (any, bool) {
	v, ok := g.attrs[name]
	return v, ok
}

// HasAttr reports whether the group has an attribute with the given name.
func (g *Group) HasAttr(name string) bool {
	_, ok := g.attrs[name]
	return ok
}

// AttrNames returns the sorted attribute names.
func (g *Group) AttrNames() []string {
	names := make([]string, 0, len(g.attrs))
	for name := range g.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AttrString returns a string-valued attribute.
func (g *Group) AttrString(name string) (string, bool) {
	s, ok := g.attrs[name].(string)
	return s, ok
}

// AttrInts returns an integer-sequence attribute. Numeric JSON values read
// back from disk decode as float64; this accessor absorbs that.
func (g *Group) AttrInts(name string) ([]int, bool) {
	switch v := g.attrs[name].(type) {
	case []int:
		out := make([]int, len(v))
		copy(out, v)
		return out, true
	case []int64:
		out := make([]int, len(v))
		for i, x := range v {
			out[i] = int(x)
		}
		return out, true
	case []float64:
		out := make([]int, len(v))
		for i, x := range v {
			out[i] = int(x)
		}
		return out, true
	case []any:
		out := make([]int, len(v))
		for i, x := range v {
			f, ok := x.(float64)
			if !ok {
				return nil, false
			}
			out[i] = int(f)
		}
		return out, true
	default:
		return nil, false
	}
}

// flushAttrs writes the attribute set through to disk.
func (g *Group) flushAttrs() error {
	if g.store.InMemory() {
		return nil
	}
	data, err := gojson.MarshalIndent(g.attrs, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding attributes for %s: %w", g.Path(), err)
	}
	file := filepath.Join(g.store.fsPath(g.Path()), attrsName)
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("writing attributes for %s: %w", g.Path(), err)
	}
	return nil
}

// readAttrs loads an attribute file. A missing file is an empty set.
func readAttrs(file string) (map[string]any, error) {
	data, err := os.ReadFile(file)
	if os.IsNotExist(err) {
		return make(map[string]any), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading attributes: %w", err)
	}
	attrs := make(map[string]any)
	if err := gojson.Unmarshal(data, &attrs); err != nil {
		return nil, fmt.Errorf("decoding attributes: %w", err)
	}
	return attrs, nil
}
