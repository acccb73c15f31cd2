package h5sparse

import "path"

// WalkFunc is called for each node during traversal.
// p is the full path to the node.
// obj is *Group, *Dataset or *container.Array.
// Return nil to continue walking, or an error to stop.
type WalkFunc func(p string, obj any) error

// Walk traverses the hierarchy starting from g, classifying every node.
// The callback sees the starting group first; sparse dataset groups are
// visited as a single *Dataset, not descended into.
func Walk(g *Group, fn WalkFunc) error {
	if err := fn(g.Path(), g); err != nil {
		return err
	}
	return walkChildren(g, fn)
}

func walkChildren(g *Group, fn WalkFunc) error {
	for _, name := range g.Keys() {
		child, err := g.Get(name)
		if err != nil {
			return err
		}
		childPath := path.Join(g.Path(), name)
		switch c := child.(type) {
		case *Group:
			if err := fn(childPath, c); err != nil {
				return err
			}
			if err := walkChildren(c, fn); err != nil {
				return err
			}
		default:
			if err := fn(childPath, c); err != nil {
				return err
			}
		}
	}
	return nil
}
