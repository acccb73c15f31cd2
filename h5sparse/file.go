package h5sparse

import "github.com/robert-malhotra/go-h5sparse/container"

// File is a sparse-aware handle on a container store. Its embedded Group
// is the store's root.
type File struct {
	*Group
	store *container.Store
}

// Create creates a new store at the given directory.
func Create(dir string) (*File, error) {
	store, err := container.Create(dir)
	if err != nil {
		return nil, err
	}
	return &File{Group: Wrap(store.Root()), store: store}, nil
}

// Open opens an existing store directory.
func Open(dir string) (*File, error) {
	store, err := container.Open(dir)
	if err != nil {
		return nil, err
	}
	return &File{Group: Wrap(store.Root()), store: store}, nil
}

// NewMemory creates a store with no backing directory.
func NewMemory() *File {
	store := container.NewMemory()
	return &File{Group: Wrap(store.Root()), store: store}
}

// Store returns the underlying container store.
func (f *File) Store() *container.Store {
	return f.store
}

// Close closes the underlying store.
func (f *File) Close() error {
	return f.store.Close()
}
