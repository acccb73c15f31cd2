// Package container implements a hierarchical store of groups, attributes
// and resizable one-dimensional typed arrays, backed by a directory on disk
// or held entirely in memory.
//
// The store is single-writer: no operation is safe to invoke concurrently
// with a mutation of the same group or array. Mutations write through to
// disk immediately; there is no transaction spanning multiple arrays.
package container

import "errors"

// Common errors
var (
	ErrExists      = errors.New("name already in use")
	ErrNotFound    = errors.New("child not found")
	ErrNotGroup    = errors.New("child is not a group")
	ErrNotArray    = errors.New("child is not an array")
	ErrInvalidName = errors.New("invalid child name")
	ErrClosed      = errors.New("store is closed")
	ErrRange       = errors.New("range out of bounds")
	ErrNotStore    = errors.New("not a container store")
)
