package container

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/robert-malhotra/go-h5sparse/dtype"
	"github.com/robert-malhotra/go-h5sparse/internal/binary"
)

const arraySuffix = ".arr"

// Array file layout: a fixed 16-byte header followed by the payload.
//
//	0..4   magic "SARR"
//	4      format version
//	5      element kind
//	6      compression codec
//	7      reserved
//	8..16  element count (little-endian uint64)
const (
	headerSize   = 16
	arrayVersion = 1
)

var arrayMagic = []byte("SARR")

// Array is a resizable one-dimensional typed array owned by a group.
type Array struct {
	group *Group
	name  string

	kind   dtype.Kind
	comp   Compression
	length int

	mem []byte // payload for memory stores (compressed if comp != NoCompression)
}

// CreateArray creates a child array from the given numeric slice. The
// element kind defaults to the slice's own element type; WithKind converts.
func (g *Group) CreateArray(name string, data any, opts ...ArrayOption) (*Array, error) {
	if err := g.store.check(); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if g.taken(name) {
		return nil, fmt.Errorf("creating array %q: %w", name, ErrExists)
	}

	o := defaultArrayOptions()
	for _, opt := range opts {
		opt(o)
	}
	kind := o.kind
	if kind == dtype.Invalid {
		inferred, err := dtype.KindOf(data)
		if err != nil {
			return nil, fmt.Errorf("creating array %q: %w", name, err)
		}
		kind = inferred
	}

	raw, err := dtype.Encode(data, kind)
	if err != nil {
		return nil, fmt.Errorf("creating array %q: %w", name, err)
	}

	arr := &Array{group: g, name: name, kind: kind, comp: o.compression}
	if err := arr.writeWhole(raw); err != nil {
		return nil, fmt.Errorf("creating array %q: %w", name, err)
	}
	g.arrays[name] = arr
	return arr, nil
}

// Name returns the array name.
func (a *Array) Name() string {
	return a.name
}

// Path returns the full path to this array.
func (a *Array) Path() string {
	return path.Join(a.group.Path(), a.name)
}

// Len returns the number of elements.
func (a *Array) Len() int {
	return a.length
}

// Kind returns the element kind.
func (a *Array) Kind() dtype.Kind {
	return a.kind
}

// Compression returns the payload codec.
func (a *Array) Compression() Compression {
	return a.comp
}

func (a *Array) fsPath() string {
	return filepath.Join(a.group.store.fsPath(a.group.Path()), a.name+arraySuffix)
}

// Read reads the whole array into dest, a pointer to a numeric slice.
func (a *Array) Read(dest any) error {
	return a.ReadRange(0, a.length, dest)
}

// ReadRange reads elements [start, stop) into dest. For uncompressed arrays
// on disk only the covered byte range is read.
func (a *Array) ReadRange(start, stop int, dest any) error {
	if start < 0 || stop < start || stop > a.length {
		return fmt.Errorf("array %s: read [%d:%d) of %d: %w", a.Path(), start, stop, a.length, ErrRange)
	}
	size := a.kind.Size()

	var raw []byte
	switch {
	case a.comp != NoCompression:
		full, err := a.payload()
		if err != nil {
			return err
		}
		raw = full[start*size : stop*size]
	case a.group.store.InMemory():
		raw = a.mem[start*size : stop*size]
	default:
		f, err := os.Open(a.fsPath())
		if err != nil {
			return fmt.Errorf("array %s: %w", a.Path(), err)
		}
		defer f.Close()
		raw, err = binary.NewReader(f).At(int64(headerSize + start*size)).ReadBytes((stop - start) * size)
		if err != nil {
			return fmt.Errorf("array %s: reading payload: %w", a.Path(), err)
		}
	}

	if err := dtype.Decode(raw, a.kind, dest); err != nil {
		return fmt.Errorf("array %s: %w", a.Path(), err)
	}
	return nil
}

// Write overwrites elements starting at offset with the given slice,
// converting to the array's element kind. The write must fit in the
// current length.
func (a *Array) Write(offset int, data any) error {
	if err := a.group.store.check(); err != nil {
		return err
	}
	raw, err := dtype.Encode(data, a.kind)
	if err != nil {
		return fmt.Errorf("array %s: %w", a.Path(), err)
	}
	size := a.kind.Size()
	n := len(raw) / size
	if offset < 0 || offset+n > a.length {
		return fmt.Errorf("array %s: write [%d:%d) of %d: %w", a.Path(), offset, offset+n, a.length, ErrRange)
	}

	switch {
	case a.comp != NoCompression:
		full, err := a.payload()
		if err != nil {
			return err
		}
		copy(full[offset*size:], raw)
		return a.writeWhole(full)
	case a.group.store.InMemory():
		copy(a.mem[offset*size:], raw)
		return nil
	default:
		f, err := os.OpenFile(a.fsPath(), os.O_WRONLY, 0)
		if err != nil {
			return fmt.Errorf("array %s: %w", a.Path(), err)
		}
		defer f.Close()
		if err := binary.NewWriter(f).At(int64(headerSize + offset*size)).WriteBytes(raw); err != nil {
			return fmt.Errorf("array %s: writing payload: %w", a.Path(), err)
		}
		return nil
	}
}

// Resize grows or shrinks the array to n elements. New elements are zero.
func (a *Array) Resize(n int) error {
	if err := a.group.store.check(); err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("array %s: resize to %d: %w", a.Path(), n, ErrRange)
	}
	size := a.kind.Size()

	switch {
	case a.comp != NoCompression:
		full, err := a.payload()
		if err != nil {
			return err
		}
		resized := make([]byte, n*size)
		copy(resized, full)
		return a.writeWhole(resized)
	case a.group.store.InMemory():
		resized := make([]byte, n*size)
		copy(resized, a.mem)
		a.mem = resized
		a.length = n
		return nil
	default:
		file := a.fsPath()
		if err := os.Truncate(file, int64(headerSize+n*size)); err != nil {
			return fmt.Errorf("array %s: resizing: %w", a.Path(), err)
		}
		f, err := os.OpenFile(file, os.O_WRONLY, 0)
		if err != nil {
			return fmt.Errorf("array %s: %w", a.Path(), err)
		}
		defer f.Close()
		if err := binary.NewWriter(f).At(8).WriteUint64(uint64(n)); err != nil {
			return fmt.Errorf("array %s: updating header: %w", a.Path(), err)
		}
		a.length = n
		return nil
	}
}

// payload returns the full decompressed payload.
func (a *Array) payload() ([]byte, error) {
	var stored []byte
	if a.group.store.InMemory() {
		stored = a.mem
	} else {
		data, err := os.ReadFile(a.fsPath())
		if err != nil {
			return nil, fmt.Errorf("array %s: %w", a.Path(), err)
		}
		stored = data[headerSize:]
	}
	raw, err := decompress(stored, a.comp)
	if err != nil {
		return nil, fmt.Errorf("array %s: %w", a.Path(), err)
	}
	return raw, nil
}

// writeWhole replaces the entire payload with raw (uncompressed bytes) and
// updates the length.
func (a *Array) writeWhole(raw []byte) error {
	payload, err := compress(raw, a.comp)
	if err != nil {
		return err
	}
	a.length = len(raw) / a.kind.Size()

	if a.group.store.InMemory() {
		a.mem = payload
		return nil
	}

	f, err := os.OpenFile(a.fsPath(), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	w := binary.NewWriter(f)
	if err := w.WriteBytes(arrayMagic); err != nil {
		return err
	}
	if err := w.WriteUint8(arrayVersion); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(a.kind)); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(a.comp)); err != nil {
		return err
	}
	if err := w.WriteUint8(0); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(a.length)); err != nil {
		return err
	}
	return w.WriteBytes(payload)
}

// loadArray reads an array header from disk. The payload stays on disk.
func loadArray(g *Group, name string) (*Array, error) {
	file := filepath.Join(g.store.fsPath(g.Path()), name+arraySuffix)
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := binary.NewReader(f)
	magic, err := r.ReadBytes(4)
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if string(magic) != string(arrayMagic) {
		return nil, fmt.Errorf("bad array magic %q", magic)
	}
	version, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if version != arrayVersion {
		return nil, fmt.Errorf("unsupported array version %d", version)
	}
	kindByte, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	kind := dtype.Kind(kindByte)
	if !kind.Valid() {
		return nil, fmt.Errorf("bad element kind %d", kindByte)
	}
	compByte, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	comp := Compression(compByte)
	if !comp.valid() {
		return nil, fmt.Errorf("bad compression %d", compByte)
	}
	if _, err := r.ReadUint8(); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	length, err := r.ReadUint64()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	return &Array{
		group:  g,
		name:   name,
		kind:   kind,
		comp:   comp,
		length: int(length),
	}, nil
}
