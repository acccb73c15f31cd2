package container

import "github.com/robert-malhotra/go-h5sparse/dtype"

// ArrayOption configures array creation.
type ArrayOption func(*arrayOptions)

type arrayOptions struct {
	kind        dtype.Kind // Invalid = infer from the data's element type
	compression Compression
}

func defaultArrayOptions() *arrayOptions {
	return &arrayOptions{
		kind:        dtype.Invalid,
		compression: NoCompression,
	}
}

// WithKind stores the array's elements as the given kind, converting the
// provided data. Narrowing conversions that lose values are an error at
// creation time.
func WithKind(k dtype.Kind) ArrayOption {
	return func(o *arrayOptions) {
		o.kind = k
	}
}

// WithCompression compresses the array's payload with the given codec.
// Compressed arrays are materialized in full on ranged reads and rewritten
// in full on mutation.
func WithCompression(c Compression) ArrayOption {
	return func(o *arrayOptions) {
		if c.valid() {
			o.compression = c
		}
	}
}
