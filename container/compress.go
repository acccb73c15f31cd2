package container

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the whole-payload compression applied to an array.
type Compression uint8

// Supported compression codecs.
const (
	NoCompression Compression = iota
	Zstd
	LZ4
)

// String returns the codec's stable name.
func (c Compression) String() string {
	switch c {
	case NoCompression:
		return "none"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("invalid(%d)", uint8(c))
	}
}

func (c Compression) valid() bool {
	return c <= LZ4
}

// compress encodes raw with the given codec. NoCompression returns raw as is.
func compress(raw []byte, c Compression) ([]byte, error) {
	switch c {
	case NoCompression:
		return raw, nil
	case Zstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("creating zstd encoder: %w", err)
		}
		defer enc.Close()
		return enc.EncodeAll(raw, nil), nil
	case LZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(raw); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown compression %d", c)
	}
}

// decompress decodes a payload produced by compress.
func decompress(payload []byte, c Compression) ([]byte, error) {
	switch c {
	case NoCompression:
		return payload, nil
	case Zstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("creating zstd decoder: %w", err)
		}
		defer dec.Close()
		raw, err := dec.DecodeAll(payload, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		return raw, nil
	case LZ4:
		raw, err := io.ReadAll(lz4.NewReader(bytes.NewReader(payload)))
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("unknown compression %d", c)
	}
}
