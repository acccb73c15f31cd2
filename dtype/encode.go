package dtype

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
)

var order = binary.LittleEndian

// Encode converts a numeric Go slice to the little-endian byte encoding of
// the given kind. Every element is width-checked against the target kind.
func Encode(data any, k Kind) ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("dtype: invalid target kind")
	}
	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice {
		return nil, fmt.Errorf("dtype: expected a slice, got %T", data)
	}

	n := v.Len()
	size := k.Size()
	buf := make([]byte, n*size)
	for i := 0; i < n; i++ {
		s, err := widen(v.Index(i))
		if err != nil {
			return nil, err
		}
		if err := putElem(buf[i*size:], s, k); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	return buf, nil
}

func putElem(dst []byte, s scalar, k Kind) error {
	switch k {
	case Int8:
		v, err := s.asInt(8)
		if err != nil {
			return err
		}
		dst[0] = byte(v)
	case Int16:
		v, err := s.asInt(16)
		if err != nil {
			return err
		}
		order.PutUint16(dst, uint16(v))
	case Int32:
		v, err := s.asInt(32)
		if err != nil {
			return err
		}
		order.PutUint32(dst, uint32(v))
	case Int64:
		v, err := s.asInt(64)
		if err != nil {
			return err
		}
		order.PutUint64(dst, uint64(v))
	case Uint8:
		v, err := s.asUint(8)
		if err != nil {
			return err
		}
		dst[0] = byte(v)
	case Uint16:
		v, err := s.asUint(16)
		if err != nil {
			return err
		}
		order.PutUint16(dst, uint16(v))
	case Uint32:
		v, err := s.asUint(32)
		if err != nil {
			return err
		}
		order.PutUint32(dst, uint32(v))
	case Uint64:
		v, err := s.asUint(64)
		if err != nil {
			return err
		}
		order.PutUint64(dst, v)
	case Float32:
		order.PutUint32(dst, math.Float32bits(float32(s.asFloat())))
	case Float64:
		order.PutUint64(dst, math.Float64bits(s.asFloat()))
	}
	return nil
}

// Count returns the number of elements of kind k encoded in raw.
func Count(raw []byte, k Kind) int {
	size := k.Size()
	if size == 0 {
		return 0
	}
	return len(raw) / size
}

// Decode converts the little-endian byte encoding of kind k into dest,
// which must be a pointer to a numeric slice. The slice is resized to fit.
// Stored values that do not fit dest's element type are an error.
func Decode(raw []byte, k Kind, dest any) error {
	if !k.Valid() {
		return fmt.Errorf("dtype: invalid source kind")
	}
	p := reflect.ValueOf(dest)
	if p.Kind() != reflect.Ptr || p.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("dtype: dest must be a pointer to a slice, got %T", dest)
	}
	size := k.Size()
	if len(raw)%size != 0 {
		return fmt.Errorf("dtype: payload length %d is not a multiple of element size %d", len(raw), size)
	}

	n := len(raw) / size
	out := reflect.MakeSlice(p.Elem().Type(), n, n)
	for i := 0; i < n; i++ {
		s := getElem(raw[i*size:], k)
		if err := setElem(out.Index(i), s); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	p.Elem().Set(out)
	return nil
}

func getElem(src []byte, k Kind) scalar {
	switch k {
	case Int8:
		return scalar{i: int64(int8(src[0])), class: 0}
	case Int16:
		return scalar{i: int64(int16(order.Uint16(src))), class: 0}
	case Int32:
		return scalar{i: int64(int32(order.Uint32(src))), class: 0}
	case Int64:
		return scalar{i: int64(order.Uint64(src)), class: 0}
	case Uint8:
		return scalar{u: uint64(src[0]), class: 1}
	case Uint16:
		return scalar{u: uint64(order.Uint16(src)), class: 1}
	case Uint32:
		return scalar{u: uint64(order.Uint32(src)), class: 1}
	case Uint64:
		return scalar{u: order.Uint64(src), class: 1}
	case Float32:
		return scalar{f: float64(math.Float32frombits(order.Uint32(src))), class: 2}
	default:
		return scalar{f: math.Float64frombits(order.Uint64(src)), class: 2}
	}
}

func setElem(dst reflect.Value, s scalar) error {
	switch dst.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := s.asInt(dst.Type().Bits())
		if err != nil {
			return err
		}
		dst.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := s.asUint(dst.Type().Bits())
		if err != nil {
			return err
		}
		dst.SetUint(v)
	case reflect.Float32, reflect.Float64:
		dst.SetFloat(s.asFloat())
	default:
		return fmt.Errorf("dtype: unsupported element type %s", dst.Type())
	}
	return nil
}
