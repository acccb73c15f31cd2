// Package dtype describes the numeric element kinds a container array can
// hold and converts between Go slices and their on-disk encoding.
//
// Conversions are width-checked: narrowing a value that does not fit the
// target kind is an error, never a silent truncation.
package dtype

import (
	"fmt"
	"math"
	"reflect"
)

// Kind identifies a numeric element type.
type Kind uint8

// Supported element kinds. The zero value is invalid.
const (
	Invalid Kind = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
)

var kindNames = map[Kind]string{
	Int8:    "int8",
	Int16:   "int16",
	Int32:   "int32",
	Int64:   "int64",
	Uint8:   "uint8",
	Uint16:  "uint16",
	Uint32:  "uint32",
	Uint64:  "uint64",
	Float32: "float32",
	Float64: "float64",
}

// String returns the kind's stable name, e.g. "uint32".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("invalid(%d)", uint8(k))
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// Size returns the element size in bytes.
func (k Kind) Size() int {
	switch k {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		return 0
	}
}

// Parse returns the kind with the given stable name.
func Parse(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return Invalid, fmt.Errorf("unknown dtype %q", name)
}

// KindOf returns the kind matching the element type of the given numeric
// slice, e.g. []float64 -> Float64.
func KindOf(data any) (Kind, error) {
	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice {
		return Invalid, fmt.Errorf("dtype: expected a slice, got %T", data)
	}
	switch v.Type().Elem().Kind() {
	case reflect.Int8:
		return Int8, nil
	case reflect.Int16:
		return Int16, nil
	case reflect.Int32:
		return Int32, nil
	case reflect.Int64, reflect.Int:
		return Int64, nil
	case reflect.Uint8:
		return Uint8, nil
	case reflect.Uint16:
		return Uint16, nil
	case reflect.Uint32:
		return Uint32, nil
	case reflect.Uint64, reflect.Uint:
		return Uint64, nil
	case reflect.Float32:
		return Float32, nil
	case reflect.Float64:
		return Float64, nil
	default:
		return Invalid, fmt.Errorf("dtype: unsupported slice element type %s", v.Type().Elem())
	}
}

// scalar is the widened form of one element while it moves between widths.
type scalar struct {
	i     int64
	u     uint64
	f     float64
	class uint8 // 0 = signed, 1 = unsigned, 2 = float
}

func widen(v reflect.Value) (scalar, error) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return scalar{i: v.Int(), class: 0}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return scalar{u: v.Uint(), class: 1}, nil
	case reflect.Float32, reflect.Float64:
		return scalar{f: v.Float(), class: 2}, nil
	default:
		return scalar{}, fmt.Errorf("dtype: unsupported element type %s", v.Type())
	}
}

// asInt returns the value as a signed integer, failing on range overflow
// or on a fractional float.
func (s scalar) asInt(bits int) (int64, error) {
	var v int64
	switch s.class {
	case 0:
		v = s.i
	case 1:
		if s.u > math.MaxInt64 {
			return 0, fmt.Errorf("dtype: value %d overflows int%d", s.u, bits)
		}
		v = int64(s.u)
	case 2:
		if s.f != math.Trunc(s.f) {
			return 0, fmt.Errorf("dtype: cannot store fractional value %v in an integer kind", s.f)
		}
		if s.f < math.MinInt64 || s.f >= math.MaxInt64 {
			return 0, fmt.Errorf("dtype: value %v overflows int%d", s.f, bits)
		}
		v = int64(s.f)
	}
	if bits < 64 {
		limit := int64(1) << (bits - 1)
		if v < -limit || v >= limit {
			return 0, fmt.Errorf("dtype: value %d overflows int%d", v, bits)
		}
	}
	return v, nil
}

// asUint returns the value as an unsigned integer, failing on negative
// input or range overflow.
func (s scalar) asUint(bits int) (uint64, error) {
	var v uint64
	switch s.class {
	case 0:
		if s.i < 0 {
			return 0, fmt.Errorf("dtype: negative value %d in unsigned kind", s.i)
		}
		v = uint64(s.i)
	case 1:
		v = s.u
	case 2:
		if s.f != math.Trunc(s.f) {
			return 0, fmt.Errorf("dtype: cannot store fractional value %v in an integer kind", s.f)
		}
		if s.f < 0 || s.f >= math.MaxUint64 {
			return 0, fmt.Errorf("dtype: value %v overflows uint%d", s.f, bits)
		}
		v = uint64(s.f)
	}
	if bits < 64 && v >= uint64(1)<<bits {
		return 0, fmt.Errorf("dtype: value %d overflows uint%d", v, bits)
	}
	return v, nil
}

func (s scalar) asFloat() float64 {
	switch s.class {
	case 0:
		return float64(s.i)
	case 1:
		return float64(s.u)
	default:
		return s.f
	}
}
