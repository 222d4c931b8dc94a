package types

import (
	"math"
	"strconv"

	"github.com/cwbudde/go-cel/internal/cerr"
)

// Conversion matrix, exposed as the base function table entries `bool`,
// `bytes`, `double`, `duration`, `int`, `list`, `map`, `string`,
// `timestamp`, `uint` (spec.md §4.1, §6). Every conversion fails explicitly
// on range or domain violation; "silent lossy conversions are forbidden."

// ToBool converts v to Bool. Only Bool itself and Strings accepted by
// strconv.ParseBool ("true", "false", "1", "0", "t", "F", "TRUE", ...)
// convert; anything else is "no such overload".
func ToBool(v Value) (Bool, *cerr.Error) {
	switch x := v.(type) {
	case Bool:
		return x, nil
	case String:
		b, err := strconv.ParseBool(string(x))
		if err != nil {
			return false, cerr.NoSuchOverload()
		}
		return Bool(b), nil
	}
	return false, cerr.NoSuchOverload()
}

// ToInt converts v to Int, failing on out-of-range Uint/Double operands
// or unparseable Strings (spec.md §4.1: "Integer-to-uint and uint-to-int
// conversions fail on out-of-range").
func ToInt(v Value) (Int, *cerr.Error) {
	switch x := v.(type) {
	case Int:
		return x, nil
	case Uint:
		if x > math.MaxInt64 {
			return 0, cerr.RangeError()
		}
		return Int(x), nil
	case Double:
		if x < math.MinInt64 || x >= math.MaxInt64 || math.IsNaN(float64(x)) {
			return 0, cerr.RangeError()
		}
		return Int(x), nil
	case String:
		n, err := strconv.ParseInt(string(x), 10, 64)
		if err != nil {
			return 0, cerr.RangeError()
		}
		return Int(n), nil
	case Timestamp:
		return Int(x), nil
	case Duration:
		return Int(x), nil
	}
	return 0, cerr.NoSuchOverload()
}

// ToUint converts v to Uint, failing on negative Int/Double operands or
// out-of-range values.
func ToUint(v Value) (Uint, *cerr.Error) {
	switch x := v.(type) {
	case Uint:
		return x, nil
	case Int:
		if x < 0 {
			return 0, cerr.RangeError()
		}
		return Uint(x), nil
	case Double:
		if x < 0 || x >= math.MaxUint64 || math.IsNaN(float64(x)) {
			return 0, cerr.RangeError()
		}
		return Uint(x), nil
	case String:
		n, err := strconv.ParseUint(string(x), 10, 64)
		if err != nil {
			return 0, cerr.RangeError()
		}
		return Uint(n), nil
	}
	return 0, cerr.NoSuchOverload()
}

// ToDouble converts v to Double. Never overflows (spec.md §4.1).
func ToDouble(v Value) (Double, *cerr.Error) {
	switch x := v.(type) {
	case Double:
		return x, nil
	case Int:
		return Double(x), nil
	case Uint:
		return Double(x), nil
	case String:
		f, err := strconv.ParseFloat(string(x), 64)
		if err != nil {
			return 0, cerr.RangeError()
		}
		return Double(f), nil
	}
	return 0, cerr.NoSuchOverload()
}

// ToString converts v to String. Every scalar kind has a defined
// string() form; Bytes must be valid UTF-8 (spec.md §4.1).
func ToString(v Value) (String, *cerr.Error) {
	switch x := v.(type) {
	case String:
		return x, nil
	case Bytes:
		return x.ToStringStrict()
	case Int, Uint, Double, Bool, Duration, Timestamp:
		return String(v.String()), nil
	}
	return "", cerr.NoSuchOverload()
}

// ToBytes converts v to Bytes. Only String and Bytes convert.
func ToBytes(v Value) (Bytes, *cerr.Error) {
	switch x := v.(type) {
	case Bytes:
		return x, nil
	case String:
		return Bytes(x), nil
	}
	return nil, cerr.NoSuchOverload()
}

// ToDuration converts v to Duration, parsing Strings with the grammar in
// spec.md §4.1.
func ToDuration(v Value) (Duration, *cerr.Error) {
	switch x := v.(type) {
	case Duration:
		return x, nil
	case String:
		return ParseDuration(string(x))
	case Int:
		return Duration(x), nil
	}
	return 0, cerr.NoSuchOverload()
}

// ToTimestamp converts v to Timestamp, parsing RFC3339 Strings (spec.md
// §4.1).
func ToTimestamp(v Value) (Timestamp, *cerr.Error) {
	switch x := v.(type) {
	case Timestamp:
		return x, nil
	case String:
		return ParseTimestamp(string(x))
	case Int:
		return Timestamp(int64(x) * int64(1e9)), nil
	}
	return 0, cerr.NoSuchOverload()
}

// ToList converts v to *List. Only List itself converts; there is no
// implicit coercion from Map or Message (spec.md lists `list` in the
// conversion matrix as an identity-style constructor used by hosts that
// need to assert a dyn value's shape).
func ToList(v Value) (*List, *cerr.Error) {
	if x, ok := v.(*List); ok {
		return x, nil
	}
	return nil, cerr.NoSuchOverload()
}

// ToMap converts v to *Map. Only Map itself converts.
func ToMap(v Value) (*Map, *cerr.Error) {
	if x, ok := v.(*Map); ok {
		return x, nil
	}
	return nil, cerr.NoSuchOverload()
}

// ToType implements the `type()` builtin: returns the reflective Type
// handle for v (spec.md §4.1).
func ToType(v Value) *TypeValue {
	return v.CELType()
}
