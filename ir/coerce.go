package ir

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ParseAs parses text as a scalar of type t. The text forms accepted are
// those produced by Text.
func ParseAs(t Type, text string) (*Node, error) {
	s := strings.TrimSpace(text)
	switch t {
	case NullType:
		if s == "" || s == "null" {
			return Null(), nil
		}
	case BoolType:
		if b, err := strconv.ParseBool(s); err == nil {
			return FromBool(b), nil
		}
	case IntType:
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return FromInt(i), nil
		}
	case UintType:
		if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return FromUint(u), nil
		}
	case FloatType:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return FromFloat(f), nil
		}
	case StringType:
		return FromString(text), nil
	case BytesType:
		if b, err := hex.DecodeString(s); err == nil {
			return FromBytes(b), nil
		}
	case TimeType:
		for _, layout := range timeLayouts {
			if tm, err := time.Parse(layout, s); err == nil {
				return FromTime(tm), nil
			}
		}
	default:
		return nil, fmt.Errorf("%w: %s is not a scalar type", ErrInvalidFormat, t)
	}
	return nil, fmt.Errorf("%w: %q is not a valid %s", ErrInvalidFormat, text, t)
}

// Zero returns the zero value of type t.
func Zero(t Type) *Node {
	switch t {
	case ListType:
		return &Node{Type: ListType, Values: []*Node{}}
	case MapType:
		return &Node{Type: MapType, Fields: []string{}, Values: []*Node{}}
	case UnsupportedType:
		return FromUnsupported("", nil)
	default:
		return &Node{Type: t}
	}
}

// Convert returns n converted to type to. Numbers convert between kinds when
// the value is representable, booleans convert to and from 0 and 1, times
// convert to and from unix seconds, strings and byte sequences convert through
// UTF-8, and anything else goes through ParseAs on
// the Text of n. Any value converts to Null. Containers and unsupported
// values only convert to their own type.
func Convert(n *Node, to Type) (*Node, error) {
	if n.Type == to {
		return n.Clone(), nil
	}
	if to == NullType {
		return Null(), nil
	}
	if !n.Type.IsScalar() || !to.IsScalar() {
		return nil, fmt.Errorf("%w: cannot convert %s to %s", ErrInvalidFormat, n.Type, to)
	}
	switch {
	case n.Type == BytesType && to == StringType && utf8.Valid(n.Bytes):
		return FromString(string(n.Bytes)), nil
	case to == StringType:
		return FromString(Text(n)), nil
	case n.Type == StringType && to == BytesType:
		return FromBytes([]byte(n.String)), nil
	}
	switch n.Type {
	case IntType, UintType, FloatType, BoolType:
		if res, ok := convertNumber(n, to); ok {
			return res, nil
		}
	case TimeType:
		if to == IntType {
			return FromInt(n.Time.Unix()), nil
		}
	}
	return ParseAs(to, Text(n))
}

// ConvertOrZero is like Convert but falls back to the zero value of to.
func ConvertOrZero(n *Node, to Type) *Node {
	res, err := Convert(n, to)
	if err != nil {
		return Zero(to)
	}
	return res
}

func convertNumber(n *Node, to Type) (*Node, bool) {
	var (
		f     float64
		exact = true
	)
	switch n.Type {
	case IntType:
		f = float64(n.Int64)
		switch to {
		case UintType:
			if n.Int64 < 0 {
				return nil, false
			}
			return FromUint(uint64(n.Int64)), true
		case BoolType:
			return FromBool(n.Int64 != 0), true
		case TimeType:
			return FromTime(time.Unix(n.Int64, 0).UTC()), true
		}
	case UintType:
		f = float64(n.Uint64)
		switch to {
		case IntType:
			if n.Uint64 > math.MaxInt64 {
				return nil, false
			}
			return FromInt(int64(n.Uint64)), true
		case BoolType:
			return FromBool(n.Uint64 != 0), true
		}
	case FloatType:
		f = n.Float64
		exact = f == math.Trunc(f)
		if to == BoolType {
			return FromBool(f != 0), true
		}
	case BoolType:
		var i int64
		if n.Bool {
			i = 1
		}
		switch to {
		case IntType:
			return FromInt(i), true
		case UintType:
			return FromUint(uint64(i)), true
		case FloatType:
			return FromFloat(float64(i)), true
		}
		return nil, false
	}
	switch to {
	case FloatType:
		return FromFloat(f), true
	case IntType:
		if exact && f >= math.MinInt64 && f < math.MaxInt64 {
			return FromInt(int64(f)), true
		}
	case UintType:
		if exact && f >= 0 && f < math.MaxUint64 {
			return FromUint(uint64(f)), true
		}
	}
	return nil, false
}
