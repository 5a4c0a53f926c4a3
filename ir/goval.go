package ir

import (
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"time"
)

// FromAny converts a Go value, typically produced by a generic decoder, into
// a node. Values of types with no counterpart become Unsupported nodes named
// after the Go type and holding its %v rendering.
func FromAny(v any) *Node {
	switch x := v.(type) {
	case nil:
		return Null()
	case *Node:
		return x.Clone()
	case bool:
		return FromBool(x)
	case int:
		return FromInt(int64(x))
	case int8:
		return FromInt(int64(x))
	case int16:
		return FromInt(int64(x))
	case int32:
		return FromInt(int64(x))
	case int64:
		return FromInt(x)
	case uint:
		return FromUint(uint64(x))
	case uint8:
		return FromUint(uint64(x))
	case uint16:
		return FromUint(uint64(x))
	case uint32:
		return FromUint(uint64(x))
	case uint64:
		return FromUint(x)
	case float32:
		return FromFloat(float64(x))
	case float64:
		return FromFloat(x)
	case string:
		return FromString(x)
	case []byte:
		return FromBytes(x)
	case time.Time:
		return FromTime(x)
	case json.Number:
		return FromNumber(string(x))
	case []any:
		res := &Node{Type: ListType, Values: make([]*Node, len(x))}
		for i, e := range x {
			res.Values[i] = FromAny(e)
		}
		return res
	case map[string]any:
		res := &Node{Type: MapType, Fields: slices.Sorted(maps.Keys(x))}
		res.Values = make([]*Node, len(res.Fields))
		for i, k := range res.Fields {
			res.Values[i] = FromAny(x[k])
		}
		return res
	}
	return fromReflect(reflect.ValueOf(v))
}

func fromReflect(rv reflect.Value) *Node {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null()
		}
		return FromAny(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		res := &Node{Type: ListType, Values: make([]*Node, rv.Len())}
		for i := range res.Values {
			res.Values[i] = FromAny(rv.Index(i).Interface())
		}
		return res
	case reflect.Map:
		kvs := make([]KeyVal, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			kvs = append(kvs, KeyVal{
				Key: fmt.Sprint(iter.Key().Interface()),
				Val: FromAny(iter.Value().Interface()),
			})
		}
		slices.SortFunc(kvs, func(a, b KeyVal) int {
			return strings.Compare(a.Key, b.Key)
		})
		return FromKeyVals(kvs)
	case reflect.String:
		return FromString(rv.String())
	case reflect.Bool:
		return FromBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FromInt(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return FromUint(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return FromFloat(rv.Float())
	}
	return FromUnsupported(rv.Type().String(), fmt.Appendf(nil, "%v", rv.Interface()))
}

// FromNumber parses a decimal number literal choosing the narrowest of
// Int64, UInt64 and Float64 which represents it. Literals which are not
// numbers become strings.
func FromNumber(lit string) *Node {
	for _, t := range []Type{IntType, UintType, FloatType} {
		if n, err := ParseAs(t, lit); err == nil {
			return n
		}
	}
	return FromString(lit)
}

// ToAny converts n into plain Go values: nil, bool, int64, uint64, float64,
// string, []byte, time.Time, []any, map[string]any and *Opaque.
func ToAny(n *Node) any {
	switch n.Type {
	case BoolType:
		return n.Bool
	case IntType:
		return n.Int64
	case UintType:
		return n.Uint64
	case FloatType:
		return n.Float64
	case StringType:
		return n.String
	case BytesType:
		return slices.Clone(n.Bytes)
	case TimeType:
		return n.Time
	case ListType:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			res[i] = ToAny(v)
		}
		return res
	case MapType:
		res := make(map[string]any, len(n.Values))
		for i, v := range n.Values {
			res[n.Fields[i]] = ToAny(v)
		}
		return res
	case UnsupportedType:
		return n.Clone().Opaque
	}
	return nil
}
