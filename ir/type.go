package ir

import (
	"fmt"
	"strings"
)

type Type int

const (
	NullType Type = iota
	BoolType
	IntType
	UintType
	FloatType
	StringType
	BytesType
	TimeType
	ListType
	MapType
	UnsupportedType
)

var typeNames = map[Type]string{
	NullType:        "Null",
	BoolType:        "Bool",
	IntType:         "Int64",
	UintType:        "UInt64",
	FloatType:       "Float64",
	StringType:      "String",
	BytesType:       "ByteSequence",
	TimeType:        "DateTime",
	ListType:        "List",
	MapType:         "Map",
	UnsupportedType: "Unsupported",
}

// type name aliases accepted by ParseType, lower case.
var typeAliases = map[string]Type{
	"null":         NullType,
	"bool":         BoolType,
	"boolean":      BoolType,
	"int":          IntType,
	"int64":        IntType,
	"uint":         UintType,
	"uint64":       UintType,
	"float":        FloatType,
	"float64":      FloatType,
	"double":       FloatType,
	"string":       StringType,
	"str":          StringType,
	"bytes":        BytesType,
	"bytesequence": BytesType,
	"time":         TimeType,
	"datetime":     TimeType,
	"list":         ListType,
	"array":        ListType,
	"map":          MapType,
	"object":       MapType,
	"unsupported":  UnsupportedType,
}

func (t Type) String() string {
	s, ok := typeNames[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, err := ParseType(string(d))
	if err != nil {
		return err
	}
	*t = tt
	return nil
}

// ParseType parses a type name, either its canonical form ("Int64") or a
// common alias ("int", "object"), ignoring case.
func ParseType(s string) (Type, error) {
	t, ok := typeAliases[strings.ToLower(s)]
	if !ok {
		return NullType, fmt.Errorf("%w: unrecognized type %q", ErrInvalidFormat, s)
	}
	return t, nil
}

func Types() []Type {
	return []Type{
		NullType,
		BoolType,
		IntType,
		UintType,
		FloatType,
		StringType,
		BytesType,
		TimeType,
		ListType,
		MapType,
		UnsupportedType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case ListType, MapType:
		return false
	default:
		return true
	}
}

// IsScalar reports whether values of type t can be edited as text.
func (t Type) IsScalar() bool {
	return t.IsLeaf() && t != UnsupportedType
}
