package edit

import (
	"fmt"
	"slices"
	"strings"

	"github.com/signadot/vtree/ir"
	"github.com/signadot/vtree/ir/addr"
)

// Symbol names an op and builds instances of it from a map node such as
//
//	op: insert-into
//	at: a
//	value: 4
type Symbol interface {
	String() string
	Instance(spec *ir.Node) (Op, error)
}

type symbol struct {
	name     string
	instance func(s spec) (Op, error)
}

func (s symbol) String() string {
	return s.name
}

func (s symbol) Instance(n *ir.Node) (Op, error) {
	if n.Type != ir.MapType {
		return nil, fmt.Errorf("%w: %s op spec is a %s, not a map", ir.ErrInvalidFormat, s.name, n.Type)
	}
	op, err := s.instance(spec{n})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}
	return op, nil
}

var symbols = []symbol{
	{name: "insert-before", instance: func(s spec) (Op, error) {
		at, v, err := s.atValue()
		return InsertBefore{At: at, Value: v}, err
	}},
	{name: "insert-after", instance: func(s spec) (Op, error) {
		at, v, err := s.atValue()
		return InsertAfter{At: at, Value: v}, err
	}},
	{name: "insert-into", instance: func(s spec) (Op, error) {
		at, v, err := s.atValue()
		if err != nil {
			return nil, err
		}
		op := InsertInto{At: at, Value: v}
		if k := s.n.Get("key"); k != nil {
			key := ir.Text(k)
			op.Key = &key
		}
		return op, nil
	}},
	{name: "remove", instance: func(s spec) (Op, error) {
		at, err := s.at()
		return Remove{At: at}, err
	}},
	{name: "set", instance: func(s spec) (Op, error) {
		at, v, err := s.atValue()
		return SetValue{At: at, Value: v}, err
	}},
	{name: "rename", instance: func(s spec) (Op, error) {
		at, err := s.at()
		if err != nil {
			return nil, err
		}
		key, err := s.text("key")
		return SetKey{At: at, Key: key}, err
	}},
	{name: "set-text", instance: func(s spec) (Op, error) {
		at, err := s.at()
		if err != nil {
			return nil, err
		}
		text, err := s.text("text")
		if err != nil {
			return nil, err
		}
		op := SetText{At: at, Text: text, As: KeepType}
		if s.n.Get("as") != nil {
			op.As, err = s.typ("as")
		}
		return op, err
	}},
	{name: "set-type", instance: func(s spec) (Op, error) {
		at, err := s.at()
		if err != nil {
			return nil, err
		}
		to, err := s.typ("to")
		if err != nil {
			return nil, err
		}
		force, err := s.flag("force")
		return SetType{At: at, To: to, Force: force}, err
	}},
}

// Lookup returns the symbol named name, or nil.
func Lookup(name string) Symbol {
	i := slices.IndexFunc(symbols, func(s symbol) bool { return s.name == name })
	if i == -1 {
		return nil
	}
	return symbols[i]
}

// Names returns the names of all ops.
func Names() []string {
	res := make([]string, len(symbols))
	for i := range symbols {
		res[i] = symbols[i].name
	}
	return res
}

// Decode builds an op from a map node whose "op" entry names the symbol.
func Decode(n *ir.Node) (Op, error) {
	name := n.Get("op")
	if name == nil || name.Type != ir.StringType {
		return nil, fmt.Errorf("%w: missing op name", ir.ErrInvalidFormat)
	}
	sym := Lookup(name.String)
	if sym == nil {
		return nil, fmt.Errorf("%w: unknown op %q, expected one of %s", ir.ErrInvalidFormat, name.String, strings.Join(Names(), ", "))
	}
	return sym.Instance(n)
}

// DecodeList decodes a list of op specs.
func DecodeList(n *ir.Node) ([]Op, error) {
	if n.Type != ir.ListType {
		return nil, fmt.Errorf("%w: op list is a %s", ir.ErrInvalidFormat, n.Type)
	}
	res := make([]Op, 0, n.Len())
	for i, v := range n.Values {
		op, err := Decode(v)
		if err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
		res = append(res, op)
	}
	return res, nil
}

type spec struct {
	n *ir.Node
}

func (s spec) at() (addr.Address, error) {
	v := s.n.Get("at")
	if v == nil {
		return addr.Root, nil
	}
	if v.Type != ir.StringType {
		return nil, fmt.Errorf("%w: at must be a path, got %s", ir.ErrInvalidFormat, v.Type)
	}
	return addr.Parse(v.String)
}

func (s spec) atValue() (addr.Address, *ir.Node, error) {
	at, err := s.at()
	if err != nil {
		return nil, nil, err
	}
	v := s.n.Get("value")
	if v == nil {
		return nil, nil, fmt.Errorf("%w: missing value", ir.ErrInvalidFormat)
	}
	return at, v, nil
}

func (s spec) text(field string) (string, error) {
	v := s.n.Get(field)
	if v == nil {
		return "", fmt.Errorf("%w: missing %s", ir.ErrInvalidFormat, field)
	}
	if !v.IsLeaf() {
		return "", fmt.Errorf("%w: %s must be a scalar", ir.ErrInvalidFormat, field)
	}
	return ir.Text(v), nil
}

// flag reads an optional boolean field, given as a Bool or as text.
func (s spec) flag(field string) (bool, error) {
	v := s.n.Get(field)
	switch {
	case v == nil:
		return false, nil
	case v.Type == ir.BoolType:
		return v.Bool, nil
	case v.Type != ir.StringType:
		return false, fmt.Errorf("%w: %s must be a bool, got %s", ir.ErrInvalidFormat, field, v.Type)
	}
	b, err := ir.ParseAs(ir.BoolType, v.String)
	if err != nil {
		return false, fmt.Errorf("%s: %w", field, err)
	}
	return b.Bool, nil
}

func (s spec) typ(field string) (ir.Type, error) {
	name, err := s.text(field)
	if err != nil {
		return ir.NullType, err
	}
	return ir.ParseType(name)
}
