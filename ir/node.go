package ir

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"time"

	"github.com/signadot/vtree/ir/addr"
)

// Node is a dynamic value. The payload lives in the field selected by Type.
//
// For MapType, Fields[i] is the key of Values[i]; keys are unique.
// For ListType, Fields is nil.
type Node struct {
	Type   Type
	Fields []string
	Values []*Node

	Bool    bool
	Int64   int64
	Uint64  uint64
	Float64 float64
	String  string
	Bytes   []byte
	Time    time.Time
	Opaque  *Opaque
}

// Opaque is the verbatim payload of a value whose type is not understood.
type Opaque struct {
	TypeName string
	Data     []byte
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: IntType, Int64: v}
}

func FromUint(v uint64) *Node {
	return &Node{Type: UintType, Uint64: v}
}

func FromFloat(v float64) *Node {
	return &Node{Type: FloatType, Float64: v}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromBytes(v []byte) *Node {
	return &Node{Type: BytesType, Bytes: slices.Clone(v)}
}

func FromTime(v time.Time) *Node {
	return &Node{Type: TimeType, Time: v}
}

func FromUnsupported(typeName string, data []byte) *Node {
	return &Node{
		Type:   UnsupportedType,
		Opaque: &Opaque{TypeName: typeName, Data: slices.Clone(data)},
	}
}

// FromSlice returns a list owning vs.
func FromSlice(vs []*Node) *Node {
	res := &Node{Type: ListType, Values: make([]*Node, len(vs))}
	copy(res.Values, vs)
	return res
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals returns a map with the entries of kvs in order. A repeated key
// replaces the value of its first occurrence.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{Type: MapType}
	for _, kv := range kvs {
		if i := res.fieldIndex(kv.Key); i != -1 {
			res.Values[i] = kv.Val
			continue
		}
		res.Fields = append(res.Fields, kv.Key)
		res.Values = append(res.Values, kv.Val)
	}
	return res
}

// FromMap returns a map with the entries of m, keys sorted.
func FromMap(m map[string]*Node) *Node {
	res := &Node{Type: MapType}
	res.Fields = slices.Sorted(maps.Keys(m))
	res.Values = make([]*Node, len(res.Fields))
	for i, k := range res.Fields {
		res.Values[i] = m[k]
	}
	return res
}

func (n *Node) IsLeaf() bool {
	return n.Type.IsLeaf()
}

// Len returns the number of children of a list or map, 0 otherwise.
func (n *Node) Len() int {
	if n.IsLeaf() {
		return 0
	}
	return len(n.Values)
}

// TokenAt returns the token of the i-th child.
func (n *Node) TokenAt(i int) addr.Token {
	if n.Type == MapType {
		return addr.Key(n.Fields[i])
	}
	return addr.Index(i)
}

// Entries iterates over the children of n in order.
func (n *Node) Entries() iter.Seq2[addr.Token, *Node] {
	return func(yield func(addr.Token, *Node) bool) {
		for i := 0; i < n.Len(); i++ {
			if !yield(n.TokenAt(i), n.Values[i]) {
				return
			}
		}
	}
}

// Tokens returns the tokens of the children of n in order.
func (n *Node) Tokens() []addr.Token {
	res := make([]addr.Token, n.Len())
	for i := range res {
		res[i] = n.TokenAt(i)
	}
	return res
}

func (n *Node) fieldIndex(key string) int {
	return slices.Index(n.Fields, key)
}

// IndexOf returns the position in Values of the child named by tok, or -1.
func (n *Node) IndexOf(tok addr.Token) int {
	switch n.Type {
	case ListType:
		if tok.IsKey || tok.Index < 0 || tok.Index >= len(n.Values) {
			return -1
		}
		return tok.Index
	case MapType:
		if !tok.IsKey {
			return -1
		}
		return n.fieldIndex(tok.Key)
	}
	return -1
}

// Child returns the child named by tok.
func (n *Node) Child(tok addr.Token) (*Node, error) {
	i := n.IndexOf(tok)
	if i == -1 {
		return nil, fmt.Errorf("%w: %s in %s", ErrNotFound, tok, n.Type)
	}
	return n.Values[i], nil
}

// Get returns the value under key in a map, or nil.
func (n *Node) Get(key string) *Node {
	if n.Type != MapType {
		return nil
	}
	i := n.fieldIndex(key)
	if i == -1 {
		return nil
	}
	return n.Values[i]
}

// InsertAt inserts a clone of v into n.
//
// For lists tok must be an index in [0, Len()]; the value is inserted before
// that index, Len() appends. For maps tok must be a key; an existing entry has
// its value replaced in place, otherwise the entry is appended.
func (n *Node) InsertAt(tok addr.Token, v *Node) error {
	switch n.Type {
	case ListType:
		if tok.IsKey {
			return fmt.Errorf("%w: key %s on list", ErrInvalidOperation, tok)
		}
		if tok.Index < 0 || tok.Index > len(n.Values) {
			return fmt.Errorf("%w: index %d out of range [0, %d]", ErrNotFound, tok.Index, len(n.Values))
		}
		n.Values = slices.Insert(n.Values, tok.Index, v.Clone())
		return nil
	case MapType:
		if !tok.IsKey {
			return fmt.Errorf("%w: index %s on map", ErrInvalidOperation, tok)
		}
		if i := n.fieldIndex(tok.Key); i != -1 {
			n.Values[i] = v.Clone()
			return nil
		}
		n.Fields = append(n.Fields, tok.Key)
		n.Values = append(n.Values, v.Clone())
		return nil
	default:
		return fmt.Errorf("%w: cannot insert into %s", ErrInvalidOperation, n.Type)
	}
}

// Append adds a clone of v at the end of a list.
func (n *Node) Append(v *Node) error {
	return n.InsertAt(addr.Index(n.Len()), v)
}

// Remove detaches the child named by tok and returns it.
func (n *Node) Remove(tok addr.Token) (*Node, error) {
	i := n.IndexOf(tok)
	if i == -1 {
		return nil, fmt.Errorf("%w: %s in %s", ErrNotFound, tok, n.Type)
	}
	res := n.Values[i]
	n.Values = slices.Delete(n.Values, i, i+1)
	if n.Type == MapType {
		n.Fields = slices.Delete(n.Fields, i, i+1)
	}
	return res, nil
}

// RenameKey changes the key of a map entry keeping its position. Renaming to
// the current key does nothing.
func (n *Node) RenameKey(from, to string) error {
	if n.Type != MapType {
		return fmt.Errorf("%w: rename key in %s", ErrInvalidOperation, n.Type)
	}
	i := n.fieldIndex(from)
	if i == -1 {
		return fmt.Errorf("%w: key %q", ErrNotFound, from)
	}
	if from == to {
		return nil
	}
	if n.fieldIndex(to) != -1 {
		return fmt.Errorf("%w: key %q already present", ErrKeyConflict, to)
	}
	n.Fields[i] = to
	return nil
}

// Set replaces the payload of n with a copy of v. Pointers to n, and so its
// position in its parent, stay valid.
func (n *Node) Set(v *Node) {
	*n = *v.Clone()
}

func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	res := *n
	res.Fields = slices.Clone(n.Fields)
	res.Bytes = slices.Clone(n.Bytes)
	if n.Opaque != nil {
		res.Opaque = &Opaque{TypeName: n.Opaque.TypeName, Data: slices.Clone(n.Opaque.Data)}
	}
	if n.Values != nil {
		res.Values = make([]*Node, len(n.Values))
		for i, v := range n.Values {
			res.Values[i] = v.Clone()
		}
	}
	return &res
}

// Visit calls f on n and its descendants in depth first order, once before
// (isPost false) and once after (isPost true) the children. Children are
// skipped when the pre call returns false. The address passed to f is
// relative to n.
func (n *Node) Visit(f func(a addr.Address, y *Node, isPost bool) (bool, error)) error {
	return n.visit(addr.Root, f)
}

func (n *Node) visit(a addr.Address, f func(addr.Address, *Node, bool) (bool, error)) error {
	dive, err := f(a, n, false)
	if err != nil {
		return err
	}
	if dive {
		for tok, child := range n.Entries() {
			if err := child.visit(a.Child(tok), f); err != nil {
				return err
			}
		}
	}
	_, err = f(a, n, true)
	return err
}
