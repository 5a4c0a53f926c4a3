package edit

import (
	"fmt"

	"github.com/signadot/vtree/ir"
	"github.com/signadot/vtree/ir/addr"
)

// InsertBefore inserts Value as the previous sibling of At, whose parent must
// be a list.
type InsertBefore struct {
	At    addr.Address
	Value *ir.Node
}

func (o InsertBefore) String() string {
	return fmt.Sprintf("insert-before %s", o.At.KPath())
}

func (o InsertBefore) Apply(root *ir.Node) (Change, error) {
	return insertSibling(o, root, o.At, 0, o.Value)
}

// InsertAfter inserts Value as the next sibling of At, whose parent must be a
// list.
type InsertAfter struct {
	At    addr.Address
	Value *ir.Node
}

func (o InsertAfter) String() string {
	return fmt.Sprintf("insert-after %s", o.At.KPath())
}

func (o InsertAfter) Apply(root *ir.Node) (Change, error) {
	return insertSibling(o, root, o.At, 1, o.Value)
}

func insertSibling(op Op, root *ir.Node, at addr.Address, offset int, v *ir.Node) (Change, error) {
	if v == nil {
		return Change{}, fmt.Errorf("%w: no value", ir.ErrInvalidOperation)
	}
	p, tok, err := target(root, at)
	if err != nil {
		return Change{}, err
	}
	if p.Type != ir.ListType {
		return Change{}, fmt.Errorf("%w: parent of %s is a %s, not a list", ir.ErrInvalidOperation, at, p.Type)
	}
	i := tok.Index + offset
	if err := p.InsertAt(addr.Index(i), v); err != nil {
		return Change{}, err
	}
	parent := parentOf(at)
	c := Change{Kind: Inserted, At: parent.Index(i), Parent: parent}
	trace(op, c)
	return c, nil
}

// InsertInto adds Value as a child of the list or map at At. A nil Key
// appends to a list; maps need a Key, and an entry already under Key has its
// value replaced in place.
type InsertInto struct {
	At    addr.Address
	Key   *string
	Value *ir.Node
}

func (o InsertInto) String() string {
	if o.Key != nil {
		return fmt.Sprintf("insert-into %s key %q", o.At.KPath(), *o.Key)
	}
	return fmt.Sprintf("insert-into %s", o.At.KPath())
}

func (o InsertInto) Apply(root *ir.Node) (Change, error) {
	if o.Value == nil {
		return Change{}, fmt.Errorf("%w: no value", ir.ErrInvalidOperation)
	}
	n, err := root.Resolve(o.At)
	if err != nil {
		return Change{}, err
	}
	var tok addr.Token
	switch {
	case n.Type == ir.ListType && o.Key == nil:
		tok = addr.Index(n.Len())
	case n.Type == ir.MapType && o.Key != nil:
		tok = addr.Key(*o.Key)
	case n.Type == ir.ListType:
		return Change{}, fmt.Errorf("%w: key %q given for list %s", ir.ErrInvalidOperation, *o.Key, o.At)
	case n.Type == ir.MapType:
		return Change{}, fmt.Errorf("%w: no key given for map %s", ir.ErrInvalidOperation, o.At)
	default:
		return Change{}, fmt.Errorf("%w: cannot insert into %s at %s", ir.ErrInvalidOperation, n.Type, o.At)
	}
	if err := n.InsertAt(tok, o.Value); err != nil {
		return Change{}, err
	}
	c := Change{Kind: Inserted, At: o.At.Child(tok), Parent: o.At}
	trace(o, c)
	return c, nil
}
