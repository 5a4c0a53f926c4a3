package edit

import (
	"fmt"

	"github.com/signadot/vtree/ir"
	"github.com/signadot/vtree/ir/addr"
)

// SetValue replaces the value at At, which keeps its address.
type SetValue struct {
	At    addr.Address
	Value *ir.Node
}

func (o SetValue) String() string {
	return fmt.Sprintf("set %s", o.At.KPath())
}

func (o SetValue) Apply(root *ir.Node) (Change, error) {
	if o.Value == nil {
		return Change{}, fmt.Errorf("%w: no value", ir.ErrInvalidOperation)
	}
	return replace(o, root, o.At, func(*ir.Node) (*ir.Node, error) {
		return o.Value, nil
	})
}

// SetText parses Text as a scalar of type As, or of the current type when As
// is KeepType, and stores it at At.
type SetText struct {
	At   addr.Address
	Text string
	As   ir.Type
}

func (o SetText) String() string {
	if o.As == KeepType {
		return fmt.Sprintf("set-text %s %q", o.At.KPath(), o.Text)
	}
	return fmt.Sprintf("set-text %s %q as %s", o.At.KPath(), o.Text, o.As)
}

func (o SetText) Apply(root *ir.Node) (Change, error) {
	return replace(o, root, o.At, func(n *ir.Node) (*ir.Node, error) {
		t := o.As
		if t == KeepType {
			t = n.Type
		}
		return ir.ParseAs(t, o.Text)
	})
}

// SetType converts the value at At to type To. When the conversion fails
// and Force is set, the zero value of To is stored instead.
type SetType struct {
	At    addr.Address
	To    ir.Type
	Force bool
}

func (o SetType) String() string {
	return fmt.Sprintf("set-type %s %s", o.At.KPath(), o.To)
}

func (o SetType) Apply(root *ir.Node) (Change, error) {
	return replace(o, root, o.At, func(n *ir.Node) (*ir.Node, error) {
		if o.Force {
			return ir.ConvertOrZero(n, o.To), nil
		}
		return ir.Convert(n, o.To)
	})
}

func replace(op Op, root *ir.Node, at addr.Address, f func(*ir.Node) (*ir.Node, error)) (Change, error) {
	n, err := root.Resolve(at)
	if err != nil {
		return Change{}, err
	}
	v, err := f(n)
	if err != nil {
		return Change{}, err
	}
	n.Set(v)
	parent, ok := at.Parent()
	if !ok {
		parent = addr.Root
	}
	c := Change{Kind: Replaced, At: at, Parent: parent}
	trace(op, c)
	return c, nil
}

// SetKey renames the map entry at At to Key. Renaming an entry to its own
// key does nothing.
type SetKey struct {
	At  addr.Address
	Key string
}

func (o SetKey) String() string {
	return fmt.Sprintf("rename %s %q", o.At.KPath(), o.Key)
}

func (o SetKey) Apply(root *ir.Node) (Change, error) {
	p, tok, err := target(root, o.At)
	if err != nil {
		return Change{}, err
	}
	if p.Type != ir.MapType {
		return Change{}, fmt.Errorf("%w: parent of %s is a %s, not a map", ir.ErrInvalidOperation, o.At, p.Type)
	}
	if err := p.RenameKey(tok.Key, o.Key); err != nil {
		return Change{}, fmt.Errorf("rename %s: %w", o.At, err)
	}
	parent := parentOf(o.At)
	c := Change{Kind: Renamed, At: parent.Key(o.Key), Parent: parent, Unchanged: tok.Key == o.Key}
	trace(o, c)
	return c, nil
}
