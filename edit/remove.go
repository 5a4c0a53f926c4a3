package edit

import (
	"fmt"

	"github.com/signadot/vtree/ir"
	"github.com/signadot/vtree/ir/addr"
)

// Remove detaches the node at At. The root cannot be removed.
type Remove struct {
	At addr.Address
}

func (o Remove) String() string {
	return fmt.Sprintf("remove %s", o.At.KPath())
}

func (o Remove) Apply(root *ir.Node) (Change, error) {
	p, tok, err := target(root, o.At)
	if err != nil {
		return Change{}, err
	}
	if _, err := p.Remove(tok); err != nil {
		return Change{}, err
	}
	c := Change{Kind: Removed, At: o.At, Parent: parentOf(o.At)}
	trace(o, c)
	return c, nil
}
