// Package edit provides the mutations applicable to a dynamic value.
//
// Every Op validates completely before it changes anything, so an Op which
// returns an error leaves the value exactly as it was. On success the
// returned Change names the position whose children were affected, which is
// what a tree.Model must invalidate.
package edit

import (
	"fmt"

	"github.com/signadot/vtree/debug"
	"github.com/signadot/vtree/ir"
	"github.com/signadot/vtree/ir/addr"
)

type Op interface {
	Apply(root *ir.Node) (Change, error)
	String() string
}

type ChangeKind int

const (
	Inserted ChangeKind = iota
	Removed
	Replaced
	Renamed
)

func (k ChangeKind) String() string {
	switch k {
	case Inserted:
		return "inserted"
	case Removed:
		return "removed"
	case Replaced:
		return "replaced"
	case Renamed:
		return "renamed"
	}
	return "<unknown change>"
}

// Change describes a successful mutation.
type Change struct {
	Kind ChangeKind
	// At is the address of the affected node after the change. For removals
	// it is the address the node had.
	At addr.Address
	// Parent is the address whose children changed. For changes to the root
	// it is the root.
	Parent addr.Address
	// Unchanged is set by ops which succeed without changing anything.
	Unchanged bool
}

// KeepType makes SetText parse text as the current type of its target.
const KeepType ir.Type = -1

// Apply applies ops in order, stopping at the first failure. Changes of the
// ops applied before a failure are kept.
func Apply(root *ir.Node, ops ...Op) ([]Change, error) {
	res := make([]Change, 0, len(ops))
	for i, op := range ops {
		c, err := op.Apply(root)
		if err != nil {
			return res, fmt.Errorf("op %d (%s): %w", i, op, err)
		}
		res = append(res, c)
	}
	return res, nil
}

// target resolves the parent of at and the token of at within it.
func target(root *ir.Node, at addr.Address) (*ir.Node, addr.Token, error) {
	if at.IsRoot() {
		return nil, addr.Token{}, fmt.Errorf("%w: root has no parent", ir.ErrInvalidOperation)
	}
	p, _, err := root.ResolveParent(at)
	if err != nil {
		return nil, addr.Token{}, err
	}
	tok, _ := at.Last()
	return p, tok, nil
}

func parentOf(at addr.Address) addr.Address {
	p, _ := at.Parent()
	return p
}

func trace(op Op, c Change) {
	if debug.Edit() {
		debug.Logf("edit: %s: %s %s\n", op, c.Kind, c.At)
	}
}
