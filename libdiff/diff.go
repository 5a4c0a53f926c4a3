// Package libdiff computes structural differences between two values and
// converts between values and JSON patches.
//
// Addresses of Delete edits are positions in the old value. Addresses of
// Insert and Replace edits are positions in the new value.
package libdiff

import (
	"fmt"

	"github.com/signadot/vtree/ir"
	"github.com/signadot/vtree/ir/addr"
)

type Kind int

const (
	Insert Kind = iota
	Delete
	Replace
)

func (k Kind) String() string {
	switch k {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	default:
		return fmt.Sprintf("<kind %d>", int(k))
	}
}

// Edit is one difference. From is nil for inserts and To is nil for
// deletes.
type Edit struct {
	Kind Kind
	At   addr.Address
	From *ir.Node
	To   *ir.Node
}

func (e Edit) String() string {
	switch e.Kind {
	case Insert:
		return "+ " + e.At.KPath() + ": " + ir.Preview(e.To, 1, 60)
	case Delete:
		return "- " + e.At.KPath() + ": " + ir.Preview(e.From, 1, 60)
	}
	if e.From.Type == ir.StringType && e.To.Type == ir.StringType {
		return "~ " + e.At.KPath() + ": " + String(e.From.String, e.To.String)
	}
	return "~ " + e.At.KPath() + ": " + ir.Preview(e.From, 1, 60) + " -> " + ir.Preview(e.To, 1, 60)
}

// DiffFunc diffs two values found at the same position.
type DiffFunc func(at addr.Address, from, to *ir.Node) []Edit

// Diff returns the edits turning from into to, parents before children. Map
// keys are aligned by name and list items by value, so a moved key or an
// inserted item does not show up as a cascade of replacements.
func Diff(from, to *ir.Node) []Edit {
	return diff(addr.Root, from, to)
}

func diff(at addr.Address, from, to *ir.Node) []Edit {
	if from.Type != to.Type {
		return []Edit{MakeDiff(at, from, to)}
	}
	switch from.Type {
	case ir.MapType:
		return DiffMap(at, from, to, diff)
	case ir.ListType:
		return DiffList(at, from, to, diff)
	}
	if ir.Equal(from, to) {
		return nil
	}
	return []Edit{MakeDiff(at, from, to)}
}

// MakeDiff builds an edit from either side, nil meaning absent.
func MakeDiff(at addr.Address, from, to *ir.Node) Edit {
	switch {
	case from == nil:
		return Edit{Kind: Insert, At: at, To: to.Clone()}
	case to == nil:
		return Edit{Kind: Delete, At: at, From: from.Clone()}
	default:
		return Edit{Kind: Replace, At: at, From: from.Clone(), To: to.Clone()}
	}
}
