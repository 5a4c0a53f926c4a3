package ir

import (
	"fmt"

	"github.com/signadot/vtree/ir/addr"
)

// Resolve returns the node at a relative to n. It fails with ErrNotFound at
// the first token that does not name a child.
func (n *Node) Resolve(a addr.Address) (*Node, error) {
	cur := n
	for d, tok := range a {
		i := cur.IndexOf(tok)
		if i == -1 {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, a[:d+1])
		}
		cur = cur.Values[i]
	}
	return cur, nil
}

// ResolveParent returns the parent of the node at a together with the index
// of that node in the parent's Values.
func (n *Node) ResolveParent(a addr.Address) (*Node, int, error) {
	pa, ok := a.Parent()
	if !ok {
		return nil, -1, fmt.Errorf("%w: root has no parent", ErrInvalidOperation)
	}
	p, err := n.Resolve(pa)
	if err != nil {
		return nil, -1, err
	}
	tok, _ := a.Last()
	i := p.IndexOf(tok)
	if i == -1 {
		return nil, -1, fmt.Errorf("%w: %s", ErrNotFound, a)
	}
	return p, i, nil
}

// GetKPath resolves a kinded path such as "a[2].name".
func (n *Node) GetKPath(kp string) (*Node, error) {
	a, err := addr.Parse(kp)
	if err != nil {
		return nil, err
	}
	return n.Resolve(a)
}
