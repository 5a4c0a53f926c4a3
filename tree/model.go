// Package tree materializes a dynamic value as browsable rows.
//
// A Model never walks more of the value than it is asked for: child tokens of
// a position are computed the first time that position's row count is
// requested, and rows are built the first time they are requested. Both are
// cached in an entry tree keyed by token, mirroring the value, so that
// invalidating a position only touches the entries below it.
//
// A Model does not own the value. It reads it through the root function given
// to New and must be told, through Invalidate, about every change made to it.
package tree

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/signadot/vtree/debug"
	"github.com/signadot/vtree/ir"
	"github.com/signadot/vtree/ir/addr"
)

// Row is the materialized view of one position.
type Row struct {
	Address addr.Address
	// Parent is the address of the parent row, nil for the root.
	Parent addr.Address
	Depth  int
	// Label is the key or index of the row within its parent.
	Label    string
	Preview  string
	Type     ir.Type
	TypeName string
	// Size is the number of children of the value, ignoring visibility.
	Size int
	// Loaded reports whether the child rows have been counted.
	Loaded bool
}

func (r *Row) IsRoot() bool {
	return r.Address.IsRoot()
}

func (r *Row) HasChildren() bool {
	return r.Size > 0
}

type entry struct {
	row      *Row
	loaded   bool
	children []addr.Token
	sub      map[addr.Token]*entry
}

func (e *entry) child(tok addr.Token) *entry {
	if e.sub == nil {
		e.sub = map[addr.Token]*entry{}
	}
	c := e.sub[tok]
	if c == nil {
		c = &entry{}
		e.sub[tok] = c
	}
	return c
}

func (e *entry) reset() {
	*e = entry{}
}

type Model struct {
	root func() *ir.Node
	cfg  *Config
	top  *entry
}

func New(root func() *ir.Node, opts ...Option) *Model {
	return &Model{
		root: root,
		cfg:  newConfig(opts),
		top:  &entry{},
	}
}

func (m *Model) Config() Config {
	return *m.cfg
}

// SetVisibility replaces the visibility filter, nil shows everything, and
// drops every cached row.
func (m *Model) SetVisibility(v Visibility) {
	m.cfg.Visibility = v
	m.top.reset()
}

func (m *Model) visible(a addr.Address) bool {
	return m.cfg.Visibility == nil || a.IsRoot() || m.cfg.Visibility.Visible(a)
}

// lookup returns the value and the entry at a, creating entries on the way.
func (m *Model) lookup(a addr.Address) (*ir.Node, *entry, error) {
	if !m.visible(a) {
		return nil, nil, fmt.Errorf("%w: %s is hidden", ir.ErrNotFound, a)
	}
	n, err := m.root().Resolve(a)
	if err != nil {
		return nil, nil, err
	}
	e := m.top
	for _, tok := range a {
		e = e.child(tok)
	}
	return n, e, nil
}

// RowCount returns the number of visible children at a.
func (m *Model) RowCount(a addr.Address) (int, error) {
	n, e, err := m.lookup(a)
	if err != nil {
		return 0, err
	}
	m.load(a, n, e)
	return len(e.children), nil
}

func (m *Model) load(a addr.Address, n *ir.Node, e *entry) {
	if e.loaded {
		return
	}
	toks := make([]addr.Token, 0, n.Len())
	for tok := range n.Entries() {
		if m.visible(a.Child(tok)) {
			toks = append(toks, tok)
		}
	}
	if m.cfg.SortKeys && n.Type == ir.MapType {
		slices.SortStableFunc(toks, func(x, y addr.Token) int {
			return cmp.Compare(x.Key, y.Key)
		})
	}
	e.children = toks
	e.loaded = true
	if e.row != nil {
		e.row.Loaded = true
	}
	if debug.Tree() {
		debug.Logf("tree: loaded %d children at %s\n", len(toks), a)
	}
}

// RowAt returns the row of the i-th visible child of a.
func (m *Model) RowAt(a addr.Address, i int) (Row, error) {
	n, e, err := m.lookup(a)
	if err != nil {
		return Row{}, err
	}
	m.load(a, n, e)
	if i < 0 || i >= len(e.children) {
		return Row{}, fmt.Errorf("%w: row %d of %d at %s", ir.ErrNotFound, i, len(e.children), a)
	}
	tok := e.children[i]
	child, err := n.Child(tok)
	if err != nil {
		// the value changed without Invalidate being called.
		return Row{}, err
	}
	return *m.row(a.Child(tok), child, e.child(tok)), nil
}

// Row returns the row at a, which may be the root.
func (m *Model) Row(a addr.Address) (Row, error) {
	n, e, err := m.lookup(a)
	if err != nil {
		return Row{}, err
	}
	return *m.row(a, n, e), nil
}

// Children returns the rows of the visible children of a.
func (m *Model) Children(a addr.Address) ([]Row, error) {
	count, err := m.RowCount(a)
	if err != nil {
		return nil, err
	}
	res := make([]Row, 0, count)
	for i := range count {
		r, err := m.RowAt(a, i)
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}

func (m *Model) row(a addr.Address, n *ir.Node, e *entry) *Row {
	if e.row != nil {
		return e.row
	}
	r := &Row{
		Address:  a,
		Depth:    a.Depth(),
		Preview:  ir.Preview(n, m.cfg.PreviewDepth, m.cfg.PreviewLimit),
		Type:     n.Type,
		TypeName: n.Type.String(),
		Size:     n.Len(),
		Loaded:   e.loaded,
	}
	if tok, ok := a.Last(); ok {
		r.Label = tok.Label()
		r.Parent, _ = a.Parent()
	} else {
		r.Label = addr.RootLabel
	}
	e.row = r
	return r
}

// Invalidate drops every cached row and child list at or below a and marks
// the previews of the ancestors of a stale.
func (m *Model) Invalidate(a addr.Address) {
	if debug.Tree() {
		debug.Logf("tree: invalidate %s\n", a)
	}
	e := m.top
	for _, tok := range a {
		e.row = nil
		next := e.sub[tok]
		if next == nil {
			return
		}
		e = next
	}
	e.reset()
}

// Expand materializes the visible descendants of a down to depth levels
// below a, never past the configured MaxDepth from the root, and returns
// their rows in display order, parents before children. A negative depth
// expands as far as MaxDepth allows.
func (m *Model) Expand(a addr.Address, depth int) ([]Row, error) {
	limit := m.cfg.MaxDepth
	if depth >= 0 {
		limit = min(limit, a.Depth()+depth)
	}
	var res []Row
	err := m.expand(a, limit, &res)
	if err != nil {
		return nil, err
	}
	m.cfg.Logger.Debug("expand", "addr", a.String(), "limit", limit, "rows", len(res))
	return res, nil
}

func (m *Model) expand(a addr.Address, limit int, res *[]Row) error {
	if a.Depth() >= limit {
		return nil
	}
	count, err := m.RowCount(a)
	if err != nil {
		return err
	}
	for i := range count {
		r, err := m.RowAt(a, i)
		if err != nil {
			return err
		}
		*res = append(*res, r)
		if r.HasChildren() && r.Depth < limit {
			j := len(*res) - 1
			if err := m.expand(r.Address, limit, res); err != nil {
				return err
			}
			(*res)[j].Loaded = true
		}
	}
	return nil
}
