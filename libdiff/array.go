package libdiff

import (
	"github.com/signadot/vtree/ir"
	"github.com/signadot/vtree/ir/addr"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffList aligns list items by value hash. Deleted items directly followed
// by inserted ones are paired up and diffed with df, so an item edited in
// place is reported at its own position rather than as a delete and an
// insert.
func DiffList(at addr.Address, from, to *ir.Node, df DiffFunc) []Edit {
	m := map[uint64]rune{}
	fromRunes := mapValues(m, from)
	toRunes := mapValues(m, to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)
	var (
		res     []Edit
		pending []int
	)
	fi, ti := 0, 0
	flush := func() {
		for _, i := range pending {
			res = append(res, MakeDiff(at.Index(i), from.Values[i], nil))
		}
		pending = pending[:0]
	}
	for i := range diffs {
		d := &diffs[i]
		n := len([]rune(d.Text))
		switch d.Type {
		case diffpatch.DiffDelete:
			for range n {
				pending = append(pending, fi)
				fi++
			}
		case diffpatch.DiffEqual:
			flush()
			for range n {
				res = append(res, df(at.Index(ti), from.Values[fi], to.Values[ti])...)
				fi++
				ti++
			}
		case diffpatch.DiffInsert:
			for range n {
				if len(pending) != 0 {
					res = append(res, df(at.Index(ti), from.Values[pending[0]], to.Values[ti])...)
					pending = pending[1:]
				} else {
					res = append(res, MakeDiff(at.Index(ti), nil, to.Values[ti]))
				}
				ti++
			}
			flush()
		}
	}
	flush()
	return res
}

func mapValues(m map[uint64]rune, node *ir.Node) []rune {
	rs := make([]rune, len(node.Values))
	for i, v := range node.Values {
		h := v.Hash()
		r, ok := m[h]
		if !ok {
			r = rune(len(m))
			m[h] = r
		}
		rs[i] = r
	}
	return rs
}
