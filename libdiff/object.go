package libdiff

import (
	"github.com/signadot/vtree/ir"
	"github.com/signadot/vtree/ir/addr"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffMap diffs the key sequences of two maps and recurses with df on the
// values of keys present in both.
func DiffMap(at addr.Address, from, to *ir.Node, df DiffFunc) []Edit {
	fieldMap := map[string]rune{}
	fromRunes := mapFieldsTo(fieldMap, from)
	toRunes := mapFieldsTo(fieldMap, to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)
	var res []Edit
	fi, ti := 0, 0
	for i := range diffs {
		d := &diffs[i]
		for range []rune(d.Text) {
			switch d.Type {
			case diffpatch.DiffDelete:
				res = append(res, MakeDiff(at.Key(from.Fields[fi]), from.Values[fi], nil))
				fi++
			case diffpatch.DiffEqual:
				res = append(res, df(at.Key(to.Fields[ti]), from.Values[fi], to.Values[ti])...)
				fi++
				ti++
			case diffpatch.DiffInsert:
				res = append(res, MakeDiff(at.Key(to.Fields[ti]), nil, to.Values[ti]))
				ti++
			}
		}
	}
	return res
}

func mapFieldsTo(m map[string]rune, node *ir.Node) []rune {
	rs := make([]rune, len(node.Fields))
	for i, f := range node.Fields {
		r, ok := m[f]
		if !ok {
			r = rune(len(m))
			m[f] = r
		}
		rs[i] = r
	}
	return rs
}
