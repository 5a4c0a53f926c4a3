package search

import (
	"github.com/signadot/vtree/ir/addr"
)

// View is the filtered view of a Result: its matches together with the
// minimal set of ancestors needed to reach them from the root. It
// implements tree.Visibility.
type View struct {
	matches   map[string]Scope
	ancestors map[string]bool
	order     []addr.Address
}

// Filtered returns the filtered view of r.
func (r *Result) Filtered() *View {
	v := &View{
		matches:   make(map[string]Scope, len(r.Hits)),
		ancestors: map[string]bool{},
	}
	for _, h := range r.Hits {
		for _, anc := range h.Address.Ancestors() {
			if anc.IsRoot() {
				continue
			}
			k := anc.KPath()
			if v.ancestors[k] {
				continue
			}
			v.ancestors[k] = true
			if _, isMatch := v.matches[k]; !isMatch {
				v.order = append(v.order, anc)
			}
		}
		k := h.Address.KPath()
		if _, seen := v.matches[k]; !seen && !v.ancestors[k] {
			v.order = append(v.order, h.Address)
		}
		v.matches[k] = h.Fields
	}
	return v
}

// Visible reports whether a is the root, a match or an ancestor of one.
func (v *View) Visible(a addr.Address) bool {
	if a.IsRoot() {
		return true
	}
	k := a.KPath()
	if _, ok := v.matches[k]; ok {
		return true
	}
	return v.ancestors[k]
}

// IsMatch reports whether a matched, and which fields did.
func (v *View) IsMatch(a addr.Address) (Scope, bool) {
	s, ok := v.matches[a.KPath()]
	return s, ok
}

// Ancestors returns the addresses kept only to reach matches, excluding the
// root, in traversal order.
func (v *View) Ancestors() []addr.Address {
	var res []addr.Address
	for _, a := range v.order {
		if _, isMatch := v.matches[a.KPath()]; !isMatch {
			res = append(res, a)
		}
	}
	return res
}

// Addresses returns every visible address except the root in traversal
// order.
func (v *View) Addresses() []addr.Address {
	return append([]addr.Address(nil), v.order...)
}
