// Package ir provides the dynamic value representation used by vtree.
//
// # Overview
//
// A dynamic value is an arbitrarily nested, heterogeneous data item as produced
// by a generic decoder. Every value is an *ir.Node: a tagged union whose Type
// selects which payload field is meaningful.
//
// # Node Types
//
//   - NullType: null
//   - BoolType: Bool
//   - IntType: Int64
//   - UintType: Uint64
//   - FloatType: Float64
//   - StringType: String
//   - BytesType: Bytes
//   - TimeType: Time
//   - ListType: Values, addressed by index
//   - MapType: Fields and Values, addressed by key, insertion ordered
//   - UnsupportedType: Opaque, a payload kept verbatim for round trips
//
// # Ownership
//
// Containers own their children exclusively. Nodes carry no parent pointers;
// positions are named by addr.Address and looked up with Resolve. InsertAt
// and Set copy the value they are given so that no two containers ever share
// a child.
//
// # Creating Nodes
//
//	obj := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: "a", Val: ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})},
//	    {Key: "b", Val: ir.FromString("hello")},
//	})
//
// FromAny builds nodes from the Go values generic decoders produce.
//
// # Text
//
// Text renders a scalar as unquoted text; ParseAs is its inverse for a given
// type and fails with ErrInvalidFormat. Preview renders a one line display
// form in which strings are quoted and containers summarized.
//
// # JSON Interoperability
//
// The IR itself is representable in JSON with every variant preserved:
//
//	d, err := ir.ToJSON(node)
//	node, err := ir.FromJSON(d)
//
// # Thread Safety
//
// Node structures are not thread-safe. If you need to access nodes from
// multiple goroutines, you must synchronize access yourself or clone nodes
// for each goroutine.
package ir
