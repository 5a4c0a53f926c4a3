package ir

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

var hashSeed = maphash.MakeSeed()

// Hash returns a 64-bit hash of the node. Equal nodes have equal hashes
// within a process.
// It panics if n is nil.
func (n *Node) Hash() uint64 {
	if n == nil {
		panic("ir: Hash called on nil node")
	}

	var h maphash.Hash
	h.SetSeed(hashSeed)
	h.WriteByte(byte(n.Type))

	var b [8]byte
	writeUint := func(u uint64) {
		binary.LittleEndian.PutUint64(b[:], u)
		h.Write(b[:])
	}
	switch n.Type {
	case NullType:
	case BoolType:
		if n.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case IntType:
		writeUint(uint64(n.Int64))
	case UintType:
		writeUint(n.Uint64)
	case FloatType:
		writeUint(math.Float64bits(n.Float64))
	case StringType:
		h.WriteString(n.String)
	case BytesType:
		h.Write(n.Bytes)
	case TimeType:
		writeUint(uint64(n.Time.UnixNano()))
	case ListType:
		for _, v := range n.Values {
			writeUint(v.Hash())
		}
	case MapType:
		for i, field := range n.Fields {
			h.WriteString(field)
			h.WriteByte(0)
			writeUint(n.Values[i].Hash())
		}
	case UnsupportedType:
		if n.Opaque != nil {
			h.WriteString(n.Opaque.TypeName)
			h.WriteByte(0)
			h.Write(n.Opaque.Data)
		}
	}
	return h.Sum64()
}
