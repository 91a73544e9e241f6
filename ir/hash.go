package ir

import (
	"encoding/binary"
	"hash/maphash"
	"maps"
	"math"
	"slices"
)

var hashSeed = maphash.MakeSeed()

// Hash returns a 64-bit hash of the node, consistent with Equal within
// one process: equal nodes hash equally.
// It panics if n is nil.
func (n *Node) Hash() uint64 {
	if n == nil {
		panic("ir: Hash called on nil node")
	}
	var h maphash.Hash
	h.SetSeed(hashSeed)
	n.writeHash(&h)
	return h.Sum64()
}

func (n *Node) writeHash(h *maphash.Hash) {
	var b [8]byte
	putInt := func(v uint64) {
		binary.LittleEndian.PutUint64(b[:], v)
		h.Write(b[:])
	}
	h.WriteByte(byte(n.Type))
	switch n.Type {
	case NullType:
	case BoolType:
		if n.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case NumberType:
		f := n.Number
		if f == 0 {
			// -0 == 0
			f = 0
		}
		putInt(math.Float64bits(f))
	case BigIntType:
		if n.BigInt.Negative {
			h.WriteByte('-')
		}
		h.WriteString(n.BigInt.Digits)
	case DecimalType:
		if n.Decimal.Negative {
			h.WriteByte('-')
		}
		h.WriteString(n.Decimal.Digits)
		putInt(uint64(n.Decimal.Exponent))
	case StringType:
		h.WriteString(n.String)
	case UUIDType:
		h.Write(n.UUID[:])
	case InstantType:
		putInt(uint64(n.Instant.Nanos))
		putInt(uint64(n.Instant.Offset))
	case DurationType:
		d := n.Duration
		if d.Negative {
			h.WriteByte('-')
		}
		for _, v := range [...]int32{d.Years, d.Months, d.Days, d.Hours, d.Minutes} {
			putInt(uint64(v))
		}
		putInt(uint64(d.Nanos))
	case ArrayType:
		putInt(uint64(len(n.Values)))
		for _, v := range n.Values {
			putInt(v.Hash())
		}
	case ObjectType:
		m := ToMap(n)
		putInt(uint64(len(m)))
		for _, k := range slices.Sorted(maps.Keys(m)) {
			h.WriteString(k)
			h.WriteByte(0)
			putInt(m[k].Hash())
		}
	}
}
