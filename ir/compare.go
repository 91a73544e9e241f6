package ir

import (
	"bytes"
	"cmp"
	"maps"
	"slices"
)

var typeRank = map[Type]int{
	NullType:     0,
	BoolType:     1,
	NumberType:   2,
	BigIntType:   3,
	DecimalType:  4,
	StringType:   5,
	UUIDType:     6,
	InstantType:  7,
	ArrayType:    8,
	ObjectType:   9,
	DurationType: 10,
}

// Compare is a total order on nodes, consistent with Equal. Nodes of
// different types order by type:
//
//	Null < Bool < Number < BigInt < Decimal < String < UUID < Instant < Array < Object < Duration
//
// Arrays compare element-wise. Objects compare as their members sorted
// by key, last duplicate winning.
func Compare(a, b *Node) int {
	if a.Type != b.Type {
		return cmp.Compare(typeRank[a.Type], typeRank[b.Type])
	}
	switch a.Type {
	case NullType:
		return 0
	case BoolType:
		switch {
		case a.Bool == b.Bool:
			return 0
		case b.Bool:
			return -1
		}
		return 1
	case NumberType:
		return cmp.Compare(a.Number, b.Number)
	case BigIntType:
		return a.BigInt.Compare(b.BigInt)
	case DecimalType:
		return a.Decimal.Compare(b.Decimal)
	case StringType:
		return cmp.Compare(a.String, b.String)
	case UUIDType:
		return bytes.Compare(a.UUID[:], b.UUID[:])
	case InstantType:
		return a.Instant.Compare(b.Instant)
	case DurationType:
		return a.Duration.Compare(b.Duration)
	case ArrayType:
		return compareSeq(a.Values, b.Values)
	case ObjectType:
		am, bm := ToMap(a), ToMap(b)
		ak := slices.Sorted(maps.Keys(am))
		bk := slices.Sorted(maps.Keys(bm))
		for i := range min(len(ak), len(bk)) {
			if c := cmp.Compare(ak[i], bk[i]); c != 0 {
				return c
			}
			if c := Compare(am[ak[i]], bm[bk[i]]); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(ak), len(bk))
	}
	return 0
}

func compareSeq(a, b []*Node) int {
	for i := range min(len(a), len(b)) {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}
