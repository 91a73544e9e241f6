package ir

// Equal reports whether a and b are structurally equal. Types must match
// exactly: a Number never equals a BigInt of the same value. Objects are
// equal when they have the same keys with equal values regardless of
// member order, duplicate keys resolving to their last value.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case NumberType:
		return a.Number == b.Number
	case BigIntType:
		return a.BigInt == b.BigInt
	case DecimalType:
		return a.Decimal == b.Decimal
	case StringType:
		return a.String == b.String
	case UUIDType:
		return a.UUID == b.UUID
	case InstantType:
		return a.Instant == b.Instant
	case DurationType:
		return a.Duration == b.Duration
	case ArrayType:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case ObjectType:
		am, bm := ToMap(a), ToMap(b)
		if len(am) != len(bm) {
			return false
		}
		for k, av := range am {
			bv, ok := bm[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}

// EqualOrdered is Equal with object members also compared in order,
// duplicates included.
func EqualOrdered(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case ArrayType, ObjectType:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if a.Type == ObjectType && a.Fields[i] != b.Fields[i] {
				return false
			}
			if !EqualOrdered(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	}
	return Equal(a, b)
}
