package ir

// Truth reports whether node is truthy. Null, false, zero and empty
// values are false; UUIDs and Instants are always true.
func Truth(node *Node) bool {
	switch node.Type {
	case ObjectType, ArrayType:
		return len(node.Values) != 0
	case StringType:
		return node.String != ""
	case NumberType:
		return node.Number != 0
	case BigIntType:
		return node.BigInt.Digits != "0"
	case DecimalType:
		return node.Decimal.Digits != "0"
	case DurationType:
		return !node.Duration.IsZero()
	case UUIDType, InstantType:
		return true
	case BoolType:
		return node.Bool
	case NullType:
		return false
	default:
		panic("type")
	}
}
