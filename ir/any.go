package ir

import (
	"fmt"
	"math/big"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
)

// ToAny projects node onto plain Go values:
//
//	Null      nil
//	Bool      bool
//	Number    float64
//	BigInt    *big.Int
//	Decimal   *apd.Decimal
//	String    string
//	UUID      uuid.UUID
//	Instant   time.Time
//	Duration  Duration
//	Array     []any
//	Object    map[string]any
//
// Object member order and duplicate keys are lost.
func ToAny(node *Node) any {
	switch node.Type {
	case BoolType:
		return node.Bool
	case NumberType:
		return node.Number
	case BigIntType:
		return node.BigInt.Big()
	case DecimalType:
		return node.Decimal.Apd()
	case StringType:
		return node.String
	case UUIDType:
		return node.UUID
	case InstantType:
		return node.Instant.Time()
	case DurationType:
		return node.Duration
	case ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			res[i] = ToAny(v)
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(node.Values))
		for i, v := range node.Values {
			res[node.Fields[i]] = ToAny(v)
		}
		return res
	}
	return nil
}

// FromAny is the inverse of ToAny, also accepting Go integer and float
// types, time.Duration, *Node and map[string]any values, whose keys are
// sorted.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		res := x.Clone()
		res.Parent = nil
		return res, nil
	case bool:
		return FromBool(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return FromInt(int64(x)), nil
	case uint8:
		return FromInt(int64(x)), nil
	case uint16:
		return FromInt(int64(x)), nil
	case uint32:
		return FromInt(int64(x)), nil
	case uint64:
		return NewNumber(float64(x))
	case float32:
		return NewNumber(float64(x))
	case float64:
		return NewNumber(x)
	case *big.Int:
		return FromBigIntValue(x), nil
	case BigInt:
		return FromBigInt(x)
	case *apd.Decimal:
		return FromApd(x)
	case Decimal:
		return FromDecimal(x)
	case string:
		return FromString(x), nil
	case uuid.UUID:
		return FromUUID(x), nil
	case time.Time:
		return FromTime(x)
	case Instant:
		return FromInstant(x), nil
	case time.Duration:
		return FromTimeDuration(x), nil
	case Duration:
		return FromDuration(x), nil
	case []any:
		vals := make([]*Node, len(x))
		for i, e := range x {
			n, err := FromAny(e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			vals[i] = n
		}
		return FromSlice(vals), nil
	case map[string]any:
		m := make(map[string]*Node, len(x))
		for k, e := range x {
			n, err := FromAny(e)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			m[k] = n
		}
		return FromMap(m), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
}
