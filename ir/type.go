package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	BoolType
	NumberType
	BigIntType
	DecimalType
	StringType
	UUIDType
	InstantType
	DurationType
	ArrayType
	ObjectType
)

var typeNames = map[Type]string{
	NullType:     "Null",
	BoolType:     "Bool",
	NumberType:   "Number",
	BigIntType:   "BigInt",
	DecimalType:  "Decimal",
	StringType:   "String",
	UUIDType:     "UUID",
	InstantType:  "Instant",
	DurationType: "Duration",
	ArrayType:    "Array",
	ObjectType:   "Object",
}

func (t Type) String() string {
	s, ok := typeNames[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	for tt, name := range typeNames {
		if name == string(d) {
			*t = tt
			return nil
		}
	}
	return fmt.Errorf("unrecognized type %q", d)
}

func Types() []Type {
	return []Type{
		NullType,
		BoolType,
		NumberType,
		BigIntType,
		DecimalType,
		StringType,
		UUIDType,
		InstantType,
		DurationType,
		ArrayType,
		ObjectType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case ObjectType, ArrayType:
		return false
	default:
		return true
	}
}
