// Package ir provides the value tree shared by the kJSON parser, encoder
// and binary codec.
//
// # Node Structure
//
// A Node is a recursive tagged union; the Type field selects which
// payload field holds the value:
//
//   - NullType: no payload
//   - BoolType: Bool
//   - NumberType: Number, a finite float64
//   - BigIntType: BigInt, sign and decimal digits
//   - DecimalType: Decimal, sign, decimal digits and a base 10 exponent
//   - StringType: String
//   - UUIDType: UUID
//   - InstantType: Instant, Unix nanoseconds and a display offset
//   - DurationType: Duration, ISO-8601 components and a sign
//   - ArrayType: Values
//   - ObjectType: Fields and Values, Fields[i] being the key of Values[i]
//
// BigInt and Decimal are carried as digit strings; no arithmetic is done
// on them. Decimal.Apd and BigInt.Big convert to arithmetic types.
//
// # Objects
//
// Object member order is insertion order and is kept through text and
// binary round trips. Duplicate keys are kept; Get returns the last
// occurrence and Set overwrites it in place.
//
// # Creating Nodes
//
//	obj := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: "id", Val: ir.FromUUID(id)},
//	    {Key: "n", Val: ir.FromInt(42)},
//	})
//	arr := ir.NewArray().Append(ir.FromString("x"))
//
// Builders set Parent, ParentIndex and ParentField on the children they
// are given, and take ownership of them: a node must not be handed to
// two containers.
//
// # Comparing Nodes
//
// Equal is structural and type strict. Compare is a total order across
// types, consistent with Equal, and Hash is consistent with Equal.
// Contains is the asymmetric containment used by query filters.
//
// # Paths
//
// KPath returns a node's kinded path, "a.b[0]", and GetKPath and
// ListKPath navigate by one; see package kpath for the syntax.
//
// # Thread Safety
//
// A tree may be read from several goroutines. Builder calls which
// modify a tree must be serialized by the caller.
package ir
