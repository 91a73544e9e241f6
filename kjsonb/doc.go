// Package kjsonb implements kJSONB, the binary encoding of kJSON values.
//
// Every value starts with a one byte Tag. Lengths and counts are
// unsigned varints and signed fields (decimal exponents, instants,
// duration components) are zigzag varints, both as in encoding/binary.
// Fixed width numbers are little endian.
//
//	null, false, true     tag only
//	number                int8 | int16 | int32 | int64 | uint64 | float32 | float64
//	string                length, UTF-8 bytes
//	bigint                sign byte, digit count, digits
//	decimal               sign byte, exponent, digit count, digits
//	uuid                  16 bytes
//	instant               epoch nanoseconds, offset minutes
//	duration              sign byte, years, months, days, hours, minutes, nanoseconds
//	array                 count, values
//	object                count, (key length, key, value)...
//
// Numbers are written in the smallest of the fixed width forms which
// holds them exactly, and always decode to a Number. Negative zero is
// never written as an integer.
//
// Decode checks every length against the remaining input before use, so
// corrupt or hostile input yields a *DecodeError rather than a large
// allocation. Nesting is limited by DecodeMaxDepth.
package kjsonb
