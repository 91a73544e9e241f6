package kjsonb

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/signadot/kjson-format/kjson/ir"
	"github.com/valyala/bytebufferpool"
)

// Encode writes the binary form of node to w.
func Encode(node *ir.Node, w io.Writer) error {
	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)
	var err error
	bb.B, err = Append(bb.B, node)
	if err != nil {
		return err
	}
	_, err = w.Write(bb.B)
	return err
}

// Marshal returns the binary form of node.
func Marshal(node *ir.Node) ([]byte, error) {
	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)
	var err error
	bb.B, err = Append(bb.B, node)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), bb.B...), nil
}

// Append appends the binary form of node to dst.
func Append(dst []byte, node *ir.Node) ([]byte, error) {
	switch node.Type {
	case ir.NullType:
		return append(dst, byte(TagNull)), nil
	case ir.BoolType:
		if node.Bool {
			return append(dst, byte(TagTrue)), nil
		}
		return append(dst, byte(TagFalse)), nil
	case ir.NumberType:
		f := node.Number
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: %v at %s", ir.ErrNonFinite, f, node.Path())
		}
		return appendNumber(dst, f), nil
	case ir.StringType:
		dst = append(dst, byte(TagString))
		return appendString(dst, node.String), nil
	case ir.BigIntType:
		b := node.BigInt
		if !b.Valid() {
			return nil, fmt.Errorf("%w: bigint digits %q at %s", ir.ErrInvalidNumber, b.Digits, node.Path())
		}
		dst = append(dst, byte(TagBigInt), signByte(b.Negative))
		return appendString(dst, b.Digits), nil
	case ir.DecimalType:
		d := node.Decimal
		if !d.Valid() {
			return nil, fmt.Errorf("%w: decimal digits %q at %s", ir.ErrInvalidNumber, d.Digits, node.Path())
		}
		dst = append(dst, byte(TagDecimal), signByte(d.Negative))
		dst = binary.AppendVarint(dst, int64(d.Exponent))
		return appendString(dst, d.Digits), nil
	case ir.UUIDType:
		dst = append(dst, byte(TagUUID))
		return append(dst, node.UUID[:]...), nil
	case ir.InstantType:
		i := node.Instant
		if _, err := ir.NewInstant(i.Nanos, i.Offset); err != nil {
			return nil, fmt.Errorf("%w at %s", err, node.Path())
		}
		dst = append(dst, byte(TagInstant))
		dst = binary.AppendVarint(dst, i.Nanos)
		return binary.AppendVarint(dst, int64(i.Offset)), nil
	case ir.DurationType:
		d := node.Duration
		if !d.Valid() {
			return nil, fmt.Errorf("%w: negative component at %s", ir.ErrInvalidDuration, node.Path())
		}
		dst = append(dst, byte(TagDuration), signByte(d.Negative))
		for _, c := range [...]int64{int64(d.Years), int64(d.Months), int64(d.Days), int64(d.Hours), int64(d.Minutes), d.Nanos} {
			dst = binary.AppendVarint(dst, c)
		}
		return dst, nil
	case ir.ArrayType:
		dst = append(dst, byte(TagArray))
		dst = binary.AppendUvarint(dst, uint64(len(node.Values)))
		var err error
		for _, v := range node.Values {
			if dst, err = Append(dst, v); err != nil {
				return nil, err
			}
		}
		return dst, nil
	case ir.ObjectType:
		dst = append(dst, byte(TagObject))
		dst = binary.AppendUvarint(dst, uint64(len(node.Values)))
		var err error
		for i, v := range node.Values {
			dst = appendString(dst, node.Fields[i])
			if dst, err = Append(dst, v); err != nil {
				return nil, err
			}
		}
		return dst, nil
	}
	return nil, fmt.Errorf("%w: type %s", ir.ErrUnsupportedType, node.Type)
}

// appendNumber writes f in the smallest form holding it exactly.
func appendNumber(dst []byte, f float64) []byte {
	if f == math.Trunc(f) && !(f == 0 && math.Signbit(f)) {
		switch {
		case f >= math.MinInt8 && f <= math.MaxInt8:
			return append(dst, byte(TagInt8), byte(int8(f)))
		case f >= math.MinInt16 && f <= math.MaxInt16:
			dst = append(dst, byte(TagInt16))
			return binary.LittleEndian.AppendUint16(dst, uint16(int16(f)))
		case f >= math.MinInt32 && f <= math.MaxInt32:
			dst = append(dst, byte(TagInt32))
			return binary.LittleEndian.AppendUint32(dst, uint32(int32(f)))
		case f >= math.MinInt64 && f < -math.MinInt64:
			dst = append(dst, byte(TagInt64))
			return binary.LittleEndian.AppendUint64(dst, uint64(int64(f)))
		case f > 0 && f < 2*-math.MinInt64:
			dst = append(dst, byte(TagUint64))
			return binary.LittleEndian.AppendUint64(dst, uint64(f))
		}
	}
	if f32 := float32(f); float64(f32) == f {
		dst = append(dst, byte(TagFloat32))
		return binary.LittleEndian.AppendUint32(dst, math.Float32bits(f32))
	}
	dst = append(dst, byte(TagFloat64))
	return binary.LittleEndian.AppendUint64(dst, math.Float64bits(f))
}

func appendString(dst []byte, s string) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(s)))
	return append(dst, s...)
}

func signByte(neg bool) byte {
	if neg {
		return 1
	}
	return 0
}
