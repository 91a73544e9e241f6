package kjsonb

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/signadot/kjson-format/kjson/debug"
	"github.com/signadot/kjson-format/kjson/ir"
)

// Decode decodes one binary value, which must span all of d.
func Decode(d []byte, opts ...DecodeOption) (*ir.Node, error) {
	o := &decodeOpts{maxDepth: DefaultMaxDepth}
	for _, f := range opts {
		f(o)
	}
	dec := &decoder{d: d, opts: o}
	node, err := dec.value()
	if err != nil {
		if debug.Decode() {
			debug.Logf("kjsonb: decode %d bytes: %v\n", len(d), err)
		}
		return nil, err
	}
	if dec.i != len(d) {
		return nil, dec.errAt(dec.i, ir.ErrTrailingData, fmt.Sprintf("%d bytes after value", len(d)-dec.i))
	}
	return node, nil
}

type decoder struct {
	d     []byte
	i     int
	depth int
	opts  *decodeOpts
}

func (dec *decoder) errAt(off int, err error, msg string) error {
	return &DecodeError{Err: err, Offset: off, Msg: msg}
}

func (dec *decoder) need(n int) error {
	if n < 0 || len(dec.d)-dec.i < n {
		return dec.errAt(dec.i, ErrTruncated, fmt.Sprintf("need %d bytes", n))
	}
	return nil
}

func (dec *decoder) readByte() (byte, error) {
	if err := dec.need(1); err != nil {
		return 0, err
	}
	c := dec.d[dec.i]
	dec.i++
	return c, nil
}

func (dec *decoder) bytes(n int) ([]byte, error) {
	if err := dec.need(n); err != nil {
		return nil, err
	}
	res := dec.d[dec.i : dec.i+n]
	dec.i += n
	return res, nil
}

func (dec *decoder) uvarint() (uint64, error) {
	u, n := binary.Uvarint(dec.d[dec.i:])
	switch {
	case n == 0:
		return 0, dec.errAt(dec.i, ErrTruncated, "in varint")
	case n < 0:
		return 0, dec.errAt(dec.i, ErrBadVarint, "")
	}
	dec.i += n
	return u, nil
}

func (dec *decoder) varint() (int64, error) {
	v, n := binary.Varint(dec.d[dec.i:])
	switch {
	case n == 0:
		return 0, dec.errAt(dec.i, ErrTruncated, "in varint")
	case n < 0:
		return 0, dec.errAt(dec.i, ErrBadVarint, "")
	}
	dec.i += n
	return v, nil
}

// count reads a length or count, each unit of which takes at least
// unit bytes of the remaining input.
func (dec *decoder) count(unit int) (int, error) {
	start := dec.i
	u, err := dec.uvarint()
	if err != nil {
		return 0, err
	}
	if u > uint64(len(dec.d)-dec.i)/uint64(unit) {
		return 0, dec.errAt(start, ErrTruncated, fmt.Sprintf("length %d exceeds input", u))
	}
	return int(u), nil
}

func (dec *decoder) sign() (bool, error) {
	off := dec.i
	c, err := dec.readByte()
	if err != nil {
		return false, err
	}
	if c > 1 {
		return false, dec.errAt(off, ErrBadPayload, fmt.Sprintf("sign byte %d", c))
	}
	return c == 1, nil
}

func (dec *decoder) str() (string, error) {
	start := dec.i
	n, err := dec.count(1)
	if err != nil {
		return "", err
	}
	if limit := dec.opts.maxStringLength; limit > 0 && n > limit {
		return "", dec.errAt(start, ir.ErrSizeExceeded, fmt.Sprintf("string of %d bytes", n))
	}
	b, _ := dec.bytes(n)
	if !utf8.Valid(b) {
		return "", dec.errAt(start, ir.ErrInvalidUTF8, "")
	}
	return string(b), nil
}

func (dec *decoder) digits() (string, error) {
	start := dec.i
	n, err := dec.count(1)
	if err != nil {
		return "", err
	}
	if limit := dec.opts.maxStringLength; limit > 0 && n > limit {
		return "", dec.errAt(start, ir.ErrSizeExceeded, fmt.Sprintf("%d digits", n))
	}
	b, _ := dec.bytes(n)
	return string(b), nil
}

func (dec *decoder) enter(off int) error {
	dec.depth++
	if dec.depth > dec.opts.maxDepth {
		return dec.errAt(off, ir.ErrDepthExceeded, fmt.Sprintf("nesting deeper than %d", dec.opts.maxDepth))
	}
	return nil
}

func (dec *decoder) value() (*ir.Node, error) {
	start := dec.i
	c, err := dec.readByte()
	if err != nil {
		return nil, err
	}
	tag := Tag(c)
	switch tag {
	case TagNull:
		return ir.Null(), nil
	case TagFalse:
		return ir.FromBool(false), nil
	case TagTrue:
		return ir.FromBool(true), nil
	case TagInt8, TagInt16, TagInt32, TagInt64, TagUint64, TagFloat32, TagFloat64:
		return dec.number(start, tag)
	case TagString:
		s, err := dec.str()
		if err != nil {
			return nil, err
		}
		return ir.FromString(s), nil
	case TagBigInt:
		neg, err := dec.sign()
		if err != nil {
			return nil, err
		}
		digits, err := dec.digits()
		if err != nil {
			return nil, err
		}
		b := ir.BigInt{Negative: neg, Digits: digits}
		if !b.Valid() {
			return nil, dec.errAt(start, ErrBadPayload, fmt.Sprintf("bigint %q", b.String()))
		}
		return &ir.Node{Type: ir.BigIntType, BigInt: b}, nil
	case TagDecimal:
		neg, err := dec.sign()
		if err != nil {
			return nil, err
		}
		exp, err := dec.varint()
		if err != nil {
			return nil, err
		}
		if exp < math.MinInt32 || exp > math.MaxInt32 {
			return nil, dec.errAt(start, ErrBadPayload, fmt.Sprintf("decimal exponent %d", exp))
		}
		digits, err := dec.digits()
		if err != nil {
			return nil, err
		}
		d := ir.Decimal{Negative: neg, Digits: digits, Exponent: int32(exp)}
		if !d.Valid() {
			return nil, dec.errAt(start, ErrBadPayload, fmt.Sprintf("decimal %q e %d", digits, exp))
		}
		return &ir.Node{Type: ir.DecimalType, Decimal: d}, nil
	case TagUUID:
		b, err := dec.bytes(16)
		if err != nil {
			return nil, err
		}
		return ir.FromUUID(uuid.UUID(b)), nil
	case TagInstant:
		nanos, err := dec.varint()
		if err != nil {
			return nil, err
		}
		off, err := dec.varint()
		if err != nil {
			return nil, err
		}
		if off < math.MinInt16 || off > math.MaxInt16 {
			return nil, dec.errAt(start, ErrBadPayload, fmt.Sprintf("offset %d", off))
		}
		i, err := ir.NewInstant(nanos, int16(off))
		if err != nil {
			return nil, dec.errAt(start, ErrBadPayload, err.Error())
		}
		return ir.FromInstant(i), nil
	case TagDuration:
		return dec.duration(start)
	case TagArray:
		return dec.array(start)
	case TagObject:
		return dec.object(start)
	case TagBinary, TagUndefined:
		return nil, dec.errAt(start, ir.ErrUnsupportedType, tag.String())
	}
	return nil, dec.errAt(start, ErrBadTag, tag.String())
}

var numberWidth = map[Tag]int{
	TagInt8: 1, TagInt16: 2, TagInt32: 4, TagInt64: 8,
	TagUint64: 8, TagFloat32: 4, TagFloat64: 8,
}

func (dec *decoder) number(start int, tag Tag) (*ir.Node, error) {
	b, err := dec.bytes(numberWidth[tag])
	if err != nil {
		return nil, err
	}
	var f float64
	switch tag {
	case TagInt8:
		f = float64(int8(b[0]))
	case TagInt16:
		f = float64(int16(binary.LittleEndian.Uint16(b)))
	case TagInt32:
		f = float64(int32(binary.LittleEndian.Uint32(b)))
	case TagInt64:
		f = float64(int64(binary.LittleEndian.Uint64(b)))
	case TagUint64:
		f = float64(binary.LittleEndian.Uint64(b))
	case TagFloat32:
		f = float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	case TagFloat64:
		f = math.Float64frombits(binary.LittleEndian.Uint64(b))
	}
	node, err := ir.NewNumber(f)
	if err != nil {
		return nil, dec.errAt(start, ErrBadPayload, err.Error())
	}
	return node, nil
}

func (dec *decoder) duration(start int) (*ir.Node, error) {
	neg, err := dec.sign()
	if err != nil {
		return nil, err
	}
	var c [6]int64
	for j := range c {
		if c[j], err = dec.varint(); err != nil {
			return nil, err
		}
		if c[j] < 0 || j < 5 && c[j] > math.MaxInt32 {
			return nil, dec.errAt(start, ErrBadPayload, fmt.Sprintf("duration component %d", c[j]))
		}
	}
	return ir.FromDuration(ir.Duration{
		Negative: neg,
		Years:    int32(c[0]),
		Months:   int32(c[1]),
		Days:     int32(c[2]),
		Hours:    int32(c[3]),
		Minutes:  int32(c[4]),
		Nanos:    c[5],
	}), nil
}

func (dec *decoder) array(start int) (*ir.Node, error) {
	if err := dec.enter(start); err != nil {
		return nil, err
	}
	defer func() { dec.depth-- }()
	n, err := dec.count(1)
	if err != nil {
		return nil, err
	}
	elts := make([]*ir.Node, n)
	for j := range elts {
		if elts[j], err = dec.value(); err != nil {
			return nil, err
		}
	}
	return ir.FromSlice(elts), nil
}

func (dec *decoder) object(start int) (*ir.Node, error) {
	if err := dec.enter(start); err != nil {
		return nil, err
	}
	defer func() { dec.depth-- }()
	// a member is at least a key length and a tag
	n, err := dec.count(2)
	if err != nil {
		return nil, err
	}
	kvs := make([]ir.KeyVal, n)
	for j := range kvs {
		if kvs[j].Key, err = dec.str(); err != nil {
			return nil, err
		}
		if kvs[j].Val, err = dec.value(); err != nil {
			return nil, err
		}
	}
	return ir.FromKeyVals(kvs), nil
}
