package encode

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/signadot/kjson-format/kjson/format"
	"github.com/signadot/kjson-format/kjson/ir"
	"github.com/signadot/kjson-format/kjson/token"
	"github.com/valyala/bytebufferpool"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	depth, indent int

	quoteKeys     bool
	bigintSuffix  bool
	decimalSuffix bool
	escapeUnicode bool
	quote         token.QuoteStrategy

	format format.Format

	Color func(ir.Type, ColorAttr, string) string
}

func newEncState(opts []EncodeOption) *EncState {
	es := &EncState{
		bigintSuffix:  true,
		decimalSuffix: true,
	}
	for _, opt := range opts {
		opt(es)
	}
	if es.format.IsJSON() {
		es.quoteKeys = true
		es.quote = token.QuoteDouble
	}
	return es
}

// Encode writes node to w as kJSON, JSON or YAML text. No newline is
// written after the value.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)
	var err error
	switch es.format {
	case format.KJSONFormat, format.JSONFormat:
		bb.B, err = es.appendNode(bb.B, node)
	case format.YAMLFormat:
		bb.B, err = appendYAML(bb.B, node, es)
	default:
		err = fmt.Errorf("%w: cannot encode %s as text", ErrEncoding, es.format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(bb.B)
	return err
}

// String returns the text of node.
func String(node *ir.Node, opts ...EncodeOption) (string, error) {
	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)
	if err := Encode(node, bb, opts...); err != nil {
		return "", err
	}
	return bb.String(), nil
}

// Append appends the text of node to dst.
func Append(dst []byte, node *ir.Node, opts ...EncodeOption) ([]byte, error) {
	es := newEncState(opts)
	if es.format.IsYAML() {
		return appendYAML(dst, node, es)
	}
	return es.appendNode(dst, node)
}

func (es *EncState) color(dst []byte, t ir.Type, a ColorAttr, start int) []byte {
	if es.Color == nil {
		return dst
	}
	s := es.Color(t, a, string(dst[start:]))
	return append(dst[:start], s...)
}

func (es *EncState) appendSep(dst []byte, t ir.Type, sep string) []byte {
	start := len(dst)
	dst = append(dst, sep...)
	return es.color(dst, t, SepColor, start)
}

func (es *EncState) appendNewline(dst []byte) []byte {
	dst = append(dst, '\n')
	for range es.depth * es.indent {
		dst = append(dst, ' ')
	}
	return dst
}

func (es *EncState) appendNode(dst []byte, node *ir.Node) ([]byte, error) {
	switch node.Type {
	case ir.ObjectType:
		return es.appendObject(dst, node)
	case ir.ArrayType:
		return es.appendArray(dst, node)
	}
	start := len(dst)
	dst, err := es.appendScalar(dst, node)
	if err != nil {
		return nil, err
	}
	return es.color(dst, node.Type, ValueColor, start), nil
}

func (es *EncState) appendScalar(dst []byte, node *ir.Node) ([]byte, error) {
	json := es.format.IsJSON()
	switch node.Type {
	case ir.NullType:
		return append(dst, "null"...), nil
	case ir.BoolType:
		if node.Bool {
			return append(dst, "true"...), nil
		}
		return append(dst, "false"...), nil
	case ir.NumberType:
		if err := checkFinite(node.Number); err != nil {
			return nil, fmt.Errorf("%w at %s", err, node.Path())
		}
		return token.AppendNumber(dst, node.Number), nil
	case ir.StringType:
		return es.appendString(dst, node.String), nil
	case ir.BigIntType:
		if !node.BigInt.Valid() {
			return nil, fmt.Errorf("%w: bad bigint digits %q at %s", ErrEncoding, node.BigInt.Digits, node.Path())
		}
		if node.BigInt.Negative {
			dst = append(dst, '-')
		}
		dst = append(dst, node.BigInt.Digits...)
		if es.bigintSuffix && !json {
			dst = append(dst, 'n')
		}
		return dst, nil
	case ir.DecimalType:
		d := node.Decimal
		if !d.Valid() {
			return nil, fmt.Errorf("%w: bad decimal digits %q at %s", ErrEncoding, d.Digits, node.Path())
		}
		dst = token.AppendDecimal(dst, d.Negative, d.Digits, d.Exponent)
		if es.decimalSuffix && !json {
			dst = append(dst, 'm')
		}
		return dst, nil
	case ir.UUIDType:
		if json {
			dst = append(dst, '"')
		}
		dst = token.AppendUUID(dst, node.UUID)
		if json {
			dst = append(dst, '"')
		}
		return dst, nil
	case ir.InstantType:
		i := node.Instant
		if _, err := ir.NewInstant(i.Nanos, i.Offset); err != nil {
			return nil, fmt.Errorf("%w at %s", err, node.Path())
		}
		if json {
			dst = append(dst, '"')
		}
		dst = token.AppendInstant(dst, i.Nanos, i.Offset)
		if json {
			dst = append(dst, '"')
		}
		return dst, nil
	case ir.DurationType:
		if !node.Duration.Valid() {
			return nil, fmt.Errorf("%w: negative duration component at %s", ir.ErrInvalidDuration, node.Path())
		}
		if json {
			dst = append(dst, '"')
		}
		dst = token.AppendDuration(dst, token.DurationParts(node.Duration))
		if json {
			dst = append(dst, '"')
		}
		return dst, nil
	}
	return nil, fmt.Errorf("%w: type %s", ir.ErrUnsupportedType, node.Type)
}

func checkFinite(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: %v", ir.ErrNonFinite, f)
	}
	return nil
}

func (es *EncState) appendString(dst []byte, v string) []byte {
	return token.AppendQuoted(dst, v, token.SelectQuote(v, es.quote), es.escapeUnicode)
}

func (es *EncState) appendKey(dst []byte, k string) []byte {
	start := len(dst)
	if es.quoteKeys || token.NeedsQuote(k) {
		dst = es.appendString(dst, k)
	} else {
		dst = append(dst, k...)
	}
	return es.color(dst, ir.ObjectType, FieldColor, start)
}

func (es *EncState) appendArray(dst []byte, node *ir.Node) ([]byte, error) {
	dst = es.appendSep(dst, ir.ArrayType, "[")
	if len(node.Values) == 0 {
		return es.appendSep(dst, ir.ArrayType, "]"), nil
	}
	es.depth++
	var err error
	for i, v := range node.Values {
		dst = es.appendElemSep(dst, ir.ArrayType, i)
		if dst, err = es.appendNode(dst, v); err != nil {
			return nil, err
		}
	}
	es.depth--
	dst = es.appendClose(dst, ir.ArrayType)
	return es.appendSep(dst, ir.ArrayType, "]"), nil
}

func (es *EncState) appendObject(dst []byte, node *ir.Node) ([]byte, error) {
	dst = es.appendSep(dst, ir.ObjectType, "{")
	if len(node.Values) == 0 {
		return es.appendSep(dst, ir.ObjectType, "}"), nil
	}
	es.depth++
	var err error
	for i, v := range node.Values {
		dst = es.appendElemSep(dst, ir.ObjectType, i)
		dst = es.appendKey(dst, node.Fields[i])
		dst = es.appendSep(dst, ir.ObjectType, ": ")
		if dst, err = es.appendNode(dst, v); err != nil {
			return nil, err
		}
	}
	es.depth--
	dst = es.appendClose(dst, ir.ObjectType)
	return es.appendSep(dst, ir.ObjectType, "}"), nil
}

// appendElemSep writes what comes before element i of a container.
func (es *EncState) appendElemSep(dst []byte, t ir.Type, i int) []byte {
	if es.indent == 0 {
		if i == 0 {
			return dst
		}
		return es.appendSep(dst, t, ", ")
	}
	if i > 0 {
		dst = es.appendSep(dst, t, ",")
	}
	return es.appendNewline(dst)
}

// appendClose writes what comes after the last element of a container.
// Pretty kJSON keeps a trailing comma.
func (es *EncState) appendClose(dst []byte, t ir.Type) []byte {
	if es.indent == 0 {
		return dst
	}
	if !es.format.IsJSON() {
		dst = es.appendSep(dst, t, ",")
	}
	return es.appendNewline(dst)
}
