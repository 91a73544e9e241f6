package parse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/kjson-format/kjson/format"
	"github.com/signadot/kjson-format/kjson/ir"
	"github.com/signadot/kjson-format/kjson/token"
)

// Parse parses one kJSON, JSON or YAML document.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := defaultOpts()
	for _, f := range opts {
		f(pOpts)
	}
	switch pOpts.format {
	case format.YAMLFormat:
		return parseYAML(d, pOpts)
	case format.JSONFormat:
		pOpts.comments = false
		pOpts.trailingCommas = false
		pOpts.unquotedKeys = false
		pOpts.instants = false
		pOpts.durations = false
	case format.KJSONFormat:
	default:
		return nil, fmt.Errorf("%w: cannot parse %s as text", format.ErrBadFormat, pOpts.format)
	}
	p := &parser{d: d, opts: pOpts}
	res, err := p.value()
	if err != nil {
		return nil, err
	}
	if err := p.space(); err != nil {
		return nil, err
	}
	if p.i < len(d) {
		return nil, p.errAt(p.i, ir.ErrTrailingData, fmt.Sprintf("unexpected %q after value", d[p.i]))
	}
	return res, nil
}

type parser struct {
	d     []byte
	i     int
	depth int
	opts  *parseOpts
	pd    *token.PosDoc
}

func (p *parser) posDoc() *token.PosDoc {
	if p.pd == nil {
		p.pd = token.NewPosDoc(p.d)
	}
	return p.pd
}

func (p *parser) errAt(off int, err error, msg string) error {
	return newError(p.posDoc(), off, err, msg)
}

// scanErr positions an error from a scanner run at base. Incomplete
// input is always reported at the end of the document.
func (p *parser) scanErr(base int, err error) error {
	e := scanError(p.posDoc(), base, err)
	if errors.Is(e.Err, ir.ErrIncomplete) {
		e.Offset = len(p.d)
		l, c := p.posDoc().LineCol(e.Offset)
		e.Line, e.Col = l+1, c+1
	}
	return e
}

func (p *parser) incomplete(what string) error {
	return p.errAt(len(p.d), ir.ErrIncomplete, "expected "+what)
}

func (p *parser) trackPos(node *ir.Node, off int) {
	if p.opts.positions != nil {
		p.opts.positions[node] = p.posDoc().Pos(off)
	}
}

func (p *parser) space() error {
	n, err := token.SkipSpace(p.d[p.i:], p.opts.comments)
	if err != nil {
		return p.scanErr(p.i, err)
	}
	p.i += n
	return nil
}

// next skips space and returns the next byte, failing at EOF.
func (p *parser) next(what string) (byte, error) {
	if err := p.space(); err != nil {
		return 0, err
	}
	if p.i >= len(p.d) {
		return 0, p.incomplete(what)
	}
	return p.d[p.i], nil
}

func (p *parser) value() (*ir.Node, error) {
	c, err := p.next("value")
	if err != nil {
		return nil, err
	}
	start := p.i
	var res *ir.Node
	switch {
	case c == '{':
		res, err = p.object()
	case c == '[':
		res, err = p.array()
	case token.IsQuote(c):
		var s string
		s, err = p.str()
		if err == nil {
			res = ir.FromString(s)
		}
	default:
		res, err = p.scalar()
	}
	if err != nil {
		return nil, err
	}
	p.trackPos(res, start)
	return res, nil
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > p.opts.maxDepth {
		return p.errAt(p.i, ir.ErrDepthExceeded, fmt.Sprintf("nesting deeper than %d", p.opts.maxDepth))
	}
	return nil
}

func (p *parser) array() (*ir.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer func() { p.depth-- }()
	p.i++
	var elts []*ir.Node
	c, err := p.next("value or ']'")
	if err != nil {
		return nil, err
	}
	if c == ']' {
		p.i++
		return ir.FromSlice(elts), nil
	}
	for {
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		elts = append(elts, v)
		c, err := p.next("',' or ']'")
		if err != nil {
			return nil, err
		}
		switch c {
		case ']':
			p.i++
			return ir.FromSlice(elts), nil
		case ',':
		default:
			return nil, p.errAt(p.i, ir.ErrUnexpectedToken, fmt.Sprintf("expected ',' or ']', got %q", c))
		}
		comma := p.i
		p.i++
		c, err = p.next("value or ']'")
		if err != nil {
			return nil, err
		}
		if c == ']' {
			if !p.opts.trailingCommas {
				return nil, p.errAt(comma, ir.ErrUnexpectedToken, "trailing comma")
			}
			p.i++
			return ir.FromSlice(elts), nil
		}
	}
}

func (p *parser) object() (*ir.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer func() { p.depth-- }()
	p.i++
	var kvs []ir.KeyVal
	c, err := p.next("key or '}'")
	if err != nil {
		return nil, err
	}
	if c == '}' {
		p.i++
		return ir.FromKeyVals(kvs), nil
	}
	for {
		key, err := p.key()
		if err != nil {
			return nil, err
		}
		c, err := p.next("':'")
		if err != nil {
			return nil, err
		}
		if c != ':' {
			return nil, p.errAt(p.i, ir.ErrUnexpectedToken, fmt.Sprintf("expected ':', got %q", c))
		}
		p.i++
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, ir.KeyVal{Key: key, Val: v})
		c, err = p.next("',' or '}'")
		if err != nil {
			return nil, err
		}
		switch c {
		case '}':
			p.i++
			return ir.FromKeyVals(kvs), nil
		case ',':
		default:
			return nil, p.errAt(p.i, ir.ErrUnexpectedToken, fmt.Sprintf("expected ',' or '}', got %q", c))
		}
		comma := p.i
		p.i++
		c, err = p.next("key or '}'")
		if err != nil {
			return nil, err
		}
		if c == '}' {
			if !p.opts.trailingCommas {
				return nil, p.errAt(comma, ir.ErrUnexpectedToken, "trailing comma")
			}
			p.i++
			return ir.FromKeyVals(kvs), nil
		}
	}
}

// key reads an object key at p.i, which is not space.
func (p *parser) key() (string, error) {
	c := p.d[p.i]
	if token.IsQuote(c) {
		return p.str()
	}
	n := token.Ident(p.d[p.i:])
	if n == 0 {
		return "", p.errAt(p.i, ir.ErrUnexpectedToken, fmt.Sprintf("expected key, got %q", c))
	}
	if !p.opts.unquotedKeys {
		return "", p.errAt(p.i, ir.ErrUnexpectedToken, "unquoted key")
	}
	key := string(p.d[p.i : p.i+n])
	if token.IsKeyword(key) {
		return "", p.errAt(p.i, ir.ErrUnexpectedToken, fmt.Sprintf("reserved word %s as key", key))
	}
	p.i += n
	return key, nil
}

func (p *parser) str() (string, error) {
	if p.opts.json() && p.d[p.i] != '"' {
		return "", p.errAt(p.i, ir.ErrUnexpectedToken, fmt.Sprintf("%c quoted string in JSON", p.d[p.i]))
	}
	s, n, err := token.ScanString(p.d[p.i:], p.opts.maxStringLength)
	if err != nil {
		return "", p.scanErr(p.i, err)
	}
	p.i += n
	return s, nil
}

// scalar reads an unquoted scalar. Shapes are tried from the most to the
// least specific: UUID, instant, duration, number, keyword.
func (p *parser) scalar() (*ir.Node, error) {
	d := p.d[p.i:]
	start := p.i
	kjson := !p.opts.json()
	switch {
	case kjson && token.UUIDPrefix(d):
		u, n, err := token.ScanUUID(d)
		if err != nil {
			return nil, p.scanErr(start, err)
		}
		p.i += n
		return ir.FromUUID(u), nil

	case p.opts.instants && token.DateShape(d):
		nanos, off, n, err := token.ScanInstant(d)
		if err != nil {
			return nil, p.scanErr(start, err)
		}
		p.i += n
		return ir.FromInstant(ir.Instant{Nanos: nanos, Offset: off}), nil

	case p.opts.durations && (d[0] == 'P' || len(d) > 1 && d[0] == '-' && d[1] == 'P'):
		parts, n, err := token.ScanDuration(d)
		if err != nil {
			return nil, p.scanErr(start, err)
		}
		p.i += n
		return ir.FromDuration(ir.Duration(parts)), nil

	case d[0] == '-' || d[0] >= '0' && d[0] <= '9':
		return p.number()
	}
	for _, kw := range [...]string{"true", "false", "null"} {
		if n := token.Keyword(d, kw); n != 0 {
			p.i += n
			switch kw {
			case "true":
				return ir.FromBool(true), nil
			case "false":
				return ir.FromBool(false), nil
			}
			return ir.Null(), nil
		}
		if len(d) < len(kw) && strings.HasPrefix(kw, string(d)) {
			return nil, p.incomplete(kw)
		}
	}
	if n := token.Ident(d); n != 0 {
		word := string(d[:n])
		if word == "Infinity" || word == "NaN" {
			return nil, p.errAt(start, ir.ErrUnexpectedToken, "non-finite literal "+word)
		}
		return nil, p.errAt(start, ir.ErrUnexpectedToken, fmt.Sprintf("unquoted string %q", word))
	}
	return nil, p.errAt(start, ir.ErrUnexpectedToken, fmt.Sprintf("unexpected %q", d[0]))
}

func (p *parser) number() (*ir.Node, error) {
	start := p.i
	lit, n, err := token.ScanNumber(p.d[p.i:])
	if err != nil {
		return nil, p.scanErr(start, err)
	}
	if nd := len(lit.Int) + len(lit.Frac); p.opts.maxStringLength > 0 && nd > p.opts.maxStringLength {
		return nil, p.errAt(start, ir.ErrSizeExceeded, fmt.Sprintf("number of %d digits", nd))
	}
	if p.opts.json() && lit.Kind != token.FloatNumber {
		return nil, p.errAt(start+len(lit.Text), ir.ErrInvalidNumber, "number suffix in JSON")
	}
	p.i += n
	switch lit.Kind {
	case token.BigIntNumber:
		neg, digits := lit.BigInt()
		return &ir.Node{Type: ir.BigIntType, BigInt: ir.BigInt{Negative: neg, Digits: digits}}, nil
	case token.DecimalNumber:
		return p.decimal(start, lit)
	}
	f, err := lit.Float()
	if err == nil && f == 0 && strings.Trim(lit.Int+lit.Frac, "0") != "" {
		err = ir.ErrOverflow
	}
	switch {
	case err == nil:
		return ir.NewNumber(f)
	case !errors.Is(err, ir.ErrOverflow):
		return nil, p.errAt(start, err, lit.Text)
	case p.opts.strictNumbers:
		return nil, p.errAt(start, ir.ErrOverflow, lit.Text+" is out of range")
	}
	return p.decimal(start, lit)
}

func (p *parser) decimal(start int, lit *token.NumberLit) (*ir.Node, error) {
	neg, digits, exp, err := lit.Decimal()
	if err != nil {
		return nil, p.errAt(start, err, lit.Text)
	}
	return &ir.Node{Type: ir.DecimalType, Decimal: ir.Decimal{Negative: neg, Digits: digits, Exponent: exp}}, nil
}

// ParseString is Parse on a string.
func ParseString(s string, opts ...ParseOption) (*ir.Node, error) {
	return Parse([]byte(s), opts...)
}
