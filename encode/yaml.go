package encode

import (
	"fmt"
	"math"

	"github.com/goccy/go-yaml"
	"github.com/signadot/kjson-format/kjson/ir"
)

// maxExactInt bounds the numbers written as YAML integers.
const maxExactInt = 1 << 53

// taggedScalar is written as a YAML scalar with a local tag, which the
// YAML front end of package parse reads back as the extended type.
type taggedScalar struct {
	tag  string
	text string
}

func (t taggedScalar) MarshalYAML() ([]byte, error) {
	return []byte(t.tag + " " + t.text), nil
}

// appendYAML appends node as a YAML document. Object order is kept by
// writing objects as yaml.MapSlice.
func appendYAML(dst []byte, node *ir.Node, es *EncState) ([]byte, error) {
	v, err := yamlValue(node)
	if err != nil {
		return nil, err
	}
	indent := es.indent
	if indent == 0 {
		indent = 2
	}
	d, err := yaml.MarshalWithOptions(v, yaml.Indent(indent))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return append(dst, d...), nil
}

func yamlValue(node *ir.Node) (any, error) {
	switch node.Type {
	case ir.NullType:
		return nil, nil
	case ir.BoolType:
		return node.Bool, nil
	case ir.NumberType:
		f := node.Number
		if err := checkFinite(f); err != nil {
			return nil, fmt.Errorf("%w at %s", err, node.Path())
		}
		if f == math.Trunc(f) && math.Abs(f) <= maxExactInt && !(f == 0 && math.Signbit(f)) {
			return int64(f), nil
		}
		return f, nil
	case ir.StringType:
		return node.String, nil
	case ir.BigIntType:
		if !node.BigInt.Valid() {
			return nil, fmt.Errorf("%w: bad bigint digits %q at %s", ErrEncoding, node.BigInt.Digits, node.Path())
		}
		return taggedScalar{tag: "!bigint", text: node.BigInt.String()}, nil
	case ir.DecimalType:
		if !node.Decimal.Valid() {
			return nil, fmt.Errorf("%w: bad decimal digits %q at %s", ErrEncoding, node.Decimal.Digits, node.Path())
		}
		return taggedScalar{tag: "!decimal", text: node.Decimal.String()}, nil
	case ir.UUIDType:
		return taggedScalar{tag: "!uuid", text: node.UUID.String()}, nil
	case ir.InstantType:
		return taggedScalar{tag: "!instant", text: node.Instant.String()}, nil
	case ir.DurationType:
		if !node.Duration.Valid() {
			return nil, fmt.Errorf("%w: negative duration component at %s", ir.ErrInvalidDuration, node.Path())
		}
		return taggedScalar{tag: "!duration", text: node.Duration.String()}, nil
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			yv, err := yamlValue(v)
			if err != nil {
				return nil, err
			}
			res[i] = yv
		}
		return res, nil
	case ir.ObjectType:
		res := make(yaml.MapSlice, len(node.Values))
		for i, v := range node.Values {
			yv, err := yamlValue(v)
			if err != nil {
				return nil, err
			}
			res[i] = yaml.MapItem{Key: node.Fields[i], Value: yv}
		}
		return res, nil
	}
	return nil, fmt.Errorf("%w: type %s", ir.ErrUnsupportedType, node.Type)
}
