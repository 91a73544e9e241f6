package parse

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/signadot/kjson-format/kjson/ir"
	"github.com/signadot/kjson-format/kjson/token"
	"gopkg.in/yaml.v3"
)

// maxExactInt is the largest integer every smaller integer of which a
// float64 holds exactly.
const maxExactInt = 1 << 53

// parseYAML reads the first document of a YAML stream. Mapping order is
// kept. The local tags !uuid, !bigint, !decimal, !instant and !duration
// select the extended scalar types.
func parseYAML(d []byte, opts *parseOpts) (*ir.Node, error) {
	var doc yaml.Node
	pd := token.NewPosDoc(d)
	if err := yaml.Unmarshal(d, &doc); err != nil {
		return nil, newError(pd, 0, ir.ErrSyntax, err.Error())
	}
	if len(doc.Content) == 0 {
		return nil, newError(pd, len(d), ir.ErrIncomplete, "empty document")
	}
	y := &yamlConv{opts: opts, pd: pd}
	return y.node(doc.Content[0], 0)
}

type yamlConv struct {
	opts *parseOpts
	pd   *token.PosDoc
}

func (y *yamlConv) errAt(n *yaml.Node, err error, msg string) error {
	return newError(y.pd, y.pd.Offset(n.Line-1, n.Column-1), err, msg)
}

func (y *yamlConv) node(n *yaml.Node, depth int) (*ir.Node, error) {
	res, err := y.convert(n, depth)
	if err != nil {
		return nil, err
	}
	if y.opts.positions != nil {
		y.opts.positions[res] = y.pd.Pos(y.pd.Offset(n.Line-1, n.Column-1))
	}
	return res, nil
}

func (y *yamlConv) convert(n *yaml.Node, depth int) (*ir.Node, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		return y.node(n.Content[0], depth)
	case yaml.AliasNode:
		return y.node(n.Alias, depth)
	case yaml.SequenceNode:
		if depth+1 > y.opts.maxDepth {
			return nil, y.errAt(n, ir.ErrDepthExceeded, fmt.Sprintf("nesting deeper than %d", y.opts.maxDepth))
		}
		elts := make([]*ir.Node, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := y.node(c, depth+1)
			if err != nil {
				return nil, err
			}
			elts = append(elts, v)
		}
		return ir.FromSlice(elts), nil
	case yaml.MappingNode:
		if depth+1 > y.opts.maxDepth {
			return nil, y.errAt(n, ir.ErrDepthExceeded, fmt.Sprintf("nesting deeper than %d", y.opts.maxDepth))
		}
		kvs := make([]ir.KeyVal, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, y.errAt(k, ir.ErrUnsupportedType, "non-scalar mapping key")
			}
			val, err := y.node(v, depth+1)
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, ir.KeyVal{Key: k.Value, Val: val})
		}
		return ir.FromKeyVals(kvs), nil
	case yaml.ScalarNode:
		return y.scalar(n)
	}
	return nil, y.errAt(n, ir.ErrUnsupportedType, fmt.Sprintf("yaml node kind %d", n.Kind))
}

func (y *yamlConv) scalar(n *yaml.Node) (*ir.Node, error) {
	if len(n.Value) > y.opts.maxStringLength {
		return nil, y.errAt(n, ir.ErrSizeExceeded, fmt.Sprintf("string longer than %d", y.opts.maxStringLength))
	}
	var (
		res *ir.Node
		err error
	)
	switch n.Tag {
	case "!!null":
		return ir.Null(), nil
	case "!!bool":
		var b bool
		if err = n.Decode(&b); err == nil {
			res = ir.FromBool(b)
		}
	case "!!int":
		res, err = yamlInt(n.Value)
	case "!!float":
		if token.AllDigits(strings.TrimLeft(n.Value, "+-")) {
			// integers beyond 64 bits resolve as floats
			res, err = yamlInt(n.Value)
			break
		}
		var f float64
		if err = n.Decode(&f); err == nil {
			res, err = ir.NewNumber(f)
		}
	case "!!timestamp":
		var t time.Time
		if err = n.Decode(&t); err == nil {
			res, err = ir.FromTime(t)
		}
	case "!uuid":
		var u uuid.UUID
		u, err = ir.ParseUUID(n.Value)
		res = ir.FromUUID(u)
	case "!bigint":
		res, err = ir.NewBigInt(n.Value)
	case "!decimal":
		res, err = ir.NewDecimal(n.Value)
	case "!instant":
		var nanos int64
		var off int16
		var k int
		nanos, off, k, err = token.ScanInstant([]byte(n.Value))
		if err == nil && k != len(n.Value) {
			err = fmt.Errorf("%w: trailing %q", ir.ErrInvalidInstant, n.Value[k:])
		}
		res = ir.FromInstant(ir.Instant{Nanos: nanos, Offset: off})
	case "!duration":
		var dur ir.Duration
		dur, err = ir.ParseDuration(n.Value)
		res = ir.FromDuration(dur)
	default:
		res = ir.FromString(n.Value)
	}
	if err != nil {
		return nil, y.errAt(n, yamlKind(err), "")
	}
	return res, nil
}

// yamlKind returns err if it carries an error kind, else ErrSyntax.
func yamlKind(err error) error {
	if ir.ErrorKindName(err) != "" {
		return err
	}
	return fmt.Errorf("%w: %w", ir.ErrSyntax, err)
}

// yamlInt reads a YAML 1.2 integer, keeping integers beyond the exact
// float64 range as BigInts.
func yamlInt(v string) (*ir.Node, error) {
	clean := strings.ReplaceAll(v, "_", "")
	if i, err := strconv.ParseInt(clean, 0, 64); err == nil {
		if i >= -maxExactInt && i <= maxExactInt {
			return ir.FromInt(i), nil
		}
	}
	b, ok := new(big.Int).SetString(clean, 0)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ir.ErrInvalidNumber, v)
	}
	return ir.FromBigIntValue(b), nil
}
