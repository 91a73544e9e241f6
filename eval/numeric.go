package eval

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/cockroachdb/apd/v3"
	"github.com/signadot/kjson-format/kjson/ir"
)

// decimal arithmetic runs at the precision of IEEE 754 decimal128.
var decCtx = apd.BaseContext.WithPrecision(34)

var numericFuncs = []Func{
	{Name: "decimal", Fn: func(params ...any) (any, error) {
		if err := nArgs("decimal", params, 1); err != nil {
			return nil, err
		}
		return toDecimal("decimal", params[0])
	}},
	{Name: "bigint", Fn: func(params ...any) (any, error) {
		if err := nArgs("bigint", params, 1); err != nil {
			return nil, err
		}
		return toBigInt(params[0])
	}},
	{Name: "tofloat", Fn: func(params ...any) (any, error) {
		if err := nArgs("tofloat", params, 1); err != nil {
			return nil, err
		}
		return toFloat(params[0])
	}},
	decimalOp("dadd", decCtx.Add),
	decimalOp("dsub", decCtx.Sub),
	decimalOp("dmul", decCtx.Mul),
	decimalOp("dquo", decCtx.Quo),
	{Name: "dcmp", Fn: func(params ...any) (any, error) {
		if err := nArgs("dcmp", params, 2); err != nil {
			return nil, err
		}
		x, err := toDecimal("dcmp", params[0])
		if err != nil {
			return nil, err
		}
		y, err := toDecimal("dcmp", params[1])
		if err != nil {
			return nil, err
		}
		return x.Cmp(y), nil
	}},
}

func decimalOp(name string, op func(d, x, y *apd.Decimal) (apd.Condition, error)) Func {
	return Func{Name: name, Fn: func(params ...any) (any, error) {
		if err := nArgs(name, params, 2); err != nil {
			return nil, err
		}
		x, err := toDecimal(name, params[0])
		if err != nil {
			return nil, err
		}
		y, err := toDecimal(name, params[1])
		if err != nil {
			return nil, err
		}
		res := new(apd.Decimal)
		if _, err := op(res, x, y); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return res, nil
	}}
}

func toDecimal(name string, v any) (*apd.Decimal, error) {
	switch x := v.(type) {
	case *apd.Decimal:
		return x, nil
	case string:
		d, _, err := apd.NewFromString(x)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return d, nil
	case int:
		return apd.New(int64(x), 0), nil
	case int64:
		return apd.New(x, 0), nil
	case float64:
		return new(apd.Decimal).SetFloat64(x)
	case *big.Int:
		d, _, err := apd.NewFromString(x.String())
		return d, err
	}
	return nil, fmt.Errorf("%s: cannot convert %T to a decimal", name, v)
}

func toBigInt(v any) (*big.Int, error) {
	switch x := v.(type) {
	case *big.Int:
		return x, nil
	case string:
		b, err := ir.ParseBigInt(x)
		if err != nil {
			return nil, fmt.Errorf("bigint: %w", err)
		}
		return b.Big(), nil
	case int:
		return big.NewInt(int64(x)), nil
	case int64:
		return big.NewInt(x), nil
	case float64:
		f := big.NewFloat(x)
		if !f.IsInt() {
			return nil, fmt.Errorf("bigint: %v is not an integer", x)
		}
		b, _ := f.Int(nil)
		return b, nil
	}
	return nil, fmt.Errorf("bigint: cannot convert %T", v)
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case *apd.Decimal:
		return x.Float64()
	case *big.Int:
		f, _ := new(big.Float).SetInt(x).Float64()
		return f, nil
	case ir.Duration:
		return float64(x.ApproxNanos()) / 1e9, nil
	case string:
		return strconv.ParseFloat(x, 64)
	}
	return 0, fmt.Errorf("tofloat: cannot convert %T", v)
}
