package eval

import (
	"github.com/google/uuid"
	"github.com/signadot/kjson-format/kjson/encode"
	"github.com/signadot/kjson-format/kjson/ir"
	"github.com/signadot/kjson-format/kjson/parse"
)

var valueFuncs = []Func{
	{
		Name: "tovalue",
		Fn: func(params ...any) (any, error) {
			if err := nArgs("tovalue", params, 1); err != nil {
				return nil, err
			}
			s, err := stringArg("tovalue", params, 0)
			if err != nil {
				return nil, err
			}
			node, err := parse.ParseString(s)
			if err != nil {
				return nil, err
			}
			return ir.ToAny(node), nil
		},
	},
	{
		Name: "kjson",
		Fn: func(params ...any) (any, error) {
			if err := nArgs("kjson", params, 1); err != nil {
				return nil, err
			}
			node, err := ir.FromAny(params[0])
			if err != nil {
				return nil, err
			}
			return encode.String(node)
		},
	},
	{
		Name: "isoduration",
		Fn: func(params ...any) (any, error) {
			if err := nArgs("isoduration", params, 1); err != nil {
				return nil, err
			}
			s, err := stringArg("isoduration", params, 0)
			if err != nil {
				return nil, err
			}
			return ir.ParseDuration(s)
		},
		Types: []any{new(func(string) ir.Duration)},
	},
	{
		Name: "uuid4",
		Fn: func(params ...any) (any, error) {
			return uuid.NewRandom()
		},
		Types: []any{new(func() uuid.UUID)},
	},
	{
		Name: "uuid7",
		Fn: func(params ...any) (any, error) {
			return uuid.NewV7()
		},
		Types: []any{new(func() uuid.UUID)},
	},
}
