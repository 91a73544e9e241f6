package eval

import (
	"github.com/signadot/kjson-format/kjson/ir"

	"github.com/expr-lang/expr"
)

func exprOpts(doc *ir.Node) []expr.Option {
	funcs := Funcs()
	opts := make([]expr.Option, 0, len(funcs)+3)
	for _, f := range funcs {
		opts = append(opts, expr.Function(f.Name, f.Fn, f.Types...))
	}
	if doc == nil {
		return opts
	}
	return append(opts,
		expr.Function("whereami", func(params ...any) (any, error) {
			return doc.KPath(), nil
		},
			new(func() string)),
		expr.Function("getkpath", func(params ...any) (any, error) {
			res, err := doc.Root().GetKPath(params[0].(string))
			if err != nil {
				return nil, err
			}
			return ir.ToAny(res), nil
		},
			new(func(string) any)),
		expr.Function("listkpath", func(params ...any) (any, error) {
			nodes, err := doc.Root().ListKPath(nil, params[0].(string))
			if err != nil {
				return nil, err
			}
			res := make([]any, len(nodes))
			for i, item := range nodes {
				res[i] = ir.ToAny(item)
			}
			return res, nil
		},
			new(func(string) []any)),
	)
}
