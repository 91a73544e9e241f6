package main

import (
	"fmt"
	"strings"

	"github.com/signadot/kjson-format/kjson/eval"
	"github.com/signadot/kjson-format/kjson/ir"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

func kjEval(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		return err
	}
	osEnv, err := eval.LoadEnv()
	if err != nil {
		return err
	}
	eval.Merge(cfg.Env, osEnv)
	if cfg.Funcs {
		fmt.Fprintf(cc.Out, "available functions:\n")
		for _, f := range eval.Funcs() {
			fmt.Fprintf(cc.Out, "\t- %s\n", f)
		}
		return nil
	}
	var expr string
	if !cfg.Expand {
		if len(args) == 0 {
			return fmt.Errorf("%w: eval requires an expression or -x", cli.ErrUsage)
		}
		expr, args = args[0], args[1:]
		if cfg.NoInput {
			node, err := eval.Eval(expr, nil, cfg.Env)
			if err != nil {
				return err
			}
			return writeDocs(cfg.MainConfig, cc.Out, []*ir.Node{node})
		}
	}
	var res []*ir.Node
	err = eachFile(cc, args, func(_ string, d []byte) error {
		docs, err := parseDocs(cfg.MainConfig, d)
		if err != nil {
			return err
		}
		for i, doc := range docs {
			var out *ir.Node
			if cfg.Expand {
				out, err = eval.Expand(doc, cfg.Env)
			} else {
				out, err = eval.Eval(expr, doc, cfg.Env)
			}
			if err != nil {
				return fmt.Errorf("error evaluating document %d: %w", i, err)
			}
			res = append(res, out)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return writeDocs(cfg.MainConfig, cc.Out, res)
}

// envFunc sets a dotted path of env to a YAML value.
func envFunc(env eval.Env, a string) error {
	key, val, ok := strings.Cut(a, "=")
	if !ok {
		return fmt.Errorf("%w: argument %q expected key=val", cli.ErrUsage, a)
	}
	var v any
	err := yaml.Unmarshal([]byte(val), &v)
	if err != nil {
		return err
	}
	parts := strings.Split(key, ".")
	n := len(parts)
	tmpEnv := map[string]any(env)
	for i, part := range parts {
		if i == n-1 {
			tmpEnv[part] = v
			break
		}
		next := tmpEnv[part]
		if next == nil {
			next = map[string]any{}
			tmpEnv[part] = next
		}
		nextEnv, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("cannot access %s, list or scalar", strings.Join(parts[:i+1], "."))
		}
		tmpEnv = nextEnv
	}
	return nil
}
