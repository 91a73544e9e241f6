package eval

import (
	"fmt"
	"maps"
	"strings"

	"github.com/signadot/kjson-format/kjson/debug"
	"github.com/signadot/kjson-format/kjson/encode"
	"github.com/signadot/kjson-format/kjson/ir"

	"github.com/expr-lang/expr"
)

// Env holds the variables visible to expressions.
type Env = map[string]any

// Eval evaluates an expression and converts its result to a tree.
//
// The expression sees doc as the variable doc in the projection of
// ir.ToAny and, when doc is an object, each of its members as a
// variable of the same name. Variables in env take precedence over
// members. A nil doc is allowed.
func Eval(expression string, doc *ir.Node, env Env) (*ir.Node, error) {
	v, err := EvalAny(expression, doc, env)
	if err != nil {
		return nil, err
	}
	res, err := ir.FromAny(v)
	if err != nil {
		return nil, fmt.Errorf("result of %q: %w", expression, err)
	}
	return res, nil
}

// EvalAny is Eval without the conversion of the result.
func EvalAny(expression string, doc *ir.Node, env Env) (any, error) {
	program, err := expr.Compile(expression, exprOpts(doc)...)
	if err != nil {
		return nil, fmt.Errorf("error compiling %q: %w", expression, err)
	}
	runEnv := Env{}
	if doc != nil {
		if m, ok := ir.ToAny(doc.Root()).(map[string]any); ok {
			maps.Copy(runEnv, m)
		}
		runEnv["doc"] = ir.ToAny(doc.Root())
	}
	maps.Copy(runEnv, env)
	v, err := expr.Run(program, runEnv)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", expression, err)
	}
	if debug.Eval() {
		debug.Logf("eval %q gave %#v\n", expression, v)
	}
	return v, nil
}

// Expand returns a copy of node where every string of the form .[expr]
// is replaced by the value of expr, and every $[expr] or .[expr]
// inside other strings is replaced by the text of its value. Within an
// expression a backslash escapes the next character, so \] does not end
// it. An expression without a closing ] is left as is.
//
// Expressions see the root of node as with Eval, and whereami() returns
// the kpath of the string being expanded.
func Expand(node *ir.Node, env Env) (*ir.Node, error) {
	res, err := expand(node, env)
	if err != nil {
		return nil, err
	}
	res.Parent = nil
	return res, nil
}

func expand(node *ir.Node, env Env) (*ir.Node, error) {
	switch node.Type {
	case ir.ObjectType:
		kvs := make([]ir.KeyVal, len(node.Values))
		for i, v := range node.Values {
			xv, err := expand(v, env)
			if err != nil {
				return nil, err
			}
			kvs[i] = ir.KeyVal{Key: node.Fields[i], Val: xv}
		}
		return ir.FromKeyVals(kvs), nil
	case ir.ArrayType:
		vals := make([]*ir.Node, len(node.Values))
		for i, v := range node.Values {
			xv, err := expand(v, env)
			if err != nil {
				return nil, err
			}
			vals[i] = xv
		}
		return ir.FromSlice(vals), nil
	case ir.StringType:
		if raw := GetRaw(node.String); raw != "" {
			return Eval(raw, node, env)
		}
		s, err := expandString(node.String, node, env)
		if err != nil {
			return nil, err
		}
		return ir.FromString(s), nil
	}
	res := node.Clone()
	res.Parent = nil
	return res, nil
}

// GetRaw returns expr if v is exactly .[expr], and "" otherwise.
func GetRaw(v string) string {
	if !strings.HasPrefix(v, ".[") || !strings.HasSuffix(v, "]") {
		return ""
	}
	body, n, ok := scanExpr(v[2:])
	if !ok || n != len(v)-2 {
		return ""
	}
	return strings.TrimSpace(body)
}

// ExpandString replaces the $[expr] and .[expr] expressions in v by the
// text of their values.
func ExpandString(v string, env Env) (string, error) {
	return expandString(v, nil, env)
}

func expandString(v string, doc *ir.Node, env Env) (string, error) {
	var out strings.Builder
	for {
		start := exprStart(v)
		if start == -1 {
			out.WriteString(v)
			return out.String(), nil
		}
		body, n, ok := scanExpr(v[start+2:])
		if !ok {
			out.WriteString(v)
			return out.String(), nil
		}
		out.WriteString(v[:start])
		x, err := EvalAny(strings.TrimSpace(body), doc, env)
		if err != nil {
			return "", err
		}
		s, err := anyText(x)
		if err != nil {
			return "", fmt.Errorf("could not format the value of %q: %w", body, err)
		}
		out.WriteString(s)
		v = v[start+2+n:]
	}
}

func exprStart(v string) int {
	for i := 0; i+1 < len(v); i++ {
		if (v[i] == '$' || v[i] == '.') && v[i+1] == '[' {
			return i
		}
	}
	return -1
}

// scanExpr reads an expression body up to the first unescaped ']',
// returning the unescaped body and the number of bytes consumed
// including the ']'.
func scanExpr(v string) (string, int, bool) {
	var body []byte
	for i := 0; i < len(v); i++ {
		switch v[i] {
		case '\\':
			if i+1 == len(v) {
				return "", 0, false
			}
			i++
			body = append(body, v[i])
		case ']':
			return string(body), i + 1, true
		default:
			body = append(body, v[i])
		}
	}
	return "", 0, false
}

func anyText(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	node, err := ir.FromAny(v)
	if err != nil {
		return "", err
	}
	return encode.String(node, encode.EncodeBigIntSuffix(false), encode.EncodeDecimalSuffix(false))
}
