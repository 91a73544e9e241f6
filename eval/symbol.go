package eval

import "fmt"

// Func is a function made available to expressions under Name.
// Types optionally gives Go function types used to check calls at
// compile time, as in expr.Function.
type Func struct {
	Name  string
	Fn    func(params ...any) (any, error)
	Types []any
}

func (f Func) String() string {
	return f.Name
}

func nArgs(name string, params []any, n int) error {
	if len(params) != n {
		return fmt.Errorf("%s expects %d args, got %d", name, n, len(params))
	}
	return nil
}

func stringArg(name string, params []any, i int) (string, error) {
	s, ok := params[i].(string)
	if !ok {
		return "", fmt.Errorf("%s: arg %d must be a string, got %T", name, i+1, params[i])
	}
	return s, nil
}
