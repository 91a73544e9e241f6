package eval

import (
	"os"
	"strings"
)

var osEnvFunc = Func{
	Name: "getenv",
	Fn: func(params ...any) (any, error) {
		if err := nArgs("getenv", params, 1); err != nil {
			return nil, err
		}
		name, err := stringArg("getenv", params, 0)
		if err != nil {
			return nil, err
		}
		return os.Getenv(strings.TrimSpace(name)), nil
	},
	Types: []any{new(func(string) string)},
}
