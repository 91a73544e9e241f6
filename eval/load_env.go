package eval

import (
	"fmt"
	"os"

	"github.com/signadot/kjson-format/kjson/debug"
	"github.com/signadot/kjson-format/kjson/ir"
	"github.com/signadot/kjson-format/kjson/parse"
)

const (
	EnvEnv = "KJSON_ENV"
)

// LoadEnv reads an evaluation environment from the kJSON object in
// $KJSON_ENV. It returns nil if the variable is unset.
func LoadEnv() (Env, error) {
	envEnv := os.Getenv(EnvEnv)
	if envEnv == "" {
		return nil, nil
	}
	node, err := parse.ParseString(envEnv)
	if err != nil {
		return nil, fmt.Errorf("error decoding env $%s: %w", EnvEnv, err)
	}
	if node.Type != ir.ObjectType {
		return nil, fmt.Errorf("error decoding env $%s: wrong type %s", EnvEnv, node.Type)
	}
	env := ToAnyEnv(node)
	if debug.LoadEnv() {
		debug.Logf("\nloaded env from env: %s\n", map[string]any(env))
	}
	return env, nil
}

// ToAnyEnv converts an object node to an Env.
func ToAnyEnv(node *ir.Node) Env {
	m, _ := ir.ToAny(node).(map[string]any)
	return Env(m)
}

// Merge copies the entries of src missing from dst.
func Merge(dst, src Env) {
	for k, v := range src {
		if _, ok := dst[k]; !ok {
			dst[k] = v
		}
	}
}
