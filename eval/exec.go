package eval

import (
	"bytes"
	"os/exec"

	"github.com/signadot/kjson-format/kjson/debug"
)

var execFunc = Func{
	Name: "exec",
	Fn: func(params ...any) (any, error) {
		if err := nArgs("exec", params, 1); err != nil {
			return nil, err
		}
		script, err := stringArg("exec", params, 0)
		if err != nil {
			return nil, err
		}
		if debug.Eval() {
			debug.Logf("exec %q\n", script)
		}
		cmd := exec.Command("sh", "-c", script)
		buf := bytes.NewBuffer(nil)
		cmd.Stdout = buf
		if err := cmd.Run(); err != nil {
			return nil, err
		}
		return buf.String(), nil
	},
	Types: []any{new(func(string) string)},
}
