package debug

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/signadot/kjson-format/kjson/encode"
	"github.com/signadot/kjson-format/kjson/ir"
)

var out io.Writer = os.Stderr

// KJSON formats a node as compact kJSON under %s or %v.
type KJSON struct{ *ir.Node }

func (k KJSON) String() string {
	s, err := encode.String(k.Node)
	if err != nil {
		return fmt.Sprintf("[raw *ir.Node] %v", k.Node)
	}
	return s
}

// Logf writes a formatted message to stderr. Nodes are rendered as
// kJSON and generic maps and slices as indented JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Node:
			args[i] = KJSON{x}.String()
		}
	}
	fmt.Fprintf(out, msg, args...)
}

// LogAny writes v to stderr as JSON.
func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(out, "%v\n", v)
		return
	}
	out.Write(append(d, '\n'))
}
