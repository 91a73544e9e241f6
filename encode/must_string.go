package encode

import (
	"github.com/signadot/kjson-format/kjson/ir"
)

// MustString returns the compact kJSON text of node, panicking on nodes
// which cannot be encoded.
func MustString(node *ir.Node) string {
	s, err := String(node)
	if err != nil {
		panic(err)
	}
	return s
}
