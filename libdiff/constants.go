package libdiff

import "fmt"

// Op is the kind of a Change.
type Op uint8

const (
	OpReplace Op = iota + 1
	OpInsert
	OpDelete
	OpString
	OpArray
	OpObject
)

var opNames = [...]string{
	OpReplace: "replace",
	OpInsert:  "insert",
	OpDelete:  "delete",
	OpString:  "string",
	OpArray:   "array",
	OpObject:  "object",
}

func (o Op) String() string {
	if int(o) < len(opNames) && opNames[o] != "" {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", o)
}

func parseOp(s string) (Op, bool) {
	for i, name := range opNames {
		if name != "" && name == s {
			return Op(i), true
		}
	}
	return 0, false
}

// names of the text edit kinds in the node form of a string change.
const (
	textKeep   = "keep"
	textInsert = "insert"
	textDelete = "delete"
)
