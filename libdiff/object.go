package libdiff

import (
	"github.com/signadot/kjson-format/kjson/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffObject aligns the members of two objects by key and diffs the
// values of aligned members with df. Members keep their order, so a
// reordering shows up as deletes and inserts.
func DiffObject(from, to *ir.Node, df DiffFunc) *Change {
	m := map[string]rune{}
	fromRunes := mapFields(m, from)
	toRunes := mapFields(m, to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)
	edits := align(diffs, from, to, df)
	if len(edits) == 0 {
		return nil
	}
	return &Change{Op: OpObject, Edits: edits}
}

func mapFields(m map[string]rune, node *ir.Node) []rune {
	rs := make([]rune, len(node.Fields))
	for i, f := range node.Fields {
		r, ok := m[f]
		if !ok {
			r = indexRune(len(m))
			m[f] = r
		}
		rs[i] = r
	}
	return rs
}
