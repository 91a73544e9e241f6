package libdiff

import (
	"strings"

	"github.com/signadot/kjson-format/kjson/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffString returns a text change between two strings, or a replace
// change when more than half of the shorter string changes.
func DiffString(from, to *ir.Node) *Change {
	if from.String == to.String {
		return nil
	}
	dmp := diffpatch.New()
	multiLine := strings.Contains(from.String, "\n") && strings.Contains(to.String, "\n")
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(from.String, to.String, multiLine))
	size := 0
	for i := range diffs {
		if diffs[i].Type != diffpatch.DiffEqual {
			size += len(diffs[i].Text)
		}
	}
	if size > min(len(from.String), len(to.String))/2 {
		return MakeDiff(from, to)
	}
	return &Change{Op: OpString, Text: diffs}
}
