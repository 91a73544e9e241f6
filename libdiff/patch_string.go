package libdiff

import (
	"github.com/signadot/kjson-format/kjson/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func patchString(doc *ir.Node, diffs []diffpatch.Diff) (*ir.Node, error) {
	dmp := diffpatch.New()
	if src := dmp.DiffText1(diffs); src != doc.String {
		return nil, conflict(doc, "unexpected text %q, expected %q", doc.String, src)
	}
	return ir.FromString(dmp.DiffText2(diffs)), nil
}
