package libdiff

import (
	"github.com/signadot/kjson-format/kjson/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Change describes how to turn one tree into another.
type Change struct {
	Op Op

	// From is the replaced or deleted value.
	From *ir.Node
	// To is the replacing or inserted value.
	To *ir.Node

	// Text holds the edits of an OpString change.
	Text []diffpatch.Diff

	// Edits holds the per position edits of an OpArray or OpObject
	// change, in increasing position order.
	Edits []Edit
}

// Edit is a change at one position of an array or object.
//
// FromIndex and ToIndex are the positions in the source and target
// containers. An insert takes place before the source element at
// FromIndex, every other edit consumes it.
type Edit struct {
	FromIndex int
	ToIndex   int
	Key       string
	Change    *Change
}

// DiffFunc computes the change between two nodes, returning nil if there
// is none.
type DiffFunc func(from, to *ir.Node) *Change

// MakeDiff returns an insert change if from is nil, a delete change if to
// is nil and a replace change otherwise.
func MakeDiff(from, to *ir.Node) *Change {
	switch {
	case from == nil:
		return &Change{Op: OpInsert, To: detach(to)}
	case to == nil:
		return &Change{Op: OpDelete, From: detach(from)}
	default:
		return &Change{Op: OpReplace, From: detach(from), To: detach(to)}
	}
}

// Diff returns the change turning from into to, or nil if they are equal.
// Containers of the same type are diffed member by member and strings
// by text.
func Diff(from, to *ir.Node) *Change {
	if from.Type != to.Type {
		return MakeDiff(from, to)
	}
	switch from.Type {
	case ir.ObjectType:
		return DiffObject(from, to, Diff)
	case ir.ArrayType:
		return DiffArray(from, to, Diff)
	case ir.StringType:
		return DiffString(from, to)
	}
	if ir.Equal(from, to) {
		return nil
	}
	return MakeDiff(from, to)
}

func detach(node *ir.Node) *ir.Node {
	res := node.Clone()
	res.Parent = nil
	res.ParentIndex = 0
	res.ParentField = ""
	return res
}
