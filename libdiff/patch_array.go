package libdiff

import (
	"fmt"

	"github.com/signadot/kjson-format/kjson/debug"
	"github.com/signadot/kjson-format/kjson/ir"
)

// Apply returns a copy of doc with c applied. doc is not modified.
// A nil change yields a plain copy.
func Apply(doc *ir.Node, c *Change) (*ir.Node, error) {
	if c == nil {
		return detach(doc), nil
	}
	return apply(doc, c)
}

func apply(doc *ir.Node, c *Change) (*ir.Node, error) {
	if debug.Patch() {
		debug.Logf("patch %s %s at %q\n", c.Op, doc.Type, doc.KPath())
	}
	switch c.Op {
	case OpReplace:
		if !ir.Equal(doc, c.From) {
			return nil, conflict(doc, "value differs from the replaced value")
		}
		return detach(c.To), nil
	case OpString:
		if doc.Type != ir.StringType {
			return nil, conflict(doc, "string change on %s", doc.Type)
		}
		return patchString(doc, c.Text)
	case OpArray:
		if doc.Type != ir.ArrayType {
			return nil, conflict(doc, "array change on %s", doc.Type)
		}
		return patchContainer(doc, c.Edits)
	case OpObject:
		if doc.Type != ir.ObjectType {
			return nil, conflict(doc, "object change on %s", doc.Type)
		}
		return patchContainer(doc, c.Edits)
	default:
		return nil, fmt.Errorf("%w: %s change outside of a container", ErrMalformed, c.Op)
	}
}

func patchContainer(doc *ir.Node, edits []Edit) (*ir.Node, error) {
	isObj := doc.Type == ir.ObjectType
	var kvs []ir.KeyVal
	k := 0
	copyTo := func(end int) {
		for ; k < end; k++ {
			kvs = append(kvs, ir.KeyVal{Key: keyAt(doc, k), Val: detach(doc.Values[k])})
		}
	}
	for i := range edits {
		e := &edits[i]
		if e.Change == nil {
			return nil, fmt.Errorf("%w: edit %d has no change", ErrMalformed, i)
		}
		if e.FromIndex < k || e.FromIndex > len(doc.Values) {
			return nil, conflict(doc, "edit position %d out of order or range", e.FromIndex)
		}
		copyTo(e.FromIndex)
		if e.Change.Op == OpInsert {
			kvs = append(kvs, ir.KeyVal{Key: e.Key, Val: detach(e.Change.To)})
			continue
		}
		if k == len(doc.Values) {
			return nil, conflict(doc, "edit position %d out of range", e.FromIndex)
		}
		v := doc.Values[k]
		if isObj && doc.Fields[k] != e.Key {
			return nil, conflict(doc, "key %q at %d, expected %q", doc.Fields[k], k, e.Key)
		}
		k++
		if e.Change.Op == OpDelete {
			if !ir.Equal(v, e.Change.From) {
				return nil, conflict(v, "value differs from the deleted value")
			}
			continue
		}
		nv, err := apply(v, e.Change)
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, ir.KeyVal{Key: e.Key, Val: nv})
	}
	copyTo(len(doc.Values))
	if isObj {
		return ir.FromKeyVals(kvs), nil
	}
	vals := make([]*ir.Node, len(kvs))
	for i := range kvs {
		vals[i] = kvs[i].Val
	}
	return ir.FromSlice(vals), nil
}

func conflict(at *ir.Node, format string, args ...any) error {
	return fmt.Errorf("%w at %q: %s", ErrConflict, at.KPath(), fmt.Sprintf(format, args...))
}
