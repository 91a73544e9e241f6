package libdiff

import diffpatch "github.com/sergi/go-diff/diffmatchpatch"

// Reverse returns the change undoing c: applying c and then Reverse(c)
// yields the original document.
func Reverse(c *Change) *Change {
	if c == nil {
		return nil
	}
	res := &Change{Op: c.Op, From: c.To, To: c.From}
	switch c.Op {
	case OpInsert:
		res.Op = OpDelete
	case OpDelete:
		res.Op = OpInsert
	case OpString:
		res.Text = make([]diffpatch.Diff, len(c.Text))
		for i, d := range c.Text {
			switch d.Type {
			case diffpatch.DiffInsert:
				d.Type = diffpatch.DiffDelete
			case diffpatch.DiffDelete:
				d.Type = diffpatch.DiffInsert
			}
			res.Text[i] = d
		}
	case OpArray, OpObject:
		res.Edits = make([]Edit, len(c.Edits))
		for i, e := range c.Edits {
			res.Edits[i] = Edit{
				FromIndex: e.ToIndex,
				ToIndex:   e.FromIndex,
				Key:       e.Key,
				Change:    Reverse(e.Change),
			}
		}
	}
	return res
}
