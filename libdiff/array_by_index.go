package libdiff

import (
	"strings"
	"unicode/utf8"

	"github.com/signadot/kjson-format/kjson/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffArray aligns the elements of two arrays and diffs aligned elements
// with df.
//
// Scalars align only with equal scalars. Containers and multi-line
// strings align with any value of the same type, so that they are
// diffed in place rather than replaced.
func DiffArray(from, to *ir.Node, df DiffFunc) *Change {
	m := map[summary]rune{}
	fromRunes := mapValues(m, from)
	toRunes := mapValues(m, to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)
	edits := align(diffs, from, to, df)
	if len(edits) == 0 {
		return nil
	}
	return &Change{Op: OpArray, Edits: edits}
}

// align turns a rune level diff of the positions of from and to into
// edits. A delete directly followed by an insert of the same key becomes
// a replace.
func align(diffs []diffpatch.Diff, from, to *ir.Node, df DiffFunc) []Edit {
	var edits []Edit
	fi, ti := 0, 0
	for i := range diffs {
		diff := &diffs[i]
		n := utf8.RuneCountInString(diff.Text)
		switch diff.Type {
		case diffpatch.DiffDelete:
			for range n {
				edits = append(edits, Edit{
					FromIndex: fi,
					ToIndex:   ti,
					Key:       keyAt(from, fi),
					Change:    MakeDiff(from.Values[fi], nil),
				})
				fi++
			}
		case diffpatch.DiffInsert:
			for range n {
				key := keyAt(to, ti)
				last := len(edits) - 1
				if last >= 0 && edits[last].Change.Op == OpDelete &&
					edits[last].FromIndex == fi-1 && edits[last].ToIndex == ti &&
					edits[last].Key == key {
					edits[last].Change = MakeDiff(from.Values[fi-1], to.Values[ti])
				} else {
					edits = append(edits, Edit{
						FromIndex: fi,
						ToIndex:   ti,
						Key:       key,
						Change:    MakeDiff(nil, to.Values[ti]),
					})
				}
				ti++
			}
		case diffpatch.DiffEqual:
			for range n {
				if c := df(from.Values[fi], to.Values[ti]); c != nil {
					edits = append(edits, Edit{
						FromIndex: fi,
						ToIndex:   ti,
						Key:       keyAt(from, fi),
						Change:    c,
					})
				}
				fi++
				ti++
			}
		}
	}
	return edits
}

func keyAt(node *ir.Node, i int) string {
	if node.Type != ir.ObjectType {
		return ""
	}
	return node.Fields[i]
}

type summary struct {
	t    ir.Type
	hash uint64
}

func mapValues(m map[summary]rune, node *ir.Node) []rune {
	rs := make([]rune, len(node.Values))
	for i, v := range node.Values {
		sum := summarize(v)
		r, ok := m[sum]
		if !ok {
			r = indexRune(len(m))
			m[sum] = r
		}
		rs[i] = r
	}
	return rs
}

func summarize(node *ir.Node) summary {
	switch node.Type {
	case ir.ObjectType, ir.ArrayType:
		return summary{t: node.Type}
	case ir.StringType:
		if strings.Contains(node.String, "\n") {
			return summary{t: node.Type}
		}
	}
	return summary{t: node.Type, hash: node.Hash()}
}

// indexRune maps the i'th distinct summary to a rune, skipping the
// surrogate range which does not survive conversion to string.
func indexRune(i int) rune {
	r := rune(i)
	if r >= 0xD800 {
		r += 0x800
	}
	return r
}
