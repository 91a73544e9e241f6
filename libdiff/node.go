package libdiff

import (
	"fmt"

	"github.com/signadot/kjson-format/kjson/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Node returns the kJSON form of c, which FromNode reads back.
//
//	{op: "replace", from: 1, to: 2}
//	{op: "string", text: [{keep: "ab"}, {delete: "c"}, {insert: "d"}]}
//	{op: "object", edits: [{at: [0, 0], key: "a", change: {op: "delete", from: 1}}]}
func (c *Change) Node() *ir.Node {
	kvs := []ir.KeyVal{{Key: "op", Val: ir.FromString(c.Op.String())}}
	if c.From != nil {
		kvs = append(kvs, ir.KeyVal{Key: "from", Val: detach(c.From)})
	}
	if c.To != nil {
		kvs = append(kvs, ir.KeyVal{Key: "to", Val: detach(c.To)})
	}
	switch c.Op {
	case OpString:
		text := make([]*ir.Node, len(c.Text))
		for i, d := range c.Text {
			var kind string
			switch d.Type {
			case diffpatch.DiffInsert:
				kind = textInsert
			case diffpatch.DiffDelete:
				kind = textDelete
			default:
				kind = textKeep
			}
			text[i] = ir.FromKeyVals([]ir.KeyVal{{Key: kind, Val: ir.FromString(d.Text)}})
		}
		kvs = append(kvs, ir.KeyVal{Key: "text", Val: ir.FromSlice(text)})
	case OpArray, OpObject:
		edits := make([]*ir.Node, len(c.Edits))
		for i := range c.Edits {
			e := &c.Edits[i]
			ekvs := []ir.KeyVal{{Key: "at", Val: ir.FromSlice([]*ir.Node{
				ir.FromInt(int64(e.FromIndex)),
				ir.FromInt(int64(e.ToIndex)),
			})}}
			if c.Op == OpObject {
				ekvs = append(ekvs, ir.KeyVal{Key: "key", Val: ir.FromString(e.Key)})
			}
			ekvs = append(ekvs, ir.KeyVal{Key: "change", Val: e.Change.Node()})
			edits[i] = ir.FromKeyVals(ekvs)
		}
		kvs = append(kvs, ir.KeyVal{Key: "edits", Val: ir.FromSlice(edits)})
	}
	return ir.FromKeyVals(kvs)
}

// FromNode reads a change from its kJSON form.
func FromNode(node *ir.Node) (*Change, error) {
	if node.Type != ir.ObjectType {
		return nil, malformed(node, "expected object, got %s", node.Type)
	}
	opNode := node.Get("op")
	if opNode == nil || opNode.Type != ir.StringType {
		return nil, malformed(node, "missing op")
	}
	op, ok := parseOp(opNode.String)
	if !ok {
		return nil, malformed(opNode, "unknown op %q", opNode.String)
	}
	c := &Change{Op: op}
	needs := func(field string) (*ir.Node, error) {
		v := node.Get(field)
		if v == nil {
			return nil, malformed(node, "%s change without %s", op, field)
		}
		return detach(v), nil
	}
	var err error
	switch op {
	case OpReplace:
		if c.From, err = needs("from"); err != nil {
			return nil, err
		}
		c.To, err = needs("to")
	case OpInsert:
		c.To, err = needs("to")
	case OpDelete:
		c.From, err = needs("from")
	case OpString:
		c.Text, err = textFromNode(node.Get("text"))
	case OpArray, OpObject:
		c.Edits, err = editsFromNode(node.Get("edits"), op == OpObject)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func textFromNode(node *ir.Node) ([]diffpatch.Diff, error) {
	if node == nil || node.Type != ir.ArrayType {
		return nil, fmt.Errorf("%w: string change without text", ErrMalformed)
	}
	res := make([]diffpatch.Diff, len(node.Values))
	for i, v := range node.Values {
		if v.Type != ir.ObjectType || len(v.Fields) != 1 || v.Values[0].Type != ir.StringType {
			return nil, malformed(v, "text edit must be a single string member")
		}
		switch v.Fields[0] {
		case textKeep:
			res[i].Type = diffpatch.DiffEqual
		case textInsert:
			res[i].Type = diffpatch.DiffInsert
		case textDelete:
			res[i].Type = diffpatch.DiffDelete
		default:
			return nil, malformed(v, "unknown text edit %q", v.Fields[0])
		}
		res[i].Text = v.Values[0].String
	}
	return res, nil
}

func editsFromNode(node *ir.Node, isObj bool) ([]Edit, error) {
	if node == nil || node.Type != ir.ArrayType {
		return nil, fmt.Errorf("%w: container change without edits", ErrMalformed)
	}
	res := make([]Edit, len(node.Values))
	for i, v := range node.Values {
		if v.Type != ir.ObjectType {
			return nil, malformed(v, "edit must be an object")
		}
		at := v.Get("at")
		if at == nil || at.Type != ir.ArrayType || len(at.Values) != 2 {
			return nil, malformed(v, "edit needs at: [from, to]")
		}
		for j, p := range at.Values {
			if p.Type != ir.NumberType || p.Number < 0 || p.Number != float64(int(p.Number)) {
				return nil, malformed(p, "edit position must be a non-negative integer")
			}
			if j == 0 {
				res[i].FromIndex = int(p.Number)
			} else {
				res[i].ToIndex = int(p.Number)
			}
		}
		if isObj {
			key := v.Get("key")
			if key == nil || key.Type != ir.StringType {
				return nil, malformed(v, "object edit needs a key")
			}
			res[i].Key = key.String
		}
		cn := v.Get("change")
		if cn == nil {
			return nil, malformed(v, "edit without change")
		}
		c, err := FromNode(cn)
		if err != nil {
			return nil, err
		}
		res[i].Change = c
	}
	return res, nil
}

func malformed(at *ir.Node, format string, args ...any) error {
	return fmt.Errorf("%w at %q: %s", ErrMalformed, at.KPath(), fmt.Sprintf(format, args...))
}
