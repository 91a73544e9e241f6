package ir

import (
	"fmt"
	"strconv"

	"github.com/signadot/kjson-format/kjson/ir/kpath"
	"github.com/signadot/kjson-format/kjson/token"
)

// KPath returns the kinded path of node from the root.
//
// Examples:
//   - Root node → ""
//   - Object field "a" → "a"
//   - Array element at index 0 → "[0]"
//   - Mixed "a[0].b" → "a[0].b"
func (node *Node) KPath() string {
	if node.Parent == nil {
		return ""
	}
	prefix := node.Parent.KPath()
	switch node.Parent.Type {
	case ObjectType:
		f := node.ParentField
		if token.KPathQuoteField(f) {
			f = token.Quote(f)
		}
		if prefix == "" {
			return f
		}
		return prefix + "." + f
	case ArrayType:
		return prefix + "[" + strconv.Itoa(node.ParentIndex) + "]"
	default:
		panic("parent but not in container")
	}
}

// GetKPath returns the node at kp below node, or ErrNotFound. Wildcards
// are not allowed; see ListKPath.
func (node *Node) GetKPath(kp string) (*Node, error) {
	p, err := kpath.Parse(kp)
	if err != nil {
		return nil, err
	}
	return node.getKPath(p)
}

func (node *Node) getKPath(kp *kpath.KPath) (*Node, error) {
	res := node
	for ; kp != nil; kp = kp.Next {
		switch {
		case kp.FieldAll:
			return nil, fmt.Errorf("any field .* in get")
		case kp.IndexAll:
			return nil, fmt.Errorf("any index [*] in get")
		case kp.Index != nil:
			if res.Type != ArrayType {
				return nil, fmt.Errorf("%w: expected array at %q, got %s", ErrNotFound, res.KPath(), res.Type)
			}
			index := *kp.Index
			if index >= len(res.Values) {
				return nil, fmt.Errorf("%w: index %d out of bounds (len %d)", ErrNotFound, index, len(res.Values))
			}
			res = res.Values[index]
		case kp.Field != nil:
			if res.Type != ObjectType {
				return nil, fmt.Errorf("%w: expected object at %q, got %s", ErrNotFound, res.KPath(), res.Type)
			}
			next := res.Get(*kp.Field)
			if next == nil {
				return nil, fmt.Errorf("%w: %q", ErrNotFound, kp.SegmentString())
			}
			res = next
		}
	}
	return res, nil
}

// ListKPath appends to dst every node matching kp, which may contain
// wildcards. Paths not present in node match nothing.
func (node *Node) ListKPath(dst []*Node, kp string) ([]*Node, error) {
	p, err := kpath.Parse(kp)
	if err != nil {
		return nil, err
	}
	return node.listKPath(dst, p), nil
}

func (node *Node) listKPath(dst []*Node, kp *kpath.KPath) []*Node {
	if kp == nil {
		return append(dst, node)
	}
	switch node.Type {
	case ObjectType:
		switch {
		case kp.FieldAll:
			for _, v := range node.Values {
				dst = v.listKPath(dst, kp.Next)
			}
		case kp.Field != nil:
			if v := node.Get(*kp.Field); v != nil {
				dst = v.listKPath(dst, kp.Next)
			}
		}
	case ArrayType:
		switch {
		case kp.IndexAll:
			for _, v := range node.Values {
				dst = v.listKPath(dst, kp.Next)
			}
		case kp.Index != nil:
			if v := node.Index(*kp.Index); v != nil {
				dst = v.listKPath(dst, kp.Next)
			}
		}
	}
	return dst
}
