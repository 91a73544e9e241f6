package ir

import (
	"strconv"
	"strings"
)

// Path returns a JSONPath style path of y from the root, as used by
// JSON Patch consumers and error messages: $.a[0]['b c'].
func (y *Node) Path() string {
	if y.Parent == nil {
		return "$"
	}
	switch y.Parent.Type {
	case ObjectType:
		f := y.ParentField
		prefix := y.Parent.Path() + "."
		if f != "" && strings.IndexAny(f, "'.*$[] ") == -1 {
			return prefix + f
		}
		return y.Parent.Path() + "['" + strings.ReplaceAll(f, "'", "\\'") + "']"
	case ArrayType:
		return y.Parent.Path() + "[" + strconv.Itoa(y.ParentIndex) + "]"
	default:
		panic("parent but not in container")
	}
}

// Pointer returns the RFC 6901 JSON pointer of y from the root.
func (y *Node) Pointer() string {
	if y.Parent == nil {
		return ""
	}
	var seg string
	switch y.Parent.Type {
	case ObjectType:
		seg = strings.NewReplacer("~", "~0", "/", "~1").Replace(y.ParentField)
	case ArrayType:
		seg = strconv.Itoa(y.ParentIndex)
	default:
		panic("parent but not in container")
	}
	return y.Parent.Pointer() + "/" + seg
}
