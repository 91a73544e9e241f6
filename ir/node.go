package ir

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/google/uuid"
)

type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string

	// Fields[i] is the key of Values[i] in an object.
	Fields []string
	Values []*Node

	String   string
	Bool     bool
	Number   float64
	BigInt   BigInt
	Decimal  Decimal
	UUID     uuid.UUID
	Instant  Instant
	Duration Duration
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

// CloneTo deep copies y into dst, which keeps y's parent links.
func (y *Node) CloneTo(dst *Node) *Node {
	*dst = *y
	dst.Fields = slices.Clone(y.Fields)
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
	}
	for i, yv := range y.Values {
		c := yv.CloneTo(&Node{})
		c.Parent = dst
		c.ParentIndex = i
		dst.Values[i] = c
	}
	return dst
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: NumberType, Number: float64(v)}
}

// FromFloat returns a Number node. It panics if f is not finite; use
// NewNumber for unchecked input.
func FromFloat(f float64) *Node {
	n, err := NewNumber(f)
	if err != nil {
		panic(err)
	}
	return n
}

func NewNumber(f float64) (*Node, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %v", ErrNonFinite, f)
	}
	return &Node{Type: NumberType, Number: f}, nil
}

func FromString(v string) *Node {
	return FromStringAt(&Node{}, v)
}

func FromStringAt(p *Node, v string) *Node {
	p.Type = StringType
	p.String = v
	return p
}

func FromUUID(u uuid.UUID) *Node {
	return &Node{Type: UUIDType, UUID: u}
}

func FromInstant(i Instant) *Node {
	return &Node{Type: InstantType, Instant: i}
}

func FromDuration(d Duration) *Node {
	return &Node{Type: DurationType, Duration: d}
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type: ArrayType,
	}
	res.Values = make([]*Node, len(ySlice))
	for i, y := range ySlice {
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
		y.ParentField = ""
	}
	return res
}

// NewArray returns an empty array.
func NewArray() *Node {
	return FromSlice(nil)
}

// NewObject returns an empty object.
func NewObject() *Node {
	return FromKeyVals(nil)
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals returns an object with the members of kvs in order.
// Duplicate keys are kept.
func FromKeyVals(kvs []KeyVal) *Node {
	return FromKeyValsAt(&Node{}, kvs)
}

func FromKeyValsAt(res *Node, kvs []KeyVal) *Node {
	res.Type = ObjectType
	res.Fields = make([]string, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		kv := &kvs[i]
		kv.Val.Parent = res
		kv.Val.ParentIndex = i
		kv.Val.ParentField = kv.Key
		res.Fields[i] = kv.Key
		res.Values[i] = kv.Val
	}
	return res
}

// FromMap returns an object with the members of yMap sorted by key.
func FromMap(yMap map[string]*Node) *Node {
	keys := slices.Sorted(maps.Keys(yMap))
	kvs := make([]KeyVal, len(keys))
	for i, k := range keys {
		kvs[i] = KeyVal{Key: k, Val: yMap[k]}
	}
	return FromKeyVals(kvs)
}

// ToMap returns the members of an object by key, the last duplicate
// winning, or nil if node is not an object.
func ToMap(node *Node) map[string]*Node {
	if node.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(node.Fields))
	for i, f := range node.Fields {
		res[f] = node.Values[i]
	}
	return res
}

func (y *Node) Len() int {
	return len(y.Values)
}

// Index returns element i of an array or the value of member i of an
// object, or nil if i is out of range.
func (y *Node) Index(i int) *Node {
	if i < 0 || i >= len(y.Values) {
		return nil
	}
	return y.Values[i]
}

// Append adds v to the end of array y, taking ownership of v.
func (y *Node) Append(v *Node) *Node {
	if y.Type != ArrayType {
		panic(fmt.Sprintf("ir: Append on %s", y.Type))
	}
	v.Parent = y
	v.ParentIndex = len(y.Values)
	v.ParentField = ""
	y.Values = append(y.Values, v)
	return y
}

func (y *Node) fieldIndex(field string) int {
	for i := len(y.Fields) - 1; i >= 0; i-- {
		if y.Fields[i] == field {
			return i
		}
	}
	return -1
}

// Get returns the value of field in object y, the last occurrence for
// duplicate keys, or nil.
func (y *Node) Get(field string) *Node {
	if y.Type != ObjectType {
		return nil
	}
	if i := y.fieldIndex(field); i >= 0 {
		return y.Values[i]
	}
	return nil
}

func (y *Node) Has(field string) bool {
	return y.Type == ObjectType && y.fieldIndex(field) >= 0
}

// Set replaces the value of the last occurrence of field in object y,
// or appends a new member.
func (y *Node) Set(field string, v *Node) *Node {
	if y.Type != ObjectType {
		panic(fmt.Sprintf("ir: Set on %s", y.Type))
	}
	v.Parent = y
	v.ParentField = field
	if i := y.fieldIndex(field); i >= 0 {
		v.ParentIndex = i
		y.Values[i] = v
		return y
	}
	v.ParentIndex = len(y.Values)
	y.Fields = append(y.Fields, field)
	y.Values = append(y.Values, v)
	return y
}

// Delete removes every occurrence of field from object y, reporting
// whether any was present.
func (y *Node) Delete(field string) bool {
	if y.Type != ObjectType {
		return false
	}
	found := false
	j := 0
	for i, f := range y.Fields {
		if f == field {
			found = true
			continue
		}
		y.Fields[j] = f
		y.Values[j] = y.Values[i]
		y.Values[j].ParentIndex = j
		j++
	}
	clear(y.Values[j:])
	y.Fields = y.Fields[:j]
	y.Values = y.Values[:j]
	return found
}

// Visit calls f on y before and after its children, descending when the
// pre-order call returns true.
func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

// Depth returns the container nesting depth of y: 0 for a scalar, 1 for
// a container of scalars.
func (y *Node) Depth() int {
	if y.Type.IsLeaf() {
		return 0
	}
	d := 0
	for _, v := range y.Values {
		d = max(d, v.Depth())
	}
	return d + 1
}
