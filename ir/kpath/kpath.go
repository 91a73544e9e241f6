package kpath

import (
	"bytes"
	"cmp"
	"fmt"
	"strconv"

	"github.com/signadot/kjson-format/kjson/token"
)

// KPath is a linked list of path segments. Exactly one of Field,
// FieldAll, Index and IndexAll is set on each segment.
//   - "a.b" → field b of field a
//   - "a.*" → every field of a
//   - "a[0]" → element 0 of a
//   - "a[*]" → every element of a
type KPath struct {
	Field    *string
	FieldAll bool
	Index    *int
	IndexAll bool
	Next     *KPath
}

func Field(name string) *KPath {
	return &KPath{Field: &name}
}

func Index(i int) *KPath {
	return &KPath{Index: &i}
}

func (p *KPath) String() string {
	if p == nil {
		return ""
	}
	buf := bytes.NewBuffer(nil)
	for x := p; x != nil; x = x.Next {
		if (x.Field != nil || x.FieldAll) && buf.Len() > 0 {
			buf.WriteByte('.')
		}
		buf.WriteString(x.SegmentString())
	}
	return buf.String()
}

// SegmentString returns the text of the first segment of p only.
func (p *KPath) SegmentString() string {
	switch {
	case p == nil:
		return ""
	case p.FieldAll:
		return "*"
	case p.Field != nil:
		if token.KPathQuoteField(*p.Field) {
			return token.Quote(*p.Field)
		}
		return *p.Field
	case p.IndexAll:
		return "[*]"
	case p.Index != nil:
		return "[" + strconv.Itoa(*p.Index) + "]"
	}
	return ""
}

// IsWild reports whether any segment of p is a wildcard.
func (p *KPath) IsWild() bool {
	for x := p; x != nil; x = x.Next {
		if x.FieldAll || x.IndexAll {
			return true
		}
	}
	return false
}

// Parse parses a kinded path. The empty path is the root and parses to
// nil. Fields are identifiers or quoted strings:
//
//	users[0].name
//	'key with spaces'.x
//	items[*].id
func Parse(kp string) (*KPath, error) {
	var (
		head, tail *KPath
		d          = []byte(kp)
		i          int
	)
	add := func(seg *KPath) {
		if head == nil {
			head = seg
		} else {
			tail.Next = seg
		}
		tail = seg
	}
	for i < len(d) {
		switch {
		case d[i] == '[':
			j := bytes.IndexByte(d[i:], ']')
			if j == -1 {
				return nil, fmt.Errorf("%w: expected '[' <index> ']' at %d", token.ErrSyntax, i)
			}
			is := string(d[i+1 : i+j])
			if is == "*" {
				add(&KPath{IndexAll: true})
			} else {
				n, err := strconv.Atoi(is)
				if err != nil || n < 0 {
					return nil, fmt.Errorf("%w: bad index %q at %d", token.ErrSyntax, is, i)
				}
				add(Index(n))
			}
			i += j + 1
			continue
		case d[i] == '.':
			if head == nil {
				return nil, fmt.Errorf("%w: leading '.'", token.ErrSyntax)
			}
			i++
		case head != nil:
			return nil, fmt.Errorf("%w: expected '.' or '[' at %d", token.ErrSyntax, i)
		}
		seg, n, err := parseField(d[i:])
		if err != nil {
			return nil, fmt.Errorf("field at %d: %w", i, err)
		}
		add(seg)
		i += n
	}
	return head, nil
}

func parseField(d []byte) (*KPath, int, error) {
	if len(d) == 0 {
		return nil, 0, fmt.Errorf("%w: expected field at end of path", token.ErrSyntax)
	}
	if d[0] == '*' {
		return &KPath{FieldAll: true}, 1, nil
	}
	if token.IsQuote(d[0]) {
		s, n, err := token.ScanString(d, 0)
		if err != nil {
			return nil, 0, err
		}
		return Field(s), n, nil
	}
	n := token.Ident(d)
	if n == 0 {
		return nil, 0, fmt.Errorf("%w: unexpected %q", token.ErrSyntax, d[0])
	}
	return Field(string(d[:n])), n, nil
}

// Append returns a copy of p with next appended.
func (p *KPath) Append(next *KPath) *KPath {
	res := p.Copy()
	if res == nil {
		return next.Copy()
	}
	x := res
	for x.Next != nil {
		x = x.Next
	}
	x.Next = next.Copy()
	return res
}

func (p *KPath) Copy() *KPath {
	if p == nil {
		return nil
	}
	res := &KPath{FieldAll: p.FieldAll, IndexAll: p.IndexAll}
	if p.Field != nil {
		f := *p.Field
		res.Field = &f
	}
	if p.Index != nil {
		i := *p.Index
		res.Index = &i
	}
	res.Next = p.Next.Copy()
	return res
}

// Parent returns p without its last segment, or nil for a single
// segment path.
func (p *KPath) Parent() *KPath {
	if p == nil || p.Next == nil {
		return nil
	}
	res := &KPath{FieldAll: p.FieldAll, IndexAll: p.IndexAll, Field: p.Field, Index: p.Index}
	res.Next = p.Next.Parent()
	return res.Copy()
}

// LastSegment returns the last segment of p.
func (p *KPath) LastSegment() *KPath {
	if p == nil {
		return nil
	}
	x := p
	for x.Next != nil {
		x = x.Next
	}
	return x
}

// Compare orders paths segment by segment, fields before field
// wildcards before indices before index wildcards.
func (p *KPath) Compare(other *KPath) int {
	pa, pb := p, other
	for pa != nil && pb != nil {
		if c := compareSegment(pa, pb); c != 0 {
			return c
		}
		pa, pb = pa.Next, pb.Next
	}
	switch {
	case pa == nil && pb == nil:
		return 0
	case pa == nil:
		return -1
	}
	return 1
}

func segmentRank(p *KPath) int {
	switch {
	case p.Field != nil:
		return 0
	case p.FieldAll:
		return 1
	case p.Index != nil:
		return 2
	}
	return 3
}

func compareSegment(a, b *KPath) int {
	ra, rb := segmentRank(a), segmentRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch {
	case a.Field != nil:
		return cmp.Compare(*a.Field, *b.Field)
	case a.Index != nil:
		return cmp.Compare(*a.Index, *b.Index)
	}
	return 0
}

func (p *KPath) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *KPath) UnmarshalText(d []byte) error {
	kp, err := Parse(string(d))
	if err != nil {
		return err
	}
	if kp == nil {
		*p = KPath{}
		return nil
	}
	*p = *kp
	return nil
}
