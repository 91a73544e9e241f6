package libdiff

import (
	"errors"
	"testing"

	"github.com/signadot/kjson-format/kjson/encode"
	"github.com/signadot/kjson-format/kjson/ir"
	"github.com/signadot/kjson-format/kjson/parse"
)

func mustParse(t *testing.T, in string) *ir.Node {
	t.Helper()
	node, err := parse.ParseString(in)
	if err != nil {
		t.Fatalf("parse %s: %v", in, err)
	}
	return node
}

var diffTests = []struct {
	name string
	a, b string
	op   Op
}{
	{"object value", `{a: 1, b: 2}`, `{a: 1, b: 3}`, OpObject},
	{"array delete", `[1, 2, 3]`, `[1, 3]`, OpArray},
	{"array insert", `[1, 2, 3]`, `[0, 1, 2, 3, 4]`, OpArray},
	{"array replace all", `[1, 2]`, `[3, 4]`, OpArray},
	{"nested", `{a: {b: [1, {c: "x"}]}}`, `{a: {b: [1, {c: "y"}, 2]}}`, OpObject},
	{"string", `"hello world, how are you today"`, `"hello world, how were you today"`, OpString},
	{"type change", `1`, `"1"`, OpReplace},
	{"duplicate keys", `{a: 1, a: 2}`, `{a: 1, a: 3, b: null}`, OpObject},
	{"array of objects", `[{id: 1}, {id: 2}]`, `[{id: 2}]`, OpArray},
	{"multi-line", `["line one\nline two\nline three"]`, `["line one\nline 2\nline three"]`, OpArray},
	{"reorder", `{b: 1, a: 2}`, `{a: 2, b: 1}`, OpObject},
	{"extended types", `[12n, 1.5m, P1D, 2024-01-01T00:00:00Z]`, `[13n, 1.5m, P2D, 2024-01-01T00:00:00+01:00]`, OpArray},
	{"empty containers", `{x: []}`, `{x: [null], y: {}}`, OpObject},
	{"uuid", `550e8400-e29b-41d4-a716-446655440000`, `550e8400-e29b-41d4-a716-446655440001`, OpReplace},
}

func TestDiffApply(t *testing.T) {
	for _, tt := range diffTests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := mustParse(t, tt.a), mustParse(t, tt.b)
			c := Diff(a, b)
			if c == nil {
				t.Fatal("no diff")
			}
			if c.Op != tt.op {
				t.Errorf("op %s, want %s", c.Op, tt.op)
			}
			got, err := Apply(a, c)
			if err != nil {
				t.Fatalf("apply: %v\n%s", err, encode.MustString(c.Node()))
			}
			if !ir.EqualOrdered(got, b) {
				t.Errorf("apply got %s\n%s", encode.MustString(got), encode.MustString(c.Node()))
			}
			if !ir.EqualOrdered(a, mustParse(t, tt.a)) {
				t.Error("apply modified its input")
			}
			back, err := Apply(b, Reverse(c))
			if err != nil {
				t.Fatalf("apply reverse: %v", err)
			}
			if !ir.EqualOrdered(back, a) {
				t.Errorf("reverse got %s", encode.MustString(back))
			}
			if !ir.EqualOrdered(Reverse(Reverse(c)).Node(), c.Node()) {
				t.Error("Reverse is not an involution")
			}
			c2, err := FromNode(mustParse(t, encode.MustString(c.Node())))
			if err != nil {
				t.Fatal(err)
			}
			got, err = Apply(a, c2)
			if err != nil {
				t.Fatalf("apply from node: %v", err)
			}
			if !ir.EqualOrdered(got, b) {
				t.Errorf("apply from node got %s", encode.MustString(got))
			}
		})
	}
}

func TestDiffShape(t *testing.T) {
	c := Diff(mustParse(t, `{a: 1, b: 2}`), mustParse(t, `{a: 1, b: 3}`))
	if len(c.Edits) != 1 {
		t.Fatalf("got %d edits", len(c.Edits))
	}
	e := c.Edits[0]
	if e.Key != "b" || e.FromIndex != 1 || e.ToIndex != 1 || e.Change.Op != OpReplace {
		t.Errorf("got %+v", e)
	}
	if e.Change.From.Number != 2 || e.Change.To.Number != 3 {
		t.Errorf("got %+v", e.Change)
	}

	c = Diff(mustParse(t, `[1, 2, 3]`), mustParse(t, `[1, 3]`))
	if len(c.Edits) != 1 || c.Edits[0].Change.Op != OpDelete || c.Edits[0].FromIndex != 1 {
		t.Errorf("got %s", encode.MustString(c.Node()))
	}
	if c.Edits[0].Change.From.Parent != nil {
		t.Error("deleted value still linked to its parent")
	}
}

func TestNoDiff(t *testing.T) {
	for _, in := range []string{
		`null`,
		`{a: [1, "two", {b: 3n}], c: 2024-01-15T10:30:00Z}`,
		`["x\ny", 1.50m]`,
	} {
		a := mustParse(t, in)
		if c := Diff(a, a.Clone()); c != nil {
			t.Errorf("%s: got %s", in, encode.MustString(c.Node()))
		}
		got, err := Apply(a, nil)
		if err != nil || !ir.EqualOrdered(got, a) || got.Parent != nil {
			t.Errorf("%s: nil apply %v", in, err)
		}
	}
}

func TestApplyConflict(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		doc     string
		wantErr error
	}{
		{"replaced value", `{a: 1, b: 2}`, `{a: 1, b: 3}`, `{a: 1, b: 5}`, ErrConflict},
		{"key", `{a: 1, b: 2}`, `{a: 1, b: 3}`, `{a: 1, c: 2}`, ErrConflict},
		{"container type", `[1, 2]`, `[1]`, `{a: 1}`, ErrConflict},
		{"deleted value", `[1, 2]`, `[1]`, `[1, 7]`, ErrConflict},
		{"too short", `[1, 2]`, `[1]`, `[1]`, ErrConflict},
		{"text", `"hello world, how are you today"`, `"hello world, how were you today"`, `"goodbye"`, ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Diff(mustParse(t, tt.a), mustParse(t, tt.b))
			_, err := Apply(mustParse(t, tt.doc), c)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v", err)
			}
		})
	}
}

func TestFromNodeErrors(t *testing.T) {
	for _, in := range []string{
		`1`,
		`{}`,
		`{op: "bogus"}`,
		`{op: "replace", from: 1}`,
		`{op: "insert"}`,
		`{op: "string", text: [{keep: 1}]}`,
		`{op: "string", text: [{swap: "x"}]}`,
		`{op: "array"}`,
		`{op: "array", edits: [{at: [0], change: {op: "insert", to: 1}}]}`,
		`{op: "array", edits: [{at: [-1, 0], change: {op: "insert", to: 1}}]}`,
		`{op: "object", edits: [{at: [0, 0], change: {op: "insert", to: 1}}]}`,
		`{op: "object", edits: [{at: [0, 0], key: "a"}]}`,
	} {
		t.Run(in, func(t *testing.T) {
			if _, err := FromNode(mustParse(t, in)); !errors.Is(err, ErrMalformed) {
				t.Errorf("got %v", err)
			}
		})
	}
	if _, err := Apply(ir.Null(), &Change{Op: OpInsert, To: ir.Null()}); !errors.Is(err, ErrMalformed) {
		t.Errorf("top level insert: %v", err)
	}
}

func TestOpString(t *testing.T) {
	for _, op := range []Op{OpReplace, OpInsert, OpDelete, OpString, OpArray, OpObject} {
		back, ok := parseOp(op.String())
		if !ok || back != op {
			t.Errorf("%s: got %v", op, back)
		}
	}
	if s := Op(99).String(); s != "Op(99)" {
		t.Errorf("got %s", s)
	}
}
