package ir

import (
	"math"
	"testing"

	"github.com/google/uuid"
)

func bigint(s string) *Node {
	n, err := NewBigInt(s)
	if err != nil {
		panic(err)
	}
	return n
}

func decimal(s string) *Node {
	n, err := NewDecimal(s)
	if err != nil {
		panic(err)
	}
	return n
}

func arr(vs ...*Node) *Node { return FromSlice(vs) }

func obj(kvs ...any) *Node {
	res := NewObject()
	for i := 0; i < len(kvs); i += 2 {
		res.Fields = append(res.Fields, kvs[i].(string))
		v := kvs[i+1].(*Node)
		v.Parent, v.ParentIndex, v.ParentField = res, len(res.Values), kvs[i].(string)
		res.Values = append(res.Values, v)
	}
	return res
}

func TestCompare(t *testing.T) {
	u1 := FromUUID(uuid.MustParse("00000000-0000-0000-0000-000000000001"))
	u2 := FromUUID(uuid.MustParse("10000000-0000-0000-0000-000000000000"))
	tests := []struct {
		name string
		a, b *Node
		want int
	}{
		{"Null < Bool", Null(), FromBool(false), -1},
		{"Bool < Number", FromBool(true), FromInt(0), -1},
		{"Number < BigInt", FromInt(100), bigint("1"), -1},
		{"BigInt < Decimal", bigint("100"), decimal("1"), -1},
		{"Decimal < String", decimal("100"), FromString(""), -1},
		{"String < UUID", FromString("z"), u1, -1},
		{"UUID < Instant", u2, FromInstant(Instant{}), -1},
		{"Instant < Array", FromInstant(Instant{Nanos: math.MaxInt64}), NewArray(), -1},
		{"Array < Object", arr(FromInt(1)), NewObject(), -1},
		{"Object < Duration", obj("a", FromInt(1)), FromDuration(Duration{}), -1},

		{"false < true", FromBool(false), FromBool(true), -1},
		{"true == true", FromBool(true), FromBool(true), 0},
		{"numbers", FromFloat(-1.5), FromInt(1), -1},
		{"-0 == 0", FromFloat(math.Copysign(0, -1)), FromInt(0), 0},

		{"bigint sign", bigint("-5"), bigint("1"), -1},
		{"bigint length", bigint("99"), bigint("100"), -1},
		{"bigint negative length", bigint("-100"), bigint("-99"), -1},
		{"bigint digits", bigint("123"), bigint("124"), -1},
		{"bigint equal", bigint("-7"), bigint("-7"), 0},

		{"decimal value", decimal("1.5"), decimal("2"), -1},
		{"decimal exponent form", decimal("1e3"), decimal("999.9"), 1},
		{"decimal negative", decimal("-1"), decimal("0.5"), -1},
		{"decimal representation", decimal("1.5"), decimal("1.50"), 1},
		{"decimal equal", decimal("0.25"), decimal("0.25"), 0},

		{"strings", FromString("a"), FromString("b"), -1},
		{"uuids", u1, u2, -1},
		{"instants", FromInstant(Instant{Nanos: -1}), FromInstant(Instant{Nanos: 0}), -1},
		{"instant offset", FromInstant(Instant{Offset: -60}), FromInstant(Instant{Offset: 60}), -1},
		{"durations", FromDuration(Duration{Hours: 25}), FromDuration(Duration{Days: 1, Hours: 2}), -1},
		{"negative duration", FromDuration(Duration{Negative: true, Years: 1}), FromDuration(Duration{}), -1},
		{"month vs days", FromDuration(Duration{Months: 1}), FromDuration(Duration{Days: 31}), -1},

		{"array prefix", arr(FromInt(1)), arr(FromInt(1), FromInt(0)), -1},
		{"array element", arr(FromInt(2)), arr(FromInt(1), FromInt(5)), 1},
		{"array equal", arr(FromString("a")), arr(FromString("a")), 0},

		{"object key", obj("a", FromInt(9)), obj("b", FromInt(1)), -1},
		{"object value", obj("a", FromInt(1)), obj("a", FromInt(2)), -1},
		{"object order", obj("a", FromInt(1), "b", FromInt(2)), obj("b", FromInt(2), "a", FromInt(1)), 0},
		{"object duplicates", obj("a", FromInt(1), "a", FromInt(2)), obj("a", FromInt(2)), 0},
		{"object size", obj("a", FromInt(1)), obj("a", FromInt(1), "b", Null()), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare = %d, want %d", got, tt.want)
			}
			if got := Compare(tt.b, tt.a); got != -tt.want {
				t.Errorf("reverse Compare = %d, want %d", got, -tt.want)
			}
			if eq := Equal(tt.a, tt.b); eq != (tt.want == 0) {
				t.Errorf("Equal = %v", eq)
			}
			if tt.want == 0 && tt.a.Hash() != tt.b.Hash() {
				t.Error("equal nodes hash differently")
			}
		})
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name    string
		a, b    *Node
		want    bool
		ordered bool
	}{
		{"number vs bigint", FromInt(1), bigint("1"), false, false},
		{"bigint vs decimal", bigint("1"), decimal("1"), false, false},
		{"decimal trailing zero", decimal("1.5"), decimal("1.50"), false, false},
		{"string vs uuid", FromString("00000000-0000-0000-0000-000000000000"), FromUUID(uuid.Nil), false, false},
		{"null", Null(), Null(), true, true},
		{"member order", obj("a", Null(), "b", FromBool(true)), obj("b", FromBool(true), "a", Null()), true, false},
		{"duplicate last wins", obj("a", FromInt(1), "a", FromInt(2)), obj("a", FromInt(2)), true, false},
		{"duplicate differs", obj("a", FromInt(2), "a", FromInt(1)), obj("a", FromInt(2)), false, false},
		{"array order", arr(FromInt(1), FromInt(2)), arr(FromInt(2), FromInt(1)), false, false},
		{"nested", arr(obj("x", arr())), arr(obj("x", arr())), true, true},
		{"instant offset", FromInstant(Instant{Offset: 60}), FromInstant(Instant{}), false, false},
		{"duration sign", FromDuration(Duration{Negative: true}), FromDuration(Duration{}), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal = %v", got)
			}
			if got := Equal(tt.b, tt.a); got != tt.want {
				t.Errorf("reverse Equal = %v", got)
			}
			if got := EqualOrdered(tt.a, tt.b); got != tt.ordered {
				t.Errorf("EqualOrdered = %v", got)
			}
			if tt.want && tt.a.Hash() != tt.b.Hash() {
				t.Error("equal nodes hash differently")
			}
		})
	}
	if !Equal(nil, nil) || Equal(Null(), nil) {
		t.Error("nil handling")
	}
}

func TestHashDistinguishes(t *testing.T) {
	nodes := []*Node{
		Null(), FromBool(false), FromBool(true), FromInt(0), FromInt(1),
		bigint("0"), bigint("1"), decimal("1"), decimal("1.0"),
		FromString(""), FromString("1"), NewArray(), NewObject(),
		arr(FromInt(1)), obj("a", FromInt(1)), obj("b", FromInt(1)),
		FromDuration(Duration{}), FromDuration(Duration{Negative: true}),
		FromInstant(Instant{}), FromUUID(uuid.Nil),
	}
	seen := map[uint64]int{}
	for i, n := range nodes {
		h := n.Hash()
		if j, ok := seen[h]; ok {
			t.Errorf("nodes %d and %d collide", j, i)
		}
		seen[h] = i
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name string
		a, b *Node
		want bool
	}{
		{"equal scalars", FromInt(1), FromInt(1), true},
		{"different scalars", FromInt(1), FromInt(2), false},
		{"type mismatch", FromInt(1), bigint("1"), false},
		{"empty object", obj("a", FromInt(1)), NewObject(), true},
		{"subset", obj("a", FromInt(1), "b", FromInt(2)), obj("b", FromInt(2)), true},
		{"missing key", obj("a", FromInt(1)), obj("c", FromInt(1)), false},
		{"nested", obj("a", obj("x", FromInt(1), "y", FromInt(2))), obj("a", obj("y", FromInt(2))), true},
		{"array subset", arr(FromInt(1), FromInt(2), FromInt(3)), arr(FromInt(3), FromInt(1)), true},
		{"array multiplicity", arr(FromInt(1)), arr(FromInt(1), FromInt(1)), true},
		{"array missing", arr(FromInt(1)), arr(FromInt(2)), false},
		{"array of objects", arr(obj("id", FromInt(1), "n", FromString("x"))), arr(obj("id", FromInt(1))), true},
		{"object vs array", obj(), arr(), false},
		{"not reversed", obj("b", FromInt(2)), obj("a", FromInt(1), "b", FromInt(2)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contains(tt.a, tt.b); got != tt.want {
				t.Errorf("Contains = %v", got)
			}
		})
	}
}

func TestStripNulls(t *testing.T) {
	in := obj(
		"a", Null(),
		"b", arr(Null(), obj("c", Null(), "d", FromInt(1))),
		"e", obj("f", Null()),
	)
	got := StripNulls(in)
	want := obj(
		"b", arr(Null(), obj("d", FromInt(1))),
		"e", NewObject(),
	)
	if !EqualOrdered(got, want) {
		t.Errorf("got %v", ToAny(got))
	}
	if in.Len() != 3 || in.Values[1].Values[1].Len() != 2 {
		t.Error("input modified")
	}
	if got.Values[0].Values[1].Parent != got.Values[0] {
		t.Error("parent links")
	}
	if s := StripNulls(Null()); s.Type != NullType {
		t.Error("root null kept")
	}
}
