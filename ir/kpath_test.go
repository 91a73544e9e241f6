package ir

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func kpathDoc() *Node {
	return obj(
		"users", arr(
			obj("name", FromString("ann"), "tags", arr(FromString("a"))),
			obj("name", FromString("bob"), "tags", arr(FromString("b"), FromString("c"))),
		),
		"a b", obj("c", FromInt(1)),
		"n", Null(),
	)
}

func TestGetKPath(t *testing.T) {
	doc := kpathDoc()
	tests := []struct {
		kp   string
		want string
	}{
		{"users[1].name", "bob"},
		{"users[0].tags[0]", "a"},
		{"'a b'.c", ""},
	}
	for _, tt := range tests {
		t.Run(tt.kp, func(t *testing.T) {
			got, err := doc.GetKPath(tt.kp)
			if err != nil {
				t.Fatal(err)
			}
			if tt.want != "" && got.String != tt.want {
				t.Errorf("got %q", got.String)
			}
			if got.KPath() != tt.kp {
				t.Errorf("KPath = %s", got.KPath())
			}
		})
	}
	for _, kp := range []string{"users[2]", "users.name", "missing", "n.x", "users[0].name[0]"} {
		t.Run(kp, func(t *testing.T) {
			if _, err := doc.GetKPath(kp); !errors.Is(err, ErrNotFound) {
				t.Errorf("got %v", err)
			}
		})
	}
	if _, err := doc.GetKPath("users[*].name"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("wildcard get: %v", err)
	}
}

func TestListKPath(t *testing.T) {
	doc := kpathDoc()
	tests := []struct {
		kp   string
		want []string
	}{
		{"users[*].name", []string{"users[0].name", "users[1].name"}},
		{"users[*].tags[*]", []string{"users[0].tags[0]", "users[1].tags[0]", "users[1].tags[1]"}},
		{"*", []string{"users", "'a b'", "n"}},
		{"users[5].name", nil},
		{"users[1].*", []string{"users[1].name", "users[1].tags"}},
	}
	for _, tt := range tests {
		t.Run(tt.kp, func(t *testing.T) {
			nodes, err := doc.ListKPath(nil, tt.kp)
			if err != nil {
				t.Fatal(err)
			}
			var got []string
			for _, n := range nodes {
				got = append(got, n.KPath())
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestIRJSON(t *testing.T) {
	doc := obj(
		"s", FromString(""),
		"b", FromBool(false),
		"x", FromInt(0),
		"big", bigint("-12345678901234567890"),
		"dec", decimal("1.50"),
		"id", FromUUID(uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")),
		"at", FromInstant(Instant{Nanos: 1700000000123456789, Offset: -300}),
		"d", FromDuration(Duration{Negative: true, Days: 3, Nanos: 7}),
		"list", arr(Null(), NewObject()),
	)
	d, err := ToJSON(doc)
	if err != nil {
		t.Fatal(err)
	}
	back, err := FromJSON(d)
	if err != nil {
		t.Fatal(err)
	}
	if !EqualOrdered(doc, back) {
		t.Errorf("round trip changed value:\n%s", d)
	}
	if back.Values[8].Values[1].Parent != back.Values[8] || back.Values[8].Parent != back {
		t.Error("parent links")
	}
	if _, err := FromJSON([]byte(`{"type":"Object","fields":["a"]}`)); err == nil {
		t.Error("expected mismatch error")
	}
	if _, err := FromJSON([]byte(`{"type":"BigInt","bigint":"01"}`)); err == nil {
		t.Error("expected bigint error")
	}
}

func TestAny(t *testing.T) {
	tm := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	dec, _, _ := apd.NewFromString("2.50")
	in := map[string]any{
		"n":    nil,
		"b":    true,
		"i":    42,
		"u":    uint8(7),
		"f":    1.5,
		"s":    "x",
		"big":  big.NewInt(-9),
		"dec":  dec,
		"id":   uuid.Nil,
		"at":   tm,
		"wait": 90 * time.Second,
		"list": []any{int64(1), "two"},
	}
	node, err := FromAny(in)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"at", "b", "big", "dec", "f", "i", "id", "list", "n", "s", "u", "wait"}, node.Fields); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	checks := map[string]Type{
		"n": NullType, "b": BoolType, "i": NumberType, "u": NumberType, "big": BigIntType,
		"dec": DecimalType, "id": UUIDType, "at": InstantType, "wait": DurationType, "list": ArrayType,
	}
	for k, ty := range checks {
		if got := node.Get(k).Type; got != ty {
			t.Errorf("%s: got %s want %s", k, got, ty)
		}
	}
	if node.Get("dec").Decimal.String() != "2.50" {
		t.Errorf("dec = %s", node.Get("dec").Decimal)
	}

	out := ToAny(node).(map[string]any)
	if out["i"] != 42.0 || out["s"] != "x" || out["n"] != nil {
		t.Errorf("got %v", out)
	}
	if out["big"].(*big.Int).Int64() != -9 {
		t.Errorf("big = %v", out["big"])
	}
	if out["dec"].(*apd.Decimal).String() != "2.50" {
		t.Errorf("dec = %v", out["dec"])
	}
	if !out["at"].(time.Time).Equal(tm) {
		t.Errorf("at = %v", out["at"])
	}
	if out["wait"].(Duration).ApproxNanos() != int64(90*time.Second) {
		t.Errorf("wait = %v", out["wait"])
	}
	back, err := FromAny(out)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(node, back) {
		t.Error("FromAny(ToAny) changed value")
	}

	for _, bad := range []any{struct{}{}, []any{make(chan int)}, map[string]any{"x": 1i}} {
		if _, err := FromAny(bad); !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("%T: got %v", bad, err)
		}
	}
}
