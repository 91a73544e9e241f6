package kpath

import (
	"testing"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a", "a"},
		{"a.b.c", "a.b.c"},
		{"a[0].b", "a[0].b"},
		{"[1][2]", "[1][2]"},
		{"a.*", "a.*"},
		{"a[*].id", "a[*].id"},
		{`"key with spaces".x`, "'key with spaces'.x"},
		{`'it''s'`, ""},
		{"$ref", "$ref"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			kp, err := Parse(tt.in)
			if tt.want == "" {
				if err == nil {
					t.Fatalf("expected error, got %s", kp)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got := kp.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{".a", "a.", "a[", "a[x]", "a[-1]", "a b", "a..b", "1a"} {
		t.Run(in, func(t *testing.T) {
			if kp, err := Parse(in); err == nil {
				t.Errorf("expected error, got %s", kp)
			}
		})
	}
}

func TestParent(t *testing.T) {
	kp, err := Parse("a[0].b")
	if err != nil {
		t.Fatal(err)
	}
	if got := kp.Parent().String(); got != "a[0]" {
		t.Errorf("got %q", got)
	}
	if got := kp.LastSegment().SegmentString(); got != "b" {
		t.Errorf("got %q", got)
	}
	if Field("a").Parent() != nil {
		t.Error("single segment has a parent")
	}
	if got := Field("a").Append(Index(3)).String(); got != "a[3]" {
		t.Errorf("got %q", got)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"a", "a", 0},
		{"a", "b", -1},
		{"a", "a.b", -1},
		{"a.b", "a.*", -1},
		{"a[1]", "a[0]", 1},
		{"a[0]", "a[*]", -1},
		{"a.b", "a[0]", -1},
	}
	for _, tt := range tests {
		t.Run(tt.a+" "+tt.b, func(t *testing.T) {
			a, _ := Parse(tt.a)
			b, _ := Parse(tt.b)
			if got := a.Compare(b); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
			if got := b.Compare(a); got != -tt.want {
				t.Errorf("reverse got %d, want %d", got, -tt.want)
			}
		})
	}
}
