package token

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	src := `// header
{
  id: 550e8400-e29b-41d4-a716-446655440000,
  "at": 2025-01-10T12:00:00Z, /* inline */
  big: [123n, 99.99m, 1.5, PT1H],
  ok: true, none: null, no: false,
  s: 'x',
}`
	toks, err := Tokenize(nil, []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	var got []TokenType
	for i := range toks {
		got = append(got, toks[i].Type)
	}
	want := []TokenType{
		TComment, TLCurl,
		TKey, TColon, TUUID, TComma,
		TKey, TColon, TInstant, TComma, TComment,
		TKey, TColon, TLSquare, TBigInt, TComma, TDecimal, TComma, TNumber, TComma, TDuration, TRSquare, TComma,
		TKey, TColon, TTrue, TComma, TKey, TColon, TNull, TComma, TKey, TColon, TFalse, TComma,
		TKey, TColon, TString, TComma,
		TRCurl,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	if l, c := toks[2].Pos.LineCol(); l != 2 || c != 2 {
		t.Errorf("id at %d:%d, want 2:2", l, c)
	}
}

func TestTokenizeError(t *testing.T) {
	toks, err := Tokenize(nil, []byte(`[1, 01]`))
	if !errors.Is(err, ErrInvalidNumber) {
		t.Fatalf("got %v, want invalid number", err)
	}
	var se *ScanErr
	if !errors.As(err, &se) || se.Off != 4 {
		t.Errorf("got %v, want offset 4", err)
	}
	if len(toks) != 3 {
		t.Errorf("got %d tokens before the error, want 3", len(toks))
	}
}

func TestSkipSpace(t *testing.T) {
	tests := []struct {
		in       string
		comments bool
		n        int
	}{
		{"  x", true, 2},
		{"/* a */ // b\n  x", true, 15},
		{"/* a */x", false, 0},
		{"//", true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n, err := SkipSpace([]byte(tt.in), tt.comments)
			if err != nil {
				t.Fatal(err)
			}
			if n != tt.n {
				t.Errorf("skipped %d, want %d", n, tt.n)
			}
		})
	}
	_, err := SkipSpace([]byte(" /* open"), true)
	var se *ScanErr
	if !errors.Is(err, ErrIncomplete) || !errors.As(err, &se) || se.Off != 8 {
		t.Errorf("got %v, want incomplete at 8", err)
	}
}
