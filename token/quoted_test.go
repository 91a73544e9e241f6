package token

import (
	"errors"
	"strings"
	"testing"
)

func TestSelectQuote(t *testing.T) {
	tests := []struct {
		in   string
		s    QuoteStrategy
		want byte
	}{
		{"plain", QuoteMinCost, '\''},
		{"it's", QuoteMinCost, '"'},
		{`it's "x"`, QuoteMinCost, '`'},
		{"`a` 'b' \"c\" \"d\"", QuoteMinCost, '\''},
		{"plain", QuoteSQL, '"'},
		{`"a"`, QuoteSQL, '`'},
		{"\"a\" `b` 'c'", QuoteSQL, '"'},
		{"\"\"\"```", QuoteSQL, '\''},
		{"it's", QuoteDouble, '"'},
		{"x", QuoteSingle, '\''},
		{"x", QuoteBacktick, '`'},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SelectQuote(tt.in, tt.s); got != tt.want {
				t.Errorf("got %c, want %c", got, tt.want)
			}
		})
	}
}

func TestAppendQuoted(t *testing.T) {
	tests := []struct {
		in   string
		q    byte
		esc  bool
		want string
	}{
		{"a'b", '\'', false, `'a\'b'`},
		{`a\b`, '"', false, `"a\\b"`},
		{"tab\there\n", '"', false, `"tab\there\n"`},
		{"\x01\x7f", '"', false, `"\u0001\u007f"`},
		{"héllo", '"', false, `"héllo"`},
		{"héllo", '"', true, `"h\u00e9llo"`},
		{"😀", '"', true, `"\ud83d\ude00"`},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := string(AppendQuoted(nil, tt.in, tt.q, tt.esc))
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
			back, err := Unquote(got)
			if err != nil {
				t.Fatal(err)
			}
			if back != tt.in {
				t.Errorf("unquoted %q, want %q", back, tt.in)
			}
		})
	}
}

func TestScanString(t *testing.T) {
	tests := []struct {
		in   string
		want string
		n    int
	}{
		{`"abc" rest`, "abc", 5},
		{"'a\\'b'", "a'b", 6},
		{"`x\\`y`", "x`y", 6},
		{`"\u00e9"`, "é", 8},
		{`"\ud83d\ude00"`, "😀", 14},
		{`"\/\b\f"`, "/\b\f", 8},
		{"\"line\nbreak\"", "line\nbreak", 12},
		{`"550e8400-e29b-41d4-a716-446655440000"`, "550e8400-e29b-41d4-a716-446655440000", 38},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, n, err := ScanString([]byte(tt.in), 0)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want || n != tt.n {
				t.Errorf("got (%q, %d), want (%q, %d)", got, n, tt.want, tt.n)
			}
		})
	}
}

func TestScanStringErrors(t *testing.T) {
	tests := []struct {
		in  string
		err error
		off int
	}{
		{`"abc`, ErrIncomplete, 4},
		{`"a\x"`, ErrInvalidEscape, 2},
		{`"\u12g4"`, ErrInvalidEscape, 5},
		{`"\udc00"`, ErrInvalidEscape, 1},
		{`"\ud800x"`, ErrInvalidEscape, 1},
		{`"\ud800\u0041"`, ErrInvalidEscape, 7},
		{"\"a\xffb\"", ErrInvalidUTF8, 2},
		{`"\u12`, ErrIncomplete, 5},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, _, err := ScanString([]byte(tt.in), 0)
			if !errors.Is(err, tt.err) {
				t.Fatalf("got %v, want %v", err, tt.err)
			}
			var se *ScanErr
			if !errors.As(err, &se) {
				t.Fatalf("%v is not a *ScanErr", err)
			}
			if se.Off != tt.off {
				t.Errorf("offset %d, want %d", se.Off, tt.off)
			}
		})
	}
}

func TestScanStringMaxLen(t *testing.T) {
	exact := `"` + strings.Repeat("a", 8) + `"`
	if _, _, err := ScanString([]byte(exact), 8); err != nil {
		t.Errorf("string at limit: %v", err)
	}
	over := `"` + strings.Repeat("a", 9) + `"`
	if _, _, err := ScanString([]byte(over), 8); !errors.Is(err, ErrSizeExceeded) {
		t.Errorf("got %v, want size exceeded", err)
	}
	// escapes count by decoded size
	escaped := `"` + strings.Repeat(`\n`, 8) + `"`
	if _, _, err := ScanString([]byte(escaped), 8); err != nil {
		t.Errorf("escaped string at limit: %v", err)
	}
}
