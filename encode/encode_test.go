package encode

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/signadot/kjson-format/kjson/format"
	"github.com/signadot/kjson-format/kjson/ir"
	"github.com/signadot/kjson-format/kjson/parse"
	"github.com/signadot/kjson-format/kjson/token"
)

func mustParse(t *testing.T, in string, opts ...parse.ParseOption) *ir.Node {
	t.Helper()
	node, err := parse.ParseString(in, opts...)
	if err != nil {
		t.Fatalf("parse %s: %v", in, err)
	}
	return node
}

func TestEncodeText(t *testing.T) {
	doc := `{name: "Alice", id: 550e8400-e29b-41d4-a716-446655440000, n: 12n, price: 19.99m,
	  at: 2024-01-15T10:30:00Z, wait: PT1H30M, tags: ["a", 'b'], none: null, ok: true, x: 1.5}`
	tests := []struct {
		name string
		in   string
		opts []EncodeOption
		want string
	}{
		{
			name: "compact",
			in:   doc,
			want: `{name: 'Alice', id: 550e8400-e29b-41d4-a716-446655440000, n: 12n, price: 19.99m, at: 2024-01-15T10:30:00Z, wait: PT1H30M, tags: ['a', 'b'], none: null, ok: true, x: 1.5}`,
		},
		{
			name: "json",
			in:   doc,
			opts: []EncodeOption{EncodeFormat(format.JSONFormat)},
			want: `{"name": "Alice", "id": "550e8400-e29b-41d4-a716-446655440000", "n": 12, "price": 19.99, "at": "2024-01-15T10:30:00Z", "wait": "PT1H30M", "tags": ["a", "b"], "none": null, "ok": true, "x": 1.5}`,
		},
		{
			name: "pretty",
			in:   `{name: "Alice", tags: [1, 2], empty: [], o: {}}`,
			opts: []EncodeOption{EncodeIndent(2)},
			want: "{\n  name: 'Alice',\n  tags: [\n    1,\n    2,\n  ],\n  empty: [],\n  o: {},\n}",
		},
		{
			name: "pretty json",
			in:   `{a: [1, 2], b: {}}`,
			opts: []EncodeOption{EncodeIndent(2), EncodeFormat(format.JSONFormat)},
			want: "{\n  \"a\": [\n    1,\n    2\n  ],\n  \"b\": {}\n}",
		},
		{
			name: "quote keys",
			in:   `{a: 1, "true": 2, "a b": 3, $x: 4, "1a": 5, "": 6, "NaN": 7}`,
			want: `{a: 1, 'true': 2, 'a b': 3, $x: 4, '1a': 5, '': 6, 'NaN': 7}`,
		},
		{
			name: "quote all keys",
			in:   `{a: 1}`,
			opts: []EncodeOption{EncodeQuoteKeys(true)},
			want: `{'a': 1}`,
		},
		{
			name: "no suffixes",
			in:   `[12n, 1.50m]`,
			opts: []EncodeOption{EncodeBigIntSuffix(false), EncodeDecimalSuffix(false)},
			want: `[12, 1.50]`,
		},
		{
			name: "escape unicode",
			in:   `"héllo 😀"`,
			opts: []EncodeOption{EncodeEscapeUnicode(true)},
			want: `'h\u00e9llo \ud83d\ude00'`,
		},
		{
			name: "control",
			in:   `"a\nb\t\u0001"`,
			want: `'a\nb\t\u0001'`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := String(mustParse(t, tt.in), tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestEncodeQuote(t *testing.T) {
	tests := []struct {
		in    string
		strat token.QuoteStrategy
		want  string
	}{
		{`abc`, token.QuoteMinCost, `'abc'`},
		{`abc`, token.QuoteSQL, `"abc"`},
		{`it's`, token.QuoteMinCost, `"it's"`},
		{`it's`, token.QuoteSQL, `"it's"`},
		{`it's`, token.QuoteDouble, `"it's"`},
		{`it's`, token.QuoteSingle, `'it\'s'`},
		{`it's`, token.QuoteBacktick, "`it's`"},
		{`say "hi"`, token.QuoteMinCost, `'say "hi"'`},
		{`say "hi"`, token.QuoteSQL, "`say \"hi\"`"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := String(ir.FromString(tt.in), EncodeQuote(tt.strat))
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %s want %s", got, tt.want)
			}
		})
	}
}

func TestEncodeScalars(t *testing.T) {
	dec := func(neg bool, digits string, exp int32) *ir.Node {
		return &ir.Node{Type: ir.DecimalType, Decimal: ir.Decimal{Negative: neg, Digits: digits, Exponent: exp}}
	}
	tests := []struct {
		node *ir.Node
		want string
	}{
		{ir.FromFloat(1.5), `1.5`},
		{ir.FromFloat(math.Copysign(0, -1)), `-0`},
		{ir.FromFloat(1e21), `1e+21`},
		{ir.FromFloat(1e-7), `1e-7`},
		{ir.FromFloat(0.000001), `0.000001`},
		{ir.FromFloat(123456789), `123456789`},
		{dec(false, "150", -2), `1.50m`},
		{dec(false, "12", 3), `12e3m`},
		{dec(true, "1", -7), `-0.0000001m`},
		{dec(false, "1", -8), `1e-8m`},
		{dec(false, "0", 0), `0m`},
		{ir.FromDuration(ir.Duration{}), `PT0S`},
		{ir.FromDuration(ir.Duration{Negative: true}), `-PT0S`},
		{ir.FromDuration(ir.Duration{Days: 1, Nanos: 500000000}), `P1DT0.500000000S`},
		{ir.FromInstant(ir.Instant{Nanos: 1, Offset: -90}), `1969-12-31T22:30:00.000000001-01:30`},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := String(tt.node)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %s want %s", got, tt.want)
			}
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name string
		node *ir.Node
		want error
	}{
		{"nan", &ir.Node{Type: ir.NumberType, Number: math.NaN()}, ir.ErrNonFinite},
		{"inf", ir.FromSlice([]*ir.Node{{Type: ir.NumberType, Number: math.Inf(-1)}}), ir.ErrNonFinite},
		{"negative component", ir.FromDuration(ir.Duration{Days: -1}), ir.ErrInvalidDuration},
		{"bigint digits", &ir.Node{Type: ir.BigIntType, BigInt: ir.BigInt{Digits: "01"}}, ErrEncoding},
		{"decimal digits", &ir.Node{Type: ir.DecimalType, Decimal: ir.Decimal{Digits: "1x"}}, ErrEncoding},
		{"offset", ir.FromInstant(ir.Instant{Offset: 24 * 60}), ir.ErrInvalidInstant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, f := range []format.Format{format.KJSONFormat, format.JSONFormat, format.YAMLFormat} {
				if tt.name == "offset" && f == format.YAMLFormat {
					continue
				}
				_, err := String(tt.node, EncodeFormat(f))
				if !errors.Is(err, tt.want) {
					t.Errorf("%s: got %v want %v", f, err, tt.want)
				}
			}
		})
	}
	if err := Encode(ir.Null(), &bytes.Buffer{}, EncodeFormat(format.KJSONBFormat)); !errors.Is(err, ErrEncoding) {
		t.Errorf("kjsonb: got %v", err)
	}
}

var roundTripDocs = []string{
	`null`,
	`[true, false, null]`,
	`[0, -0, 1.5, -17, 0.1, 1e-7, 1e21, 5e-324, 1.7976931348623157e308, 123456789012]`,
	`[123456789012345678901234567890n, -1n, 0n]`,
	`[19.99m, 0.0000001m, 1e-8m, -1.5e999, 12e3m, 0m, 1e400]`,
	`[550e8400-e29b-41d4-a716-446655440000, 00000000-0000-0000-0000-000000000000]`,
	`[2024-01-15, 2024-01-15T10:30:00.123456789+05:45, 1677-09-21T00:12:43.145224192Z, 2262-04-11T23:47:16.854775807Z]`,
	`[P1Y2M3W4DT5H6M7.5S, -PT0S, PT0S, P1M, PT1M]`,
	"[\"\", \"it's\", 'say \"hi\"', \"back`tick\", \"\\\\\", \"tab\\there\", \"é😀\", \"\\u0000\\u001f\"]",
	`{b: 1, a: 2, b: 3, "quoted key": {"true": [], "": {}}}`,
	`{deep: [[[{x: [1, [2, [3]]]}]]]}`,
}

func TestRoundTrip(t *testing.T) {
	optSets := map[string][]EncodeOption{
		"compact":   nil,
		"pretty":    {EncodeIndent(2)},
		"sql":       {EncodeQuote(token.QuoteSQL)},
		"backtick":  {EncodeQuote(token.QuoteBacktick), EncodeQuoteKeys(true)},
		"single":    {EncodeQuote(token.QuoteSingle), EncodeIndent(4)},
		"escape":    {EncodeEscapeUnicode(true)},
		"colorless": {EncodeColors(nil)},
	}
	for _, doc := range roundTripDocs {
		node := mustParse(t, doc)
		for name, opts := range optSets {
			t.Run(name+"/"+doc, func(t *testing.T) {
				s1, err := String(node, opts...)
				if err != nil {
					t.Fatal(err)
				}
				back := mustParse(t, s1)
				if !ir.EqualOrdered(node, back) {
					t.Fatalf("round trip changed value:\n%s", s1)
				}
				s2, err := String(back, opts...)
				if err != nil {
					t.Fatal(err)
				}
				if s1 != s2 {
					t.Errorf("not stable:\n%s\n%s", s1, s2)
				}
			})
		}
	}
}

func TestDurationRoundTrip(t *testing.T) {
	tests := []ir.Duration{
		{Nanos: math.MaxInt64},
		{Negative: true, Nanos: math.MaxInt64},
		{Days: math.MaxInt32, Nanos: math.MaxInt64},
	}
	for _, d := range tests {
		node := ir.FromDuration(d)
		s, err := String(node)
		if err != nil {
			t.Fatal(err)
		}
		t.Run(s, func(t *testing.T) {
			back := mustParse(t, s)
			if back.Type != ir.DurationType || back.Duration != d {
				t.Errorf("got %+v, want %+v", back.Duration, d)
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	node := mustParse(t, `{a: [1, 2.5, "x", true, null], b: {c: "d"}}`)
	s, err := String(node, EncodeFormat(format.JSONFormat))
	if err != nil {
		t.Fatal(err)
	}
	back := mustParse(t, s, parse.ParseJSON())
	if !ir.EqualOrdered(node, back) {
		t.Errorf("got %s", MustString(back))
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	node := mustParse(t, `{
		name: "Alice",
		n: 3,
		x: 2.5,
		big: 123456789012345678901234567890n,
		price: 19.99m,
		id: 550e8400-e29b-41d4-a716-446655440000,
		at: 2024-01-15T10:30:00+02:00,
		wait: P1DT2H,
		tags: ["a", "b"],
		nested: {ok: false, none: null},
	}`)
	s, err := String(node, EncodeFormat(format.YAMLFormat))
	if err != nil {
		t.Fatal(err)
	}
	back, err := parse.ParseString(s, parse.ParseYAML())
	if err != nil {
		t.Fatalf("%v\n%s", err, s)
	}
	if !ir.EqualOrdered(node, back) {
		t.Errorf("got %s from\n%s", MustString(back), s)
	}
}

func TestColors(t *testing.T) {
	colors := NewColors()
	node := mustParse(t, `{a: 1}`)
	var buf bytes.Buffer
	if err := Encode(node, &buf, EncodeColors(colors)); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("a")) {
		t.Errorf("got %q", buf.String())
	}
	if colors.Get(ir.NumberType, FieldColor)("x") != "x" {
		t.Error("missing color should default to identity")
	}
}

func TestMustString(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustString(&ir.Node{Type: ir.NumberType, Number: math.NaN()})
}
