package kjsonb

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
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

func TestRoundTrip(t *testing.T) {
	docs := []string{
		`null`,
		`[true, false, null, {}, []]`,
		`[0, -0, 1, -1, 127, -128, 128, 32767, -32769, 2147483648, 1.5, 0.1, 1e300, 5e-324, -9223372036854775808, 9223372036854775808, 18446744073709549568]`,
		`[123456789012345678901234567890n, -7n, 0n]`,
		`[19.99m, 1.50m, -1e-8m, 12e3m, 0m, 1e400]`,
		`[550e8400-e29b-41d4-a716-446655440000, ffffffff-ffff-ffff-ffff-ffffffffffff]`,
		`[2024-01-15T10:30:00.123456789+05:45, 1677-09-21T00:12:43.145224192Z, 2262-04-11T23:47:16.854775807Z, 2024-06-01T00:00:00-14:00]`,
		`[P1Y2M3DT4H5M6.000000007S, -PT0S, PT0S]`,
		`["", "héllo 😀", "\u0000"]`,
		`{b: 1, a: [{c: null}], b: "dup", "": {}}`,
	}
	for _, doc := range docs {
		t.Run(doc, func(t *testing.T) {
			node := mustParse(t, doc)
			d, err := Marshal(node)
			if err != nil {
				t.Fatal(err)
			}
			back, err := Decode(d)
			if err != nil {
				t.Fatal(err)
			}
			if !ir.EqualOrdered(node, back) {
				t.Errorf("got %s", encode.MustString(back))
			}
			if back.Type == ir.ArrayType && len(back.Values) > 0 && back.Values[0].Parent != back {
				t.Error("parent not set")
			}
		})
	}
}

func TestMarshalOwnsResult(t *testing.T) {
	a, err := Marshal(mustParse(t, `"aaaa"`))
	if err != nil {
		t.Fatal(err)
	}
	want := bytes.Clone(a)
	for range 8 {
		if _, err := Marshal(mustParse(t, `"bbbbbbbb"`)); err != nil {
			t.Fatal(err)
		}
	}
	if !bytes.Equal(a, want) {
		t.Errorf("result changed to % x", a)
	}
	var buf bytes.Buffer
	if err := Encode(mustParse(t, `"aaaa"`), &buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("Encode % x, Marshal % x", buf.Bytes(), want)
	}
}

func TestNegativeZero(t *testing.T) {
	d, err := Marshal(ir.FromFloat(math.Copysign(0, -1)))
	if err != nil {
		t.Fatal(err)
	}
	if Tag(d[0]) != TagFloat32 {
		t.Errorf("got %s", Tag(d[0]))
	}
	back, err := Decode(d)
	if err != nil {
		t.Fatal(err)
	}
	if !math.Signbit(back.Number) {
		t.Error("lost sign")
	}
}

func TestNumberForm(t *testing.T) {
	tests := []struct {
		f    float64
		tag  Tag
		size int
	}{
		{0, TagInt8, 2},
		{-128, TagInt8, 2},
		{128, TagInt16, 3},
		{-32768, TagInt16, 3},
		{65536, TagInt32, 5},
		{math.MaxInt32 + 1, TagInt64, 9},
		{-(1 << 63), TagInt64, 9},
		{1 << 63, TagUint64, 9},
		{1 << 70, TagFloat32, 5},
		{1.5, TagFloat32, 5},
		{0.1, TagFloat64, 9},
		{1e300, TagFloat64, 9},
	}
	for _, tt := range tests {
		t.Run(tt.tag.String(), func(t *testing.T) {
			d, err := Marshal(ir.FromFloat(tt.f))
			if err != nil {
				t.Fatal(err)
			}
			if Tag(d[0]) != tt.tag || len(d) != tt.size {
				t.Errorf("%v: got %s in %d bytes, want %s in %d", tt.f, Tag(d[0]), len(d), tt.tag, tt.size)
			}
			back, err := Decode(d)
			if err != nil {
				t.Fatal(err)
			}
			if back.Type != ir.NumberType || back.Number != tt.f {
				t.Errorf("got %v", back.Number)
			}
		})
	}
}

func TestEncodeBytes(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
	}{
		{`{a: 1}`, []byte{0x41, 1, 1, 'a', 0x10, 1}},
		{`"hi"`, []byte{0x20, 2, 'h', 'i'}},
		{`[true, false, null]`, []byte{0x40, 3, 0x02, 0x01, 0x00}},
		{`-300`, []byte{0x11, 0xd4, 0xfe}},
		{`12n`, []byte{0x17, 0, 2, '1', '2'}},
		{`-1.5m`, []byte{0x18, 1, 1, 2, '1', '5'}},
		{`1969-12-31T23:59:59.999999999Z`, []byte{0x30, 1, 0}},
		{`-PT1M`, []byte{0x31, 1, 0, 0, 0, 0, 2, 0}},
		{`00000000-0000-0000-0000-000000000001`, []byte{0x32, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(mustParse(t, tt.in), &buf); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, buf.Bytes()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
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
		{"nan", ir.FromSlice([]*ir.Node{{Type: ir.NumberType, Number: math.NaN()}}), ir.ErrNonFinite},
		{"duration", ir.FromDuration(ir.Duration{Minutes: -1}), ir.ErrInvalidDuration},
		{"bigint", &ir.Node{Type: ir.BigIntType, BigInt: ir.BigInt{Negative: true, Digits: "0"}}, ir.ErrInvalidNumber},
		{"decimal", &ir.Node{Type: ir.DecimalType, Decimal: ir.Decimal{Digits: ""}}, ir.ErrInvalidNumber},
		{"offset", ir.FromInstant(ir.Instant{Offset: -2000}), ir.ErrInvalidInstant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Marshal(tt.node)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v want %v", err, tt.want)
			}
		})
	}
}

func nested(n int) []byte {
	var d []byte
	for range n {
		d = append(d, byte(TagArray), 1)
	}
	return append(d, byte(TagNull))
}

func TestDecodeErrors(t *testing.T) {
	nan := append([]byte{byte(TagFloat64)}, 0, 0, 0, 0, 0, 0, 0xf8, 0x7f)
	tests := []struct {
		name   string
		in     []byte
		opts   []DecodeOption
		want   error
		offset int
	}{
		{"empty", nil, nil, ErrTruncated, 0},
		{"bad tag", []byte{0x99}, nil, ErrBadTag, 0},
		{"short string", []byte{0x20, 5, 'a'}, nil, ErrTruncated, 1},
		{"short varint", []byte{0x20, 0x80}, nil, ErrTruncated, 1},
		{"long varint", []byte{0x20, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x02}, nil, ErrBadVarint, 1},
		{"trailing", []byte{0x00, 0x00}, nil, ir.ErrTrailingData, 1},
		{"sign byte", []byte{0x17, 2, 1, '1'}, nil, ErrBadPayload, 1},
		{"bigint digits", []byte{0x17, 0, 2, '0', '1'}, nil, ErrBadPayload, 0},
		{"decimal digits", []byte{0x18, 0, 0, 1, 'x'}, nil, ErrBadPayload, 0},
		{"nan", nan, nil, ErrBadPayload, 0},
		{"short float", []byte{0x16, 0, 0}, nil, ErrTruncated, 1},
		{"short uuid", []byte{0x32, 1, 2, 3}, nil, ErrTruncated, 1},
		{"binary", []byte{0x21, 0}, nil, ir.ErrUnsupportedType, 0},
		{"undefined", []byte{0xf0}, nil, ir.ErrUnsupportedType, 0},
		{"utf8", []byte{0x20, 1, 0xff}, nil, ir.ErrInvalidUTF8, 1},
		{"array count", []byte{0x40, 5, 0}, nil, ErrTruncated, 1},
		{"object count", []byte{0x41, 2, 0, 0}, nil, ErrTruncated, 1},
		{"short member", []byte{0x41, 1, 1, 'a'}, nil, ErrTruncated, 4},
		{"duration component", []byte{0x31, 0, 1, 0, 0, 0, 0, 0}, nil, ErrBadPayload, 0},
		{"instant offset", []byte{0x30, 0, 0xa0, 0x1f}, nil, ErrBadPayload, 0},
		{"depth", nested(1001), nil, ir.ErrDepthExceeded, 2000},
		{"max depth", nested(3), []DecodeOption{DecodeMaxDepth(2)}, ir.ErrDepthExceeded, 4},
		{"max string", []byte{0x20, 4, 'a', 'b', 'c', 'd'}, []DecodeOption{DecodeMaxStringLength(3)}, ir.ErrSizeExceeded, 1},
		{"max bigint digits", []byte{0x17, 0, 4, '1', '2', '3', '4'}, []DecodeOption{DecodeMaxStringLength(3)}, ir.ErrSizeExceeded, 2},
		{"max decimal digits", []byte{0x18, 1, 0, 4, '1', '2', '3', '4'}, []DecodeOption{DecodeMaxStringLength(3)}, ir.ErrSizeExceeded, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.in, tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v want %v", err, tt.want)
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("%T is not a *DecodeError", err)
			}
			if de.Offset != tt.offset {
				t.Errorf("offset %d want %d", de.Offset, tt.offset)
			}
		})
	}
}

func TestDecodeKind(t *testing.T) {
	_, err := Decode([]byte{0x99})
	var de *DecodeError
	if !errors.As(err, &de) || de.Kind() != "InvalidBinary" {
		t.Errorf("got %v", err)
	}
	if !errors.Is(err, ir.ErrInvalidBinary) {
		t.Error("not InvalidBinary")
	}
}

func TestDecodeLimits(t *testing.T) {
	if _, err := Decode(nested(DefaultMaxDepth)); err != nil {
		t.Errorf("max depth: %v", err)
	}
	d := []byte{0x20, 3, 'a', 'b', 'c'}
	if _, err := Decode(d, DecodeMaxStringLength(3)); err != nil {
		t.Errorf("max string: %v", err)
	}
	d = []byte{0x17, 0, 3, '1', '2', '3'}
	if _, err := Decode(d, DecodeMaxStringLength(3)); err != nil {
		t.Errorf("max bigint digits: %v", err)
	}
	d = []byte{0x18, 1, 0, 3, '1', '2', '3'}
	if _, err := Decode(d, DecodeMaxStringLength(3)); err != nil {
		t.Errorf("max decimal digits: %v", err)
	}
}

func TestSize(t *testing.T) {
	node := mustParse(t, `{
		id: 550e8400-e29b-41d4-a716-446655440000,
		name: "widget",
		price: 19.99m,
		count: 42,
		ratio: 0.25,
		total: 123456789012345678901234567890n,
		created: 2024-01-15T10:30:00.123456789Z,
		ttl: P1DT12H,
		tags: ["a", "b", "c"],
		active: true,
		parent: null,
	}`)
	text, err := encode.String(node)
	if err != nil {
		t.Fatal(err)
	}
	bin, err := Marshal(node)
	if err != nil {
		t.Fatal(err)
	}
	if len(bin) > len(text) {
		t.Errorf("binary %d bytes > text %d bytes", len(bin), len(text))
	}
}
