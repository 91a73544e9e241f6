package kjson

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/signadot/kjson-format/kjson/encode"
	"github.com/signadot/kjson-format/kjson/format"
	"github.com/signadot/kjson-format/kjson/ir"
	"github.com/signadot/kjson-format/kjson/kjsonb"
)

const sample = `{
	// order
	id: 550e8400-e29b-41d4-a716-446655440000,
	price: 19.99m,
	total: 123456789012345678901234567890n,
	created: 2024-01-15T10:30:00Z,
	ttl: PT1H30M,
	tags: ['a', "b",],
}`

func TestTextRoundTrip(t *testing.T) {
	node, err := ParseString(sample)
	if err != nil {
		t.Fatal(err)
	}
	text, err := Stringify(node)
	if err != nil {
		t.Fatal(err)
	}
	want := `{id: 550e8400-e29b-41d4-a716-446655440000, price: 19.99m, total: 123456789012345678901234567890n, ` +
		`created: 2024-01-15T10:30:00Z, ttl: PT1H30M, tags: ['a', 'b']}`
	if text != want {
		t.Errorf("got\n%s\nwant\n%s", text, want)
	}
	back, err := Parse([]byte(text))
	if err != nil {
		t.Fatal(err)
	}
	if !ir.EqualOrdered(node, back) {
		t.Error("text round trip changed value")
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	node, err := ParseString(sample)
	if err != nil {
		t.Fatal(err)
	}
	d, err := EncodeBinary(node)
	if err != nil {
		t.Fatal(err)
	}
	back, err := DecodeBinary(d)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.EqualOrdered(node, back) {
		t.Errorf("got %s", encode.MustString(back))
	}
	if _, err := DecodeBinary(d[:len(d)-1]); !errors.Is(err, ir.ErrInvalidBinary) {
		t.Errorf("truncated: got %v", err)
	}
	if _, err := DecodeBinary(d, kjsonb.DecodeMaxDepth(0)); !errors.Is(err, ir.ErrDepthExceeded) {
		t.Errorf("depth: got %v", err)
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		from, to format.Format
		want     string
	}{
		{"kjson to json", `{a: 12n, b: [PT1M]}`, format.KJSONFormat, format.JSONFormat, `{"a": 12, "b": ["PT1M"]}`},
		{"json to kjson", `{"a": [1, "x"]}`, format.JSONFormat, format.KJSONFormat, `{a: [1, 'x']}`},
		{"kjson to kjson", `[1.50m, null,]`, format.KJSONFormat, format.KJSONFormat, `[1.50m, null]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert([]byte(tt.in), tt.from, tt.to)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("got %s want %s", got, tt.want)
			}
		})
	}
	bin, err := Convert([]byte(`{a: 1}`), format.KJSONFormat, format.KJSONBFormat)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte{0x41, 1, 1, 'a', 0x10, 1}, bin); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	text, err := Convert(bin, format.KJSONBFormat, format.KJSONFormat)
	if err != nil {
		t.Fatal(err)
	}
	if string(text) != `{a: 1}` {
		t.Errorf("got %s", text)
	}
	if _, err := Convert([]byte(`{a: }`), format.KJSONFormat, format.JSONFormat); !errors.Is(err, ir.ErrUnexpectedToken) {
		t.Errorf("got %v", err)
	}
}

type event struct {
	ID   uuid.UUID     `kjson:"id"`
	At   time.Time     `kjson:"at"`
	Wait time.Duration `kjson:"wait"`
}

func TestMarshalUnmarshal(t *testing.T) {
	in := event{
		ID:   uuid.MustParse("00000000-0000-0000-0000-000000000001"),
		At:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Wait: 2 * time.Hour,
	}
	d, err := Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != `{id: 00000000-0000-0000-0000-000000000001, at: 2024-06-01T00:00:00Z, wait: PT2H}` {
		t.Errorf("got %s", d)
	}
	var out event
	if err := Unmarshal(d, &out); err != nil {
		t.Fatal(err)
	}
	if out.ID != in.ID || !out.At.Equal(in.At) || out.Wait != in.Wait {
		t.Errorf("got %+v", out)
	}
}

func TestDiffPatch(t *testing.T) {
	a, err := ParseString(`{name: 'widget', price: 19.99m, tags: ['a', 'b']}`)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseString(`{name: 'widget', price: 24.99m, tags: ['a', 'c'], sku: 7n}`)
	if err != nil {
		t.Fatal(err)
	}
	if Diff(a, a.Clone()) != nil {
		t.Error("diff of equal trees")
	}
	reordered, err := ParseString(`{tags: ['a', 'b'], price: 19.99m, name: 'widget'}`)
	if err != nil {
		t.Fatal(err)
	}
	if c := Diff(a, reordered); c != nil {
		t.Errorf("diff of reordered keys: %s", encode.MustString(c.Node()))
	}
	c := Diff(a, b)
	if c == nil {
		t.Fatal("no diff")
	}
	got, err := Patch(a, c)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.EqualOrdered(got, b) {
		t.Errorf("got %s", encode.MustString(got))
	}
}
