package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for _, f := range AllFormats() {
		t.Run(f.String(), func(t *testing.T) {
			got, err := ParseFormat(f.String())
			if err != nil {
				t.Fatal(err)
			}
			if got != f {
				t.Errorf("got %s want %s", got, f)
			}
			sf, ok := FromSuffix(f.Suffix())
			if !ok || sf != f {
				t.Errorf("suffix %s: got %s %v", f.Suffix(), sf, ok)
			}
		})
	}
	if _, err := ParseFormat("toml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("toml: got %v", err)
	}
	var f Format
	if err := f.UnmarshalText([]byte("y")); err != nil || f != YAMLFormat {
		t.Errorf("unmarshal y: %v %s", err, f)
	}
	if f, ok := FromSuffix(".json5"); !ok || f != KJSONFormat {
		t.Errorf(".json5: %s %v", f, ok)
	}
}
