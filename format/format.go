package format

import (
	"errors"
	"fmt"
)

type Format int

const (
	KJSONFormat Format = iota
	JSONFormat
	YAMLFormat
	KJSONBFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"k":      KJSONFormat,
		"kjson":  KJSONFormat,
		"j":      JSONFormat,
		"json":   JSONFormat,
		"y":      YAMLFormat,
		"yaml":   YAMLFormat,
		"b":      KJSONBFormat,
		"kjsonb": KJSONBFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case KJSONFormat:
		return []byte("kjson"), nil
	case JSONFormat:
		return []byte("json"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	case KJSONBFormat:
		return []byte("kjsonb"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsKJSON() bool  { return f == KJSONFormat }
func (f Format) IsJSON() bool   { return f == JSONFormat }
func (f Format) IsYAML() bool   { return f == YAMLFormat }
func (f Format) IsBinary() bool { return f == KJSONBFormat }

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case KJSONFormat:
		return ".kjson"
	case JSONFormat:
		return ".json"
	case YAMLFormat:
		return ".yaml"
	case KJSONBFormat:
		return ".kjsonb"
	default:
		return ""
	}
}

// FromSuffix returns the format whose Suffix is ext, also accepting
// ".json5" and ".yml".
func FromSuffix(ext string) (Format, bool) {
	switch ext {
	case ".json5":
		return KJSONFormat, true
	case ".yml":
		return YAMLFormat, true
	}
	for _, f := range AllFormats() {
		if f.Suffix() == ext {
			return f, true
		}
	}
	return 0, false
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{KJSONFormat, JSONFormat, YAMLFormat, KJSONBFormat}
}
