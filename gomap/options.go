package gomap

import (
	"github.com/signadot/kjson-format/kjson/encode"
	"github.com/signadot/kjson-format/kjson/parse"
)

// MapOption controls the mapping from Go values to trees.
type MapOption func(*mapConfig)

// UnmapOption controls the mapping from trees to Go values.
type UnmapOption func(*unmapConfig)

type mapConfig struct {
	encodeOpts []encode.EncodeOption
}

type unmapConfig struct {
	parseOpts       []parse.ParseOption
	disallowUnknown bool
}

// MapEncodeOptions passes opts to encode.Encode in Marshal.
func MapEncodeOptions(opts ...encode.EncodeOption) MapOption {
	return func(c *mapConfig) { c.encodeOpts = append(c.encodeOpts, opts...) }
}

// UnmapParseOptions passes opts to parse.Parse in Unmarshal.
func UnmapParseOptions(opts ...parse.ParseOption) UnmapOption {
	return func(c *unmapConfig) { c.parseOpts = append(c.parseOpts, opts...) }
}

// DisallowUnknownFields makes object members without a matching struct
// field an error.
func DisallowUnknownFields(v bool) UnmapOption {
	return func(c *unmapConfig) { c.disallowUnknown = v }
}

func newMapConfig(opts []MapOption) *mapConfig {
	c := &mapConfig{}
	for _, f := range opts {
		f(c)
	}
	return c
}

func newUnmapConfig(opts []UnmapOption) *unmapConfig {
	c := &unmapConfig{}
	for _, f := range opts {
		f(c)
	}
	return c
}
