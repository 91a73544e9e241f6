package parse

import (
	"github.com/signadot/kjson-format/kjson/format"
	"github.com/signadot/kjson-format/kjson/ir"
	"github.com/signadot/kjson-format/kjson/token"
)

const (
	DefaultMaxDepth        = 1000
	DefaultMaxStringLength = 1 << 30
)

type parseOpts struct {
	format          format.Format
	comments        bool
	trailingCommas  bool
	unquotedKeys    bool
	instants        bool
	durations       bool
	strictNumbers   bool
	maxDepth        int
	maxStringLength int
	positions       map[*ir.Node]*token.Pos
}

func defaultOpts() *parseOpts {
	return &parseOpts{
		format:          format.KJSONFormat,
		comments:        true,
		trailingCommas:  true,
		unquotedKeys:    true,
		instants:        true,
		durations:       true,
		maxDepth:        DefaultMaxDepth,
		maxStringLength: DefaultMaxStringLength,
	}
}

// strict JSON disables every extension.
func (o *parseOpts) json() bool {
	return o.format == format.JSONFormat
}

type ParseOption func(*parseOpts)

func ParseKJSON() ParseOption {
	return ParseFormat(format.KJSONFormat)
}
func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}

// ParseStrictJSON accepts only RFC 8259 JSON.
func ParseStrictJSON() ParseOption {
	return ParseJSON()
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}
func AllowComments(v bool) ParseOption {
	return func(o *parseOpts) { o.comments = v }
}
func AllowTrailingCommas(v bool) ParseOption {
	return func(o *parseOpts) { o.trailingCommas = v }
}
func AllowUnquotedKeys(v bool) ParseOption {
	return func(o *parseOpts) { o.unquotedKeys = v }
}

// ParseInstants controls whether unquoted ISO-8601 dates are read as
// Instants. When off they are read as numbers and fail.
func ParseInstants(v bool) ParseOption {
	return func(o *parseOpts) { o.instants = v }
}
func ParseDurations(v bool) ParseOption {
	return func(o *parseOpts) { o.durations = v }
}

// StrictNumbers makes number literals outside the float64 range an
// error. Otherwise they are kept exactly as Decimals.
func StrictNumbers(v bool) ParseOption {
	return func(o *parseOpts) { o.strictNumbers = v }
}

// MaxDepth bounds container nesting; the root container is at depth 1.
func MaxDepth(n int) ParseOption {
	return func(o *parseOpts) { o.maxDepth = n }
}

// MaxStringLength bounds the decoded byte length of strings, keys and
// number digits.
func MaxStringLength(n int) ParseOption {
	return func(o *parseOpts) { o.maxStringLength = n }
}

// ParsePositions records the start position of every parsed node in m.
func ParsePositions(m map[*ir.Node]*token.Pos) ParseOption {
	return func(o *parseOpts) {
		o.positions = m
	}
}

// GetPositions extracts the positions map from the provided options.
func GetPositions(opts ...ParseOption) map[*ir.Node]*token.Pos {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	return pOpts.positions
}
