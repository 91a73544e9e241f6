package kjsonb

const DefaultMaxDepth = 1000

type decodeOpts struct {
	maxDepth        int
	maxStringLength int
}

type DecodeOption func(*decodeOpts)

// DecodeMaxDepth bounds container nesting, 1000 by default.
func DecodeMaxDepth(n int) DecodeOption {
	return func(o *decodeOpts) { o.maxDepth = n }
}

// DecodeMaxStringLength bounds the byte length of strings, keys and the
// digit runs of BigInt and Decimal payloads. Zero, the default, leaves them
// bounded only by the input.
func DecodeMaxStringLength(n int) DecodeOption {
	return func(o *decodeOpts) { o.maxStringLength = n }
}
