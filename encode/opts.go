package encode

import (
	"github.com/signadot/kjson-format/kjson/format"
	"github.com/signadot/kjson-format/kjson/token"
)

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

// EncodeIndent sets the indentation of pretty output. Zero, the
// default, writes everything on one line.
func EncodeIndent(n int) EncodeOption {
	return func(es *EncState) { es.indent = max(n, 0) }
}

// EncodeQuoteKeys quotes every object key, not only those which are not
// identifiers.
func EncodeQuoteKeys(v bool) EncodeOption {
	return func(es *EncState) { es.quoteKeys = v }
}
func EncodeBigIntSuffix(v bool) EncodeOption {
	return func(es *EncState) { es.bigintSuffix = v }
}
func EncodeDecimalSuffix(v bool) EncodeOption {
	return func(es *EncState) { es.decimalSuffix = v }
}
func EncodeEscapeUnicode(v bool) EncodeOption {
	return func(es *EncState) { es.escapeUnicode = v }
}
func EncodeQuote(s token.QuoteStrategy) EncodeOption {
	return func(es *EncState) { es.quote = s }
}
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}
