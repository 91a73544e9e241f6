// Package encode renders IR nodes as kJSON, strict JSON or YAML text.
//
// # Usage
//
//	s, err := encode.String(node)
//	err := encode.Encode(node, os.Stdout, encode.EncodeIndent(2), encode.EncodeColors(encode.NewColors()))
//	err := encode.Encode(node, w, encode.EncodeFormat(format.JSONFormat))
//
// Compact output separates members with ", " and keys from values with
// ": ". With EncodeIndent(n), kJSON puts one member per line and a comma
// after the last member too; JSON output does not.
//
// Strings are quoted with the delimiter chosen by the token.QuoteStrategy
// in effect; keys are written bare when they are identifiers other than
// the reserved words. Every value written as kJSON parses back to an
// equal value, and nodes which cannot (non-finite numbers, malformed
// digit strings, negative duration components) are errors.
//
// JSON output writes BigInts and Decimals as plain JSON numbers and
// UUIDs, instants and durations as strings. YAML output tags the
// extended types (!bigint, !decimal, !uuid, !instant, !duration).
//
// # Related Packages
//
//   - github.com/signadot/kjson-format/kjson/parse - Parse text to IR
//   - github.com/signadot/kjson-format/kjson/format - Format selection
package encode
