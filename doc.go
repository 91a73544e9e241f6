// Package kjson reads and writes kJSON, a JSON5 superset with BigInt,
// Decimal, UUID, Instant and Duration values, and its binary encoding
// kJSONB.
//
// # Usage
//
//	node, err := kjson.Parse([]byte(`{id: 550e8400-e29b-41d4-a716-446655440000, price: 19.99m}`))
//	text, err := kjson.Stringify(node, encode.EncodeIndent(2))
//	bin, err := kjson.EncodeBinary(node)
//	back, err := kjson.DecodeBinary(bin)
//
// Go values are mapped to and from text with Marshal and Unmarshal,
// trees are compared with Diff and Patch, and Match tests a tree
// against a pattern.
//
// # Related Packages
//
//   - github.com/signadot/kjson-format/kjson/ir - the value tree
//   - github.com/signadot/kjson-format/kjson/parse - text parser
//   - github.com/signadot/kjson-format/kjson/encode - stringifier
//   - github.com/signadot/kjson-format/kjson/kjsonb - binary codec
//   - github.com/signadot/kjson-format/kjson/gomap - Go value mapping
//   - github.com/signadot/kjson-format/kjson/libdiff - structural diffs
//   - github.com/signadot/kjson-format/kjson/eval - expressions over trees
package kjson
