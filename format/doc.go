// Package format names the document formats read and written by kjson:
// kJSON text, strict JSON, YAML and the kJSONB binary encoding.
//
// # Related Packages
//
//   - github.com/signadot/kjson-format/kjson/parse - Parse text to IR
//   - github.com/signadot/kjson-format/kjson/encode - Encode IR to text
//   - github.com/signadot/kjson-format/kjson/kjsonb - Binary codec
package format
