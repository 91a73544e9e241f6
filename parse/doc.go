// Package parse parses kJSON text into IR nodes.
//
// # Usage
//
//	node, err := parse.Parse([]byte(`{id: 550e8400-e29b-41d4-a716-446655440000, n: 12n}`))
//	if err != nil {
//	    return err
//	}
//
//	// Strict JSON, or YAML through the YAML front end
//	node, err := parse.Parse(data, parse.ParseJSON())
//	node, err := parse.Parse(data, parse.ParseYAML())
//
// Quoted text is always a String. An unquoted scalar is read as the
// first of these shapes which matches: UUID, instant, duration, number,
// true/false/null. A token starting with eight hex digits and a dash can
// only be a UUID, and fails as one.
//
// Errors are *Error values carrying the offset, line and column of the
// failure and wrapping one of the ir error kinds. Input which ends in the
// middle of a value gives ir.ErrIncomplete at the end of the input, so
// that callers reading a stream can tell they need more.
//
// # Related Packages
//
//   - github.com/signadot/kjson-format/kjson/ir - IR representation
//   - github.com/signadot/kjson-format/kjson/encode - Encode IR to text
//   - github.com/signadot/kjson-format/kjson/token - Scanners
package parse
