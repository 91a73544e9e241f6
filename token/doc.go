// Package token provides the character level scanners of kJSON.
//
// The parser is tokenizer free: it calls the scanners here directly at
// the current position. [Tokenize] runs the same scanners over a whole
// document for editors, which want tokens rather than a tree.
//
// Scanners report errors as [*ScanErr], carrying an offset relative to
// the scanned input and wrapping one of the error kinds in errs.go.
package token
