package kjson

import (
	"bytes"
	"fmt"
	"io"

	"github.com/signadot/kjson-format/kjson/debug"
	"github.com/signadot/kjson-format/kjson/encode"
	"github.com/signadot/kjson-format/kjson/format"
	"github.com/signadot/kjson-format/kjson/gomap"
	"github.com/signadot/kjson-format/kjson/ir"
	"github.com/signadot/kjson-format/kjson/kjsonb"
	"github.com/signadot/kjson-format/kjson/libdiff"
	"github.com/signadot/kjson-format/kjson/parse"
)

// Parse parses a kJSON document, or a JSON or YAML one when opts
// select that format.
func Parse(d []byte, opts ...parse.ParseOption) (*ir.Node, error) {
	return parse.Parse(d, opts...)
}

func ParseString(s string, opts ...parse.ParseOption) (*ir.Node, error) {
	return parse.ParseString(s, opts...)
}

// Stringify renders node as kJSON text, or JSON or YAML when opts
// select that format.
func Stringify(node *ir.Node, opts ...encode.EncodeOption) (string, error) {
	return encode.String(node, opts...)
}

func EncodeBinary(node *ir.Node) ([]byte, error) {
	return kjsonb.Marshal(node)
}

func DecodeBinary(d []byte, opts ...kjsonb.DecodeOption) (*ir.Node, error) {
	return kjsonb.Decode(d, opts...)
}

// Marshal converts a Go value to kJSON text. See package gomap for the
// mapping.
func Marshal(v any, opts ...gomap.MapOption) ([]byte, error) {
	return gomap.Marshal(v, opts...)
}

// Unmarshal parses kJSON text into the value pointed to by p.
func Unmarshal(d []byte, p any, opts ...gomap.UnmapOption) error {
	return gomap.Unmarshal(d, p, opts...)
}

// Diff returns the change from a to b, or nil if they are Equal. Objects
// differing only in key order are Equal; use libdiff.Diff to see the
// reordering.
func Diff(a, b *ir.Node) *libdiff.Change {
	var c *libdiff.Change
	if !ir.Equal(a, b) {
		c = libdiff.Diff(a, b)
	}
	if debug.Diff() {
		if c == nil {
			debug.Logf("diff: no change\n")
		} else {
			debug.Logf("diff: %s\n", debug.KJSON{Node: c.Node()})
		}
	}
	return c
}

// Patch applies c to doc, returning a new tree.
func Patch(doc *ir.Node, c *libdiff.Change) (*ir.Node, error) {
	return libdiff.Apply(doc, c)
}

// Load reads a document in format f, which may be the binary format.
func Load(d []byte, f format.Format) (*ir.Node, error) {
	if f.IsBinary() {
		return kjsonb.Decode(d)
	}
	return parse.Parse(d, parse.ParseFormat(f))
}

// Dump writes node to w in the format chosen by opts, writing the
// binary format when that is the format.
func Dump(node *ir.Node, w io.Writer, opts ...encode.EncodeOption) error {
	if encode.FormatFromOpts(opts...).IsBinary() {
		return kjsonb.Encode(node, w)
	}
	return encode.Encode(node, w, opts...)
}

// Convert re-encodes a document from one format to another.
func Convert(d []byte, from, to format.Format, opts ...encode.EncodeOption) ([]byte, error) {
	node, err := Load(d, from)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", from, err)
	}
	var buf bytes.Buffer
	opts = append(opts, encode.EncodeFormat(to))
	if err := Dump(node, &buf, opts...); err != nil {
		return nil, fmt.Errorf("write %s: %w", to, err)
	}
	return buf.Bytes(), nil
}
