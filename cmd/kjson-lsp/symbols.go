package main

import (
	"context"
	"fmt"

	"github.com/signadot/kjson-format/kjson/token"

	"go.lsp.dev/protocol"
)

func (s *Server) DocumentSymbol(ctx context.Context, params *protocol.DocumentSymbolParams) ([]any, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	syms := documentSymbols(doc)
	res := make([]any, len(syms))
	for i := range syms {
		res[i] = syms[i]
	}
	return res, nil
}

// documentSymbols builds an outline of object members from the token
// stream, recovering at the first token it cannot place.
func documentSymbols(doc *document) []protocol.DocumentSymbol {
	toks, _ := token.Tokenize(nil, []byte(doc.content))
	b := &symbolBuilder{doc: doc, toks: toks}
	_, children, _ := b.value()
	return children
}

type symbolBuilder struct {
	doc  *document
	toks []token.Token
	i    int
	end  int
}

func (b *symbolBuilder) peek() *token.Token {
	for b.i < len(b.toks) && b.toks[b.i].Type == token.TComment {
		b.i++
	}
	if b.i >= len(b.toks) {
		return nil
	}
	return &b.toks[b.i]
}

func (b *symbolBuilder) consume() *token.Token {
	t := b.peek()
	if t != nil {
		b.i++
		b.end = t.Pos.I + len(t.Bytes)
	}
	return t
}

func (b *symbolBuilder) rangeOf(start, end int) protocol.Range {
	return protocol.Range{Start: b.doc.position(start), End: b.doc.position(end)}
}

// value consumes one value and returns its symbol kind, the symbols of
// its members and a short description.
func (b *symbolBuilder) value() (protocol.SymbolKind, []protocol.DocumentSymbol, string) {
	t := b.peek()
	if t == nil {
		return protocol.SymbolKindNull, nil, ""
	}
	switch t.Type {
	case token.TLCurl:
		b.consume()
		children := b.members()
		return protocol.SymbolKindObject, children, fmt.Sprintf("{%d}", len(children))
	case token.TLSquare:
		b.consume()
		children, n := b.elements()
		return protocol.SymbolKindArray, children, fmt.Sprintf("[%d]", n)
	case token.TRCurl, token.TRSquare, token.TComma, token.TColon, token.TKey:
		return protocol.SymbolKindNull, nil, ""
	}
	b.consume()
	detail := string(t.Bytes)
	if len(detail) > 40 {
		detail = detail[:40] + "..."
	}
	switch t.Type {
	case token.TString:
		return protocol.SymbolKindString, nil, detail
	case token.TNumber, token.TBigInt, token.TDecimal:
		return protocol.SymbolKindNumber, nil, detail
	case token.TTrue, token.TFalse:
		return protocol.SymbolKindBoolean, nil, detail
	case token.TNull:
		return protocol.SymbolKindNull, nil, detail
	}
	return protocol.SymbolKindConstant, nil, detail
}

func (b *symbolBuilder) members() []protocol.DocumentSymbol {
	var res []protocol.DocumentSymbol
	for {
		t := b.peek()
		if t == nil {
			return res
		}
		switch t.Type {
		case token.TRCurl:
			b.consume()
			return res
		case token.TComma:
			b.consume()
			continue
		case token.TKey:
		default:
			b.consume()
			continue
		}
		key := b.consume()
		name := string(key.Bytes)
		if len(key.Bytes) > 0 && token.IsQuote(key.Bytes[0]) {
			if s, err := token.Unquote(name); err == nil {
				name = s
			}
		}
		if c := b.peek(); c != nil && c.Type == token.TColon {
			b.consume()
		}
		kind, children, detail := b.value()
		if name == "" {
			name = `""`
		}
		res = append(res, protocol.DocumentSymbol{
			Name:           name,
			Detail:         detail,
			Kind:           kind,
			Range:          b.rangeOf(key.Pos.I, b.end),
			SelectionRange: b.rangeOf(key.Pos.I, key.Pos.I+len(key.Bytes)),
			Children:       children,
		})
	}
}

// elements returns symbols for container elements, named by index, and
// the number of elements.
func (b *symbolBuilder) elements() ([]protocol.DocumentSymbol, int) {
	var res []protocol.DocumentSymbol
	n := 0
	for {
		t := b.peek()
		if t == nil {
			return res, n
		}
		switch t.Type {
		case token.TRSquare:
			b.consume()
			return res, n
		case token.TComma:
			b.consume()
			continue
		case token.TRCurl, token.TColon, token.TKey:
			b.consume()
			continue
		}
		start := t.Pos.I
		kind, children, detail := b.value()
		if kind == protocol.SymbolKindObject || kind == protocol.SymbolKindArray {
			r := b.rangeOf(start, b.end)
			res = append(res, protocol.DocumentSymbol{
				Name:           fmt.Sprintf("[%d]", n),
				Detail:         detail,
				Kind:           kind,
				Range:          r,
				SelectionRange: r,
				Children:       children,
			})
		}
		n++
	}
}
