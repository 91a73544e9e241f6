package main

import (
	"context"
	"time"

	"github.com/signadot/kjson-format/kjson/ir"
	"github.com/signadot/kjson-format/kjson/token"

	"go.lsp.dev/protocol"
)

func (s *Server) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	off := doc.offset(params.Position)
	for off > 0 && token.IsIdentPart(doc.content[off-1]) {
		off--
	}
	toks, _ := token.Tokenize(nil, []byte(doc.content[:off]))

	completions := []protocol.CompletionItem{}
	if !valueContext(toks) {
		return &protocol.CompletionList{Items: completions}, nil
	}
	completions = append(completions,
		protocol.CompletionItem{
			Label:      "null",
			Kind:       protocol.CompletionItemKindKeyword,
			InsertText: "null",
		},
		protocol.CompletionItem{
			Label:      "true",
			Kind:       protocol.CompletionItemKindKeyword,
			InsertText: "true",
		},
		protocol.CompletionItem{
			Label:      "false",
			Kind:       protocol.CompletionItemKindKeyword,
			InsertText: "false",
		},
	)
	if n, err := ir.NewUUIDv4(); err == nil {
		completions = append(completions, constItem("uuid", "random UUID (version 4)", n.UUID.String()))
	}
	if n, err := ir.NewUUIDv7(); err == nil {
		completions = append(completions, constItem("uuid7", "time ordered UUID (version 7)", n.UUID.String()))
	}
	if now, err := ir.InstantOf(time.Now().UTC()); err == nil {
		completions = append(completions, constItem("now", "current instant", now.String()))
	}
	completions = append(completions,
		protocol.CompletionItem{
			Label:            "duration",
			Kind:             protocol.CompletionItemKindSnippet,
			Detail:           "ISO 8601 duration",
			InsertText:       "PT${1:1}H",
			InsertTextFormat: protocol.InsertTextFormatSnippet,
		},
	)
	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        completions,
	}, nil
}

func constItem(label, detail, text string) protocol.CompletionItem {
	return protocol.CompletionItem{
		Label:      label,
		Kind:       protocol.CompletionItemKindConstant,
		Detail:     detail,
		InsertText: text,
	}
}

// valueContext reports whether a value may follow toks: at the start
// of the document, after a colon, or at an array element position.
func valueContext(toks []token.Token) bool {
	var stack []token.TokenType
	var last *token.Token
	for i := range toks {
		t := &toks[i]
		switch t.Type {
		case token.TComment:
			continue
		case token.TLCurl, token.TLSquare:
			stack = append(stack, t.Type)
		case token.TRCurl, token.TRSquare:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
		last = t
	}
	if last == nil {
		return true
	}
	switch last.Type {
	case token.TColon, token.TLSquare:
		return true
	case token.TComma:
		return len(stack) > 0 && stack[len(stack)-1] == token.TLSquare
	}
	return false
}
