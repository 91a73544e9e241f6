package main

import (
	"bytes"
	"context"

	"github.com/signadot/kjson-format/kjson/token"

	"go.lsp.dev/protocol"
)

func semanticTokenType(tt token.TokenType) (protocol.SemanticTokenTypes, bool) {
	switch tt {
	case token.TComment:
		return protocol.SemanticTokenComment, true
	case token.TNull, token.TTrue, token.TFalse:
		return protocol.SemanticTokenKeyword, true
	case token.TString:
		return protocol.SemanticTokenString, true
	case token.TNumber, token.TBigInt, token.TDecimal:
		return protocol.SemanticTokenNumber, true
	case token.TColon, token.TComma:
		return protocol.SemanticTokenOperator, true
	case token.TKey:
		return protocol.SemanticTokenProperty, true
	case token.TUUID, token.TInstant, token.TDuration:
		return protocol.SemanticTokenMacro, true
	}
	return "", false
}

type semToken struct {
	line, char, length uint32
	typ                uint32
	mods               uint32
}

// collectSemanticTokens scans the document text, so documents that do
// not parse still get highlighting up to the first bad token. Tokens
// spanning lines are split per line.
func collectSemanticTokens(doc *document, lo, hi uint32) []uint32 {
	toks, _ := token.Tokenize(nil, []byte(doc.content))

	typeIndex := make(map[protocol.SemanticTokenTypes]uint32, len(tokenTypes))
	for i, tt := range tokenTypes {
		typeIndex[tt] = uint32(i)
	}

	var list []semToken
	for i := range toks {
		t := &toks[i]
		st, ok := semanticTokenType(t.Type)
		if !ok {
			continue
		}
		var mods uint32
		if t.Type == token.TUUID || t.Type == token.TInstant || t.Type == token.TDuration {
			mods = 1
		}
		line, col := t.Pos.LineCol()
		rest := t.Bytes
		for len(rest) > 0 {
			seg := rest
			if j := bytes.IndexByte(rest, '\n'); j >= 0 {
				seg, rest = rest[:j], rest[j+1:]
			} else {
				rest = nil
			}
			if len(seg) > 0 && uint32(line) >= lo && uint32(line) <= hi {
				list = append(list, semToken{
					line:   uint32(line),
					char:   uint32(col),
					length: uint32(len(seg)),
					typ:    typeIndex[st],
					mods:   mods,
				})
			}
			line++
			col = 0
		}
	}

	data := make([]uint32, 0, 5*len(list))
	var prevLine, prevChar uint32
	for _, st := range list {
		deltaLine := st.line - prevLine
		deltaChar := st.char
		if deltaLine == 0 {
			deltaChar = st.char - prevChar
		}
		data = append(data, deltaLine, deltaChar, st.length, st.typ, st.mods)
		prevLine, prevChar = st.line, st.char
	}
	return data
}

func (s *Server) SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	return &protocol.SemanticTokens{
		Data: collectSemanticTokens(doc, 0, ^uint32(0)),
	}, nil
}

func (s *Server) SemanticTokensRange(ctx context.Context, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	return &protocol.SemanticTokens{
		Data: collectSemanticTokens(doc, params.Range.Start.Line, params.Range.End.Line),
	}, nil
}
