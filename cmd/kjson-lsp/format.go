package main

import (
	"bytes"
	"context"

	"github.com/signadot/kjson-format/kjson/encode"

	"go.lsp.dev/protocol"
)

func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.node == nil {
		return nil, nil
	}
	indent := 2
	if params.Options.TabSize > 0 {
		indent = int(params.Options.TabSize)
	}

	var buf bytes.Buffer
	if err := encode.Encode(doc.node, &buf, encode.EncodeIndent(indent)); err != nil {
		return nil, nil
	}
	buf.WriteByte('\n')
	formatted := buf.String()

	if formatted == doc.content {
		return []protocol.TextEdit{}, nil
	}
	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   doc.position(len(doc.content)),
			},
			NewText: formatted,
		},
	}, nil
}
