package main

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/signadot/kjson-format/kjson/debug"
	"github.com/signadot/kjson-format/kjson/ir"
	"github.com/signadot/kjson-format/kjson/parse"
	"github.com/signadot/kjson-format/kjson/token"

	"go.lsp.dev/protocol"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

// document is an open text document. Columns are counted in bytes.
type document struct {
	uri       string
	content   string
	version   int32
	node      *ir.Node
	err       error
	positions map[*ir.Node]*token.Pos
	pd        *token.PosDoc
}

func newDocument(uri, content string, version int32) *document {
	positions := make(map[*ir.Node]*token.Pos)
	node, err := parse.ParseString(content, parse.ParsePositions(positions))
	return &document{
		uri:       uri,
		content:   content,
		version:   version,
		node:      node,
		err:       err,
		positions: positions,
		pd:        token.NewPosDoc([]byte(content)),
	}
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) *document {
	doc := newDocument(uri, content, version)
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[uri] = doc
	return doc
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func (d *document) offset(p protocol.Position) int {
	return d.pd.Offset(int(p.Line), int(p.Character))
}

func (d *document) position(off int) protocol.Position {
	l, c := d.pd.LineCol(off)
	return protocol.Position{Line: uint32(l), Character: uint32(c)}
}

func (s *Server) publishDiagnostics(ctx context.Context, doc *document) {
	diagnostics := validateDocument(doc)
	if debug.LSP() {
		slog.Debug("diagnostics", "uri", doc.uri, "version", doc.version, "n", len(diagnostics))
	}
	if s.conn == nil {
		return
	}
	err := s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(doc.uri),
		Version:     uint32(doc.version),
		Diagnostics: diagnostics,
	})
	if err != nil {
		slog.Error("publish diagnostics", "uri", doc.uri, "err", err)
	}
}

func validateDocument(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if doc.err == nil {
		return diagnostics
	}
	diagnostic := protocol.Diagnostic{
		Severity: protocol.DiagnosticSeverityError,
		Message:  doc.err.Error(),
		Source:   "kjson",
	}
	var pe *parse.Error
	if errors.As(doc.err, &pe) {
		start := protocol.Position{Line: uint32(pe.Line - 1), Character: uint32(pe.Col - 1)}
		end := start
		if pe.Offset < len(doc.content) {
			end.Character++
		}
		diagnostic.Range = protocol.Range{Start: start, End: end}
		diagnostic.Code = pe.Kind()
		if pe.Msg != "" {
			diagnostic.Message = pe.Msg
		}
	}
	return append(diagnostics, diagnostic)
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := s.docs.put(string(params.TextDocument.URI), params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, doc)
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil
	}
	content := applyChanges(doc.content, params.ContentChanges)
	doc = s.docs.put(string(params.TextDocument.URI), content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, doc)
	return nil
}

// applyChanges applies incremental edits in order. Sync is advertised as
// incremental, so every change carries a range; a zero range is an
// insertion at the start of the document.
func applyChanges(content string, changes []protocol.TextDocumentContentChangeEvent) string {
	for _, change := range changes {
		r := change.Range
		pd := token.NewPosDoc([]byte(content))
		start := pd.Offset(int(r.Start.Line), int(r.Start.Character))
		end := pd.Offset(int(r.End.Line), int(r.End.Character))
		if start > end {
			continue
		}
		content = content[:start] + change.Text + content[end:]
	}
	return content
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(string(params.TextDocument.URI))
	return nil
}
