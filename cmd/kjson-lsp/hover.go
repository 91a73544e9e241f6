package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/signadot/kjson-format/kjson/encode"
	"github.com/signadot/kjson-format/kjson/ir"

	"go.lsp.dev/protocol"
)

const maxHoverValue = 60

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.node == nil {
		return nil, nil
	}

	target := findNodeAt(doc, doc.offset(params.Position))
	if target == nil {
		return nil, nil
	}
	hoverText := buildHoverText(target)
	if hoverText == "" {
		return nil, nil
	}
	start := doc.position(doc.positions[target].I)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hoverText,
		},
		Range: &protocol.Range{Start: start, End: start},
	}, nil
}

// findNodeAt returns the node starting last at or before off, which is
// the innermost value enclosing off or the one just before it.
func findNodeAt(doc *document, off int) *ir.Node {
	var (
		best    *ir.Node
		bestOff = -1
	)
	for node, pos := range doc.positions {
		if pos.I > off || pos.I <= bestOff {
			continue
		}
		best, bestOff = node, pos.I
	}
	return best
}

func buildHoverText(node *ir.Node) string {
	parts := []string{fmt.Sprintf("**Type:** %s", node.Type)}
	if kp := node.KPath(); kp != "" {
		parts = append(parts, fmt.Sprintf("**Path:** `%s`", kp))
	}
	if v := valueInfo(node); v != "" {
		parts = append(parts, fmt.Sprintf("**Value:** %s", v))
	}
	return strings.Join(parts, "\n\n")
}

func valueInfo(node *ir.Node) string {
	switch node.Type {
	case ir.ArrayType:
		return fmt.Sprintf("array with %d elements", len(node.Values))
	case ir.ObjectType:
		return fmt.Sprintf("object with %d keys", len(node.Fields))
	}
	s, err := encode.String(node)
	if err != nil {
		return ""
	}
	if len(s) > maxHoverValue {
		s = s[:maxHoverValue] + "..."
	}
	v := fmt.Sprintf("`%s`", s)
	switch node.Type {
	case ir.InstantType:
		v += fmt.Sprintf(" (%s)", node.Instant.Time().UTC().Format("2006-01-02T15:04:05.999999999Z"))
	case ir.DurationType:
		v += fmt.Sprintf(" (about %s)", time.Duration(node.Duration.ApproxNanos()))
	}
	return v
}
