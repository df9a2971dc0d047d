package parser

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/toyz/bunner/internal/models"
)

func text(node *sitter.Node, src []byte) string {
	if node == nil {
		return ""
	}
	return string(src[node.StartByte():node.EndByte()])
}

// namedChildren returns the named children of node, skipping comments
func namedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, node.NamedChildCount())
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}

func firstNamed(node *sitter.Node) *sitter.Node {
	children := namedChildren(node)
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

func childrenOfType(node *sitter.Node, nodeType string) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child != nil && child.Type() == nodeType {
			out = append(out, child)
		}
	}
	return out
}

func spanOf(node *sitter.Node) models.Span {
	return models.Span{
		Start: int(node.StartByte()),
		End:   int(node.EndByte()),
		Line:  int(node.StartPoint().Row) + 1,
	}
}

func sameNode(a, b *sitter.Node) bool {
	return a != nil && b != nil &&
		a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

// stringContent decodes a string node, including escape sequences
func stringContent(node *sitter.Node, src []byte) string {
	var b strings.Builder
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "string_fragment":
			b.WriteString(text(child, src))
		case "escape_sequence":
			b.WriteString(decodeEscape(text(child, src)))
		}
	}
	return b.String()
}

func decodeEscape(seq string) string {
	switch seq {
	case `\'`:
		return "'"
	case "\\`":
		return "`"
	}
	if s, err := strconv.Unquote(`"` + seq + `"`); err == nil {
		return s
	}
	return strings.TrimPrefix(seq, `\`)
}

func parseNumber(raw string) (float64, bool) {
	raw = strings.ReplaceAll(raw, "_", "")
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f, true
	}
	if i, err := strconv.ParseInt(raw, 0, 64); err == nil {
		return float64(i), true
	}
	return 0, false
}

// evalLiteral evaluates the primitive literal shapes shared by expressions
// and literal types. Anything else comes back as KindUnknown.
func evalLiteral(node *sitter.Node, src []byte) models.Value {
	switch node.Type() {
	case "string":
		return models.String(stringContent(node, src))
	case "number":
		if n, ok := parseNumber(text(node, src)); ok {
			return models.Number(n)
		}
	case "true":
		return models.Boolean(true)
	case "false":
		return models.Boolean(false)
	case "null":
		return models.Value{Kind: models.KindNull}
	case "undefined":
		return models.Value{Kind: models.KindUndefined}
	case "unary_expression":
		operand := node.ChildByFieldName("argument")
		if operand == nil {
			operand = firstNamed(node)
		}
		if operand != nil && operand.Type() == "number" && strings.HasPrefix(text(node, src), "-") {
			if n, ok := parseNumber(text(operand, src)); ok {
				return models.Number(-n)
			}
		}
	}
	return models.Value{Kind: models.KindUnknown, Text: text(node, src)}
}
