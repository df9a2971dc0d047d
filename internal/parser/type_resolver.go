package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/toyz/bunner/internal/models"
)

// TypeResolver maps type annotation nodes to TypeInfo. It never fails:
// anything it cannot classify resolves to any.
type TypeResolver struct{}

// NewTypeResolver creates a TypeResolver
func NewTypeResolver() *TypeResolver {
	return &TypeResolver{}
}

// Resolve resolves a type node. A type_annotation wrapper (": T") is unwrapped.
func (r *TypeResolver) Resolve(node *sitter.Node, src []byte) models.TypeInfo {
	if node == nil {
		return anyType()
	}

	switch node.Type() {
	case "type_annotation", "parenthesized_type", "readonly_type":
		return r.Resolve(firstNamed(node), src)

	case "type_identifier":
		return models.TypeInfo{TypeName: text(node, src)}

	case "nested_type_identifier":
		return models.TypeInfo{TypeName: r.entityName(node, src)}

	case "generic_type":
		info := models.TypeInfo{TypeName: r.entityName(node.ChildByFieldName("name"), src)}
		if args := node.ChildByFieldName("type_arguments"); args != nil {
			for _, arg := range namedChildren(args) {
				info.TypeArgs = append(info.TypeArgs, r.Resolve(arg, src).TypeName)
			}
		}
		return info

	case "array_type":
		element := r.Resolve(firstNamed(node), src)
		return models.TypeInfo{
			TypeName: "Array",
			TypeArgs: []string{element.TypeName},
			IsArray:  true,
			Items:    &element,
		}

	case "predefined_type":
		switch name := text(node, src); name {
		case "string", "number", "boolean", "void", "any":
			return models.TypeInfo{TypeName: name}
		}
		return anyType()

	case "literal_type":
		return r.resolveLiteral(firstNamed(node), src)

	case "union_type":
		return r.resolveUnion(node, src)
	}

	return anyType()
}

func (r *TypeResolver) resolveLiteral(node *sitter.Node, src []byte) models.TypeInfo {
	if node == nil {
		return anyType()
	}

	switch node.Type() {
	case "null":
		return models.TypeInfo{TypeName: "null"}
	case "undefined":
		return models.TypeInfo{TypeName: "undefined"}
	}

	value := evalLiteral(node, src)
	switch value.Kind {
	case models.KindString:
		return models.TypeInfo{TypeName: "string", Literals: []any{value.Text}}
	case models.KindNumber:
		return models.TypeInfo{TypeName: "number", Literals: []any{value.Number}}
	case models.KindBoolean:
		return models.TypeInfo{TypeName: "boolean", Literals: []any{value.Bool}}
	}
	return anyType()
}

func (r *TypeResolver) resolveUnion(node *sitter.Node, src []byte) models.TypeInfo {
	var members []models.TypeInfo
	for _, member := range unionMembers(node) {
		members = append(members, r.Resolve(member, src))
	}

	allLiterals := len(members) > 0
	for _, m := range members {
		if len(m.Literals) == 0 {
			allLiterals = false
			break
		}
	}

	if allLiterals {
		info := models.TypeInfo{TypeName: members[0].TypeName, IsUnion: true}
		for _, m := range members {
			info.Literals = append(info.Literals, m.Literals...)
		}
		return info
	}

	info := models.TypeInfo{TypeName: "any", IsUnion: true, UnionTypes: members}
	for _, m := range members {
		if m.TypeName != "null" && m.TypeName != "undefined" && m.TypeName != "void" {
			info.TypeName = m.TypeName
			break
		}
	}
	return info
}

// entityName renders a possibly qualified type name. A side that does not
// resolve makes the whole name "unknown".
func (r *TypeResolver) entityName(node *sitter.Node, src []byte) string {
	if node == nil {
		return "unknown"
	}

	switch node.Type() {
	case "identifier", "type_identifier", "property_identifier":
		if name := text(node, src); name != "" {
			return name
		}
		return "unknown"
	case "nested_type_identifier", "nested_identifier", "member_expression":
		parts := namedChildren(node)
		if len(parts) != 2 {
			return "unknown"
		}
		left := r.entityName(parts[0], src)
		right := r.entityName(parts[1], src)
		if left == "unknown" || right == "unknown" {
			return "unknown"
		}
		return left + "." + right
	}
	return "unknown"
}

// unionMembers flattens the left-nested binary union_type nodes in source order
func unionMembers(node *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for _, child := range namedChildren(node) {
		if child.Type() == "union_type" {
			out = append(out, unionMembers(child)...)
			continue
		}
		out = append(out, child)
	}
	return out
}

func anyType() models.TypeInfo {
	return models.TypeInfo{TypeName: "any"}
}
