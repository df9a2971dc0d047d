package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/toyz/bunner/internal/models"
)

// evalValue converts an expression node into a Value. Literals and literal
// containers are evaluated; references, calls and functions keep their shape.
func evalValue(node *sitter.Node, src []byte) models.Value {
	if node == nil {
		return models.Value{Kind: models.KindUndefined}
	}

	switch node.Type() {
	case "string", "number", "true", "false", "null", "undefined", "unary_expression":
		if v := evalLiteral(node, src); v.Kind != models.KindUnknown {
			return v
		}

	case "template_string":
		if node.NamedChildCount() == 0 || allFragments(node) {
			return models.String(templateContent(node, src))
		}

	case "identifier", "this":
		return models.Reference(text(node, src))

	case "member_expression", "nested_identifier":
		if isStaticPath(node) {
			return models.Reference(text(node, src))
		}

	case "parenthesized_expression", "as_expression", "satisfies_expression", "non_null_expression":
		return evalValue(firstNamed(node), src)

	case "array":
		items := make([]models.Value, 0, node.NamedChildCount())
		for _, child := range namedChildren(node) {
			items = append(items, evalValue(child, src))
		}
		return models.Value{Kind: models.KindArray, Items: items}

	case "object":
		return evalObject(node, src)

	case "spread_element":
		return models.Value{Kind: models.KindSpread, Text: text(node, src), Items: []models.Value{evalValue(firstNamed(node), src)}}

	case "arrow_function", "function_expression", "function":
		return models.Value{
			Kind:    models.KindFunction,
			Text:    text(node, src),
			Returns: returnedIdentifier(node, src),
			Refs:    freeIdentifiers(node, src, node.StartByte(), 0),
		}

	case "call_expression":
		args := make([]models.Value, 0)
		for _, arg := range namedChildren(node.ChildByFieldName("arguments")) {
			args = append(args, evalValue(arg, src))
		}
		return models.Value{Kind: models.KindCall, Text: text(node.ChildByFieldName("function"), src), Items: args}
	}

	return models.Value{Kind: models.KindUnknown, Text: text(node, src), Refs: freeIdentifiers(node, src, node.StartByte(), 0)}
}

func evalObject(node *sitter.Node, src []byte) models.Value {
	fields := make([]models.Field, 0, node.NamedChildCount())
	for _, member := range namedChildren(node) {
		switch member.Type() {
		case "pair":
			key, ok := propertyKey(member.ChildByFieldName("key"), src)
			if !ok {
				continue
			}
			fields = append(fields, models.Field{Key: key, Value: evalValue(member.ChildByFieldName("value"), src)})
		case "shorthand_property_identifier":
			name := text(member, src)
			fields = append(fields, models.Field{Key: name, Value: models.Reference(name)})
		case "method_definition":
			if key, ok := propertyKey(member.ChildByFieldName("name"), src); ok {
				fields = append(fields, models.Field{Key: key, Value: methodValue(member, src)})
			}
		case "spread_element":
			fields = append(fields, models.Field{Key: "...", Value: evalValue(member, src)})
		}
	}
	return models.Value{Kind: models.KindObject, Fields: fields}
}

// propertyKey returns the static name of an object key. Computed keys are not static.
func propertyKey(node *sitter.Node, src []byte) (string, bool) {
	if node == nil {
		return "", false
	}
	switch node.Type() {
	case "property_identifier", "identifier":
		return text(node, src), true
	case "string":
		return stringContent(node, src), true
	case "number":
		return text(node, src), true
	}
	return "", false
}

// isStaticPath reports whether a member expression is a plain dotted name
func isStaticPath(node *sitter.Node) bool {
	switch node.Type() {
	case "identifier", "property_identifier", "this":
		return true
	case "member_expression", "nested_identifier":
		for _, child := range namedChildren(node) {
			if !isStaticPath(child) {
				return false
			}
		}
		return node.NamedChildCount() > 0
	}
	return false
}

// returnedIdentifier finds the name a thunk returns: `() => X` or
// `function () { return X; }`.
func returnedIdentifier(node *sitter.Node, src []byte) string {
	body := node.ChildByFieldName("body")
	if body == nil {
		return ""
	}

	if body.Type() == "statement_block" {
		statements := namedChildren(body)
		if len(statements) != 1 || statements[0].Type() != "return_statement" {
			return ""
		}
		body = firstNamed(statements[0])
		if body == nil {
			return ""
		}
	}

	for body.Type() == "parenthesized_expression" {
		body = firstNamed(body)
		if body == nil {
			return ""
		}
	}

	if (body.Type() == "identifier" || body.Type() == "member_expression") && isStaticPath(body) {
		return text(body, src)
	}
	return ""
}

func allFragments(node *sitter.Node) bool {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		switch node.NamedChild(i).Type() {
		case "string_fragment", "escape_sequence":
		default:
			return false
		}
	}
	return true
}

func templateContent(node *sitter.Node, src []byte) string {
	raw := text(node, src)
	if len(raw) >= 2 {
		raw = raw[1 : len(raw)-1]
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if node.NamedChild(i).Type() == "string_fragment" {
			return stringContent(node, src)
		}
	}
	return raw
}

// methodValue rewrites `name(args) { ... }` as a function expression
func methodValue(node *sitter.Node, src []byte) models.Value {
	params := node.ChildByFieldName("parameters")
	if params == nil {
		return models.Value{Kind: models.KindUnknown, Text: text(node, src)}
	}
	const prefix = "function "
	return models.Value{
		Kind: models.KindFunction,
		Text: prefix + string(src[params.StartByte():node.EndByte()]),
		Refs: freeIdentifiers(node, src, params.StartByte(), len(prefix)),
	}
}

// freeIdentifiers lists identifier uses in node that are not bound inside
// it. Only occurrences at or after from are kept; offsets are relative to
// from and shifted by shift. Nested scopes are flattened, so a name bound
// anywhere in node counts as bound everywhere in it.
func freeIdentifiers(node *sitter.Node, src []byte, from uint32, shift int) []models.IdentRef {
	bound := make(map[string]bool)
	collectBindings(node, src, bound)

	var refs []models.IdentRef
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Type() {
		case "identifier", "shorthand_property_identifier":
			name := text(n, src)
			if !bound[name] && n.StartByte() >= from {
				refs = append(refs, models.IdentRef{
					Name:      name,
					Offset:    int(n.StartByte()-from) + shift,
					Shorthand: n.Type() == "shorthand_property_identifier",
				})
			}
			return
		}
		for _, child := range namedChildren(n) {
			walk(child)
		}
	}
	walk(node)
	return refs
}

func collectBindings(node *sitter.Node, src []byte, bound map[string]bool) {
	switch node.Type() {
	case "formal_parameters":
		for _, param := range namedChildren(node) {
			pattern := param.ChildByFieldName("pattern")
			if pattern == nil {
				pattern = param
			}
			bindPattern(pattern, src, bound)
		}
	case "arrow_function":
		if param := node.ChildByFieldName("parameter"); param != nil {
			bindPattern(param, src, bound)
		}
	case "variable_declarator":
		bindPattern(node.ChildByFieldName("name"), src, bound)
	case "function_declaration", "function_expression", "function", "class_declaration", "class":
		if name := node.ChildByFieldName("name"); name != nil {
			bound[text(name, src)] = true
		}
	case "catch_clause":
		bindPattern(node.ChildByFieldName("parameter"), src, bound)
	case "for_in_statement":
		bindPattern(node.ChildByFieldName("left"), src, bound)
	}

	for _, child := range namedChildren(node) {
		collectBindings(child, src, bound)
	}
}

// bindPattern marks every name a binding pattern introduces. Default value
// expressions inside the pattern are skipped.
func bindPattern(node *sitter.Node, src []byte, bound map[string]bool) {
	if node == nil {
		return
	}
	switch node.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		bound[text(node, src)] = true
		return
	case "assignment_pattern", "object_assignment_pattern":
		bindPattern(node.ChildByFieldName("left"), src, bound)
		return
	case "pair_pattern":
		bindPattern(node.ChildByFieldName("value"), src, bound)
		return
	}
	for _, child := range namedChildren(node) {
		bindPattern(child, src, bound)
	}
}
