package parser

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/toyz/bunner/internal/errors"
	"github.com/toyz/bunner/internal/models"
)

// maxDerefDepth bounds how far local const bindings are followed
const maxDerefDepth = 8

// Parser extracts framework declarations from TypeScript sources
type Parser struct {
	resolver *TypeResolver
	tracked  map[string][]string
}

// NewParser creates a parser tracking the core and common framework packages
func NewParser() *Parser {
	return &Parser{
		resolver: NewTypeResolver(),
		tracked:  trackedNames,
	}
}

// binding is one tracked local name introduced by a named import
type binding struct {
	canonical string
	source    string
}

// fileWalker holds the per-file state of one Parse call
type fileWalker struct {
	parser     *Parser
	src        []byte
	result     *models.FileAnalysis
	bindings   map[string]binding
	namespaces map[string]string
	aliases    map[string][]string // local name -> names it is exported as
}

// Parse analyzes one file. Unrecognized shapes are omitted from the result;
// an error is only returned when tree-sitter itself fails or ctx is done.
func (p *Parser) Parse(ctx context.Context, filePath string, source []byte) (*models.FileAnalysis, error) {
	// new tree-sitter parser per call, parsers are not safe for concurrent use
	parser := sitter.NewParser()
	if strings.HasSuffix(filePath, ".tsx") {
		parser.SetLanguage(tsx.GetLanguage())
	} else {
		parser.SetLanguage(typescript.GetLanguage())
	}

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, errors.WrapParseError(filePath, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	result := &models.FileAnalysis{
		FilePath:    filePath,
		Classes:     make([]models.ClassMetadata, 0),
		ReExports:   make([]models.ReExport, 0),
		Exports:     make([]string, 0),
		Imports:     make(map[string]string),
		LocalValues: make(map[string]models.Value),
	}
	if root == nil {
		return result, nil
	}
	result.HasSyntaxErrors = root.HasError()

	w := &fileWalker{
		parser:     p,
		src:        source,
		result:     result,
		bindings:   make(map[string]binding),
		namespaces: make(map[string]string),
		aliases:    make(map[string][]string),
	}

	w.collectImports(root)
	w.collectDeclarations(root)
	w.collectCalls(root)
	w.applyExportAliases()
	w.buildModuleDefinition()

	return result, nil
}

// ParseSource parses source text without a context
func (p *Parser) ParseSource(filePath, source string) (*models.FileAnalysis, error) {
	return p.Parse(context.Background(), filePath, []byte(source))
}

func (w *fileWalker) collectImports(root *sitter.Node) {
	for _, stmt := range namedChildren(root) {
		if stmt.Type() != "import_statement" {
			continue
		}

		sourceNode := stmt.ChildByFieldName("source")
		if sourceNode == nil {
			if strs := childrenOfType(stmt, "string"); len(strs) > 0 {
				sourceNode = strs[0]
			}
		}
		if sourceNode == nil {
			continue
		}
		source := stringContent(sourceNode, w.src)
		typeOnly := len(childrenOfType(stmt, "type")) > 0

		for _, clause := range childrenOfType(stmt, "import_clause") {
			w.collectImportClause(clause, source, typeOnly)
		}
	}
}

func (w *fileWalker) collectImportClause(clause *sitter.Node, source string, typeOnly bool) {
	for _, child := range namedChildren(clause) {
		switch child.Type() {
		case "identifier":
			w.addImport(models.ImportEntry{Source: source, Imported: "default", Local: text(child, w.src), Default: true, TypeOnly: typeOnly})

		case "namespace_import":
			if id := firstNamed(child); id != nil {
				w.addImport(models.ImportEntry{Source: source, Imported: "*", Local: text(id, w.src), Namespace: true, TypeOnly: typeOnly})
			}

		case "named_imports":
			for _, spec := range namedChildren(child) {
				if spec.Type() != "import_specifier" {
					continue
				}
				nameNode := spec.ChildByFieldName("name")
				if nameNode == nil {
					continue
				}
				imported := text(nameNode, w.src)
				if nameNode.Type() == "string" {
					imported = stringContent(nameNode, w.src)
				}
				local := imported
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					local = text(alias, w.src)
				}
				specTypeOnly := typeOnly || len(childrenOfType(spec, "type")) > 0
				w.addImport(models.ImportEntry{Source: source, Imported: imported, Local: local, TypeOnly: specTypeOnly})
			}
		}
	}
}

func (w *fileWalker) addImport(entry models.ImportEntry) {
	w.result.ImportEntries = append(w.result.ImportEntries, entry)
	w.result.Imports[entry.Local] = entry.Source

	names, tracked := w.parser.tracked[entry.Source]
	if !tracked || entry.TypeOnly {
		return
	}
	if entry.Namespace {
		w.namespaces[entry.Local] = entry.Source
		return
	}
	for _, name := range names {
		if name == entry.Imported {
			w.bindings[entry.Local] = binding{canonical: name, source: entry.Source}
		}
	}
}

func (w *fileWalker) collectDeclarations(root *sitter.Node) {
	for _, stmt := range namedChildren(root) {
		switch stmt.Type() {
		case "export_statement":
			w.collectExport(stmt)
		case "class_declaration", "abstract_class_declaration":
			w.collectClass(stmt, nil, false)
		case "lexical_declaration", "variable_declaration":
			w.collectLocalValues(stmt)
		}
	}
}

func (w *fileWalker) collectExport(stmt *sitter.Node) {
	decorators := childrenOfType(stmt, "decorator")

	if sourceNode := stmt.ChildByFieldName("source"); sourceNode != nil {
		w.collectReExport(stmt, stringContent(sourceNode, w.src))
		return
	}

	isDefault := len(childrenOfType(stmt, "default")) > 0
	if isDefault {
		w.addExport("default")
	}

	if decl := stmt.ChildByFieldName("declaration"); decl != nil {
		switch decl.Type() {
		case "class_declaration", "abstract_class_declaration", "class":
			if name := w.collectClass(decl, decorators, true); name != "" && !isDefault {
				w.addExport(name)
			}
		case "lexical_declaration", "variable_declaration":
			for _, name := range w.collectLocalValues(decl) {
				w.addExport(name)
			}
		default:
			if name := decl.ChildByFieldName("name"); name != nil && !isDefault {
				w.addExport(text(name, w.src))
			}
		}
		return
	}

	if value := stmt.ChildByFieldName("value"); value != nil && isDefault {
		if value.Type() == "identifier" {
			local := text(value, w.src)
			w.aliases[local] = append(w.aliases[local], "default")
		}
		return
	}

	for _, clause := range childrenOfType(stmt, "export_clause") {
		for _, spec := range namedChildren(clause) {
			if spec.Type() != "export_specifier" {
				continue
			}
			local, exported := w.exportSpecifier(spec)
			if local == "" {
				continue
			}
			w.aliases[local] = append(w.aliases[local], exported)
			w.addExport(exported)
		}
	}
}

func (w *fileWalker) collectReExport(stmt *sitter.Node, module string) {
	reExport := models.ReExport{Module: module}

	clauses := childrenOfType(stmt, "export_clause")
	namespaces := childrenOfType(stmt, "namespace_export")

	switch {
	case len(clauses) > 0:
		for _, spec := range namedChildren(clauses[0]) {
			if spec.Type() != "export_specifier" {
				continue
			}
			local, exported := w.exportSpecifier(spec)
			if local == "" {
				continue
			}
			reExport.Names = append(reExport.Names, models.ReExportName{Local: local, Exported: exported})
			w.addExport(exported)
		}
	case len(namespaces) > 0:
		if id := firstNamed(namespaces[0]); id != nil {
			name := text(id, w.src)
			reExport.Names = append(reExport.Names, models.ReExportName{Local: "*", Exported: name})
			w.addExport(name)
		}
	default:
		reExport.ExportAll = true
	}

	w.result.ReExports = append(w.result.ReExports, reExport)
}

func (w *fileWalker) exportSpecifier(spec *sitter.Node) (local, exported string) {
	nameNode := spec.ChildByFieldName("name")
	if nameNode == nil {
		return "", ""
	}
	local = text(nameNode, w.src)
	if nameNode.Type() == "string" {
		local = stringContent(nameNode, w.src)
	}
	exported = local
	if alias := spec.ChildByFieldName("alias"); alias != nil {
		exported = text(alias, w.src)
		if alias.Type() == "string" {
			exported = stringContent(alias, w.src)
		}
	}
	return local, exported
}

func (w *fileWalker) addExport(name string) {
	for _, existing := range w.result.Exports {
		if existing == name {
			return
		}
	}
	w.result.Exports = append(w.result.Exports, name)
}

// collectLocalValues records top-level declarator initializers and returns
// the declared names.
func (w *fileWalker) collectLocalValues(decl *sitter.Node) []string {
	var names []string
	for _, declarator := range namedChildren(decl) {
		if declarator.Type() != "variable_declarator" {
			continue
		}
		nameNode := declarator.ChildByFieldName("name")
		if nameNode == nil || nameNode.Type() != "identifier" {
			continue
		}
		name := text(nameNode, w.src)
		names = append(names, name)
		if value := declarator.ChildByFieldName("value"); value != nil {
			w.result.LocalValues[name] = evalValue(value, w.src)
		}
	}
	return names
}

func (w *fileWalker) collectClass(node *sitter.Node, outer []*sitter.Node, exported bool) string {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return ""
	}

	class := models.ClassMetadata{
		ClassName:  text(nameNode, w.src),
		Exported:   exported,
		Decorators: make([]models.DecoratorMetadata, 0),
		Span:       spanOf(node),
	}

	for _, dec := range append(append([]*sitter.Node{}, outer...), childrenOfType(node, "decorator")...) {
		if meta, ok := w.decorator(dec); ok {
			class.Decorators = append(class.Decorators, meta)
		}
	}

	if body := node.ChildByFieldName("body"); body != nil {
		for _, member := range namedChildren(body) {
			if member.Type() != "method_definition" {
				continue
			}
			if name := member.ChildByFieldName("name"); name != nil && text(name, w.src) == "constructor" {
				class.ConstructorParams = w.constructorParams(member.ChildByFieldName("parameters"))
				break
			}
		}
	}

	w.result.Classes = append(w.result.Classes, class)
	return class.ClassName
}

func (w *fileWalker) constructorParams(params *sitter.Node) []models.ParamMetadata {
	out := make([]models.ParamMetadata, 0)
	for _, param := range namedChildren(params) {
		if param.Type() != "required_parameter" && param.Type() != "optional_parameter" {
			continue
		}

		meta := models.ParamMetadata{
			Type:       w.parser.resolver.Resolve(param.ChildByFieldName("type"), w.src),
			Decorators: make([]models.DecoratorMetadata, 0),
		}
		if pattern := param.ChildByFieldName("pattern"); pattern != nil {
			meta.Name = text(pattern, w.src)
		}
		for _, dec := range childrenOfType(param, "decorator") {
			if d, ok := w.decorator(dec); ok {
				meta.Decorators = append(meta.Decorators, d)
			}
		}
		out = append(out, meta)
	}
	return out
}

// decorator reads `@Name`, `@ns.Name`, `@Name(...)` and `@ns.Name(...)`.
// Names bound to a tracked framework import are reported by their canonical name.
func (w *fileWalker) decorator(node *sitter.Node) (models.DecoratorMetadata, bool) {
	expr := firstNamed(node)
	if expr == nil {
		return models.DecoratorMetadata{}, false
	}

	meta := models.DecoratorMetadata{Arguments: make([]models.Value, 0)}
	if expr.Type() == "call_expression" {
		for _, arg := range namedChildren(expr.ChildByFieldName("arguments")) {
			meta.Arguments = append(meta.Arguments, evalValue(arg, w.src))
		}
		expr = expr.ChildByFieldName("function")
	}
	if expr == nil {
		return models.DecoratorMetadata{}, false
	}

	switch expr.Type() {
	case "identifier":
		meta.Name = text(expr, w.src)
		if b, ok := w.bindings[meta.Name]; ok {
			meta.Name = b.canonical
		}
	case "member_expression":
		meta.Name = text(expr.ChildByFieldName("property"), w.src)
	default:
		return models.DecoratorMetadata{}, false
	}
	return meta, meta.Name != ""
}

// collectCalls walks the whole tree in source order
func (w *fileWalker) collectCalls(node *sitter.Node) {
	if node.Type() == "call_expression" {
		w.collectCall(node)
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child != nil {
			w.collectCalls(child)
		}
	}
}

func (w *fileWalker) collectCall(call *sitter.Node) {
	fn := call.ChildByFieldName("function")
	canonical, source, ok := w.matchCallee(fn)
	if !ok {
		return
	}

	callee := text(fn, w.src)
	argNodes := namedChildren(call.ChildByFieldName("arguments"))
	args := make([]models.Value, 0, len(argNodes))
	for _, arg := range argNodes {
		args = append(args, evalValue(arg, w.src))
	}

	switch canonical {
	case FnCreateApplication:
		w.result.CreateApplicationCalls = append(w.result.CreateApplicationCalls, models.CreateApplicationCall{
			Callee:       callee,
			ImportSource: source,
			Args:         args,
			Span:         spanOf(call),
		})

	case FnDefineModule:
		local, exported := w.declaratorName(call)
		record := models.DefineModuleCall{
			Callee:       callee,
			ImportSource: source,
			Args:         args,
			Span:         spanOf(call),
			LocalName:    local,
		}
		if exported {
			record.ExportedName = local
		}
		w.result.DefineModuleCalls = append(w.result.DefineModuleCalls, record)

	case FnInject:
		record := models.InjectCall{
			TokenKind:    models.TokenKindInvalid,
			Callee:       callee,
			ImportSource: source,
			Span:         spanOf(call),
			FilePath:     w.result.FilePath,
		}
		if len(args) == 1 {
			token := args[0]
			record.Token = &token
			record.TokenKind = models.TokenKindToken
			if token.Kind == models.KindFunction {
				record.TokenKind = models.TokenKindThunk
			}
		}
		w.result.InjectCalls = append(w.result.InjectCalls, record)
	}
}

// matchCallee resolves a callee against the binding table: a named import
// (possibly aliased) or a namespace import member.
func (w *fileWalker) matchCallee(fn *sitter.Node) (canonical, source string, ok bool) {
	if fn == nil {
		return "", "", false
	}

	switch fn.Type() {
	case "identifier":
		b, found := w.bindings[text(fn, w.src)]
		return b.canonical, b.source, found

	case "member_expression":
		object := fn.ChildByFieldName("object")
		property := fn.ChildByFieldName("property")
		if object == nil || property == nil || object.Type() != "identifier" {
			return "", "", false
		}
		source, found := w.namespaces[text(object, w.src)]
		if !found {
			return "", "", false
		}
		name := text(property, w.src)
		for _, tracked := range w.parser.tracked[source] {
			if tracked == name {
				return name, source, true
			}
		}
	}
	return "", "", false
}

// declaratorName finds the binding a call result is assigned to and whether
// that binding is exported in place.
func (w *fileWalker) declaratorName(call *sitter.Node) (string, bool) {
	node := call
	parent := node.Parent()
	for parent != nil {
		switch parent.Type() {
		case "as_expression", "satisfies_expression", "parenthesized_expression", "non_null_expression":
			node, parent = parent, parent.Parent()
			continue
		}
		break
	}
	if parent == nil {
		return "", false
	}

	switch parent.Type() {
	case "variable_declarator":
		if !sameNode(parent.ChildByFieldName("value"), node) {
			return "", false
		}
		nameNode := parent.ChildByFieldName("name")
		if nameNode == nil || nameNode.Type() != "identifier" {
			return "", false
		}
		exported := false
		if decl := parent.Parent(); decl != nil {
			if stmt := decl.Parent(); stmt != nil && stmt.Type() == "export_statement" {
				exported = true
			}
		}
		return text(nameNode, w.src), exported

	case "export_statement":
		return "default", true
	}
	return "", false
}

func (w *fileWalker) applyExportAliases() {
	for i := range w.result.DefineModuleCalls {
		call := &w.result.DefineModuleCalls[i]
		if call.ExportedName != "" || call.LocalName == "" {
			continue
		}
		if names := w.aliases[call.LocalName]; len(names) > 0 {
			call.ExportedName = names[0]
		}
	}
}
