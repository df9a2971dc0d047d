package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/toyz/bunner/internal/diagnostics"
	"github.com/toyz/bunner/internal/models"
	"github.com/toyz/bunner/internal/parser"
)

func (g *ModuleGraph) collectProviders(node *ModuleNode, fa *models.FileAnalysis) {
	for _, entry := range node.Definition.Providers {
		ref, reason := g.providerFromValue(fa, entry)
		if ref == nil {
			node.DynamicProviderBundles = append(node.DynamicProviderBundles, entry)
			g.report(diagnostics.Params{
				Code:     CodeDynamicProvider,
				Severity: diagnostics.SeverityWarning,
				Summary:  fmt.Sprintf("Module %s has a provider that cannot be analyzed statically", node.Name),
				Reason:   fmt.Sprintf("provider entry %s %s", entry.String(), reason),
				File:     node.FilePath,
			})
			continue
		}
		g.addProvider(node, ref, true)
	}
}

// collectOwnedClasses registers decorated classes from files the module owns
func (g *ModuleGraph) collectOwnedClasses(node *ModuleNode) {
	files := append([]string{node.FilePath}, node.OwnedFiles...)
	for _, path := range files {
		fa := g.files[path]
		if fa == nil {
			continue
		}
		for i := range fa.Classes {
			class := &fa.Classes[i]
			if _, ok := class.Decorator(parser.DecoratorController); ok {
				node.AddController(class.ClassName)
			}
			if _, ok := class.Decorator(parser.DecoratorInjectable); !ok {
				continue
			}
			if _, bound := node.Provider(class.ClassName); bound {
				continue
			}
			g.addProvider(node, g.classProviderFromMetadata(fa, class, path), false)
		}
	}

	fa := g.files[node.FilePath]
	for _, entry := range node.Definition.Controllers {
		if entry.Kind == models.KindReference {
			node.AddController(importedName(fa, lastSegment(entry.Text)))
		}
	}
}

func (g *ModuleGraph) addProvider(node *ModuleNode, ref *models.ProviderRef, declared bool) {
	if ref.Metadata != nil && !g.importable(ref.FilePath, ref.Metadata) {
		g.report(diagnostics.Params{
			Code:     CodeNonExportedProvider,
			Severity: diagnostics.SeverityError,
			Summary:  fmt.Sprintf("Provider %s in module %s is not exported", ref.Metadata.ClassName, node.Name),
			Reason:   fmt.Sprintf("generated code imports %s from %s, so the class must be exported under its own name", ref.Metadata.ClassName, ref.FilePath),
			File:     ref.FilePath,
		})
		return
	}

	if !ref.Visibility.Valid() || (ref.Visibility == models.VisibilityAllowlist && len(ref.VisibleTo) == 0) {
		g.report(diagnostics.Params{
			Code:     CodeInvalidVisibility,
			Severity: diagnostics.SeverityError,
			Summary:  fmt.Sprintf("Provider %s in module %s has invalid visibility %q", ref.Token, node.Name, ref.Visibility),
			Reason:   "visibility must be module, all or allowlist, and allowlist requires a non-empty visibleTo",
			File:     node.FilePath,
		})
	}
	if !ref.Scope.Valid() {
		g.report(diagnostics.Params{
			Code:     CodeInvalidScope,
			Severity: diagnostics.SeverityError,
			Summary:  fmt.Sprintf("Provider %s in module %s has invalid scope %q", ref.Token, node.Name, ref.Scope),
			Reason:   "scope must be singleton, request or transient",
			File:     node.FilePath,
		})
	}

	if !node.AddProvider(ref) && declared {
		g.report(diagnostics.Params{
			Code:     CodeDuplicateProvider,
			Severity: diagnostics.SeverityError,
			Summary:  fmt.Sprintf("Token %s is provided more than once in module %s", ref.Token, node.Name),
			Reason:   fmt.Sprintf("module %s already binds %s", node.Name, ref.Token),
			File:     node.FilePath,
		})
	}
}

const reasonNotStatic = "is neither a class reference nor a provider record"

// importable reports whether class can be imported by name from path.
// Default exported classes are not.
func (g *ModuleGraph) importable(path string, class *models.ClassMetadata) bool {
	fa := g.files[path]
	if fa == nil {
		return class.Exported
	}
	if slices.Contains(fa.Exports, class.ClassName) {
		return true
	}
	return class.Exported && !slices.Contains(fa.Exports, "default")
}

// providerFromValue turns one providers entry into a ProviderRef. A nil ref
// comes with the reason the entry cannot be evaluated statically.
func (g *ModuleGraph) providerFromValue(fa *models.FileAnalysis, entry models.Value) (*models.ProviderRef, string) {
	entry = derefLocal(fa, entry)

	switch entry.Kind {
	case models.KindReference:
		return g.classProvider(fa, entry.Text), ""
	case models.KindObject:
		return g.recordProvider(fa, entry)
	}
	return nil, reasonNotStatic
}

func (g *ModuleGraph) recordProvider(fa *models.FileAnalysis, record models.Value) (*models.ProviderRef, string) {
	provide, ok := record.Get(keyProvide)
	if !ok {
		return nil, reasonNotStatic
	}
	token, ok := provide.TokenName()
	if !ok || provide.Kind == models.KindFunction {
		return nil, reasonNotStatic
	}
	if provide.Kind == models.KindReference {
		token = importedName(fa, lastSegment(token))
	}

	var ref *models.ProviderRef
	switch {
	case has(record, keyUseValue):
		v, _ := record.Get(keyUseValue)
		v = derefLocal(fa, v)
		if names := g.unimportable(fa, v); len(names) > 0 {
			return nil, unimportableReason(names)
		}
		ref = newProviderRef(token, models.ProviderValue)
		ref.Value = &v
		ref.FilePath = fa.FilePath

	case has(record, keyUseFactory):
		v, _ := record.Get(keyUseFactory)
		if names := g.unimportable(fa, v); len(names) > 0 {
			return nil, unimportableReason(names)
		}
		ref = newProviderRef(token, models.ProviderFactory)
		ref.FilePath = fa.FilePath
		if v.Kind == models.KindReference {
			ref.Target = v.Text
		} else {
			ref.Value = &v
		}

	case has(record, keyUseExisting):
		v, _ := record.Get(keyUseExisting)
		target, ok := v.TokenName()
		if !ok {
			return nil, reasonNotStatic
		}
		if v.Kind == models.KindReference {
			target = importedName(fa, lastSegment(target))
		}
		ref = newProviderRef(token, models.ProviderExisting)
		ref.Target = target
		ref.FilePath = fa.FilePath

	default:
		class := provide
		if v, ok := record.Get(keyUseClass); ok {
			class = v
		}
		if class.Kind != models.KindReference {
			return nil, reasonNotStatic
		}
		ref = g.classProvider(fa, class.Text)
		ref.Token = token
	}

	g.applyOptions(ref, fa, record)
	return ref, ""
}

// ambientGlobals are names generated code may use without an import
var ambientGlobals = map[string]bool{
	"globalThis": true, "console": true, "process": true, "Bun": true, "arguments": true,
	"Object": true, "Array": true, "String": true, "Number": true, "Boolean": true,
	"Symbol": true, "BigInt": true, "Math": true, "JSON": true, "Date": true,
	"RegExp": true, "Error": true, "TypeError": true, "Promise": true, "Map": true,
	"Set": true, "WeakMap": true, "WeakSet": true, "URL": true, "URLSearchParams": true,
	"setTimeout": true, "clearTimeout": true, "setInterval": true, "clearInterval": true,
	"structuredClone": true, "fetch": true, "Reflect": true, "Proxy": true,
	"NaN": true, "Infinity": true, "undefined": true,
}

// unimportable returns the free names inside function or opaque expressions
// of v that generated code could neither import nor find as a global
func (g *ModuleGraph) unimportable(fa *models.FileAnalysis, v models.Value) []string {
	if fa == nil {
		return nil
	}
	var out []string
	for _, name := range v.OpaqueNames() {
		if ambientGlobals[name] {
			continue
		}
		if _, _, ok := g.ImportPath(fa.FilePath, name); ok {
			continue
		}
		out = append(out, name)
	}
	return out
}

func unimportableReason(names []string) string {
	return fmt.Sprintf("uses %s, which cannot be imported into generated code", strings.Join(names, ", "))
}

// classProvider builds the provider for a class referenced from fa
func (g *ModuleGraph) classProvider(fa *models.FileAnalysis, local string) *models.ProviderRef {
	if class, path, ok := g.lookupClass(fa, local); ok {
		return g.classProviderFromMetadata(g.files[path], class, path)
	}

	name := importedName(fa, lastSegment(local))
	ref := newProviderRef(name, models.ProviderClass)
	ref.Target = name
	ref.FilePath = fa.FilePath
	if specifier, ok := g.importSource(fa, local); ok {
		ref.FilePath = g.importTarget(fa.FilePath, specifier)
	}
	return ref
}

func (g *ModuleGraph) classProviderFromMetadata(fa *models.FileAnalysis, class *models.ClassMetadata, path string) *models.ProviderRef {
	ref := newProviderRef(class.ClassName, models.ProviderClass)
	ref.Target = class.ClassName
	ref.Metadata = class
	ref.FilePath = path

	if dec, ok := class.Decorator(parser.DecoratorInjectable); ok && len(dec.Arguments) > 0 {
		g.applyOptions(ref, fa, dec.Arguments[0])
	}
	return ref
}

// applyOptions reads visibility, visibleTo and scope from an options object.
// Values that are not string literals are kept as source text so validation
// reports them.
func (g *ModuleGraph) applyOptions(ref *models.ProviderRef, fa *models.FileAnalysis, options models.Value) {
	options = derefLocal(fa, options)
	if options.Kind != models.KindObject {
		return
	}

	if v, ok := options.Get(keyVisibleTo); ok {
		ref.VisibleTo = g.moduleNames(fa, derefLocal(fa, v))
		ref.Visibility = models.VisibilityAllowlist
	}

	if v, ok := options.Get(keyVisibility); ok {
		if s, isString := v.StringValue(); isString {
			ref.Visibility = models.Visibility(s)
		} else {
			ref.Visibility = models.Visibility(v.String())
		}
	}

	if v, ok := options.Get(keyScope); ok {
		if s, isString := v.StringValue(); isString {
			ref.Scope = models.Scope(s)
		} else {
			ref.Scope = models.Scope(v.String())
		}
	}
}

// moduleNames reads a visibleTo list. Entries may be module names or
// references to module bindings.
func (g *ModuleGraph) moduleNames(fa *models.FileAnalysis, list models.Value) []string {
	items := list.Items
	if list.Kind != models.KindArray {
		items = []models.Value{list}
	}

	var names []string
	for _, item := range items {
		switch item.Kind {
		case models.KindString:
			names = append(names, item.Text)
		case models.KindReference:
			if node, ok := g.bindings[importedName(fa, item.Text)]; ok {
				names = append(names, node.Name)
			} else {
				names = append(names, item.Text)
			}
		}
	}
	return names
}

// lookupClass finds the declaration of a class referenced from fa, following
// imports and re-exports through analyzed files.
func (g *ModuleGraph) lookupClass(fa *models.FileAnalysis, local string) (*models.ClassMetadata, string, bool) {
	if fa == nil {
		return nil, "", false
	}
	if class, ok := fa.Class(local); ok {
		return class, fa.FilePath, true
	}

	specifier, ok := g.importSource(fa, local)
	if !ok || isBareSpecifier(specifier) {
		return nil, "", false
	}
	path, ok := g.resolveFile(fa.FilePath, specifier)
	if !ok {
		return nil, "", false
	}
	return g.findExportedClass(path, importedName(fa, lastSegment(local)), 0)
}

func (g *ModuleGraph) findExportedClass(path, name string, depth int) (*models.ClassMetadata, string, bool) {
	fa := g.files[path]
	if fa == nil || depth > maxReExportDepth {
		return nil, "", false
	}
	if class, ok := fa.Class(name); ok {
		return class, path, true
	}

	for _, re := range fa.ReExports {
		target, ok := g.resolveFile(path, re.Module)
		if !ok {
			continue
		}
		if re.ExportAll {
			if class, file, found := g.findExportedClass(target, name, depth+1); found {
				return class, file, true
			}
			continue
		}
		for _, n := range re.Names {
			if n.Exported == name {
				return g.findExportedClass(target, n.Local, depth+1)
			}
		}
	}
	return nil, "", false
}

// importSource returns the specifier a local (or namespace qualified) name was imported from
func (g *ModuleGraph) importSource(fa *models.FileAnalysis, local string) (string, bool) {
	if fa == nil {
		return "", false
	}
	head, _, _ := strings.Cut(local, ".")
	specifier, ok := fa.Imports[head]
	return specifier, ok
}

// ImportPath returns the symbol and the file path (or bare package
// specifier) that generated code imports to refer to name as used in
// fromFile. Default imports and members of named imports are not importable.
func (g *ModuleGraph) ImportPath(fromFile, name string) (symbol, path string, ok bool) {
	fa := g.files[fromFile]
	if fa == nil {
		return "", "", false
	}

	head, rest, dotted := strings.Cut(name, ".")
	for _, entry := range fa.ImportEntries {
		if entry.Local != head || entry.TypeOnly {
			continue
		}
		switch {
		case entry.Namespace:
			if !dotted || strings.Contains(rest, ".") {
				return "", "", false
			}
			symbol = rest
		case entry.Default || dotted:
			return "", "", false
		default:
			symbol = entry.Imported
		}
		return symbol, g.importTarget(fromFile, entry.Source), true
	}

	if dotted {
		return "", "", false
	}
	for _, exported := range fa.Exports {
		if exported == name {
			return name, fromFile, true
		}
	}
	return "", "", false
}

// importTarget resolves specifier to an analyzed file when possible
func (g *ModuleGraph) importTarget(fromFile, specifier string) string {
	if isBareSpecifier(specifier) {
		return specifier
	}
	if resolved, ok := g.resolveFile(fromFile, specifier); ok {
		return resolved
	}
	return specifier
}

func newProviderRef(token string, kind models.ProviderKind) *models.ProviderRef {
	return &models.ProviderRef{
		Token:      token,
		Kind:       kind,
		Visibility: models.VisibilityModule,
		Scope:      models.ScopeSingleton,
	}
}

func derefLocal(fa *models.FileAnalysis, v models.Value) models.Value {
	if fa == nil {
		return v
	}
	for depth := 0; depth < maxReExportDepth && v.Kind == models.KindReference; depth++ {
		local, ok := fa.LocalValues[v.Text]
		if !ok || local.Kind == models.KindReference && local.Text == v.Text {
			break
		}
		v = local
	}
	return v
}

func has(record models.Value, key string) bool {
	_, ok := record.Get(key)
	return ok
}

func lastSegment(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
