package generator

import (
	"fmt"
	"strings"

	"github.com/toyz/bunner/internal/errors"
	"github.com/toyz/bunner/internal/graph"
	"github.com/toyz/bunner/internal/models"
	"github.com/toyz/bunner/internal/parser"
	"github.com/toyz/bunner/internal/templates"
)

const containerSymbol = "Container"

// InjectorGenerator renders the container factory. Output depends only on
// the graph and the registry state.
type InjectorGenerator struct{}

// NewInjectorGenerator creates an injector generator
func NewInjectorGenerator() *InjectorGenerator {
	return &InjectorGenerator{}
}

// ProviderKey is the container key of token as declared by module
func ProviderKey(module, token string) string {
	return module + "::" + token
}

// Generate renders the injector source for g
func (gen *InjectorGenerator) Generate(g *graph.ModuleGraph, registry *ImportRegistry) (string, error) {
	data := templates.InjectorData{
		Container: registry.GetAlias(containerSymbol, parser.CorePackage),
	}

	adapters := make([]string, 0)
	snapshot := make([]string, 0)

	for _, node := range g.Modules() {
		renderer := gen.rendererFor(g, registry, node)

		var keys []string
		for _, ref := range node.Providers() {
			key := ProviderKey(node.Name, ref.Token)
			keys = append(keys, key)
			data.Registrations = append(data.Registrations, templates.RegistrationData{
				Module:  node.Name,
				Key:     key,
				Token:   ref.Token,
				Scope:   string(ref.Scope),
				Factory: gen.factory(g, registry, renderer, node, ref),
			})
		}

		if node.Adapters != nil {
			adapters = append(adapters, templates.QuoteString(node.Name)+": "+renderer.render(*node.Adapters))
		}
		snapshot = append(snapshot, templates.QuoteString(node.Name)+": "+moduleSnapshot(node, keys))
	}

	data.AdapterConfig = renderEntries(adapters)
	data.ModuleGraph = renderEntries(snapshot)
	data.Imports = registry.GetImportStatements()

	out, err := templates.Render(templates.InjectorTemplateName, data)
	if err != nil {
		return "", errors.WrapGenerateError("injector", "render", err)
	}
	return out, nil
}

// rendererFor resolves references the way the module file sees them
func (gen *InjectorGenerator) rendererFor(g *graph.ModuleGraph, registry *ImportRegistry, node *graph.ModuleNode) valueRenderer {
	return valueRenderer{resolve: func(name string) (string, bool) {
		symbol, path, ok := g.ImportPath(node.FilePath, name)
		if !ok {
			return "", false
		}
		return registry.GetAlias(symbol, path), true
	}}
}

func (gen *InjectorGenerator) factory(g *graph.ModuleGraph, registry *ImportRegistry, renderer valueRenderer, node *graph.ModuleNode, ref *models.ProviderRef) string {
	switch ref.Kind {
	case models.ProviderValue:
		if ref.Value == nil {
			return "() => undefined"
		}
		return "() => (" + renderer.render(*ref.Value) + ")"

	case models.ProviderFactory:
		if ref.Target != "" {
			if fn := renderer.reference(ref.Target); fn != "undefined" {
				return "(c) => " + fn + "(c)"
			}
			return "() => undefined"
		}
		if ref.Value != nil && ref.Value.Kind == models.KindFunction {
			return "(c) => (" + renderer.source(*ref.Value) + ")(c)"
		}
		return "() => undefined"

	case models.ProviderExisting:
		return "(c) => " + dependencyExpr(g, node, ref.Target)
	}

	if ref.FilePath == "" || ref.Target == "" {
		return "() => undefined"
	}
	class := registry.GetAlias(ref.Target, ref.FilePath)

	deps := g.Dependencies(ref)
	args := make([]string, len(deps))
	for i, token := range deps {
		args[i] = dependencyExpr(g, node, token)
	}
	return "(c) => new " + class + "(" + strings.Join(args, ", ") + ")"
}

// dependencyExpr looks token up from node. Unresolved tokens were already
// reported during validation and are passed as undefined.
func dependencyExpr(g *graph.ModuleGraph, node *graph.ModuleNode, token string) string {
	if token == "" {
		return "undefined"
	}
	res, ok := g.Resolve(node.Name, token)
	if !ok {
		return "undefined"
	}
	return fmt.Sprintf("c.get(%s)", templates.QuoteString(ProviderKey(res.Module.Name, res.Provider.Token)))
}

func moduleSnapshot(node *graph.ModuleNode, providerKeys []string) string {
	imports := make([]string, 0)
	for _, imported := range node.Imports() {
		imports = append(imports, imported.Name)
	}
	return fmt.Sprintf("{ imports: %s, providers: %s, exports: %s, controllers: %s }",
		quoteList(imports), quoteList(providerKeys), quoteList(node.ExportedTokens()), quoteList(node.Controllers()))
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = templates.QuoteString(item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func renderEntries(entries []string) string {
	if len(entries) == 0 {
		return "{}"
	}
	return "{\n  " + strings.Join(entries, ",\n  ") + ",\n}"
}
