package graph

import (
	"slices"

	"github.com/toyz/bunner/internal/models"
	"github.com/toyz/bunner/internal/utils"
)

// Resolution names the module that provides a token and its binding there
type Resolution struct {
	Module   *ModuleNode
	Provider *models.ProviderRef
}

// Resolve finds the provider of token for the module named requester. The
// requester's own providers win, then direct imports in name order. Dynamic
// entries never satisfy a lookup.
func (g *ModuleGraph) Resolve(requester, token string) (Resolution, bool) {
	res, _ := g.lookup(requester, token)
	return res, res.Provider != nil
}

// lookup also reports whether a direct import declares token but hides it
func (g *ModuleGraph) lookup(requester, token string) (res Resolution, hidden bool) {
	node, ok := g.modules.Get(requester)
	if !ok {
		return Resolution{}, false
	}
	if p, ok := node.Provider(token); ok {
		return Resolution{Module: node, Provider: p}, false
	}

	for _, imported := range sortedByName(node.imports) {
		p, ok := imported.Provider(token)
		if !ok {
			continue
		}
		if p.VisibleFrom(node.Name, imported.Exports(token)) {
			return Resolution{Module: imported, Provider: p}, false
		}
		hidden = true
	}
	return Resolution{}, hidden
}

// VisibleProviders lists every token the module can resolve, ordered by token
func (g *ModuleGraph) VisibleProviders(requester string) []Resolution {
	node, ok := g.modules.Get(requester)
	if !ok {
		return nil
	}

	tokens := make(map[string]struct{})
	for token := range node.providers {
		tokens[token] = struct{}{}
	}
	for _, imported := range node.imports {
		for token := range imported.providers {
			tokens[token] = struct{}{}
		}
	}

	var out []Resolution
	for _, token := range sortedKeys(tokens) {
		if res, ok := g.Resolve(requester, token); ok {
			out = append(out, res)
		}
	}
	return out
}

// declaredAnywhere reports whether any module binds token
func (g *ModuleGraph) declaredAnywhere(token string) bool {
	for _, node := range g.Modules() {
		if _, ok := node.Provider(token); ok {
			return true
		}
	}
	return false
}

// Dependencies returns the tokens a class provider's constructor asks for,
// one per parameter. Parameters without a token are "". An Inject parameter
// decorator overrides the parameter type.
func (g *ModuleGraph) Dependencies(ref *models.ProviderRef) []string {
	if ref.Metadata == nil {
		return nil
	}
	fa := g.files[ref.FilePath]

	var deps []string
	for _, param := range ref.Metadata.ConstructorParams {
		if token, ok := injectDecoratorToken(fa, param); ok {
			deps = append(deps, token)
			continue
		}
		if param.Type.IsPrimitive() || param.Type.IsArray {
			deps = append(deps, "")
			continue
		}
		deps = append(deps, importedName(fa, lastSegment(param.Type.TypeName)))
	}
	return deps
}

func injectDecoratorToken(fa *models.FileAnalysis, param models.ParamMetadata) (string, bool) {
	for _, dec := range param.Decorators {
		if dec.Name != decoratorInject || len(dec.Arguments) != 1 {
			continue
		}
		arg := dec.Arguments[0]
		token, ok := arg.TokenName()
		if !ok {
			continue
		}
		if arg.Kind == models.KindReference || arg.Kind == models.KindFunction {
			token = importedName(fa, lastSegment(token))
		}
		return token, true
	}
	return "", false
}

func sortedByName(nodes []*ModuleNode) []*ModuleNode {
	out := slices.Clone(nodes)
	slices.SortFunc(out, func(a, b *ModuleNode) int {
		return utils.CompareCodePoint(a.Name, b.Name)
	})
	return out
}
