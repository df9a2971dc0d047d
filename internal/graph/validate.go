package graph

import (
	"fmt"
	"slices"

	"github.com/toyz/bunner/internal/diagnostics"
	"github.com/toyz/bunner/internal/models"
	"github.com/toyz/bunner/internal/parser"
)

// Validate runs a full validation pass and returns every diagnostic from the
// build and the pass, sorted.
func (g *ModuleGraph) Validate() []diagnostics.Diagnostic {
	diags := slices.Clone(g.buildDiagnostics)

	for _, cycle := range g.DetectCycles() {
		first, _ := g.modules.Get(cycle.Path[0])
		diags = append(diags, diagnostics.Build(diagnostics.Params{
			Code:     CodeModuleCycle,
			Severity: diagnostics.SeverityError,
			Summary:  "Circular module import " + FormatCycle(cycle),
			Reason:   cycle.SuggestedFix,
			File:     first.FilePath,
		}))
	}

	diags = append(diags, g.validateInjectCalls()...)
	diags = append(diags, g.validateDependencies()...)
	return diagnostics.Sort(diags)
}

func (g *ModuleGraph) validateInjectCalls() []diagnostics.Diagnostic {
	var diags []diagnostics.Diagnostic

	for _, path := range g.sortedPaths() {
		fa := g.files[path]
		if fa == nil {
			continue
		}
		owner, owned := g.owners[path]

		for _, call := range fa.InjectCalls {
			if call.TokenKind == models.TokenKindInvalid {
				diags = append(diags, diagnostics.Build(diagnostics.Params{
					Code:     CodeInvalidInjectCall,
					Severity: diagnostics.SeverityError,
					Summary:  fmt.Sprintf("%s() must be called with exactly one token or thunk (line %d)", call.Callee, call.Span.Line),
					Reason:   "inject() takes a single token, or a zero-argument function returning the token",
					File:     path,
				}))
				continue
			}

			// thunks are resolved lazily by the runtime container
			if call.TokenKind != models.TokenKindToken || !owned || call.Token == nil {
				continue
			}
			token, ok := call.Token.TokenName()
			if !ok {
				continue
			}
			if call.Token.Kind == models.KindReference {
				token = importedName(fa, lastSegment(token))
			}

			if d, failed := g.checkToken(owner, token, path); failed {
				diags = append(diags, d)
			}
		}
	}
	return diags
}

func (g *ModuleGraph) validateDependencies() []diagnostics.Diagnostic {
	var diags []diagnostics.Diagnostic

	for _, node := range g.Modules() {
		for _, ref := range node.Providers() {
			for _, token := range g.Dependencies(ref) {
				if token == "" {
					continue
				}
				if d, failed := g.checkToken(node, token, ref.FilePath); failed {
					diags = append(diags, d)
				}
			}
		}
	}
	return diags
}

// checkToken reports a token the owning module cannot resolve
func (g *ModuleGraph) checkToken(owner *ModuleNode, token, file string) (diagnostics.Diagnostic, bool) {
	res, hidden := g.lookup(owner.Name, token)
	if res.Provider != nil {
		return diagnostics.Diagnostic{}, false
	}
	if hidden || g.declaredAnywhere(token) {
		return g.notVisible(owner, token, file), true
	}
	return diagnostics.Build(diagnostics.Params{
		Code:     CodeUnresolvedToken,
		Severity: diagnostics.SeverityError,
		Summary:  fmt.Sprintf("Token %s cannot be resolved in module %s", token, owner.Name),
		Reason:   fmt.Sprintf("no provider for %s is declared in %s or in the modules it imports", token, owner.Name),
		File:     file,
	}), true
}

func (g *ModuleGraph) notVisible(owner *ModuleNode, token, file string) diagnostics.Diagnostic {
	return diagnostics.Build(diagnostics.Params{
		Code:     CodeProviderNotVisible,
		Severity: diagnostics.SeverityError,
		Summary:  fmt.Sprintf("Provider %s is not visible to module %s", token, owner.Name),
		Reason:   fmt.Sprintf("%s is declared in another module but is not exported to, or allowed for, %s", token, owner.Name),
		File:     file,
	})
}

func (g *ModuleGraph) reportOrphanProviders() {
	for _, path := range g.orphans {
		fa := g.files[path]
		if fa == nil {
			continue
		}
		for _, class := range fa.Classes {
			if _, ok := class.Decorator(parser.DecoratorInjectable); !ok {
				continue
			}
			g.report(diagnostics.Params{
				Code:     CodeOrphanProvider,
				Severity: diagnostics.SeverityWarning,
				Summary:  fmt.Sprintf("Injectable %s is not inside any module directory", class.ClassName),
				Reason:   fmt.Sprintf("no %s was found in the directory of %s or any parent directory", g.moduleFileName, path),
				File:     path,
			})
		}
	}
}
