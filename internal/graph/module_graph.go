package graph

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/toyz/bunner/internal/analyzer"
	"github.com/toyz/bunner/internal/diagnostics"
	"github.com/toyz/bunner/internal/models"
	"github.com/toyz/bunner/internal/utils"
)

// ModuleGraph is the module and provider graph of one project build. It is
// built once from a complete set of file analyses and is not safe for
// concurrent validation.
type ModuleGraph struct {
	files          map[string]*models.FileAnalysis
	moduleFileName string

	modules  *utils.BaseRegistry[string, *ModuleNode]
	byFile   map[string]*ModuleNode
	bindings map[string]*ModuleNode // exported/local binding or name -> module
	owners   map[string]*ModuleNode
	orphans  []string

	buildDiagnostics []diagnostics.Diagnostic
}

// NewModuleGraph creates an unbuilt graph over files
func NewModuleGraph(files map[string]*models.FileAnalysis, moduleFileName string) *ModuleGraph {
	g := &ModuleGraph{
		files:          files,
		moduleFileName: moduleFileName,
		modules:        utils.NewBaseRegistry[string, *ModuleNode]("module", "module name"),
	}
	g.modules.SetValidator(utils.ChainValidators(
		utils.NotEmptyKeyValidator[*ModuleNode]("module name"),
		utils.NoDuplicateValidator[string, *ModuleNode]("module name"),
	))
	g.reset()
	return g
}

func (g *ModuleGraph) reset() {
	g.modules.Clear()
	g.byFile = make(map[string]*ModuleNode)
	g.bindings = make(map[string]*ModuleNode)
	g.owners = make(map[string]*ModuleNode)
	g.orphans = nil
	g.buildDiagnostics = nil
}

// Build constructs modules, edges and provider maps. Calling it again
// rebuilds the graph from scratch.
func (g *ModuleGraph) Build() {
	g.reset()
	g.collectModules()
	g.assignOwnership()

	for _, node := range g.Modules() {
		fa := g.files[node.FilePath]
		g.linkImports(node, fa)
		g.collectProviders(node, fa)
		g.collectOwnedClasses(node)
		g.collectExports(node, fa)
		node.Adapters = node.Definition.Adapters
	}

	g.reportOrphanProviders()
}

// Modules returns every module ordered by name
func (g *ModuleGraph) Modules() []*ModuleNode {
	names := g.modules.List()
	slices.SortFunc(names, utils.CompareCodePoint)

	out := make([]*ModuleNode, 0, g.modules.Size())
	for _, name := range names {
		node, _ := g.modules.Get(name)
		out = append(out, node)
	}
	return out
}

// Module returns the module named name
func (g *ModuleGraph) Module(name string) (*ModuleNode, bool) {
	return g.modules.Get(name)
}

// ModuleForFile returns the module owning filePath
func (g *ModuleGraph) ModuleForFile(filePath string) (*ModuleNode, bool) {
	node, ok := g.owners[filePath]
	return node, ok
}

// Orphans returns files outside every module directory
func (g *ModuleGraph) Orphans() []string {
	return slices.Clone(g.orphans)
}

// File returns the analysis of filePath
func (g *ModuleGraph) File(filePath string) (*models.FileAnalysis, bool) {
	fa, ok := g.files[filePath]
	return fa, ok
}

func (g *ModuleGraph) sortedPaths() []string {
	paths := make([]string, 0, len(g.files))
	for path := range g.files {
		paths = append(paths, path)
	}
	slices.SortFunc(paths, utils.CompareCodePoint)
	return paths
}

func (g *ModuleGraph) collectModules() {
	for _, path := range g.sortedPaths() {
		fa := g.files[path]
		if fa == nil || (fa.ModuleDefinition == nil && len(fa.DefineModuleCalls) == 0) {
			continue
		}

		def := fa.ModuleDefinition
		if def == nil {
			def = &models.ModuleDefinition{Imports: map[string]string{}}
		}

		name := moduleName(fa)
		node := newModuleNode(name, path, def)
		if err := g.modules.Register(name, node); err != nil {
			existing, _ := g.modules.Get(name)
			g.report(diagnostics.Params{
				Code:     CodeDuplicateModule,
				Severity: diagnostics.SeverityError,
				Summary:  fmt.Sprintf("Module %s is defined more than once", name),
				Reason:   fmt.Sprintf("module %s is already defined in %s", name, existing.FilePath),
				File:     path,
			})
			continue
		}

		g.byFile[path] = node
		g.owners[path] = node
		g.addBinding(name, node)
		for _, call := range fa.DefineModuleCalls {
			g.addBinding(call.ExportedName, node)
			g.addBinding(call.LocalName, node)
		}
	}
}

func (g *ModuleGraph) addBinding(name string, node *ModuleNode) {
	if name == "" {
		return
	}
	if _, taken := g.bindings[name]; !taken {
		g.bindings[name] = node
	}
}

// moduleName prefers the declared name, then the binding the definition is
// exported or assigned under, then the file path.
func moduleName(fa *models.FileAnalysis) string {
	if def := fa.ModuleDefinition; def != nil && def.Name != "" {
		return def.Name
	}
	for _, call := range fa.DefineModuleCalls {
		if call.ExportedName != "" {
			return call.ExportedName
		}
		if call.LocalName != "" {
			return call.LocalName
		}
	}
	return fa.FilePath
}

func (g *ModuleGraph) assignOwnership() {
	discovery := analyzer.NewModuleDiscovery(g.sortedPaths(), g.moduleFileName)

	for marker, owned := range discovery.Discover() {
		node, ok := g.byFile[marker]
		if !ok {
			continue
		}
		node.OwnedFiles = analyzer.SortedFiles(owned)
		for _, file := range node.OwnedFiles {
			if _, isModule := g.byFile[file]; !isModule {
				g.owners[file] = node
			}
		}
	}

	for _, file := range analyzer.SortedFiles(discovery.Orphans()) {
		if _, isModule := g.byFile[file]; !isModule {
			g.orphans = append(g.orphans, file)
		}
	}
}

func (g *ModuleGraph) linkImports(node *ModuleNode, fa *models.FileAnalysis) {
	def := node.Definition

	if def.Dynamic != nil {
		g.report(diagnostics.Params{
			Code:     CodeDynamicModule,
			Severity: diagnostics.SeverityWarning,
			Summary:  fmt.Sprintf("Module %s is not defined with an object literal", node.Name),
			Reason:   fmt.Sprintf("defineModule receives %s, so its imports, providers and exports are unknown", def.Dynamic.String()),
			File:     node.FilePath,
		})
	}

	for _, local := range sortedKeys(def.Imports) {
		specifier := def.Imports[local]
		target := g.resolveModuleImport(fa, local, specifier)
		if target == nil {
			node.DynamicImports = append(node.DynamicImports, models.Reference(local))
			g.report(diagnostics.Params{
				Code:     CodeUnresolvedModuleImport,
				Severity: diagnostics.SeverityWarning,
				Summary:  fmt.Sprintf("Module %s imports %s which is not a known module", node.Name, local),
				Reason:   fmt.Sprintf("%s from %q does not resolve to a module definition", local, specifier),
				File:     node.FilePath,
			})
			continue
		}
		node.AddImport(target)
	}

	for _, entry := range def.DynamicImports {
		node.DynamicImports = append(node.DynamicImports, entry)
		g.report(diagnostics.Params{
			Code:     CodeUnresolvedModuleImport,
			Severity: diagnostics.SeverityWarning,
			Summary:  fmt.Sprintf("Module %s has an import that cannot be resolved statically", node.Name),
			Reason:   fmt.Sprintf("import entry %s is not a statically imported module binding", entry.String()),
			File:     node.FilePath,
		})
	}
}

func (g *ModuleGraph) resolveModuleImport(fa *models.FileAnalysis, local, specifier string) *ModuleNode {
	if fa != nil && !isBareSpecifier(specifier) {
		if path, ok := g.resolveFile(fa.FilePath, specifier); ok {
			if target, isModule := g.byFile[path]; isModule {
				return target
			}
		}
	}

	if target, ok := g.bindings[importedName(fa, local)]; ok {
		return target
	}
	return g.bindings[local]
}

// resolveFile maps an import specifier written in from to an analyzed file
func (g *ModuleGraph) resolveFile(from, specifier string) (string, bool) {
	base := specifier
	if !filepath.IsAbs(base) {
		base = filepath.Join(filepath.Dir(from), specifier)
	}
	base = filepath.Clean(base)

	candidates := []string{base}
	if ext := filepath.Ext(base); ext == ".js" || ext == ".jsx" {
		trimmed := strings.TrimSuffix(base, ext)
		candidates = append(candidates, trimmed+".ts", trimmed+".tsx")
	}
	candidates = append(candidates,
		base+".ts",
		base+".tsx",
		filepath.Join(base, "index.ts"),
		filepath.Join(base, "index.tsx"),
	)
	if g.moduleFileName != "" {
		candidates = append(candidates, filepath.Join(base, g.moduleFileName))
	}

	for _, candidate := range candidates {
		if _, ok := g.files[candidate]; ok {
			return candidate, true
		}
	}
	return "", false
}

// importedName maps a local binding to the name it was exported under
func importedName(fa *models.FileAnalysis, local string) string {
	if fa == nil {
		return local
	}
	for _, entry := range fa.ImportEntries {
		if entry.Local != local || entry.Namespace || entry.Default {
			continue
		}
		return entry.Imported
	}
	return local
}

func isBareSpecifier(specifier string) bool {
	return !utils.IsRelativeSpecifier(specifier) && !utils.IsAbsoluteSpecifier(specifier)
}

func (g *ModuleGraph) collectExports(node *ModuleNode, fa *models.FileAnalysis) {
	for _, entry := range node.Definition.Exports {
		if name, ok := entry.TokenName(); ok {
			if entry.Kind == models.KindReference {
				name = importedName(fa, name)
			}
			node.AddExport(name)
		}
	}
}

func (g *ModuleGraph) report(p diagnostics.Params) {
	g.buildDiagnostics = append(g.buildDiagnostics, diagnostics.Build(p))
}
