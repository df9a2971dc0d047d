package graph

import (
	"slices"

	"github.com/toyz/bunner/internal/models"
	"github.com/toyz/bunner/internal/utils"
)

// ModuleNode is one module definition and its resolved relationships.
// Dynamic entries are kept apart from the resolved sets.
type ModuleNode struct {
	Name       string
	FilePath   string
	Definition *models.ModuleDefinition
	OwnedFiles []string

	imports                []*ModuleNode
	DynamicImports         []models.Value
	providers              map[string]*models.ProviderRef
	exports                map[string]struct{}
	controllers            map[string]struct{}
	DynamicProviderBundles []models.Value
	Adapters               *models.Value

	visiting bool
	visited  bool
}

func newModuleNode(name, filePath string, def *models.ModuleDefinition) *ModuleNode {
	return &ModuleNode{
		Name:        name,
		FilePath:    filePath,
		Definition:  def,
		providers:   make(map[string]*models.ProviderRef),
		exports:     make(map[string]struct{}),
		controllers: make(map[string]struct{}),
	}
}

// AddImport adds an edge to target. Repeated edges are ignored.
func (n *ModuleNode) AddImport(target *ModuleNode) bool {
	if slices.Contains(n.imports, target) {
		return false
	}
	n.imports = append(n.imports, target)
	return true
}

// Imports returns the import edges in insertion order
func (n *ModuleNode) Imports() []*ModuleNode {
	return slices.Clone(n.imports)
}

// AddProvider registers p. It returns false if the token is already bound.
func (n *ModuleNode) AddProvider(p *models.ProviderRef) bool {
	if _, exists := n.providers[p.Token]; exists {
		return false
	}
	n.providers[p.Token] = p
	return true
}

// Provider returns the provider bound to token in this module
func (n *ModuleNode) Provider(token string) (*models.ProviderRef, bool) {
	p, ok := n.providers[token]
	return p, ok
}

// Providers returns the module's providers ordered by token
func (n *ModuleNode) Providers() []*models.ProviderRef {
	tokens := sortedKeys(n.providers)
	out := make([]*models.ProviderRef, len(tokens))
	for i, token := range tokens {
		out[i] = n.providers[token]
	}
	return out
}

// AddExport marks token as exported
func (n *ModuleNode) AddExport(token string) {
	n.exports[token] = struct{}{}
}

// Exports reports whether token is exported
func (n *ModuleNode) Exports(token string) bool {
	_, ok := n.exports[token]
	return ok
}

// ExportedTokens returns exported tokens in code-point order
func (n *ModuleNode) ExportedTokens() []string {
	return sortedKeys(n.exports)
}

// AddController records a controller class name
func (n *ModuleNode) AddController(name string) {
	n.controllers[name] = struct{}{}
}

// Controllers returns controller names in code-point order
func (n *ModuleNode) Controllers() []string {
	return sortedKeys(n.controllers)
}

func (n *ModuleNode) resetTraversal() {
	n.visiting = false
	n.visited = false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, utils.CompareCodePoint)
	return keys
}
