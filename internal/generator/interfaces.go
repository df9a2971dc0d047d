package generator

import "github.com/toyz/bunner/internal/graph"

// CodeGenerator renders the container factory for a built module graph
type CodeGenerator interface {
	Generate(g *graph.ModuleGraph, registry *ImportRegistry) (string, error)
}

var _ CodeGenerator = (*InjectorGenerator)(nil)
