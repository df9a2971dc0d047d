package graph

import (
	"fmt"
	"strings"

	"github.com/toyz/bunner/internal/models"
)

type frame struct {
	node *ModuleNode
	next int
}

// DetectCycles walks the import edges depth first and returns every cycle
// found, each in traversal order. Traversal state is reset on every call.
func (g *ModuleGraph) DetectCycles() []models.CyclePath {
	modules := g.Modules()
	for _, node := range modules {
		node.resetTraversal()
	}

	var cycles []models.CyclePath
	for _, root := range modules {
		if root.visited {
			continue
		}

		root.visiting = true
		stack := []frame{{node: root}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(top.node.imports) {
				child := top.node.imports[top.next]
				top.next++

				switch {
				case child.visiting:
					cycles = append(cycles, cycleFrom(stack, child))
				case !child.visited:
					child.visiting = true
					stack = append(stack, frame{node: child})
				}
				continue
			}

			top.node.visiting = false
			top.node.visited = true
			stack = stack[:len(stack)-1]
		}
	}
	return cycles
}

// cycleFrom returns the stack suffix starting at the re-entered node
func cycleFrom(stack []frame, reentered *ModuleNode) models.CyclePath {
	start := 0
	for i, f := range stack {
		if f.node == reentered {
			start = i
			break
		}
	}

	path := make([]string, 0, len(stack)-start)
	for _, f := range stack[start:] {
		path = append(path, f.node.Name)
	}

	closing := path[len(path)-1]
	return models.CyclePath{
		Path: path,
		SuggestedFix: fmt.Sprintf(
			"Remove %s from the imports of %s, or inject the providers it needs lazily with inject(() => Token)",
			reentered.Name, closing),
	}
}

// FormatCycle renders a cycle as "A -> B -> C -> A"
func FormatCycle(c models.CyclePath) string {
	if len(c.Path) == 0 {
		return ""
	}
	return strings.Join(append(append([]string{}, c.Path...), c.Path[0]), " -> ")
}
