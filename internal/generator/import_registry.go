package generator

import (
	"fmt"
	"slices"

	"github.com/toyz/bunner/internal/utils"
)

type importEntry struct {
	path         string
	alias        string
	originalName string
}

// ImportRegistry hands out collision free local aliases for imported symbols
// and renders the deduplicated import block.
type ImportRegistry struct {
	outputDir string
	imports   map[string]importEntry // alias -> entry
	aliases   map[string]struct{}
	fileNames map[string]string // path::name -> alias
}

// NewImportRegistry creates a registry whose paths are relative to outputDir
func NewImportRegistry(outputDir string) *ImportRegistry {
	return &ImportRegistry{
		outputDir: outputDir,
		imports:   make(map[string]importEntry),
		aliases:   make(map[string]struct{}),
		fileNames: make(map[string]string),
	}
}

// GetAlias returns the local name for symbolName imported from sourcePath.
// The first source to claim a name gets it verbatim, later ones get Name_1,
// Name_2 and so on.
func (r *ImportRegistry) GetAlias(symbolName, sourcePath string) string {
	key := sourcePath + "::" + symbolName
	if alias, ok := r.fileNames[key]; ok {
		return alias
	}

	alias := symbolName
	for counter := 1; ; counter++ {
		if _, taken := r.aliases[alias]; !taken {
			break
		}
		alias = fmt.Sprintf("%s_%d", symbolName, counter)
	}

	r.aliases[alias] = struct{}{}
	r.fileNames[key] = alias

	path := sourcePath
	if utils.IsAbsoluteSpecifier(sourcePath) {
		path = utils.GetRelativeImportPath(r.outputDir+"/dummy.ts", sourcePath)
	}

	r.imports[alias] = importEntry{path: path, alias: alias, originalName: symbolName}
	return alias
}

// AddImport is GetAlias under the name used by generators
func (r *ImportRegistry) AddImport(name, sourcePath string) string {
	return r.GetAlias(name, sourcePath)
}

// GetImportStatements renders one import line per symbol, sorted by path,
// original name and alias.
func (r *ImportRegistry) GetImportStatements() []string {
	entries := make([]importEntry, 0, len(r.imports))
	for _, entry := range r.imports {
		entries = append(entries, entry)
	}

	slices.SortFunc(entries, func(a, b importEntry) int {
		if diff := utils.CompareCodePoint(a.path, b.path); diff != 0 {
			return diff
		}
		if diff := utils.CompareCodePoint(a.originalName, b.originalName); diff != 0 {
			return diff
		}
		return utils.CompareCodePoint(a.alias, b.alias)
	})

	statements := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.alias == entry.originalName {
			statements = append(statements, fmt.Sprintf("import { %s } from \"%s\";", entry.originalName, entry.path))
			continue
		}
		statements = append(statements, fmt.Sprintf("import { %s as %s } from \"%s\";", entry.originalName, entry.alias, entry.path))
	}
	return statements
}
