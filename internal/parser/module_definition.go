package parser

import (
	"strings"

	"github.com/toyz/bunner/internal/models"
)

// buildModuleDefinition reads the options object of the first defineModule
// call. Entries that cannot be evaluated statically are kept aside, never guessed.
func (w *fileWalker) buildModuleDefinition() {
	if len(w.result.DefineModuleCalls) == 0 {
		return
	}

	call := w.result.DefineModuleCalls[0]
	def := &models.ModuleDefinition{
		Providers:   make([]models.Value, 0),
		Imports:     make(map[string]string),
		Exports:     make([]models.Value, 0),
		Controllers: make([]models.Value, 0),
	}
	w.result.ModuleDefinition = def

	if len(call.Args) == 0 {
		return
	}

	options := w.deref(call.Args[0])
	if options.Kind != models.KindObject {
		dynamic := call.Args[0]
		def.Dynamic = &dynamic
		return
	}

	if v, ok := options.Get(OptionName); ok {
		if name, isString := w.deref(v).StringValue(); isString {
			def.Name = name
			def.NameDeclared = true
		}
	}

	if v, ok := options.Get(OptionProviders); ok {
		def.Providers = append(def.Providers, w.expandList(v, 0)...)
	}

	if v, ok := options.Get(OptionImports); ok {
		for _, entry := range w.expandList(v, 0) {
			local := entry.Text
			source, imported := w.result.Imports[local]
			if entry.Kind == models.KindReference && imported && !strings.Contains(local, ".") {
				def.Imports[local] = source
				continue
			}
			def.DynamicImports = append(def.DynamicImports, entry)
		}
	}

	if v, ok := options.Get(OptionExports); ok {
		def.Exports = append(def.Exports, w.expandList(v, 0)...)
	}

	if v, ok := options.Get(OptionControllers); ok {
		def.Controllers = append(def.Controllers, w.expandList(v, 0)...)
	}

	if v, ok := options.Get(OptionAdapters); ok {
		adapters := w.deref(v)
		def.Adapters = &adapters
	}
}

// deref follows references to top-level const initializers in this file
func (w *fileWalker) deref(v models.Value) models.Value {
	for depth := 0; depth < maxDerefDepth && v.Kind == models.KindReference; depth++ {
		local, ok := w.result.LocalValues[v.Text]
		if !ok {
			break
		}
		v = local
	}
	return v
}

// expandList flattens an array option, inlining spreads of local const arrays.
// A non-array option becomes a single entry so callers can report it.
func (w *fileWalker) expandList(v models.Value, depth int) []models.Value {
	v = w.deref(v)
	if v.Kind != models.KindArray {
		if v.Kind == models.KindUndefined {
			return nil
		}
		return []models.Value{v}
	}

	out := make([]models.Value, 0, len(v.Items))
	for _, item := range v.Items {
		if item.Kind == models.KindSpread && len(item.Items) == 1 && depth < maxDerefDepth {
			if inner := w.deref(item.Items[0]); inner.Kind == models.KindArray {
				out = append(out, w.expandList(inner, depth+1)...)
				continue
			}
		}
		out = append(out, item)
	}
	return out
}
