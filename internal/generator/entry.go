package generator

import (
	"github.com/toyz/bunner/internal/errors"
	"github.com/toyz/bunner/internal/templates"
	"github.com/toyz/bunner/internal/utils"
)

// EntryGenerator renders the bootstrap file that loads the runtime and then
// the application's own entry module
type EntryGenerator struct{}

// NewEntryGenerator creates an entry generator
func NewEntryGenerator() *EntryGenerator {
	return &EntryGenerator{}
}

// Generate renders the entry source. entryPath is the import specifier of
// the application entry as seen from the generated file.
func (gen *EntryGenerator) Generate(entryPath string, isDev bool) (string, error) {
	out, err := templates.Render(templates.EntryTemplateName, templates.EntryData{
		EntryImport: utils.NormalizePath(entryPath),
		IsDev:       isDev,
	})
	if err != nil {
		return "", errors.WrapGenerateError("entry", "render", err)
	}
	return out, nil
}
