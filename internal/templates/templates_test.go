package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRegistry(t *testing.T) {
	registry := NewTemplateRegistry()

	for _, name := range []string{InjectorTemplateName, EntryTemplateName} {
		tmpl, ok := registry.Get(name)
		require.True(t, ok, name)
		assert.True(t, strings.HasPrefix(tmpl, GeneratedHeader), name)
	}

	_, ok := registry.Get("missing")
	assert.False(t, ok)
}

func TestRender_Injector(t *testing.T) {
	out, err := Render(InjectorTemplateName, InjectorData{
		Imports:       []string{`import { Container } from "@bunner/core";`},
		Container:     "Container",
		AdapterConfig: "{}",
		ModuleGraph:   "{}",
		Registrations: []RegistrationData{{
			Module:  "AppModule",
			Key:     "AppModule::AppService",
			Token:   "AppService",
			Scope:   "singleton",
			Factory: "(c) => new AppService()",
		}},
	})
	require.NoError(t, err)

	assert.Contains(t, out, `import { Container } from "@bunner/core";`)
	assert.Contains(t, out, "export function createContainer()")
	assert.Contains(t, out, "const container = new Container()")
	assert.Contains(t, out, `container.register("AppModule::AppService", {`)
	assert.Contains(t, out, `scope: "singleton",`)
	assert.Contains(t, out, "factory: (c) => new AppService(),")
	assert.Contains(t, out, "export const adapterConfig = deepFreeze({});")
}

func TestRender_Entry(t *testing.T) {
	out, err := Render(EntryTemplateName, EntryData{EntryImport: "../src/main", IsDev: true})
	require.NoError(t, err)

	assert.Contains(t, out, "const runtimeFileName = './runtime.js'")
	assert.Contains(t, out, "await import(runtimeFileName)")
	assert.Contains(t, out, `await import("../src/main")`)
	assert.Contains(t, out, "await bootstrap();")
	assert.Contains(t, out, `process.env.BUNNER_DEV = "1"`)

	prod, err := Render(EntryTemplateName, EntryData{EntryImport: "../src/main"})
	require.NoError(t, err)
	assert.NotContains(t, prod, "BUNNER_DEV")
}

func TestRender_Unknown(t *testing.T) {
	_, err := Render("nope", nil)
	assert.Error(t, err)
}

func TestExecuteTemplate_ParseError(t *testing.T) {
	_, err := executeTemplate("broken", "{{.Missing", nil)
	assert.Error(t, err)
}

func TestQuoteString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{"a\nb", `"a\nb"`},
		{"<tag>&", `"<tag>&"`},
		{"line sep", `"line\u2028sep"`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, QuoteString(tt.in))
		})
	}
}
