package templates

// Template names
const (
	InjectorTemplateName = "injector"
	EntryTemplateName    = "entry"
)

// GeneratedHeader opens every generated file
const GeneratedHeader = "// Code generated by bunner. DO NOT EDIT."

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerInjectorTemplates()
	registry.registerEntryTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	template, exists := tr.templates[name]
	return template, exists
}

// registerInjectorTemplates registers the container factory file
func (tr *TemplateRegistry) registerInjectorTemplates() {
	tr.templates[InjectorTemplateName] = GeneratedHeader + `
{{range .Imports}}{{.}}
{{end}}
const deepFreeze = <T>(value: T): T => {
  if (value !== null && typeof value === "object" && !Object.isFrozen(value)) {
    Object.freeze(value);
    for (const key of Object.getOwnPropertyNames(value)) {
      deepFreeze((value as Record<string, unknown>)[key]);
    }
  }
  return value;
};

export const adapterConfig = deepFreeze({{.AdapterConfig}});

export const moduleGraph = deepFreeze({{.ModuleGraph}});

export function createContainer() {
  const container = new {{.Container}}();
{{range .Registrations}}
  // {{.Module}}
  container.register({{quote .Key}}, {
    token: {{quote .Token}},
    scope: {{quote .Scope}},
    factory: {{.Factory}},
  });
{{end}}
  return container;
}
`
}

// registerEntryTemplates registers the bootstrap entry file
func (tr *TemplateRegistry) registerEntryTemplates() {
	tr.templates[EntryTemplateName] = GeneratedHeader + `
const runtimeFileName = './runtime.js';

async function bootstrap() {
{{if .IsDev}}  process.env.BUNNER_DEV = "1";
{{end}}  const runtime = await import(runtimeFileName);
  const globals = globalThis as Record<string, unknown>;
  globals.__BUNNER_CONTAINER__ = runtime.createContainer();
  globals.__BUNNER_ADAPTER_CONFIG__ = runtime.adapterConfig;
  await import({{quote .EntryImport}});
}

await bootstrap();
`
}

// DefaultTemplateRegistry holds the built-in templates
var DefaultTemplateRegistry = NewTemplateRegistry()
