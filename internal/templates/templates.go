package templates

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

// RegistrationData is one container registration
type RegistrationData struct {
	Module  string
	Key     string
	Token   string
	Scope   string
	Factory string // TypeScript expression
}

// InjectorData feeds the injector template
type InjectorData struct {
	Imports       []string
	Container     string
	AdapterConfig string
	ModuleGraph   string
	Registrations []RegistrationData
}

// EntryData feeds the entry template
type EntryData struct {
	EntryImport string
	IsDev       bool
}

// Render executes a registered template
func Render(name string, data interface{}) (string, error) {
	templateStr, ok := DefaultTemplateRegistry.Get(name)
	if !ok {
		return "", fmt.Errorf("template %s is not registered", name)
	}
	return executeTemplate(name, templateStr, data)
}

// executeTemplate executes a template with the given data
func executeTemplate(name, templateStr string, data interface{}) (string, error) {
	funcMap := template.FuncMap{
		"quote": QuoteString,
	}

	tmpl, err := template.New(name).Funcs(funcMap).Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}

// QuoteString renders s as a double quoted TypeScript string literal
func QuoteString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
