package cli

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/bunner/internal/diagnostics"
	"github.com/toyz/bunner/internal/errors"
)

func TestErrorReporter_ReportWarning(t *testing.T) {
	var buf bytes.Buffer
	NewErrorReporter(&buf, false).ReportWarning("This is a test warning")
	assert.Contains(t, buf.String(), "This is a test warning")
}

func TestErrorReporter_BunnerError(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewErrorReporter(&buf, false)

	err := errors.NewConfigLoadError("both bunner.json and bunner.jsonc exist", "/project/bunner.json")
	err.WithContext("project_root", "/project")
	err.WithSuggestion("Keep exactly one config file")

	reporter.ReportError(fmt.Errorf("load: %w", err))
	out := buf.String()

	assert.Contains(t, out, "ERROR: Build Failed")
	assert.Contains(t, out, "Type: Config Error")
	assert.Contains(t, out, "both bunner.json and bunner.jsonc exist")
	assert.Contains(t, out, "Location: /project/bunner.json")
	assert.Contains(t, out, "Project Root: /project")
	assert.Contains(t, out, "1. Keep exactly one config file")
	assert.NotContains(t, out, "Error Chain:")
}

func TestErrorReporter_VerboseCauseChain(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewErrorReporter(&buf, true)

	cause := fmt.Errorf("permission denied")
	reporter.ReportError(errors.WrapFileSystemError("write", "/out/runtime.ts", cause))
	out := buf.String()

	assert.Contains(t, out, "Type: File System Error")
	assert.Contains(t, out, "Operation: write")
	assert.Contains(t, out, "Error Chain:")
	assert.Contains(t, out, "permission denied")
}

func TestErrorReporter_Diagnostic(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewErrorReporter(&buf, false)

	d := diagnostics.Build(diagnostics.Params{
		Code:     "MODULE_CYCLE",
		Severity: diagnostics.SeverityError,
		Summary:  "Module cycle detected: A -> B -> A",
		Reason:   "modules import each other",
		File:     "/app/src/a/__module__.ts",
	})
	reporter.ReportError(diagnostics.NewReportError(d))
	out := buf.String()

	assert.Contains(t, out, "Type: Diagnostic MODULE_CYCLE")
	assert.Contains(t, out, "Module cycle detected: A -> B -> A")
	assert.Contains(t, out, "File: /app/src/a/__module__.ts")
	assert.Contains(t, out, "Fix MODULE_CYCLE in /app/src/a/__module__.ts")
}

func TestErrorReporter_PlainError(t *testing.T) {
	var buf bytes.Buffer
	NewErrorReporter(&buf, false).ReportError(fmt.Errorf("boom"))
	assert.Contains(t, buf.String(), "Message: boom")
}

func TestErrorReporter_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewErrorReporter(&buf, false).ReportError(nil)
	assert.Empty(t, buf.String())
}

func TestErrorReporter_MultipleErrors(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewErrorReporter(&buf, false)

	errs := errors.NewMultipleErrors()
	errs.Add(errors.WrapGenerateError("runtime.ts", "write", fmt.Errorf("disk full")))
	errs.Add(errors.WrapFileSystemError("write", "/out/entry.ts", fmt.Errorf("read-only")))

	reporter.ReportError(errs.ErrOrNil())
	out := buf.String()

	assert.Contains(t, out, "2 errors")
	assert.Contains(t, out, "Type: Code Generation Error")
	assert.Contains(t, out, "runtime.ts: failed to generate: disk full")
	assert.Contains(t, out, "Type: File System Error")
	assert.Contains(t, out, "Stage: write")
}
