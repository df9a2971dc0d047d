package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/bunner/internal/diagnostics"
	"github.com/toyz/bunner/internal/errors"
)

// ErrorReporter renders pipeline errors for humans
type ErrorReporter struct {
	out     io.Writer
	verbose bool

	header *color.Color
	warn   *color.Color
	dim    *color.Color
}

// NewErrorReporter creates a reporter writing to out. A nil writer means stderr.
func NewErrorReporter(out io.Writer, verbose bool) *ErrorReporter {
	if out == nil {
		out = os.Stderr
	}
	return &ErrorReporter{
		out:     out,
		verbose: verbose,
		header:  color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		dim:     color.New(color.FgHiBlack),
	}
}

// ReportWarning prints a one line warning
func (r *ErrorReporter) ReportWarning(message string) {
	r.warn.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
}

// ReportError prints err with whatever context it carries
func (r *ErrorReporter) ReportError(err error) {
	if err == nil {
		return
	}

	r.header.Fprintf(r.out, "\nERROR: Build Failed\n")
	fmt.Fprintf(r.out, "===================\n\n")

	var reportErr *diagnostics.ReportError
	var multiErr *errors.MultipleErrors
	var bunnerErr errors.BunnerError
	switch {
	case stderrors.As(err, &reportErr):
		r.reportDiagnostic(reportErr.Diagnostic)
	case stderrors.As(err, &multiErr) && !multiErr.IsEmpty():
		fmt.Fprintf(r.out, "%d errors\n\n", multiErr.Count())
		for i, each := range multiErr.Errors {
			if i > 0 {
				fmt.Fprintf(r.out, "\n")
			}
			r.reportBunnerError(each)
		}
	case stderrors.As(err, &bunnerErr):
		r.reportBunnerError(bunnerErr)
	default:
		fmt.Fprintf(r.out, "Message: %s\n", err.Error())
	}

	fmt.Fprintf(r.out, "\n")
}

func (r *ErrorReporter) reportDiagnostic(d diagnostics.Diagnostic) {
	r.printHeader(fmt.Sprintf("Diagnostic %s", d.Code))
	fmt.Fprintf(r.out, "Message: %s\n", d.Summary)
	if d.File() != "" {
		fmt.Fprintf(r.out, "File: %s\n", d.File())
	}
	if len(d.How) > 0 {
		hints := make([]string, len(d.How))
		for i, h := range d.How {
			hints[i] = h.Title
		}
		fmt.Fprintf(r.out, "\n")
		r.printSuggestions(hints)
	}
}

func (r *ErrorReporter) reportBunnerError(err errors.BunnerError) {
	r.printHeader(errorTitle(err.ErrorCode()))

	fmt.Fprintf(r.out, "Message: %s\n", err.Error())

	if loc := err.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, "Location: %s\n", loc.String())
	}

	if ctx := err.Context(); len(ctx) > 0 {
		r.printContext(ctx)
	}
	if hints := err.Suggestions(); len(hints) > 0 {
		fmt.Fprintf(r.out, "\n")
		r.printSuggestions(hints)
	}

	if r.verbose {
		r.printCauseChain(err.Unwrap())
	}
}

func (r *ErrorReporter) printHeader(title string) {
	fmt.Fprintf(r.out, "Type: %s\n", title)
	fmt.Fprintf(r.out, "%s\n\n", strings.Repeat("-", len(title)+6))
}

// printContext prints context entries sorted by key
func (r *ErrorReporter) printContext(ctx map[string]interface{}) {
	keys := make([]string, 0, len(ctx))
	for key := range ctx {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	fmt.Fprintf(r.out, "\nContext:\n")
	for _, key := range keys {
		fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), ctx[key])
	}
}

func (r *ErrorReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")
	for i, suggestion := range suggestions {
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, suggestion)
	}
}

func (r *ErrorReporter) printCauseChain(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(r.out, "\n")
	r.dim.Fprintf(r.out, "Error Chain:\n")
	for level := 1; err != nil; level++ {
		r.dim.Fprintf(r.out, "    %d. %s\n", level, err.Error())
		err = stderrors.Unwrap(err)
	}
}

func errorTitle(code errors.ErrorCode) string {
	switch code {
	case errors.ConfigLoadErrorCode:
		return "Config Error"
	case errors.ScanErrorCode:
		return "Scan Error"
	case errors.ParseErrorCode:
		return "Parse Error"
	case errors.GraphErrorCode:
		return "Module Graph Error"
	case errors.GenerationErrorCode:
		return "Code Generation Error"
	case errors.FileSystemErrorCode:
		return "File System Error"
	case errors.WatchErrorCode:
		return "Watch Error"
	case errors.DiagnosticErrorCode:
		return "Diagnostic Error"
	default:
		return "Unknown Error"
	}
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}
