package diagnostics

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Format selects the structured output encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user supplied format name
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown diagnostics format %q (expected json or yaml)", name)
}

// Reporter writes sorted diagnostic batches
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a reporter writing to out. A nil writer means stderr.
func NewReporter(out io.Writer, format Format) *Reporter {
	if out == nil {
		out = os.Stderr
	}
	if format == "" {
		format = FormatJSON
	}
	return &Reporter{out: out, format: format}
}

// Report sorts diags and writes them as one structured document
func (r *Reporter) Report(diags []Diagnostic) error {
	sorted := Sort(diags)
	if sorted == nil {
		sorted = []Diagnostic{}
	}

	switch r.format {
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(sorted); err != nil {
			return err
		}
		return enc.Close()
	default:
		payload, err := json.MarshalIndent(sorted, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(r.out, string(payload))
		return err
	}
}
