package diagnostics

import (
	"fmt"
	"slices"

	"github.com/toyz/bunner/internal/utils"
)

// Build renders the templated diagnostic for params
func Build(p Params) Diagnostic {
	prefix := fmt.Sprintf("[%s/%s]", p.Severity, p.Code)

	return Diagnostic{
		Severity: p.Severity,
		Code:     p.Code,
		Summary:  fmt.Sprintf("%s %s (%s)", prefix, p.Summary, p.File),
		Why:      fmt.Sprintf("%s %s (%s)", prefix, p.Reason, p.File),
		Where:    []Location{{File: p.File}},
		How:      []Hint{{Title: fmt.Sprintf("%s Fix %s in %s", prefix, p.Code, p.File)}},
	}
}

// Sort returns a copy of diags ordered by severity rank, code, summary and
// first file. The input slice is not modified.
func Sort(diags []Diagnostic) []Diagnostic {
	sorted := slices.Clone(diags)
	slices.SortStableFunc(sorted, compare)
	return sorted
}

func compare(left, right Diagnostic) int {
	if diff := left.Severity.Rank() - right.Severity.Rank(); diff != 0 {
		return diff
	}
	if diff := utils.CompareCodePoint(left.Code, right.Code); diff != 0 {
		return diff
	}
	if diff := utils.CompareCodePoint(left.Summary, right.Summary); diff != 0 {
		return diff
	}
	return utils.CompareCodePoint(left.File(), right.File())
}

// FirstAtLeast returns the first diagnostic, in sorted order, whose severity
// is at least threshold
func FirstAtLeast(diags []Diagnostic, threshold Severity) (Diagnostic, bool) {
	for _, d := range Sort(diags) {
		if d.Severity.AtLeast(threshold) {
			return d, true
		}
	}
	return Diagnostic{}, false
}

// Count returns the number of diagnostics per severity
func Count(diags []Diagnostic) map[string]int {
	counts := make(map[string]int)
	for _, d := range diags {
		counts[string(d.Severity)]++
	}
	return counts
}
