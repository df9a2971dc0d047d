package diagnostics

// ReportError carries the diagnostic that failed a build
type ReportError struct {
	Diagnostic Diagnostic
}

// NewReportError wraps d
func NewReportError(d Diagnostic) *ReportError {
	return &ReportError{Diagnostic: d}
}

func (e *ReportError) Error() string {
	return e.Diagnostic.Summary
}
