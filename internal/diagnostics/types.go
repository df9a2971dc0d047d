package diagnostics

// Severity ranks a diagnostic
type Severity string

const (
	SeverityTrace   Severity = "trace"
	SeverityDebug   Severity = "debug"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeverityFatal   Severity = "fatal"
)

var severityOrder = []Severity{
	SeverityTrace,
	SeverityDebug,
	SeverityInfo,
	SeverityWarning,
	SeverityError,
	SeverityFatal,
}

// Rank returns the position of s in the severity order. Unknown severities
// sort after fatal.
func (s Severity) Rank() int {
	for i, known := range severityOrder {
		if known == s {
			return i
		}
	}
	return len(severityOrder)
}

// AtLeast reports whether s is as severe as other
func (s Severity) AtLeast(other Severity) bool {
	return s.Rank() >= other.Rank()
}

// Location points at a file involved in a diagnostic
type Location struct {
	File string `json:"file" yaml:"file"`
}

// Hint is a suggested remediation
type Hint struct {
	Title string `json:"title" yaml:"title"`
}

// Diagnostic is a single reported condition
type Diagnostic struct {
	Severity Severity   `json:"severity" yaml:"severity"`
	Code     string     `json:"code" yaml:"code"`
	Summary  string     `json:"summary" yaml:"summary"`
	Why      string     `json:"why" yaml:"why"`
	Where    []Location `json:"where" yaml:"where"`
	How      []Hint     `json:"how" yaml:"how"`
}

// File returns the first associated file, or ""
func (d Diagnostic) File() string {
	if len(d.Where) == 0 {
		return ""
	}
	return d.Where[0].File
}

// Params are the inputs to Build
type Params struct {
	Code     string
	Severity Severity
	Summary  string
	Reason   string
	File     string
}
