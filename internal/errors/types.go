package errors

import (
	"fmt"
	"strings"
)

// BunnerError defines the base interface for all compiler pipeline errors
type BunnerError interface {
	error
	ErrorCode() ErrorCode
	Location() SourceLocation
	Context() map[string]interface{}
	Suggestions() []string
	Unwrap() error
}

// ErrorCode represents the pipeline stage that failed
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota

	// Input stages
	ConfigLoadErrorCode
	ScanErrorCode
	ParseErrorCode

	// Graph and output stages
	GraphErrorCode
	GenerationErrorCode
	FileSystemErrorCode

	// Tooling
	WatchErrorCode
	DiagnosticErrorCode
)

// String returns the string representation of the error code
func (e ErrorCode) String() string {
	switch e {
	case ConfigLoadErrorCode:
		return "ConfigLoadError"
	case ScanErrorCode:
		return "ScanError"
	case ParseErrorCode:
		return "ParseError"
	case GraphErrorCode:
		return "GraphError"
	case GenerationErrorCode:
		return "GenerationError"
	case FileSystemErrorCode:
		return "FileSystemError"
	case WatchErrorCode:
		return "WatchError"
	case DiagnosticErrorCode:
		return "DiagnosticError"
	default:
		return "UnknownError"
	}
}

// SourceLocation points at a position in a project file
type SourceLocation struct {
	File   string // file path
	Line   int    // 1-based, 0 when unknown
	Column int    // 1-based, 0 when unknown
}

func (s SourceLocation) String() string {
	switch {
	case s.File == "":
		return "unknown location"
	case s.Line == 0:
		return s.File
	case s.Column == 0:
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// IsEmpty returns true if the location has no file
func (s SourceLocation) IsEmpty() bool {
	return s.File == ""
}

// BaseError is the common BunnerError implementation
type BaseError struct {
	Code        ErrorCode
	Message     string
	Loc         SourceLocation
	Cause       error
	ContextData map[string]interface{}
	Hints       []string
}

func (e *BaseError) Error() string {
	msg := e.Message
	if !e.Loc.IsEmpty() {
		msg = fmt.Sprintf("%s: %s", e.Loc.String(), msg)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *BaseError) ErrorCode() ErrorCode {
	return e.Code
}

func (e *BaseError) Location() SourceLocation {
	return e.Loc
}

func (e *BaseError) Context() map[string]interface{} {
	if e.ContextData == nil {
		return make(map[string]interface{})
	}
	return e.ContextData
}

func (e *BaseError) Suggestions() []string {
	return e.Hints
}

func (e *BaseError) Unwrap() error {
	return e.Cause
}

// WithLocation sets the source location
func (e *BaseError) WithLocation(loc SourceLocation) *BaseError {
	e.Loc = loc
	return e
}

// WithCause sets the underlying cause
func (e *BaseError) WithCause(cause error) *BaseError {
	e.Cause = cause
	return e
}

// WithContext adds one context entry
func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	if e.ContextData == nil {
		e.ContextData = make(map[string]interface{})
	}
	e.ContextData[key] = value
	return e
}

// WithSuggestion appends a remediation hint
func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	e.Hints = append(e.Hints, suggestion)
	return e
}

// New creates a BaseError with the given code and message
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
		Hints:   make([]string, 0),
	}
}

// Newf creates a BaseError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BaseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a BaseError around cause
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return New(code, message).WithCause(cause)
}

// MultipleErrors collects errors from independent work items, e.g. one per file
type MultipleErrors struct {
	Errors []BunnerError
}

func (e *MultipleErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	}

	messages := make([]string, 0, len(e.Errors))
	for i, err := range e.Errors {
		messages = append(messages, fmt.Sprintf("  %d. %s", i+1, err.Error()))
	}
	return fmt.Sprintf("multiple errors (%d total):\n%s", len(e.Errors), strings.Join(messages, "\n"))
}

// Unwrap exposes every collected error to errors.Is and errors.As
func (e *MultipleErrors) Unwrap() []error {
	out := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		out[i] = err
	}
	return out
}

// Add appends an error
func (e *MultipleErrors) Add(err BunnerError) {
	e.Errors = append(e.Errors, err)
}

// IsEmpty returns true if nothing was collected
func (e *MultipleErrors) IsEmpty() bool {
	return len(e.Errors) == 0
}

// Count returns the number of collected errors
func (e *MultipleErrors) Count() int {
	return len(e.Errors)
}

// ErrOrNil returns nil for an empty collection
func (e *MultipleErrors) ErrOrNil() error {
	if e == nil || e.IsEmpty() {
		return nil
	}
	return e
}

// NewMultipleErrors creates an empty collection
func NewMultipleErrors() *MultipleErrors {
	return &MultipleErrors{
		Errors: make([]BunnerError, 0),
	}
}
