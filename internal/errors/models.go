package errors

import "fmt"

// ConfigLoadError reports a missing, conflicting or invalid project config file
type ConfigLoadError struct {
	*BaseError
	SourcePath string // config file involved, empty when none was found
}

// NewConfigLoadError creates a ConfigLoadError for sourcePath
func NewConfigLoadError(message, sourcePath string) *ConfigLoadError {
	base := New(ConfigLoadErrorCode, message)
	if sourcePath != "" {
		base.WithLocation(SourceLocation{File: sourcePath})
	}
	return &ConfigLoadError{BaseError: base, SourcePath: sourcePath}
}

// ParseError reports a source file the analyzer could not read or parse
type ParseError struct {
	*BaseError
	FilePath string
}

// NewParseError creates a ParseError for filePath
func NewParseError(filePath string, cause error) *ParseError {
	return &ParseError{
		BaseError: Wrap(ParseErrorCode, "failed to parse source file", cause).
			WithLocation(SourceLocation{File: filePath}),
		FilePath: filePath,
	}
}

// GenerationError reports a failure while rendering a generated file
type GenerationError struct {
	*BaseError
	Target string // generated file name
	Stage  string // template, render or write
}

// NewGenerationError creates a GenerationError
func NewGenerationError(target, stage, message string) *GenerationError {
	return &GenerationError{
		BaseError: New(GenerationErrorCode, fmt.Sprintf("%s: %s", target, message)).
			WithContext("stage", stage),
		Target: target,
		Stage:  stage,
	}
}
