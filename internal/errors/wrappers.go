package errors

import "fmt"

// WrapParseError wraps a per-file analysis failure
func WrapParseError(filePath string, cause error) *ParseError {
	return NewParseError(filePath, cause)
}

// WrapGenerateError wraps a rendering failure for a generated file
func WrapGenerateError(target, stage string, cause error) *GenerationError {
	err := NewGenerationError(target, stage, "failed to generate")
	err.WithCause(cause)
	return err
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	return Wrap(FileSystemErrorCode, fmt.Sprintf("failed to %s '%s'", operation, path), cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapScanError wraps a source directory walk failure
func WrapScanError(dir string, cause error) *BaseError {
	return Wrap(ScanErrorCode, fmt.Sprintf("failed to scan '%s'", dir), cause).
		WithContext("path", dir).
		WithSuggestion("Check that sourceDir in the project config points at an existing directory")
}

// WrapWatchError wraps a watcher setup failure
func WrapWatchError(root string, cause error) *BaseError {
	return Wrap(WatchErrorCode, fmt.Sprintf("failed to watch '%s'", root), cause).
		WithContext("path", root)
}
