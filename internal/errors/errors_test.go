package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      *BaseError
		expected string
	}{
		{
			name:     "message only",
			err:      New(GraphErrorCode, "graph failed"),
			expected: "graph failed",
		},
		{
			name:     "with file location",
			err:      New(ParseErrorCode, "bad syntax").WithLocation(SourceLocation{File: "src/a.ts"}),
			expected: "src/a.ts: bad syntax",
		},
		{
			name:     "with line and column",
			err:      New(ParseErrorCode, "bad syntax").WithLocation(SourceLocation{File: "src/a.ts", Line: 3, Column: 7}),
			expected: "src/a.ts:3:7: bad syntax",
		},
		{
			name:     "with cause",
			err:      Wrap(FileSystemErrorCode, "failed to read", fmt.Errorf("permission denied")),
			expected: "failed to read: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestBaseErrorBuilders(t *testing.T) {
	err := Newf(GenerationErrorCode, "cannot render %s", "runtime.ts").
		WithContext("stage", "render").
		WithSuggestion("first").
		WithSuggestion("second")

	assert.Equal(t, GenerationErrorCode, err.ErrorCode())
	assert.Equal(t, "cannot render runtime.ts", err.Message)
	assert.Equal(t, "render", err.Context()["stage"])
	assert.Equal(t, []string{"first", "second"}, err.Suggestions())
	assert.NotNil(t, New(UnknownErrorCode, "x").Context())
}

func TestErrorCodeString(t *testing.T) {
	assert.Equal(t, "ConfigLoadError", ConfigLoadErrorCode.String())
	assert.Equal(t, "WatchError", WatchErrorCode.String())
	assert.Equal(t, "UnknownError", ErrorCode(99).String())
}

func TestConfigLoadErrorIsDetectable(t *testing.T) {
	var err error = NewConfigLoadError("missing module", "/app/bunner.json")

	var cfgErr *ConfigLoadError
	require.True(t, stderrors.As(err, &cfgErr))
	assert.Equal(t, "/app/bunner.json", cfgErr.SourcePath)
	assert.Equal(t, "/app/bunner.json", cfgErr.Location().File)

	none := NewConfigLoadError("no config", "")
	assert.True(t, none.Location().IsEmpty())
}

func TestWrappers(t *testing.T) {
	cause := fmt.Errorf("boom")

	parseErr := WrapParseError("src/a.ts", cause)
	assert.Equal(t, ParseErrorCode, parseErr.ErrorCode())
	assert.Equal(t, "src/a.ts", parseErr.FilePath)
	assert.ErrorIs(t, parseErr, cause)

	genErr := WrapGenerateError("runtime.ts", "write", cause)
	assert.Equal(t, "runtime.ts", genErr.Target)
	assert.Equal(t, "write", genErr.Stage)
	assert.ErrorIs(t, genErr, cause)

	fsErr := WrapFileSystemError("read", "/tmp/x", cause)
	assert.Equal(t, "failed to read '/tmp/x': boom", fsErr.Error())
	assert.Equal(t, "/tmp/x", fsErr.Context()["path"])

	scanErr := WrapScanError("/app/src", cause)
	assert.Equal(t, ScanErrorCode, scanErr.ErrorCode())
	assert.NotEmpty(t, scanErr.Suggestions())

	assert.Equal(t, WatchErrorCode, WrapWatchError("/app/src", cause).ErrorCode())
}

func TestMultipleErrors(t *testing.T) {
	errs := NewMultipleErrors()
	assert.True(t, errs.IsEmpty())
	assert.Nil(t, errs.ErrOrNil())

	cause := fmt.Errorf("disk full")
	errs.Add(WrapGenerateError("runtime.ts", "write", cause))
	assert.Equal(t, "runtime.ts: failed to generate: disk full", errs.Error())

	errs.Add(New(FileSystemErrorCode, "read-only"))
	assert.Equal(t, 2, errs.Count())
	assert.Contains(t, errs.Error(), "multiple errors (2 total)")
	assert.ErrorIs(t, errs.ErrOrNil(), cause)

	var genErr *GenerationError
	assert.True(t, stderrors.As(errs, &genErr))
}
