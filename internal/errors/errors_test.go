package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategory_String(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		category ErrorCategory
		want     string
	}{
		"argument":      {category: Argument, want: "Argument Error"},
		"configuration": {category: Configuration, want: "Configuration Error"},
		"prerequisite":  {category: Prerequisite, want: "Prerequisite Error"},
		"runtime":       {category: Runtime, want: "Runtime Error"},
		"unknown":       {category: ErrorCategory(99), want: "Error"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.category.String())
		})
	}
}

func TestFormatErrorPlain(t *testing.T) {
	t.Parallel()

	err := MissingVersions("docsync readme <v_js> <v_bin> [--dry-run]")
	out := FormatErrorPlain(err)

	assert.Contains(t, out, "Error [Argument Error]: both <v_js> and <v_bin> versions are required\n")
	assert.Contains(t, out, "Usage: docsync readme <v_js> <v_bin> [--dry-run]\n")
	assert.Contains(t, out, "To fix this:\n")
	assert.Contains(t, out, "  • Example: docsync changelog 1.0.72 1.0.72\n")
	assert.Empty(t, FormatErrorPlain(nil))
}

func TestFprintError_NonTerminalIsPlain(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	FprintError(&buf, ReadmeNotFound("README.md"))

	assert.Equal(t, FormatErrorPlain(ReadmeNotFound("README.md")), buf.String())
	assert.False(t, UseColor(&buf))
}

func TestFprintAny(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	FprintAny(&buf, fmt.Errorf("writing CHANGELOG.md: permission denied"))
	assert.Contains(t, buf.String(), "Error [Runtime Error]: writing CHANGELOG.md: permission denied")

	buf.Reset()
	FprintAny(&buf, fmt.Errorf("wrapped: %w", VersionBlockNotFound("README.md")))
	assert.Contains(t, buf.String(), "[Prerequisite Error]")
}

func TestWrapAndUnwrap(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("yaml: line 3: mapping values are not allowed")
	err := ConfigParseError(".docsync/config.yml", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, Configuration, err.Category)
	assert.Nil(t, Wrap(nil, Runtime))

	wrapped := WrapWithMessage(cause, Runtime, "loading")
	require.NotNil(t, wrapped)
	assert.Equal(t, "loading: "+cause.Error(), wrapped.Error())
	assert.True(t, IsCLIError(fmt.Errorf("outer: %w", wrapped)))
	assert.False(t, IsCLIError(cause))
}
