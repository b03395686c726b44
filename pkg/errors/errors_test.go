// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/repatch/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "no_targets_error",
			code:    errors.ErrNoTargets,
			message: "config has no targets",
			wantStr: "[NO_TARGETS] config has no targets",
		},
		{
			name:    "invalid_step_error",
			code:    errors.ErrStepInvalid,
			message: "bad limit",
			wantStr: "[STEP_INVALID] bad limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrPatternInvalid, "step %d: bad pattern %q", 3, "(")
	assert.Equal(t, `step 3: bad pattern "("`, err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrFileRead, "cannot read")

		assert.Equal(t, errors.ErrFileRead, err.Code)
		assert.Same(t, baseErr, err.Wrapped)
		assert.Equal(t, "[FILE_READ] cannot read: base error", err.Error())
		assert.True(t, stderrors.Is(err, baseErr))
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "internal error"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"))
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrFileWrite, "write failed").
		WithDetail("path", "/test/a.dart").
		WithDetail("size", 12)

	assert.Equal(t, "/test/a.dart", err.Details["path"])
	assert.Equal(t, 12, err.Details["size"])
	assert.Equal(t, err.Details, errors.GetErrorDetails(err))
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrNoSteps, "error 1")
	err2 := errors.New(errors.ErrNoSteps, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	assert.True(t, err1.Is(err2))
	assert.False(t, err1.Is(err3))
	assert.True(t, stderrors.Is(err1, err2))
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrNoTargets, "x"), errors.ErrNoTargets, true},
		{"different_code", errors.New(errors.ErrNoTargets, "x"), errors.ErrNoSteps, false},
		{"wrapped_in_fmt", fmt.Errorf("outer: %w", errors.New(errors.ErrBackup, "x")), errors.ErrBackup, true},
		{"standard_error", stderrors.New("plain"), errors.ErrNotFound, false},
		{"nil_error", nil, errors.ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	require.Equal(t, errors.ErrConfigParse, errors.GetErrorCode(errors.New(errors.ErrConfigParse, "x")))
	require.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
	require.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}
