package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
	ErrNoTargets   ErrorCode = "NO_TARGETS"
	ErrNoSteps     ErrorCode = "NO_STEPS"

	// Step and pattern errors
	ErrStepInvalid    ErrorCode = "STEP_INVALID"
	ErrPatternInvalid ErrorCode = "PATTERN_INVALID"

	// Run errors
	ErrNoFilesMatched ErrorCode = "NO_FILES_MATCHED"
	ErrFilesFailed    ErrorCode = "FILES_FAILED"

	// FileSystem errors
	ErrFileRead   ErrorCode = "FILE_READ"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrBackup     ErrorCode = "BACKUP_WRITE"
	ErrFileAccess ErrorCode = "FILE_ACCESS"
)

// RepatchError represents a structured error with code and details
type RepatchError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RepatchError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RepatchError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *RepatchError) Is(target error) bool {
	var targetErr *RepatchError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RepatchError with the given code and message
func New(code ErrorCode, message string) *RepatchError {
	return &RepatchError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RepatchError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RepatchError {
	return &RepatchError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a RepatchError
func Wrap(err error, code ErrorCode, message string) *RepatchError {
	if err == nil {
		return nil
	}
	return &RepatchError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RepatchError {
	if err == nil {
		return nil
	}
	return &RepatchError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *RepatchError) WithDetail(key string, value interface{}) *RepatchError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var repErr *RepatchError
	if errors.As(err, &repErr) {
		return repErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a RepatchError
func GetErrorCode(err error) ErrorCode {
	var repErr *RepatchError
	if errors.As(err, &repErr) {
		return repErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a RepatchError
func GetErrorDetails(err error) map[string]interface{} {
	var repErr *RepatchError
	if errors.As(err, &repErr) {
		return repErr.Details
	}
	return nil
}
