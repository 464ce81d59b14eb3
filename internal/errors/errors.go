package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// EnumerationFailed indicates the project file listing could not be produced
	EnumerationFailed ErrorCode = "ENUMERATION_FAILED"
	// ReadFailed indicates a document's text could not be read
	ReadFailed ErrorCode = "READ_FAILED"
	// InvalidRange indicates a position or range outside the document
	InvalidRange ErrorCode = "INVALID_RANGE"
	// FileTooLarge indicates a file exceeds the configured size limit
	FileTooLarge ErrorCode = "FILE_TOO_LARGE"
	// LanguageConflict indicates a language id was redefined with a different definition
	LanguageConflict ErrorCode = "LANGUAGE_CONFLICT"
	// ConfigInvalid indicates a configuration value was rejected
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// HintError represents a hinting error with a stable code
type HintError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// New creates a new HintError
func New(code ErrorCode, message string, cause error) *HintError {
	return &HintError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Newf creates a new HintError without a cause, formatting the message
func Newf(code ErrorCode, format string, args ...interface{}) *HintError {
	return &HintError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface
func (e *HintError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *HintError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *HintError) WithDetails(details interface{}) *HintError {
	e.Details = details
	return e
}

// Is reports whether any error in err's chain is a HintError with the given code
func Is(err error, code ErrorCode) bool {
	var he *HintError
	if stderrors.As(err, &he) {
		return he.Code == code
	}
	return false
}

// CodeOf returns the code of the first HintError in err's chain, or InternalError
func CodeOf(err error) ErrorCode {
	var he *HintError
	if stderrors.As(err, &he) {
		return he.Code
	}
	return InternalError
}
