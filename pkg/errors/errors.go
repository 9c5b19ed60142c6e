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
	ErrAmbiguous    ErrorCode = "AMBIGUOUS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Selection errors
	ErrNoSourceSelected ErrorCode = "NO_SOURCE_SELECTED"
	ErrKindMismatch     ErrorCode = "KIND_MISMATCH"
	ErrInvalidTarget    ErrorCode = "INVALID_TARGET"

	// Workflow errors
	ErrCopyInProgress   ErrorCode = "COPY_IN_PROGRESS"
	ErrSelectionChanged ErrorCode = "SELECTION_CHANGED"
	ErrInvalidState     ErrorCode = "INVALID_STATE"
	ErrTransferBusy     ErrorCode = "TRANSFER_BUSY"
	ErrBackend          ErrorCode = "BACKEND"

	// Decision errors
	ErrDecisionNotFound ErrorCode = "DECISION_NOT_FOUND"

	// FileSystem errors
	ErrFileNotFound        ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess          ErrorCode = "FILE_ACCESS"
	ErrFileWrite           ErrorCode = "FILE_WRITE"
	ErrDirCreate           ErrorCode = "DIR_CREATE"
	ErrInvalidSettingsFile ErrorCode = "INVALID_SETTINGS_FILE"
	ErrArchiveInvalid      ErrorCode = "ARCHIVE_INVALID"

	// Remote lookups
	ErrESIRequest ErrorCode = "ESI_REQUEST"
)

// WrenchError represents a structured error with code and details
type WrenchError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *WrenchError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *WrenchError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *WrenchError) Is(target error) bool {
	var targetErr *WrenchError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new WrenchError with the given code and message
func New(code ErrorCode, message string) *WrenchError {
	return &WrenchError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new WrenchError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *WrenchError {
	return &WrenchError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a WrenchError
func Wrap(err error, code ErrorCode, message string) *WrenchError {
	if err == nil {
		return nil
	}
	return &WrenchError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *WrenchError {
	if err == nil {
		return nil
	}
	return &WrenchError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *WrenchError) WithDetail(key string, value interface{}) *WrenchError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var wrenchErr *WrenchError
	if errors.As(err, &wrenchErr) {
		return wrenchErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a WrenchError
func GetErrorCode(err error) ErrorCode {
	var wrenchErr *WrenchError
	if errors.As(err, &wrenchErr) {
		return wrenchErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a WrenchError
func GetErrorDetails(err error) map[string]interface{} {
	var wrenchErr *WrenchError
	if errors.As(err, &wrenchErr) {
		return wrenchErr.Details
	}
	return nil
}
