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

	// Configuration errors
	ErrConfigLoad       ErrorCode = "CONFIG_LOAD"
	ErrConfigParse      ErrorCode = "CONFIG_PARSE"
	ErrConfigMissingKey ErrorCode = "CONFIG_MISSING_KEY"

	// Template errors
	ErrTemplateRead   ErrorCode = "TEMPLATE_READ"
	ErrTemplateKey    ErrorCode = "TEMPLATE_KEY"
	ErrTemplateSyntax ErrorCode = "TEMPLATE_SYNTAX"

	// FileSystem errors
	ErrFileRead    ErrorCode = "FILE_READ"
	ErrFileWrite   ErrorCode = "FILE_WRITE"
	ErrDirNotFound ErrorCode = "DIR_NOT_FOUND"
)

// YalgenError represents a structured error with code and details
type YalgenError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *YalgenError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *YalgenError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *YalgenError) Is(target error) bool {
	var targetErr *YalgenError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new YalgenError with the given code and message
func New(code ErrorCode, message string) *YalgenError {
	return &YalgenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new YalgenError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *YalgenError {
	return &YalgenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a YalgenError
func Wrap(err error, code ErrorCode, message string) *YalgenError {
	if err == nil {
		return nil
	}
	return &YalgenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *YalgenError {
	if err == nil {
		return nil
	}
	return &YalgenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *YalgenError) WithDetail(key string, value interface{}) *YalgenError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var yalgenErr *YalgenError
	if errors.As(err, &yalgenErr) {
		return yalgenErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a YalgenError
func GetErrorCode(err error) ErrorCode {
	var yalgenErr *YalgenError
	if errors.As(err, &yalgenErr) {
		return yalgenErr.Code
	}
	return ErrUnknown
}
