package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrNoInput         = errors.New("no input provided: please specify a file with -i or pipe data to stdin")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrInvalidFilePath = errors.New("invalid file path")
	ErrUnknownMethod   = errors.New("unrecognized HTTP method")
	ErrUnknownVersion  = errors.New("unrecognized HTTP version")
)

// ErrorType categorizes errors
type ErrorType string

const (
	// ErrorTypeInput covers reading and framing the input text.
	ErrorTypeInput ErrorType = "input"
	// ErrorTypeSyntax covers token and structural parse failures: an
	// expected literal or character class was not found.
	ErrorTypeSyntax ErrorType = "syntax"
	// ErrorTypeConvert covers semantic failures: a matched token could not
	// be converted to its typed form (unknown enum literal, malformed
	// timestamp, out-of-range number).
	ErrorTypeConvert ErrorType = "convert"
	ErrorTypeConfig  ErrorType = "config"
	ErrorTypeOutput  ErrorType = "output"
	ErrorTypeUnknown ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	// Check if target is also an *AppError and if the types match
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewSyntaxError creates a new error for token or structural parse failures
func NewSyntaxError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeSyntax,
		Message: message,
		Err:     err,
	}
}

// NewConvertError creates a new error for literal-to-value conversion failures
func NewConvertError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConvert,
		Message: message,
		Err:     err,
	}
}

// NewConfigError creates a new error related to configuration loading
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeSyntax:
			if appErr.Err != nil {
				return fmt.Sprintf("Parse error: %s: %v", appErr.Message, appErr.Err)
			}
			return fmt.Sprintf("Parse error: %s", appErr.Message)
		case ErrorTypeConvert:
			if appErr.Err != nil {
				return fmt.Sprintf("Conversion error: %s: %v", appErr.Message, appErr.Err)
			}
			return fmt.Sprintf("Conversion error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide something to parse."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe data to stdin."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty. Please provide a file with content to parse."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
