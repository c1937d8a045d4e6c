// Package errors provides unified error handling across the animation
// library. Business logic returns structured AppErrors; the CLI and HTTP
// handlers in handlers.go format them per interface, so every surface
// reports the same underlying code and category.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Validation errors
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// Document errors
	ErrCodeParseFailure    ErrorCode = "PARSE_FAILURE"
	ErrCodeInvalidDocument ErrorCode = "INVALID_DOCUMENT"

	// Storage errors
	ErrCodeStorageFailure ErrorCode = "STORAGE_FAILURE"
	ErrCodeFileNotFound   ErrorCode = "FILE_NOT_FOUND"

	// Resource errors
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Command errors
	ErrCodeCommandNotFound ErrorCode = "COMMAND_NOT_FOUND"
	ErrCodeInvalidCommand  ErrorCode = "INVALID_COMMAND"

	// Import errors
	ErrCodeImportFailure ErrorCode = "IMPORT_FAILURE"

	// Config errors
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Git sync errors
	ErrCodeGitFailure       ErrorCode = "GIT_FAILURE"
	ErrCodeGitNotConfigured ErrorCode = "GIT_NOT_CONFIGURED"

	// Fallback
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityInfo     ErrorSeverity = "info"
	SeverityWarning  ErrorSeverity = "warning"
	SeverityError    ErrorSeverity = "error"
	SeverityCritical ErrorSeverity = "critical"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryDocument   ErrorCategory = "document"
	CategoryStorage    ErrorCategory = "storage"
	CategoryCommand    ErrorCategory = "command"
	CategoryImport     ErrorCategory = "import"
	CategoryConfig     ErrorCategory = "config"
	CategoryGit        ErrorCategory = "git"
	CategorySystem     ErrorCategory = "system"
)

// AppError represents a standardized application error
type AppError struct {
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   string        `json:"details,omitempty"`
	Severity  ErrorSeverity `json:"severity"`
	Category  ErrorCategory `json:"category"`
	Cause     error         `json:"-"`
	Timestamp time.Time     `json:"timestamp"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string) *AppError {
	category, severity := categorizeError(code)
	return &AppError{
		Code:      code,
		Message:   message,
		Severity:  severity,
		Category:  category,
		Timestamp: time.Now(),
	}
}

// Wrap wraps an existing error with application error context
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := NewAppError(code, message)
	appErr.Cause = err
	return appErr
}

// categorizeError determines the category and severity based on error code
func categorizeError(code ErrorCode) (ErrorCategory, ErrorSeverity) {
	switch code {
	case ErrCodeValidation, ErrCodeInvalidInput:
		return CategoryValidation, SeverityWarning

	case ErrCodeParseFailure, ErrCodeInvalidDocument:
		return CategoryDocument, SeverityWarning

	case ErrCodeStorageFailure:
		return CategoryStorage, SeverityError
	case ErrCodeFileNotFound:
		return CategoryStorage, SeverityInfo

	case ErrCodeNotFound:
		return CategoryStorage, SeverityInfo
	case ErrCodeAlreadyExists:
		return CategoryStorage, SeverityWarning

	case ErrCodeCommandNotFound:
		return CategoryCommand, SeverityInfo
	case ErrCodeInvalidCommand:
		return CategoryCommand, SeverityError

	case ErrCodeImportFailure:
		return CategoryImport, SeverityError

	case ErrCodeConfigInvalid:
		return CategoryConfig, SeverityError

	case ErrCodeGitFailure:
		return CategoryGit, SeverityError
	case ErrCodeGitNotConfigured:
		return CategoryGit, SeverityInfo

	default:
		return CategorySystem, SeverityError
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError extracts an AppError from an error, or converts it to one
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(err, ErrCodeInternalError, err.Error())
}

// Common error constructors for frequently used errors

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message)
}

func NotFoundError(resource string) *AppError {
	return NewAppError(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
}

func FileNotFoundError(fileName string) *AppError {
	return NewAppError(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", fileName))
}

func ParseError(fileName string, err error) *AppError {
	return Wrap(err, ErrCodeParseFailure, fmt.Sprintf("failed to parse %s", fileName))
}

func InvalidDocumentError(fileName string) *AppError {
	return NewAppError(ErrCodeInvalidDocument, fmt.Sprintf("invalid animation document: %s", fileName))
}

func StorageError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeStorageFailure, fmt.Sprintf("storage operation failed: %s", operation))
}

func ImportError(source string, err error) *AppError {
	return Wrap(err, ErrCodeImportFailure, fmt.Sprintf("failed to import %s", source))
}

func ConfigError(message string, err error) *AppError {
	return Wrap(err, ErrCodeConfigInvalid, message)
}

func GitError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeGitFailure, fmt.Sprintf("git operation failed: %s", operation))
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternalError, message)
}

func CommandNotFoundError(command string) *AppError {
	return NewAppError(ErrCodeCommandNotFound, fmt.Sprintf("command '%s' not found", command))
}

func InvalidCommandError(command, reason string) *AppError {
	return NewAppError(ErrCodeInvalidCommand, fmt.Sprintf("invalid command '%s': %s", command, reason))
}
