package errors

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// ErrorHandler provides interface-specific error handling
type ErrorHandler interface {
	HandleError(err error) error
	FormatError(err error) string
}

// CLIErrorHandler handles errors for the command-line interface
type CLIErrorHandler struct {
	Verbose bool
}

// NewCLIErrorHandler creates a new CLI error handler
func NewCLIErrorHandler(verbose bool) *CLIErrorHandler {
	return &CLIErrorHandler{Verbose: verbose}
}

// HandleError logs the error when verbose and returns the display form
func (h *CLIErrorHandler) HandleError(err error) error {
	appErr := GetAppError(err)
	if h.Verbose {
		log.Printf("[%s] %s: %s", appErr.Severity, appErr.Code, appErr.Error())
		if appErr.Cause != nil {
			log.Printf("caused by: %v", appErr.Cause)
		}
	}
	return fmt.Errorf("%s", h.FormatError(appErr))
}

// FormatError formats an error for terminal display
func (h *CLIErrorHandler) FormatError(err error) string {
	appErr := GetAppError(err)
	switch appErr.Severity {
	case SeverityCritical, SeverityError:
		return fmt.Sprintf("error: %s", appErr.Message)
	case SeverityWarning:
		return fmt.Sprintf("warning: %s", appErr.Message)
	default:
		return appErr.Message
	}
}

// HTTPErrorHandler handles errors for the HTTP API
type HTTPErrorHandler struct {
	IncludeDetails bool
}

// NewHTTPErrorHandler creates a new HTTP error handler
func NewHTTPErrorHandler(includeDetails bool) *HTTPErrorHandler {
	return &HTTPErrorHandler{IncludeDetails: includeDetails}
}

// httpErrorBody is the JSON error payload written by WriteHTTPError
type httpErrorBody struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// WriteHTTPError writes a standardized JSON error response
func (h *HTTPErrorHandler) WriteHTTPError(w http.ResponseWriter, err error) {
	appErr := GetAppError(err)
	log.Printf("[HTTP] [%s] %s: %s", appErr.Severity, appErr.Code, appErr.Error())

	body := httpErrorBody{
		Code:    appErr.Code,
		Message: appErr.Message,
	}
	if h.IncludeDetails {
		body.Details = appErr.Details
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusCode(appErr))
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   body,
	})
}

// StatusCode maps an AppError to an HTTP status code
func StatusCode(appErr *AppError) int {
	switch appErr.Code {
	case ErrCodeValidation, ErrCodeInvalidInput, ErrCodeInvalidDocument, ErrCodeParseFailure, ErrCodeInvalidCommand:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodeFileNotFound, ErrCodeCommandNotFound:
		return http.StatusNotFound
	case ErrCodeAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
