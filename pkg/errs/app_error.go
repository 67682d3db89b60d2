package errs

import (
	"errors"
	"net/http"
)

// Stable machine-readable failure codes returned to clients.
const (
	CodeMissingFile        = "MISSING_FILE"
	CodeUnsupportedType    = "UNSUPPORTED_TYPE"
	CodeTooLarge           = "TOO_LARGE"
	CodeNoFarm             = "NO_FARM"
	CodeBadPeriod          = "BAD_PERIOD"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeNotFound           = "NOT_FOUND"
	CodeMissingCredentials = "MISSING_AI_CREDENTIALS"
	CodeAIParseFailure     = "AI_PARSE_FAILURE"
	CodeInternal           = "INTERNAL"
)

// AppError is a failure the HTTP layer knows how to render: a stable code,
// the status to answer with, and a human message. Raw carries unparseable
// model output for operator diagnosis (AI_PARSE_FAILURE only).
type AppError struct {
	Code    string
	Status  int
	Message string
	Raw     string
	cause   error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func (e *AppError) Unwrap() error { return e.cause }

func NewAppError(code string, status int, message string) *AppError {
	return &AppError{Code: code, Status: status, Message: message}
}

func Validation(code, message string) *AppError {
	return NewAppError(code, http.StatusBadRequest, message)
}

func NotFound(message string) *AppError {
	return NewAppError(CodeNotFound, http.StatusNotFound, message)
}

func ParseFailure(message, raw string) *AppError {
	e := NewAppError(CodeAIParseFailure, http.StatusBadGateway, message)
	e.Raw = raw
	return e
}

func Internal(message string, cause error) *AppError {
	return &AppError{Code: CodeInternal, Status: http.StatusInternalServerError, Message: message, cause: cause}
}

// AsAppError unwraps err to an *AppError, or wraps it into a 500 INTERNAL.
func AsAppError(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return Internal("unexpected failure", err)
}
