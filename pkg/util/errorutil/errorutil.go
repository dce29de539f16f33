package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced to clients. Each pipeline stage owns its codes.
const (
	CodeInvalidBody     = "INVALID_BODY"
	CodeInputValidation = "INPUT_VALIDATION"
	CodeEmptyInput      = "EMPTY_INPUT"
	CodeLLMInvocation   = "LLM_INVOCATION"
	CodeMalformedOutput = "MALFORMED_OUTPUT"
	CodeSchemaViolation = "SCHEMA_VIOLATION"
	CodeStoreConnection = "STORE_CONNECTION"
	CodeRecordNotFound  = "RECORD_NOT_FOUND"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeInternal        = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    []string
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details []string) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewInvalidBody is returned when the request body is not a JSON object.
func NewInvalidBody(err error) error {
	return &DomainError{
		Code:       CodeInvalidBody,
		Message:    "request body must be a JSON object",
		HTTPStatus: http.StatusUnprocessableEntity,
		Err:        err,
	}
}

func NewInputValidation(details []string) error {
	return NewDomainError(CodeInputValidation, "invalid ticket request", http.StatusBadRequest, details)
}

func NewEmptyInput() error {
	return NewDomainError(CodeEmptyInput, "ticket description must not be empty", http.StatusInternalServerError, nil)
}

func NewLLMInvocation(err error) error {
	return &DomainError{
		Code:       CodeLLMInvocation,
		Message:    "language model invocation failed",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewMalformedOutput(err error) error {
	return &DomainError{
		Code:       CodeMalformedOutput,
		Message:    "language model did not return valid JSON",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewSchemaViolation(details []string) error {
	return NewDomainError(CodeSchemaViolation, "language model output does not match the expected schema", http.StatusInternalServerError, details)
}

func NewStoreConnection(err error) error {
	return &DomainError{
		Code:       CodeStoreConnection,
		Message:    "record store unavailable",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewRecordNotFound reports that no ticket row matched the identifier.
func NewRecordNotFound(ticketID string) error {
	return &DomainError{
		Code:       CodeRecordNotFound,
		Message:    fmt.Sprintf("ticket %s not found for update", ticketID),
		HTTPStatus: http.StatusInternalServerError,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

// NewForbidden is returned when an authenticated caller lacks the required scope.
func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// CodeOf returns the domain code carried by err, or "" for nil.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	return ToDomainError(err).Code
}
