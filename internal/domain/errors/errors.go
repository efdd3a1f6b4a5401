package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// Local precondition errors, raised before any outbound call.
	ErrMissingCredentials = errors.New("merchantId, username and password are required")
	ErrMissingBody        = errors.New("requestBody is required")

	// Forwarding errors
	ErrGatewayUnreachable = errors.New("no response received from gateway")
)

// Flow error codes, stable across all flow operations.
const (
	CodeMissingCredentials = "missing_credentials"
	CodeMissingBody        = "missing_body"
	CodeValidation         = "validation_error"
	CodeUpstream           = "upstream_error"
	CodeNetwork            = "network_error"
	CodeRequest            = "request_error"
)

// FlowError is a failure of one flow operation, already classified and
// carrying everything the HTTP layer needs to build the failure envelope.
// Details holds the raw upstream body when one exists.
type FlowError struct {
	Step    int
	Status  int
	Code    string
	Message string
	Details any
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("step %d: %s", e.Step, e.Message)
}

// NewFlowError creates a classified flow failure.
func NewFlowError(step, status int, code, message string) *FlowError {
	return &FlowError{Step: step, Status: status, Code: code, Message: message}
}

// WithDetails attaches the raw upstream body to the error.
func (e *FlowError) WithDetails(details any) *FlowError {
	e.Details = details
	return e
}

// MissingCredentials builds the precondition failure shared by every flow operation.
func MissingCredentials(step int) *FlowError {
	return NewFlowError(step, http.StatusBadRequest, CodeMissingCredentials, ErrMissingCredentials.Error())
}

// MissingBody builds the precondition failure for body-carrying operations.
func MissingBody(step int) *FlowError {
	return NewFlowError(step, http.StatusBadRequest, CodeMissingBody, ErrMissingBody.Error())
}

// ValidationError represents a schema violation on the config-check operation.
// Only the first violated rule is reported.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
