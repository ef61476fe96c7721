package core

import (
	"errors"
	"fmt"
)

// ErrorType distinguishes error sources across the assistant.
type ErrorType string

const (
	ErrorTypePolicy     ErrorType = "policy"     // mutating statement rejected, never retried
	ErrorTypeValidation ErrorType = "validation" // syntax/semantic rejection, retried exactly once
	ErrorTypeExecution  ErrorType = "execution"  // execution collaborator failed
	ErrorTypeGeneration ErrorType = "generation" // text-generation collaborator failed
	ErrorTypeDatabase   ErrorType = "database"   // connection or query failure
	ErrorTypeSchema     ErrorType = "schema"     // schema snapshot unavailable
	ErrorTypeConfig     ErrorType = "config"     // bad configuration
	ErrorTypeInternal   ErrorType = "internal"
)

// AssistantError carries a typed, coded error through the assistant.
type AssistantError struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *AssistantError) Error() string {
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
}

func (e *AssistantError) Unwrap() error {
	return e.Cause
}

// NewError creates a typed assistant error.
func NewError(errorType ErrorType, code, message string) *AssistantError {
	return &AssistantError{Type: errorType, Code: code, Message: message}
}

// WrapError attaches a cause to a new typed error.
func WrapError(err error, errorType ErrorType, code, message string) *AssistantError {
	return &AssistantError{Type: errorType, Code: code, Message: message, Cause: err}
}

// WithCause returns a copy of e carrying cause. The predefined sentinels
// below stay immutable.
func (e *AssistantError) WithCause(cause error) *AssistantError {
	clone := *e
	clone.Cause = cause
	return &clone
}

var (
	ErrPolicyViolation    = NewError(ErrorTypePolicy, "POLICY_VIOLATION", "only SELECT queries are allowed")
	ErrValidationFailed   = NewError(ErrorTypeValidation, "VALIDATION_FAILED", "generated statement failed validation")
	ErrExplainFailed      = NewError(ErrorTypeExecution, "EXPLAIN_FAILED", "statement could not be explained")
	ErrGenerationFailed   = NewError(ErrorTypeGeneration, "GENERATION_FAILED", "text generation failed")
	ErrDatabaseConnection = NewError(ErrorTypeDatabase, "DB_CONNECTION_FAILED", "database connection failed")
	ErrSchemaNotLoaded    = NewError(ErrorTypeSchema, "SCHEMA_NOT_LOADED", "schema snapshot not loaded")
	ErrConfiguration      = NewError(ErrorTypeConfig, "CONFIGURATION_ERROR", "invalid configuration")
)

// AsAssistantError extracts an AssistantError from an error chain, or nil.
func AsAssistantError(err error) *AssistantError {
	var ae *AssistantError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsErrorType reports whether err carries the given error type anywhere in
// its chain.
func IsErrorType(err error, errorType ErrorType) bool {
	ae := AsAssistantError(err)
	return ae != nil && ae.Type == errorType
}
