package domain

import "fmt"

// Error codes for the failure taxonomy. Expected data-driven defects are
// ValidationIssues, not errors; these codes cover implementation faults.
const (
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodePipeline   = "PIPELINE_ERROR"
	ErrCodeFix        = "FIX_ERROR"
	ErrCodeConfig     = "CONFIG_ERROR"
	ErrCodeInput      = "INPUT_ERROR"
)

// DomainError is the error type returned across package boundaries
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility
func (e DomainError) Unwrap() error {
	return e.Cause
}

// NewDomainError creates a DomainError with the given code, message and cause
func NewDomainError(code, message string, cause error) error {
	return DomainError{Code: code, Message: message, Cause: cause}
}

// NewValidationError wraps an analyzer implementation fault
func NewValidationError(message string, cause error) error {
	return NewDomainError(ErrCodeValidation, message, cause)
}

// NewPipelineError wraps an orchestrator-level fault
func NewPipelineError(message string, cause error) error {
	return NewDomainError(ErrCodePipeline, message, cause)
}

// NewFixError wraps a failed repair mutation
func NewFixError(message string, cause error) error {
	return NewDomainError(ErrCodeFix, message, cause)
}

// NewConfigError wraps a configuration loading failure
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfig, message, cause)
}

// NewInputError wraps invalid caller input
func NewInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInput, message, cause)
}
