// Package errors provides the scheduler's application error type.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Code classifies an AppError.
type Code string

const (
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL_ERROR"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeNotFound     Code = "NOT_FOUND"

	// Scheduler-domain codes.
	CodeInfeasible            Code = "INFEASIBLE"
	CodeSolverTimeout         Code = "SOLVER_TIMEOUT"
	CodeCarryForwardImbalance Code = "CARRY_FORWARD_IMBALANCE"
	CodeUnknownStaff          Code = "UNKNOWN_STAFF"
	CodeValidationFailed      Code = "VALIDATION_FAILED"
)

// AppError is the scheduler's structured error type.
type AppError struct {
	Code    Code                   `json:"code"`
	Message string                 `json:"message"`
	Details string                 `json:"details,omitempty"`
	Cause   error                  `json:"-"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithField(key string, value interface{}) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// New creates an AppError.
func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *AppError {
	return &AppError{Code: code, Message: message, Cause: err}
}

// Is reports whether err is an AppError of the given code.
func Is(err error, code Code) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the code from err, or CodeUnknown.
func GetCode(err error) Code {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// Infeasible builds the error returned when the solver proves no
// feasible schedule exists.
func Infeasible(reason string) *AppError {
	return New(CodeInfeasible, reason)
}

// SolverTimeout builds the error returned when the solver hits its
// wall-clock budget without reaching OPTIMAL or FEASIBLE.
func SolverTimeout(budgetSeconds int) *AppError {
	return New(CodeSolverTimeout, fmt.Sprintf("solver did not converge within %ds", budgetSeconds))
}

// UnknownStaff builds the error for a reference to a staff ID absent
// from the roster.
func UnknownStaff(staffID string) *AppError {
	return New(CodeUnknownStaff, fmt.Sprintf("unknown staff id %q", staffID))
}

// CarryForwardImbalance builds the error for a role group whose
// carry-forward deltas fail to sum to ~0.
func CarryForwardImbalance(role string, sum float64) *AppError {
	return New(CodeCarryForwardImbalance, fmt.Sprintf("role %s carry-forward deltas sum to %.4f, want ~0", role, sum))
}

// ValidationErrors collects independent field-level validation failures.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// ValidationError is one field-level validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (ve *ValidationErrors) Error() string {
	if len(ve.Errors) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s - %s", ve.Errors[0].Field, ve.Errors[0].Message)
}

func (ve *ValidationErrors) Add(field, message string) {
	ve.Errors = append(ve.Errors, ValidationError{Field: field, Message: message})
}

func (ve *ValidationErrors) HasErrors() bool {
	return len(ve.Errors) > 0
}

func (ve *ValidationErrors) ToAppError() *AppError {
	err := New(CodeValidationFailed, "validation failed")
	err.Fields = make(map[string]interface{})
	for _, e := range ve.Errors {
		err.Fields[e.Field] = e.Message
	}
	return err
}
