package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a varwatch error code.
type ErrorCode string

const (
	ErrMissingInput     ErrorCode = "MISSING_INPUT"      // 400
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"    // 400
	ErrSequenceTooLarge ErrorCode = "SEQUENCE_TOO_LARGE" // 413
	ErrRateLimited      ErrorCode = "RATE_LIMITED"       // 429
	ErrComputation      ErrorCode = "COMPUTATION_FAILED" // 500
)

// MissingInputMessage is the exact wording every boundary returns when a
// sequence is absent. Clients match on it, so the text never changes.
const MissingInputMessage = "Reference or sample sequence missing."

// VarwatchError represents a structured error with code, status, and details.
type VarwatchError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *VarwatchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewMissingInput creates a 400 error for an empty or whitespace-only
// reference or sample sequence.
func NewMissingInput() *VarwatchError {
	return &VarwatchError{
		Code:    ErrMissingInput,
		Status:  400,
		Message: MissingInputMessage,
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *VarwatchError {
	return &VarwatchError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewSequenceTooLarge creates a 413 error when a sequence exceeds the
// configured per-sequence cap. side names the offending input, "reference"
// or "sample".
func NewSequenceTooLarge(side string, actual, max int) *VarwatchError {
	return &VarwatchError{
		Code:    ErrSequenceTooLarge,
		Status:  413,
		Message: fmt.Sprintf("%s sequence exceeds maximum size: %d chars (max %d)", side, actual, max),
		Details: map[string]any{"side": side, "actual_chars": actual, "max_chars": max},
	}
}

// NewRateLimited creates a 429 error when the analyze throttle rejects a call.
func NewRateLimited() *VarwatchError {
	return &VarwatchError{
		Code:    ErrRateLimited,
		Status:  429,
		Message: "too many analyze requests; retry shortly",
	}
}

// NewComputation creates a 500 error for an unexpected failure during
// alignment, extraction, or scoring.
func NewComputation(err error) *VarwatchError {
	msg := "analysis failed"
	if err != nil {
		msg = err.Error()
	}
	return &VarwatchError{
		Code:    ErrComputation,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a VarwatchError with the given code, unwrapping
// as needed.
func Is(err error, code ErrorCode) bool {
	var vErr *VarwatchError
	if stderrors.As(err, &vErr) {
		return vErr.Code == code
	}
	return false
}
