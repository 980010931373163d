package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// --- Constructors ---

// InvalidConfig creates an AppError for a configuration that failed validation.
func InvalidConfig(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidConfig, Message: message}
}

// InvalidExpression creates an AppError for an expression that does not compile.
func InvalidExpression(expr string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeInvalidExpression, Message: fmt.Sprintf("cannot compile expression %q", expr),
		Details: map[string]any{"expr": expr}, Cause: cause,
	}
}

// EvaluationFailed creates an AppError for an expression that failed on value.
func EvaluationFailed(expr string, value any, cause error) *AppError {
	return &AppError{
		Code: ErrCodeEvaluationFailed, Message: fmt.Sprintf("expression %q failed on %v", expr, value),
		Details: map[string]any{"expr": expr, "value": value}, Cause: cause,
	}
}

// SourceFailed creates an AppError for an element source that returned an error.
func SourceFailed(cause error) *AppError {
	return &AppError{Code: ErrCodeSourceFailed, Message: "element source failed", Cause: cause}
}

// Canceled creates an AppError for a run stopped by its context.
func Canceled(cause error) *AppError {
	return &AppError{Code: ErrCodeCanceled, Message: "run canceled", Cause: cause}
}

// Internal creates an AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: "unexpected failure", Cause: cause}
}

// --- Inspection ---

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// CodeOf returns the code of the first AppError in err's chain, or
// ErrCodeInternal when there is none. A nil error has no code.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ErrCodeInternal
}

// Is reports whether err carries an AppError with the given code.
func Is(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
