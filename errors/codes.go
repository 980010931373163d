package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Input errors
const (
	// ErrCodeInvalidConfig indicates the configuration failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	// ErrCodeInvalidExpression indicates an expression could not be compiled.
	ErrCodeInvalidExpression ErrorCode = "INVALID_EXPRESSION"
)

// Runtime errors
const (
	// ErrCodeEvaluationFailed indicates an expression failed on a value.
	ErrCodeEvaluationFailed ErrorCode = "EVALUATION_FAILED"
	// ErrCodeSourceFailed indicates the element source returned an error.
	ErrCodeSourceFailed ErrorCode = "SOURCE_FAILED"
	// ErrCodeCanceled indicates the run was canceled through its context.
	ErrCodeCanceled ErrorCode = "CANCELED"
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var exitCodes = map[ErrorCode]int{
	ErrCodeInvalidConfig:     2,
	ErrCodeInvalidExpression: 2,
	ErrCodeCanceled:          130,
}

// ExitCode returns the process exit status the CLI uses for code.
func ExitCode(code ErrorCode) int {
	if c, ok := exitCodes[code]; ok {
		return c
	}
	return 1
}
