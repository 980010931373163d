// Package errors provides the structured error type used across foldkit.
//
// The fold package itself never returns errors: a fold is total, and a Break
// is a normal result. Errors appear at the edges, where values are pulled from
// fallible sources, expressions are compiled and configuration is loaded.
// Those layers return *AppError values carrying a machine-readable code.
//
//	if errors.Is(err, errors.ErrCodeInvalidExpression) {
//	    ...
//	}
package errors
