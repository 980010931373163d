// Package expr compiles textual expressions over a single variable x into
// predicates and mappers usable as fold callbacks.
//
// Expressions use govaluate syntax: arithmetic, comparison, logical and
// ternary operators plus the functions str, len, num and abs.
//
//	even, _ := expr.Compile("x % 2 == 0")
//	label, _ := expr.Compile("str(x)")
//
// Elements are float64 or string (see ParseValue). A fold callback has no
// error return, so evaluation failures inside Predicate and Mapper panic with
// an *errors.AppError coded EVALUATION_FAILED. The code driving the fold turns
// that panic back into an error with Catch.
package expr
