package expr

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Knetic/govaluate"

	"github.com/kbukum/foldkit/errors"
)

// Var is the name the current element is bound to.
const Var = "x"

var functions = map[string]govaluate.ExpressionFunction{
	"str": func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("str takes 1 argument, got %d", len(args))
		}
		return FormatValue(args[0]), nil
	},
	"len": func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("len takes 1 argument, got %d", len(args))
		}
		s, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("len expects a string, got %T", args[0])
		}
		return float64(len(s)), nil
	},
	"num": func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("num takes 1 argument, got %d", len(args))
		}
		switch v := args[0].(type) {
		case float64:
			return v, nil
		case string:
			return strconv.ParseFloat(v, 64)
		default:
			return nil, fmt.Errorf("num cannot convert %T", v)
		}
	},
	"abs": func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("abs takes 1 argument, got %d", len(args))
		}
		f, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("abs expects a number, got %T", args[0])
		}
		return math.Abs(f), nil
	},
}

// Expression is a compiled expression. It is safe for concurrent use.
type Expression struct {
	src  string
	eval *govaluate.EvaluableExpression
}

// Compile parses src. Expressions may only reference x.
func Compile(src string) (*Expression, error) {
	eval, err := govaluate.NewEvaluableExpressionWithFunctions(src, functions)
	if err != nil {
		return nil, errors.InvalidExpression(src, err)
	}
	for _, v := range eval.Vars() {
		if v != Var {
			return nil, errors.InvalidExpression(src, fmt.Errorf("unknown variable %q, only %q is bound", v, Var))
		}
	}
	return &Expression{src: src, eval: eval}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string) *Expression {
	e, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return e
}

// String returns the source text.
func (e *Expression) String() string { return e.src }

// Eval evaluates the expression with x bound to v.
func (e *Expression) Eval(v any) (any, error) {
	out, err := e.eval.Evaluate(map[string]any{Var: v})
	if err != nil {
		return nil, errors.EvaluationFailed(e.src, v, err)
	}
	return out, nil
}

// Predicate returns a function reporting whether the expression yields true.
// A non-bool result or evaluation error panics with an *errors.AppError.
func (e *Expression) Predicate() func(any) bool {
	return func(v any) bool {
		out, err := e.Eval(v)
		if err != nil {
			panic(err)
		}
		b, ok := out.(bool)
		if !ok {
			panic(errors.EvaluationFailed(e.src, v, fmt.Errorf("expected a boolean result, got %T", out)))
		}
		return b
	}
}

// Mapper returns a function computing the expression for each value.
// An evaluation error panics with an *errors.AppError.
func (e *Expression) Mapper() func(any) any {
	return func(v any) any {
		out, err := e.Eval(v)
		if err != nil {
			panic(err)
		}
		return out
	}
}

// Catch recovers a panic raised by Predicate or Mapper into *errp.
// Any other panic is re-raised. Use it deferred around code that runs a fold:
//
//	defer expr.Catch(&err)
func Catch(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if appErr, ok := r.(*errors.AppError); ok && appErr.Code == errors.ErrCodeEvaluationFailed {
		*errp = appErr
		return
	}
	panic(r)
}
