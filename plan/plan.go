package plan

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kbukum/foldkit/config"
	"github.com/kbukum/foldkit/errors"
	"github.com/kbukum/foldkit/expr"
	"github.com/kbukum/foldkit/fold"
	"github.com/kbukum/foldkit/logger"
	"github.com/kbukum/foldkit/stream"
)

const component = "plan"

// stage is a compiled config.Stage.
type stage struct {
	kind string
	expr *expr.Expression
}

// Plan is a compiled pipeline. It is immutable and safe for concurrent runs.
type Plan struct {
	stages   []stage
	terminal string
	pred     *expr.Expression
	log      *logger.Logger
}

// Option configures a Plan.
type Option func(*Plan)

// WithLogger sets the logger the plan reports builds and runs to. The
// default is the global logger.
func WithLogger(l *logger.Logger) Option {
	return func(p *Plan) { p.log = l.WithComponent(component) }
}

// New compiles every expression in cfg. It fails with INVALID_EXPRESSION
// before anything runs.
func New(cfg config.PipelineConfig, opts ...Option) (*Plan, error) {
	p := &Plan{terminal: cfg.Terminal.Kind, log: logger.WithComponent(component)}
	for _, opt := range opts {
		opt(p)
	}
	if p.terminal == "" {
		p.terminal = config.TerminalCopy
	}

	for i, s := range cfg.Stages {
		switch s.Kind {
		case config.StageFilter, config.StageTransform, config.StageTakeWhile:
		default:
			return nil, errors.InvalidConfig(fmt.Sprintf("unknown stage kind %q", s.Kind)).
				WithDetail("stage", i)
		}
		e, err := expr.Compile(s.Expr)
		if err != nil {
			return nil, withStage(err, i)
		}
		p.stages = append(p.stages, stage{kind: s.Kind, expr: e})
	}

	switch p.terminal {
	case config.TerminalAllOf, config.TerminalAnyOf, config.TerminalNoneOf:
		e, err := expr.Compile(cfg.Terminal.Expr)
		if err != nil {
			return nil, err
		}
		p.pred = e
	case config.TerminalCopy, config.TerminalCount, config.TerminalSum:
	default:
		return nil, errors.InvalidConfig(fmt.Sprintf("unknown terminal kind %q", p.terminal))
	}

	p.log.Debug("plan built", logger.Fields(
		logger.FieldStages, len(p.stages),
		logger.FieldTerminal, p.terminal,
	))
	return p, nil
}

func withStage(err error, i int) error {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr.WithDetail("stage", i)
	}
	return err
}

// Terminal returns the terminal kind the plan ends in.
func (p *Plan) Terminal() string { return p.terminal }

// Stages returns the number of compiled stages.
func (p *Plan) Stages() int { return len(p.stages) }

// transducer chains the compiled stages for a terminal with state S.
func transducer[S any](stages []stage) fold.Transducer[S, any, any] {
	ts := make([]fold.Transducer[S, any, any], 0, len(stages))
	for _, s := range stages {
		switch s.kind {
		case config.StageFilter:
			ts = append(ts, fold.Filter[S](s.expr.Predicate()))
		case config.StageTransform:
			ts = append(ts, fold.Transform[S](s.expr.Mapper()))
		case config.StageTakeWhile:
			ts = append(ts, fold.TakeWhile[S](s.expr.Predicate()))
		}
	}
	return fold.Chain(ts...)
}

// toNumber is the element conversion of the sum terminal.
func toNumber(v any) float64 {
	f, ok := expr.ToFloat(v)
	if !ok {
		panic(errors.EvaluationFailed(config.TerminalSum, v, fmt.Errorf("%T is not a number", v)))
	}
	return f
}

// Result is the outcome of a run. Only the field matching Terminal is set.
type Result struct {
	Terminal string
	Values   []any
	Bool     bool
	Count    int
	Sum      float64
}

// Lines renders the result: one line per value for copy, a single line for
// every other terminal.
func (r Result) Lines() []string {
	switch r.Terminal {
	case config.TerminalCopy:
		lines := make([]string, len(r.Values))
		for i, v := range r.Values {
			lines[i] = expr.FormatValue(v)
		}
		return lines
	case config.TerminalCount:
		return []string{strconv.Itoa(r.Count)}
	case config.TerminalSum:
		return []string{expr.FormatValue(r.Sum)}
	default:
		return []string{strconv.FormatBool(r.Bool)}
	}
}

// Run folds the values of it through the plan. The iterator is always
// closed. On failure the partial result is returned with the error.
func (p *Plan) Run(ctx context.Context, it stream.Iterator[any]) (res Result, err error) {
	res.Terminal = p.terminal
	defer func() {
		if err != nil {
			p.log.WithError(err).Warn("plan run failed", logger.Fields(logger.FieldTerminal, p.terminal))
		}
	}()
	defer expr.Catch(&err)

	opts := []stream.Option{stream.WithLogger(p.log)}
	switch p.terminal {
	case config.TerminalCopy:
		var out []any
		defer func() { res.Values = out }()
		pipeline := transducer[fold.Cursor[any]](p.stages).Into(fold.Copy(fold.AppendTo(&out)))
		_, err = stream.Fold(ctx, pipeline, it, opts...)
	case config.TerminalAllOf:
		res.Bool, err = stream.Fold(ctx, transducer[bool](p.stages).Into(fold.AllOf(p.pred.Predicate())), it, opts...)
	case config.TerminalAnyOf:
		res.Bool, err = stream.Fold(ctx, transducer[bool](p.stages).Into(fold.AnyOf(p.pred.Predicate())), it, opts...)
	case config.TerminalNoneOf:
		res.Bool, err = stream.Fold(ctx, transducer[bool](p.stages).Into(fold.NoneOf(p.pred.Predicate())), it, opts...)
	case config.TerminalCount:
		res.Count, err = stream.Fold(ctx, transducer[int](p.stages).Into(fold.Count[any]()), it, opts...)
	case config.TerminalSum:
		sum := fold.Apply(fold.Transform[float64](toNumber), fold.Sum[float64]())
		res.Sum, err = stream.Fold(ctx, transducer[float64](p.stages).Into(sum), it, opts...)
	}
	return res, err
}
