package stream

import (
	"context"

	"github.com/kbukum/foldkit/errors"
	"github.com/kbukum/foldkit/fold"
	"github.com/kbukum/foldkit/logger"
)

// Option configures Fold.
type Option func(*options)

type options struct {
	log *logger.Logger
}

// WithLogger sets the logger Fold reports each run to at debug level.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// Fold runs p over the values pulled from it and closes it.
//
// It returns p's result together with a nil error when the source is
// exhausted or the fold breaks. When the source fails or ctx is canceled,
// Fold returns the state reached so far along with an *errors.AppError coded
// SOURCE_FAILED or CANCELED. Panics raised by the pipeline's callbacks are
// not recovered; the iterator is still closed.
func Fold[S, E any](ctx context.Context, p fold.Pipeline[S, E], it Iterator[E], opts ...Option) (result S, err error) {
	o := options{log: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		pulled    int
		exhausted bool
		srcErr    error
	)
	seq := func(yield func(E) bool) {
		for {
			if cerr := ctx.Err(); cerr != nil {
				srcErr = errors.Canceled(cerr)
				return
			}
			val, ok, nerr := it.Next(ctx)
			if nerr != nil {
				if cerr := ctx.Err(); cerr != nil {
					srcErr = errors.Canceled(cerr).WithDetail(logger.FieldError, nerr.Error())
				} else {
					srcErr = errors.SourceFailed(nerr)
				}
				return
			}
			if !ok {
				exhausted = true
				return
			}
			pulled++
			if !yield(val) {
				return
			}
		}
	}

	defer func() {
		if cerr := it.Close(); cerr != nil && err == nil {
			err = errors.SourceFailed(cerr).WithDetail(logger.FieldOperation, "close")
		}
	}()

	result = p.Run(seq)

	stopped := srcErr == nil && !exhausted
	fields := logger.Fields(logger.FieldPulled, pulled, logger.FieldStopped, stopped)
	if srcErr != nil {
		o.log.WithError(srcErr).Debug("fold aborted", fields)
		return result, srcErr
	}
	o.log.Debug("fold finished", fields)
	return result, nil
}
