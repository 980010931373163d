package stream

import (
	"bufio"
	"context"
	"io"
	"iter"
	"strings"
)

// Iterator provides pull-based sequential access to a stream of values.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Indexed pairs a value with its zero-based position in the stream.
type Indexed[T any] struct {
	Index int
	Value T
}

// FromSlice creates an iterator over a slice of values.
func FromSlice[T any](items []T) Iterator[T] {
	return &sliceIter[T]{items: items}
}

// FromSeq creates an iterator over an iter.Seq. The sequence is consumed
// through iter.Pull; Close stops it early.
func FromSeq[T any](seq iter.Seq[T]) Iterator[T] {
	next, stop := iter.Pull(seq)
	return &seqIter[T]{next: next, stop: stop}
}

// FromFunc creates an iterator from a pull function. closeFn may be nil.
func FromFunc[T any](next func(ctx context.Context) (T, bool, error), closeFn func() error) Iterator[T] {
	return &funcIter[T]{next: next, closeFn: closeFn}
}

// FromReader creates an iterator over the lines of r, without "\n" or
// "\r\n" endings. Lines have no length limit. A final line without a
// newline is still yielded. If r is an io.Closer, Close closes it.
func FromReader(r io.Reader) Iterator[string] {
	return &lineIter{r: r, reader: bufio.NewReader(r)}
}

// Map converts each pulled value with fn. An error from fn ends the stream.
func Map[I, O any](source Iterator[I], fn func(context.Context, I) (O, error)) Iterator[O] {
	return &mapIter[I, O]{source: source, fn: fn}
}

// Enumerate pairs each value with its position.
func Enumerate[T any](source Iterator[T]) Iterator[Indexed[T]] {
	return &enumerateIter[T]{source: source}
}

// Concat reads iterators one after another.
func Concat[T any](iters ...Iterator[T]) Iterator[T] {
	return &concatIter[T]{iters: iters}
}

// Collect drains the iterator into a slice and closes it.
func Collect[T any](ctx context.Context, it Iterator[T]) ([]T, error) {
	defer it.Close()
	var result []T
	for {
		val, ok, err := it.Next(ctx)
		if err != nil {
			return result, err
		}
		if !ok {
			return result, nil
		}
		result = append(result, val)
	}
}

// --- Iterator implementations ---

type sliceIter[T any] struct {
	items []T
	index int
}

func (it *sliceIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.index >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sliceIter[T]) Close() error { return nil }

type seqIter[T any] struct {
	next func() (T, bool)
	stop func()
}

func (it *seqIter[T]) Next(_ context.Context) (T, bool, error) {
	v, ok := it.next()
	return v, ok, nil
}

func (it *seqIter[T]) Close() error {
	it.stop()
	return nil
}

type funcIter[T any] struct {
	next    func(ctx context.Context) (T, bool, error)
	closeFn func() error
}

func (it *funcIter[T]) Next(ctx context.Context) (T, bool, error) { return it.next(ctx) }

func (it *funcIter[T]) Close() error {
	if it.closeFn != nil {
		return it.closeFn()
	}
	return nil
}

type lineIter struct {
	r      io.Reader
	reader *bufio.Reader
	done   bool
}

func (it *lineIter) Next(_ context.Context) (string, bool, error) {
	if it.done {
		return "", false, nil
	}
	line, err := it.reader.ReadString('\n')
	if err != nil {
		it.done = true
		if err != io.EOF {
			return "", false, err
		}
		if line == "" {
			return "", false, nil
		}
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), true, nil
}

func (it *lineIter) Close() error {
	if c, ok := it.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

type mapIter[I, O any] struct {
	source Iterator[I]
	fn     func(context.Context, I) (O, error)
}

func (it *mapIter[I, O]) Next(ctx context.Context) (result O, ok bool, err error) {
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		var zero O
		return zero, false, err
	}
	out, err := it.fn(ctx, val)
	if err != nil {
		var zero O
		return zero, false, err
	}
	return out, true, nil
}

func (it *mapIter[I, O]) Close() error { return it.source.Close() }

type enumerateIter[T any] struct {
	source Iterator[T]
	index  int
}

func (it *enumerateIter[T]) Next(ctx context.Context) (Indexed[T], bool, error) {
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return Indexed[T]{}, false, err
	}
	out := Indexed[T]{Index: it.index, Value: val}
	it.index++
	return out, true, nil
}

func (it *enumerateIter[T]) Close() error { return it.source.Close() }

type concatIter[T any] struct {
	iters []Iterator[T]
	index int
}

func (it *concatIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	for it.index < len(it.iters) {
		val, ok, err := it.iters[it.index].Next(ctx)
		if err != nil {
			return val, false, err
		}
		if ok {
			return val, true, nil
		}
		it.index++
	}
	var zero T
	return zero, false, nil
}

func (it *concatIter[T]) Close() error {
	var firstErr error
	for _, src := range it.iters {
		if err := src.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
