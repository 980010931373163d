package fold

import (
	"iter"
	"slices"
)

// Reducer combines the accumulated state with the next element.
type Reducer[S, E any] func(state S, elem E) Step[S]

// Continuing lifts a plain combining function into a Reducer that never
// breaks.
func Continuing[S, E any](fn func(S, E) S) Reducer[S, E] {
	return func(state S, elem E) Step[S] {
		return ContinueWith(fn(state, elem))
	}
}

// Reduce folds seq into init using r, stopping at the first Break.
//
// The element that produced the Break is the last one pulled from seq.
// An empty sequence returns init.
func Reduce[S, E any](init S, r Reducer[S, E], seq iter.Seq[E]) S {
	current := ContinueWith(init)
	for elem := range seq {
		current = r(current.value, elem)
		if current.signal == Break {
			break
		}
	}
	return current.value
}

// Pipeline is a reducer bound to its initial state.
// Pipelines are immutable and may be run concurrently as long as runs do not
// share a mutable state value.
type Pipeline[S, E any] struct {
	init    S
	reducer Reducer[S, E]
}

// Fold creates a pipeline that starts from init and steps with r.
func Fold[S, E any](init S, r Reducer[S, E]) Pipeline[S, E] {
	if r == nil {
		panic("fold.Fold: reducer must not be nil")
	}
	return Pipeline[S, E]{init: init, reducer: r}
}

// FoldFunc creates a pipeline from a combining function that always continues.
func FoldFunc[S, E any](init S, fn func(S, E) S) Pipeline[S, E] {
	if fn == nil {
		panic("fold.FoldFunc: function must not be nil")
	}
	return Fold(init, Continuing(fn))
}

// Init returns the pipeline's initial state.
func (p Pipeline[S, E]) Init() S { return p.init }

// Reducer returns the pipeline's reducer.
func (p Pipeline[S, E]) Reducer() Reducer[S, E] { return p.reducer }

// Run folds seq starting from the pipeline's initial state.
func (p Pipeline[S, E]) Run(seq iter.Seq[E]) S {
	return Reduce(p.init, p.reducer, seq)
}

// RunFrom folds seq starting from state instead of the initial state.
// Use it to carry an accumulator, such as an advanced Cursor, across runs.
func (p Pipeline[S, E]) RunFrom(state S, seq iter.Seq[E]) S {
	return Reduce(state, p.reducer, seq)
}

// RunSlice folds the elements of xs in order.
func (p Pipeline[S, E]) RunSlice(xs []E) S {
	return p.Run(slices.Values(xs))
}
