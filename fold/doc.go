// Package fold provides short-circuiting folds over ordered sequences and
// transducers that reshape a fold before it ever sees a sequence.
//
// A fold is driven by a Reducer: a function from the accumulated state and the
// next element to a Step. A Step carries the new state and a Signal telling the
// engine whether to keep going. Returning BreakWith stops the traversal at that
// element; nothing after it is visited.
//
// A Pipeline bundles an initial state with a reducer. Pipelines are values:
// build one once and Run it over as many sequences as needed.
//
// # Terminals
//
//   - Fold, FoldFunc: user-supplied reducer
//   - AllOf, AnyOf, NoneOf: short-circuiting logical folds
//   - Copy: write every element to a Cursor
//   - Count, Sum: numeric aggregates
//
// # Transducers
//
// A Transducer wraps a downstream reducer and returns a new one. Transducers
// know nothing about the sequence type and allocate nothing per element.
//
//   - Transform: map each element before handing it downstream
//   - Filter: drop elements failing a predicate
//   - TakeWhile: stop the whole fold at the first element failing a predicate
//   - Tap: observe elements without changing them
//   - Identity: pass everything through
//
// Compose chains two transducers left to right: elements flow through the
// first one, then the second. Apply (or Transducer.Into) binds a transducer to
// a terminal pipeline.
//
// # Usage
//
//	var out []string
//	evens := fold.Compose(
//	    fold.Filter[fold.Cursor[string]](func(n int) bool { return n%2 == 0 }),
//	    fold.Transform[fold.Cursor[string]](strconv.Itoa),
//	)
//	evens.Into(fold.Copy(fold.AppendTo(&out))).RunSlice([]int{1, 9, 12, 99, 101, 110})
//	// out == ["12", "110"]
package fold
