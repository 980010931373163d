package fold

// Transducer turns a reducer over B into a reducer over A.
//
// The state type S is fixed by the terminal the transducer is eventually
// bound to, so it is usually the one type argument given explicitly:
//
//	fold.Transform[fold.Cursor[string]](strconv.Itoa)
type Transducer[S, A, B any] func(next Reducer[S, B]) Reducer[S, A]

// Wrap applies t to a bare reducer.
func (t Transducer[S, A, B]) Wrap(next Reducer[S, B]) Reducer[S, A] {
	return t(next)
}

// Into binds t to p. The result starts from p's initial state.
func (t Transducer[S, A, B]) Into(p Pipeline[S, B]) Pipeline[S, A] {
	return Apply(t, p)
}

// Apply binds t to p. The result starts from p's initial state.
func Apply[S, A, B any](t Transducer[S, A, B], p Pipeline[S, B]) Pipeline[S, A] {
	return Fold(p.init, t(p.reducer))
}

// Compose chains two transducers. Elements pass through outer first and then
// through inner, matching the order the arguments are written in.
func Compose[S, A, B, C any](outer Transducer[S, A, B], inner Transducer[S, B, C]) Transducer[S, A, C] {
	return func(next Reducer[S, C]) Reducer[S, A] {
		return outer(inner(next))
	}
}

// Chain composes same-typed transducers left to right.
// An empty chain is Identity.
func Chain[S, A any](ts ...Transducer[S, A, A]) Transducer[S, A, A] {
	return func(next Reducer[S, A]) Reducer[S, A] {
		for i := len(ts) - 1; i >= 0; i-- {
			next = ts[i](next)
		}
		return next
	}
}

// Identity passes every element downstream unchanged.
func Identity[S, A any]() Transducer[S, A, A] {
	return func(next Reducer[S, A]) Reducer[S, A] {
		return next
	}
}

// Transform maps each element with fn before handing it downstream.
// The downstream step, including its signal, is returned untouched.
func Transform[S, A, B any](fn func(A) B) Transducer[S, A, B] {
	if fn == nil {
		panic("fold.Transform: function must not be nil")
	}
	return func(next Reducer[S, B]) Reducer[S, A] {
		return func(state S, elem A) Step[S] {
			return next(state, fn(elem))
		}
	}
}

// Filter hands downstream only the elements satisfying pred.
// Dropped elements never break the fold.
func Filter[S, A any](pred func(A) bool) Transducer[S, A, A] {
	if pred == nil {
		panic("fold.Filter: predicate must not be nil")
	}
	return func(next Reducer[S, A]) Reducer[S, A] {
		return func(state S, elem A) Step[S] {
			if !pred(elem) {
				return ContinueWith(state)
			}
			return next(state, elem)
		}
	}
}

// TakeWhile hands elements downstream while pred holds and ends the fold at
// the first element that fails it. That element is not delegated.
func TakeWhile[S, A any](pred func(A) bool) Transducer[S, A, A] {
	if pred == nil {
		panic("fold.TakeWhile: predicate must not be nil")
	}
	return func(next Reducer[S, A]) Reducer[S, A] {
		return func(state S, elem A) Step[S] {
			if !pred(elem) {
				return BreakWith(state)
			}
			return next(state, elem)
		}
	}
}

// Tap calls fn with each element and then hands it downstream.
func Tap[S, A any](fn func(A)) Transducer[S, A, A] {
	if fn == nil {
		panic("fold.Tap: function must not be nil")
	}
	return func(next Reducer[S, A]) Reducer[S, A] {
		return func(state S, elem A) Step[S] {
			fn(elem)
			return next(state, elem)
		}
	}
}
