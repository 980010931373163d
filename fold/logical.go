package fold

// Number is the set of types Sum accepts.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

func and(a, b bool) bool { return a && b }

func or(a, b bool) bool { return a || b }

// logicalSum folds pred results into a bool with combine, breaking as soon as
// the running total reaches stop.
func logicalSum[E any](init bool, combine func(bool, bool) bool, expected, stop bool, pred func(E) bool) Pipeline[bool, E] {
	if pred == nil {
		panic("fold: predicate must not be nil")
	}
	return Fold(init, func(total bool, elem E) Step[bool] {
		return BreakWithIf(combine(total, pred(elem) == expected), func(v bool) bool {
			return v == stop
		})
	})
}

// AllOf reports whether every element satisfies pred.
// It stops at the first element that does not. Empty input yields true.
func AllOf[E any](pred func(E) bool) Pipeline[bool, E] {
	return logicalSum(true, and, true, false, pred)
}

// AnyOf reports whether some element satisfies pred.
// It stops at the first element that does. Empty input yields false.
func AnyOf[E any](pred func(E) bool) Pipeline[bool, E] {
	return logicalSum(false, or, true, true, pred)
}

// NoneOf reports whether no element satisfies pred.
// It stops at the first element that does. Empty input yields true.
func NoneOf[E any](pred func(E) bool) Pipeline[bool, E] {
	return logicalSum(true, and, false, false, pred)
}

// Count counts elements.
func Count[E any]() Pipeline[int, E] {
	return FoldFunc(0, func(n int, _ E) int { return n + 1 })
}

// Sum adds elements together, starting at zero.
func Sum[N Number]() Pipeline[N, N] {
	return FoldFunc(N(0), func(total, v N) N { return total + v })
}
