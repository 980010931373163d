package fold

// Signal tells the fold engine whether to visit the next element.
type Signal uint8

const (
	// Continue asks the engine for the next element.
	Continue Signal = iota
	// Break ends the traversal; the step's value becomes the result.
	Break
)

// String returns the signal name.
func (s Signal) String() string {
	switch s {
	case Continue:
		return "continue"
	case Break:
		return "break"
	default:
		return "unknown"
	}
}

// Step is the result of a single reduction step.
type Step[S any] struct {
	value  S
	signal Signal
}

// ContinueWith returns a step that keeps the fold going with v.
func ContinueWith[S any](v S) Step[S] {
	return Step[S]{value: v, signal: Continue}
}

// BreakWith returns a step that ends the fold with v.
func BreakWith[S any](v S) Step[S] {
	return Step[S]{value: v, signal: Break}
}

// BreakWithIf breaks with v when pred(v) holds and continues with v otherwise.
func BreakWithIf[S any](v S, pred func(S) bool) Step[S] {
	if pred(v) {
		return BreakWith(v)
	}
	return ContinueWith(v)
}

// Value returns the state carried by the step.
func (s Step[S]) Value() S { return s.value }

// Signal returns the step's signal.
func (s Step[S]) Signal() Signal { return s.signal }

// Stopped reports whether the step ends the fold.
func (s Step[S]) Stopped() bool { return s.signal == Break }
