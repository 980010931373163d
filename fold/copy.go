package fold

// Cursor is an output position: Put writes v and returns the advanced cursor.
type Cursor[T any] interface {
	Put(v T) Cursor[T]
}

// appender writes to a slice owned by the caller. Every copy of an appender
// appends to the same slice.
type appender[T any] struct {
	dst *[]T
}

// AppendTo returns a cursor appending to *dst.
func AppendTo[T any](dst *[]T) Cursor[T] {
	if dst == nil {
		panic("fold.AppendTo: destination must not be nil")
	}
	return appender[T]{dst: dst}
}

func (a appender[T]) Put(v T) Cursor[T] {
	*a.dst = append(*a.dst, v)
	return a
}

// Positional is a cursor writing into a fixed slice at an index.
// Writing past the end of the slice panics. Pass it to Copy with an explicit
// element type, e.g. Copy[int](Into(buf)).
type Positional[T any] struct {
	dst []T
	pos int
}

// Into returns a positional cursor at the start of dst.
func Into[T any](dst []T) Positional[T] {
	return Positional[T]{dst: dst}
}

// Put stores v at the current position and returns a cursor one past it.
func (p Positional[T]) Put(v T) Cursor[T] {
	p.dst[p.pos] = v
	return Positional[T]{dst: p.dst, pos: p.pos + 1}
}

// Pos returns the index the next Put writes to.
func (p Positional[T]) Pos() int { return p.pos }

// Copy returns a pipeline writing every element to out. It never breaks.
func Copy[T any](out Cursor[T]) Pipeline[Cursor[T], T] {
	if out == nil {
		panic("fold.Copy: cursor must not be nil")
	}
	return Fold(out, func(c Cursor[T], v T) Step[Cursor[T]] {
		return ContinueWith(c.Put(v))
	})
}
