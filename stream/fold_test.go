package stream

import (
	"bytes"
	"context"
	stderrors "errors"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/foldkit/errors"
	"github.com/kbukum/foldkit/fold"
	"github.com/kbukum/foldkit/logger"
)

// countingIter wraps a slice and records pulls and closes.
type countingIter[T any] struct {
	items  []T
	pulled int
	closed int
	failAt int
	cancel context.CancelFunc
}

func (it *countingIter[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	if it.failAt > 0 && it.pulled+1 == it.failAt {
		return zero, false, stderrors.New("read failed")
	}
	if it.pulled >= len(it.items) {
		return zero, false, nil
	}
	v := it.items[it.pulled]
	it.pulled++
	if it.cancel != nil && it.pulled == 2 {
		it.cancel()
	}
	return v, true, nil
}

func (it *countingIter[T]) Close() error {
	it.closed++
	return nil
}

func TestFold_Sum(t *testing.T) {
	src := &countingIter[int]{items: []int{2, 3, 5, 10}}
	got, err := Fold(context.Background(), fold.Sum[int](), src)
	if err != nil {
		t.Fatal(err)
	}
	if got != 20 {
		t.Errorf("got %d, want 20", got)
	}
	if src.closed != 1 {
		t.Errorf("expected iterator closed once, got %d", src.closed)
	}
}

func TestFold_BreakStopsPulling(t *testing.T) {
	src := &countingIter[int]{items: []int{12, 1401, 13, 14}}
	ok, err := Fold(context.Background(), fold.AllOf(func(v int) bool { return v < 100 }), src)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected false")
	}
	if src.pulled != 2 {
		t.Errorf("expected 2 pulls, got %d", src.pulled)
	}
	if src.closed != 1 {
		t.Errorf("expected iterator closed once, got %d", src.closed)
	}
}

func TestFold_TransducedCopyFromReader(t *testing.T) {
	var out []string
	p := fold.Compose(
		fold.Transform[fold.Cursor[string]](strings.TrimSpace),
		fold.Filter[fold.Cursor[string]](func(s string) bool { return s != "" }),
	).Into(fold.Copy(fold.AppendTo(&out)))

	_, err := Fold(context.Background(), p, FromReader(strings.NewReader(" a \n\n b\n")))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, out); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFold_SourceErrorKeepsPartialState(t *testing.T) {
	src := &countingIter[int]{items: []int{1, 2, 3, 4}, failAt: 3}
	got, err := Fold(context.Background(), fold.Sum[int](), src)
	if !errors.Is(err, errors.ErrCodeSourceFailed) {
		t.Fatalf("expected SOURCE_FAILED, got %v", err)
	}
	if got != 3 {
		t.Errorf("expected partial sum 3, got %d", got)
	}
	if src.closed != 1 {
		t.Errorf("expected iterator closed once, got %d", src.closed)
	}
}

func TestFold_MapErrorSurfacesAsSourceFailure(t *testing.T) {
	nums := Map(FromSlice([]string{"1", "two"}), func(_ context.Context, s string) (int, error) {
		return strconv.Atoi(s)
	})
	_, err := Fold(context.Background(), fold.Count[int](), nums)
	var numErr *strconv.NumError
	if !stderrors.As(err, &numErr) {
		t.Errorf("expected cause to be *strconv.NumError, got %v", err)
	}
}

func TestFold_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := &countingIter[int]{items: []int{1, 2, 3, 4}, cancel: cancel}
	got, err := Fold(ctx, fold.Sum[int](), src)
	if !errors.Is(err, errors.ErrCodeCanceled) {
		t.Fatalf("expected CANCELED, got %v", err)
	}
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
	if got != 3 {
		t.Errorf("expected partial sum 3, got %d", got)
	}
	if src.closed != 1 {
		t.Errorf("expected iterator closed once, got %d", src.closed)
	}
}

func TestFold_CloseError(t *testing.T) {
	closeErr := stderrors.New("close failed")
	it := FromFunc(func(context.Context) (int, bool, error) { return 0, false, nil }, func() error { return closeErr })
	_, err := Fold(context.Background(), fold.Count[int](), it)
	if !stderrors.Is(err, closeErr) {
		t.Errorf("expected close error, got %v", err)
	}
}

func TestFold_PanicStillCloses(t *testing.T) {
	src := &countingIter[int]{items: []int{1}}
	p := fold.FoldFunc(0, func(int, int) int { panic("boom") })

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic to propagate")
			}
		}()
		_, _ = Fold(context.Background(), p, src)
	}()

	if src.closed != 1 {
		t.Errorf("expected iterator closed once, got %d", src.closed)
	}
}

func TestFold_Enumerated(t *testing.T) {
	// Sum of value*index.
	p := fold.Transform[int](func(e Indexed[int]) int { return e.Index * e.Value }).Into(fold.Sum[int]())
	got, err := Fold(context.Background(), p, Enumerate(FromSlice([]int{5, 6, 7})))
	if err != nil {
		t.Fatal(err)
	}
	if got != 20 {
		t.Errorf("got %d, want 20", got)
	}
}

func TestFold_Logs(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: logger.FormatJSON}, "stream", &buf)

	_, err := Fold(context.Background(), fold.AnyOf(func(v int) bool { return v > 1 }), FromSlice([]int{1, 2, 3}), WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `"pulled":2`) || !strings.Contains(out, `"stopped":true`) {
		t.Errorf("unexpected log output %q", out)
	}
}
