// Package stream drives folds from fallible, pull-based sources.
//
// The fold package consumes iter.Seq values, which cannot fail and know
// nothing about cancellation. Real inputs (files, readers, remote pages) do
// both. An Iterator returns an error alongside each value and is closed when
// the consumer is done with it; Fold bridges such an Iterator into a
// fold.Pipeline, checking the context before every pull and closing the
// iterator however the run ends: exhausted, broken, failed or canceled.
//
// # Sources
//
//   - FromSlice, FromSeq: in-memory values
//   - FromReader: lines of an io.Reader
//   - FromFunc: any pull function
//   - Map: parse or convert values as they are pulled
//   - Enumerate: pair values with their position
//   - Concat: read several iterators one after another
//
// # Usage
//
//	lines := stream.FromReader(file)
//	nums := stream.Map(lines, func(_ context.Context, s string) (int, error) {
//	    return strconv.Atoi(s)
//	})
//	total, err := stream.Fold(ctx, fold.Sum[int](), nums)
package stream
