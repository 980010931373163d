package plan

import (
	"context"
	"io"
	"os"

	"github.com/kbukum/foldkit/config"
	"github.com/kbukum/foldkit/errors"
	"github.com/kbukum/foldkit/expr"
	"github.com/kbukum/foldkit/stream"
)

// Open opens every path, in order, as one stream of parsed values. The path
// "-" reads stdin, which is never closed. If any file cannot be opened the
// files already opened are closed and a SOURCE_FAILED error is returned.
func Open(paths []string, stdin io.Reader) (stream.Iterator[any], error) {
	sources := make([]stream.Iterator[string], 0, len(paths))
	for _, path := range paths {
		if path == config.StdinInput {
			sources = append(sources, stream.FromReader(io.NopCloser(stdin)))
			continue
		}
		f, err := os.Open(path)
		if err != nil {
			for _, src := range sources {
				_ = src.Close()
			}
			return nil, errors.SourceFailed(err).WithDetail("path", path)
		}
		sources = append(sources, stream.FromReader(f))
	}
	return Values(stream.Concat(sources...)), nil
}

// Values parses each line of lines into an element with expr.ParseValue.
func Values(lines stream.Iterator[string]) stream.Iterator[any] {
	return stream.Map(lines, func(_ context.Context, line string) (any, error) {
		return expr.ParseValue(line), nil
	})
}
