package sheet

import (
	"errors"
	"fmt"
	"io"

	"github.com/tartampluch/go-scoutalert/internal/config"
)

// ErrTooLarge is returned by a LimitReader once its source goes past the limit.
var ErrTooLarge = errors.New(config.ErrSourceTooLarge)

// LimitReader reads at most n bytes from r, like io.LimitReader, but reports
// ErrTooLarge when r holds more instead of ending early with io.EOF.
// A truncated registry must never look like a complete one.
func LimitReader(r io.Reader, n int64) io.Reader {
	return &limitedReader{r: r, limit: n, left: n}
}

type limitedReader struct {
	r     io.Reader
	limit int64
	left  int64
	err   error
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.err != nil {
		return 0, l.err
	}
	// One byte past the limit is enough to tell a full source from a long one.
	if int64(len(p)) > l.left+1 {
		p = p[:l.left+1]
	}
	n, err := l.r.Read(p)
	if int64(n) > l.left {
		n = int(l.left)
		l.left = 0
		l.err = fmt.Errorf("%w: more than %d bytes", ErrTooLarge, l.limit)
		return n, l.err
	}
	l.left -= int64(n)
	return n, err
}
