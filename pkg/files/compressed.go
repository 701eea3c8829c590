package files

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"
)

// OptionallyCompressedReader opens path for reading, transparently
// decompressing .gz and .xz files based on their extension.
func OptionallyCompressedReader(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	switch {
	case strings.HasSuffix(path, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open gzip %s: %w", path, err)
		}
		return &layeredReadCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case strings.HasSuffix(path, ".xz"):
		xr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open xz %s: %w", path, err)
		}
		return &layeredReadCloser{Reader: xr, closers: []io.Closer{f}}, nil
	default:
		return f, nil
	}
}

// OptionallyCompressedWriter creates path for writing, transparently
// compressing when the extension is .gz or .xz.
func OptionallyCompressedWriter(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}

	switch {
	case strings.HasSuffix(path, ".gz"):
		zw := gzip.NewWriter(f)
		return &layeredWriteCloser{Writer: zw, closers: []io.Closer{zw, f}}, nil
	case strings.HasSuffix(path, ".xz"):
		xw, err := xz.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("create xz %s: %w", path, err)
		}
		return &layeredWriteCloser{Writer: xw, closers: []io.Closer{xw, f}}, nil
	default:
		return f, nil
	}
}

// layeredReadCloser closes the compression layer before the underlying file.
type layeredReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (l *layeredReadCloser) Close() error {
	return closeAll(l.closers)
}

type layeredWriteCloser struct {
	io.Writer
	closers []io.Closer
}

func (l *layeredWriteCloser) Close() error {
	return closeAll(l.closers)
}

func closeAll(closers []io.Closer) error {
	var firstErr error
	for _, c := range closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
