package slicecsv

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// openInput opens path for reading, wrapping it in a decompressing reader
// when the extension indicates a compressed file. Spreadsheet exports passed
// around in chat apps frequently arrive gzipped.
func openInput(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		gr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open gzip %s: %w", path, err)
		}

		return &compressedInput{Reader: gr, closers: []io.Closer{gr, f}}, nil
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open zstd %s: %w", path, err)
		}

		rc := zr.IOReadCloser()

		return &compressedInput{Reader: rc, closers: []io.Closer{rc, f}}, nil
	default:
		return f, nil
	}
}

// compressedInput closes both the decompressor and the underlying file.
type compressedInput struct {
	io.Reader
	closers []io.Closer
}

func (c *compressedInput) Close() error {
	var firstErr error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
