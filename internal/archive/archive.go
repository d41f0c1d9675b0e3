// Package archive opens source files and creates destination files,
// decompressing or compressing them according to their extension.
// It supports plain files, .gz and .xz.
package archive

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/xml2csv/core/errors"
)

// Compression identifies the codec applied to a file.
type Compression int

const (
	None Compression = iota
	Gzip
	XZ
)

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case XZ:
		return "xz"
	default:
		return "none"
	}
}

// Detect returns the compression implied by the file name.
func Detect(path string) Compression {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".xz"):
		return XZ
	case strings.HasSuffix(lower, ".gz"):
		return Gzip
	default:
		return None
	}
}

// Reader is a decompressing view of an opened file.
type Reader struct {
	io.Reader
	file         *os.File
	decompressor io.Closer
}

// Open opens path for reading, decompressing .gz and .xz transparently.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}

	r := &Reader{Reader: f, file: f}
	switch Detect(path) {
	case XZ:
		xzr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.NewIO("decompress xz", path, err)
		}
		r.Reader = xzr // xz reader doesn't need closing
	case Gzip:
		gzr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.NewIO("decompress gzip", path, err)
		}
		r.Reader = gzr
		r.decompressor = gzr
	}
	return r, nil
}

// Close closes the reader and any underlying decompressor.
func (r *Reader) Close() error {
	var first error
	if r.decompressor != nil {
		first = r.decompressor.Close()
	}
	if err := r.file.Close(); err != nil && first == nil {
		first = err
	}
	return first
}

// ReadAll reads path to EOF, refusing more than limit decompressed bytes
// when limit is positive.
func ReadAll(path string, limit int64) ([]byte, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	src := io.Reader(r)
	if limit > 0 {
		src = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, &errors.ValidationError{
			Field:   "max_bytes",
			Value:   path,
			Message: "input exceeds the configured size limit",
		}
	}
	return data, nil
}

// Writer is a compressing file writer. Close must be called to flush the
// codec and the file.
type Writer struct {
	io.Writer
	path       string
	file       *os.File
	compressor io.WriteCloser
}

// Create creates (or truncates) path, compressing by its extension. Parent
// directories are created if createParentDir is true.
func Create(path string, createParentDir bool) (*Writer, error) {
	if createParentDir {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, errors.NewIO("create parent directory of", path, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.NewIO("create", path, err)
	}

	w := &Writer{Writer: f, path: path, file: f}
	switch Detect(path) {
	case XZ:
		xw, err := xz.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, errors.NewIO("compress xz", path, err)
		}
		w.Writer = xw
		w.compressor = xw
	case Gzip:
		gw := gzip.NewWriter(f)
		w.Writer = gw
		w.compressor = gw
	}
	return w, nil
}

// Close flushes the compressor and closes the file.
func (w *Writer) Close() error {
	if w.compressor != nil {
		if err := w.compressor.Close(); err != nil {
			w.file.Close()
			return errors.NewIO("flush", w.path, err)
		}
	}
	if err := w.file.Close(); err != nil {
		return errors.NewIO("close", w.path, err)
	}
	return nil
}
