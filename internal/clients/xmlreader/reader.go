// Package xmlreader provides the "xml" read client: it loads one XML file,
// optionally xz or gzip compressed, and parses it into a document.
package xmlreader

import (
	"context"
	"strconv"

	"github.com/FocuswithJustin/xml2csv/core/errors"
	"github.com/FocuswithJustin/xml2csv/core/xml"
	"github.com/FocuswithJustin/xml2csv/internal/archive"
	"github.com/FocuswithJustin/xml2csv/internal/clients"
	"github.com/FocuswithJustin/xml2csv/internal/logging"
	"github.com/FocuswithJustin/xml2csv/internal/validation"
)

// Type is the registry name of this client.
const Type = "xml"

// DefaultMaxBytes bounds the decompressed size of an input file.
const DefaultMaxBytes int64 = validation.MaxFileSize

// Reader reads and parses a single XML file.
type Reader struct {
	Path     string
	MaxBytes int64
}

// New builds a Reader from its options: "path" (required) and "max_bytes".
func New(opts map[string]string) (clients.ReadClient, error) {
	path, err := clients.RequirePath(opts, "path")
	if err != nil {
		return nil, err
	}

	r := &Reader{Path: path, MaxBytes: DefaultMaxBytes}
	if v := opts["max_bytes"]; v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return nil, &errors.ValidationError{Field: "max_bytes", Value: v, Message: "must be a positive integer"}
		}
		r.MaxBytes = n
	}
	return r, nil
}

// Register registers this client with the default registry.
func Register() {
	clients.Default.RegisterReader(Type, New)
}

func init() {
	Register()
}

// Read loads and parses the file. It returns a nil document when the file
// holds no root element.
func (r *Reader) Read(ctx context.Context) (*xml.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := archive.ReadAll(r.Path, r.MaxBytes)
	if err != nil {
		return nil, err
	}

	doc, err := xml.Parse(data)
	if err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) {
			pe.Path = r.Path
		}
		return nil, err
	}

	root := doc.Root()
	if root == nil {
		logging.WarnContext(ctx, "XML file has no root element", "path", r.Path)
		return nil, nil
	}

	logging.InfoContext(ctx, "XML file parsed", "path", r.Path, "bytes", len(data), "root", root.Name())
	return doc, nil
}
