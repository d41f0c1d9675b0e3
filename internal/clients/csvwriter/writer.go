// Package csvwriter provides the "csv" write client. Every field is quoted,
// embedded quotes are doubled, and records end in CRLF, so content holding
// the delimiter or line breaks survives a round trip through any reader.
package csvwriter

import (
	"bufio"
	"context"
	"io"
	"os"
	"unicode/utf8"

	"github.com/FocuswithJustin/xml2csv/core/cas"
	"github.com/FocuswithJustin/xml2csv/core/encoding"
	"github.com/FocuswithJustin/xml2csv/core/errors"
	"github.com/FocuswithJustin/xml2csv/core/hierarchy"
	"github.com/FocuswithJustin/xml2csv/internal/archive"
	"github.com/FocuswithJustin/xml2csv/internal/clients"
	"github.com/FocuswithJustin/xml2csv/internal/logging"
)

// Type is the registry name of this client.
const Type = "csv"

const lineEnding = "\r\n"

// Writer writes a dataset to one CSV file. A path ending in .xz or .gz is
// compressed.
type Writer struct {
	Path      string
	Delimiter rune

	sum *cas.HashResult
}

// New builds a Writer from its options: "path" (required) and "delimiter"
// (a single character, default ",").
func New(opts map[string]string) (clients.WriteClient, error) {
	path, err := clients.RequirePath(opts, "path")
	if err != nil {
		return nil, err
	}

	w := &Writer{Path: path, Delimiter: ','}
	if d, ok := opts["delimiter"]; ok {
		r, size := utf8.DecodeRuneInString(d)
		if size == 0 || size != len(d) {
			return nil, errors.NewUnsupported("delimiter", "must be a single character")
		}
		if r == '"' || r == '\r' || r == '\n' {
			return nil, errors.NewUnsupported("delimiter", "cannot be a quote or line break")
		}
		w.Delimiter = r
	}
	return w, nil
}

// Register registers this client with the default registry.
func Register() {
	clients.Default.RegisterWriter(Type, New)
}

func init() {
	Register()
}

// Write writes the schema as the header row followed by one record per row.
// Nothing is left at Path when a row does not fit the schema.
func (w *Writer) Write(ctx context.Context, ds *hierarchy.Dataset) error {
	w.sum = nil
	if err := ctx.Err(); err != nil {
		return err
	}

	records, err := ds.Records()
	if err != nil {
		return err
	}

	out, err := archive.Create(w.Path, true)
	if err != nil {
		return err
	}

	digest := cas.NewDigest()
	buf := bufio.NewWriter(io.MultiWriter(out, digest))
	err = w.encode(buf, ds.Schema, records)
	if err == nil {
		err = buf.Flush()
		if err != nil {
			err = errors.NewIO("write", w.Path, err)
		}
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(w.Path)
		return err
	}

	w.sum = digest.Sum()
	logging.InfoContext(ctx, "CSV file written",
		"path", w.Path,
		"rows", len(records),
		"columns", len(ds.Schema),
		"sha256", w.sum.SHA256,
	)
	return nil
}

// Checksum returns the digests of the CSV text of the last successful Write.
func (w *Writer) Checksum() *cas.HashResult {
	return w.sum
}

func (w *Writer) encode(bw *bufio.Writer, header []string, records [][]string) error {
	if err := w.writeRecord(bw, header); err != nil {
		return err
	}
	for _, rec := range records {
		if err := w.writeRecord(bw, rec); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeRecord(bw *bufio.Writer, fields []string) error {
	for i, field := range fields {
		if i > 0 {
			bw.WriteRune(w.Delimiter)
		}
		bw.WriteString(encoding.QuoteCSV(field))
	}
	if _, err := bw.WriteString(lineEnding); err != nil {
		return errors.NewIO("write", w.Path, err)
	}
	return nil
}
