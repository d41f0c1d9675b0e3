// Package sqlitewriter provides the "sqlite" write client. The dataset
// becomes one table whose columns are the schema columns plus an ordinal
// that preserves row order.
package sqlitewriter

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/xml2csv/core/cas"
	"github.com/FocuswithJustin/xml2csv/core/errors"
	"github.com/FocuswithJustin/xml2csv/core/hierarchy"
	"github.com/FocuswithJustin/xml2csv/core/sqlite"
	"github.com/FocuswithJustin/xml2csv/internal/clients"
	"github.com/FocuswithJustin/xml2csv/internal/logging"
	"github.com/FocuswithJustin/xml2csv/internal/validation"
)

// Type is the registry name of this client.
const Type = "sqlite"

// DefaultTable is the table written when no "table" option is given.
const DefaultTable = "records"

// OrdinalColumn holds the 0-based position of each row.
const OrdinalColumn = "ordinal"

// Writer writes a dataset into a SQLite database file.
type Writer struct {
	Path    string
	Table   string
	Replace bool

	sum *cas.HashResult
}

// New builds a Writer from its options: "path" (required), "table" and
// "replace" (default true).
func New(opts map[string]string) (clients.WriteClient, error) {
	path, err := clients.RequirePath(opts, "path")
	if err != nil {
		return nil, err
	}

	w := &Writer{Path: path, Table: DefaultTable, Replace: true}
	if t, ok := opts["table"]; ok {
		if err := validation.ValidateTableName(t); err != nil {
			return nil, &errors.ValidationError{Field: "table", Value: t, Message: err.Error()}
		}
		w.Table = t
	}
	if v, ok := opts["replace"]; ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, &errors.ValidationError{Field: "replace", Value: v, Message: "must be true or false"}
		}
		w.Replace = b
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

// Write stores every row of ds in one transaction.
func (w *Writer) Write(ctx context.Context, ds *hierarchy.Dataset) error {
	w.sum = nil
	records, err := ds.Records()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(w.Path), 0755); err != nil {
		return errors.NewIO("create parent directory of", w.Path, err)
	}

	db, err := sqlite.Open(w.Path)
	if err != nil {
		return errors.NewIO("open database", w.Path, err)
	}

	err = w.store(ctx, db, ds.Schema, records)
	if cerr := db.Close(); err == nil && cerr != nil {
		err = errors.NewIO("close database", w.Path, cerr)
	}
	if err != nil {
		return err
	}

	sum, err := cas.HashFile(w.Path)
	if err != nil {
		return errors.NewIO("hash", w.Path, err)
	}
	w.sum = sum

	logging.InfoContext(ctx, "SQLite table written",
		"path", w.Path,
		"table", w.Table,
		"rows", len(records),
		"driver", sqlite.DriverType(),
	)
	return nil
}

// Checksum returns the digests of the database file after the last
// successful Write.
func (w *Writer) Checksum() *cas.HashResult {
	return w.sum
}

func (w *Writer) store(ctx context.Context, db *sql.DB, schema hierarchy.Schema, records [][]string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewIO("begin transaction on", w.Path, err)
	}
	defer tx.Rollback()

	table := sqlite.QuoteIdent(w.Table)
	if w.Replace {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return errors.NewIO("drop table in", w.Path, err)
		}
	}
	if _, err := tx.ExecContext(ctx, createStatement(table, schema)); err != nil {
		return errors.NewIO("create table in", w.Path, err)
	}

	stmt, err := tx.PrepareContext(ctx, insertStatement(table, schema))
	if err != nil {
		return errors.NewIO("prepare insert on", w.Path, err)
	}
	defer stmt.Close()

	args := make([]any, len(schema)+1)
	for i, rec := range records {
		args[0] = i
		for j, v := range rec {
			args[j+1] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return errors.NewIO("insert row "+strconv.Itoa(i)+" into", w.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewIO("commit", w.Path, err)
	}
	return nil
}

func createStatement(table string, schema hierarchy.Schema) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS ")
	b.WriteString(table)
	b.WriteString(" (")
	b.WriteString(sqlite.QuoteIdent(OrdinalColumn))
	b.WriteString(" INTEGER NOT NULL")
	for _, col := range schema {
		b.WriteString(", ")
		b.WriteString(sqlite.QuoteIdent(col))
		b.WriteString(" TEXT NOT NULL")
	}
	b.WriteString(")")
	return b.String()
}

func insertStatement(table string, schema hierarchy.Schema) string {
	cols := make([]string, 0, len(schema)+1)
	cols = append(cols, sqlite.QuoteIdent(OrdinalColumn))
	for _, col := range schema {
		cols = append(cols, sqlite.QuoteIdent(col))
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return "INSERT INTO " + table + " (" + strings.Join(cols, ", ") + ") VALUES (" + marks + ")"
}
