package sqlitewriter

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/FocuswithJustin/xml2csv/core/cas"
	"github.com/FocuswithJustin/xml2csv/core/errors"
	"github.com/FocuswithJustin/xml2csv/core/hierarchy"
	"github.com/FocuswithJustin/xml2csv/core/sqlite"
	"github.com/FocuswithJustin/xml2csv/internal/clients"
	"github.com/FocuswithJustin/xml2csv/internal/config"
)

func sampleDataset() *hierarchy.Dataset {
	return hierarchy.ParseRows([]hierarchy.Row{
		{Hierarchy: []string{"root"}, Content: "Intro"},
		{Hierarchy: []string{"root", "chapter", "para"}, Content: "Body, text"},
	})
}

type stored struct {
	ordinal int
	section string
	level2  string
	content string
}

func readBack(t *testing.T, path, table string) []stored {
	t.Helper()
	db, err := sqlite.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	q := `SELECT "ordinal", "Section", "Subsection Level 2", "Content" FROM ` + sqlite.QuoteIdent(table) + ` ORDER BY "ordinal"`
	rows, err := db.Query(q)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	defer rows.Close()

	var out []stored
	for rows.Next() {
		var s stored
		if err := rows.Scan(&s.ordinal, &s.section, &s.level2, &s.content); err != nil {
			t.Fatalf("scan: %v", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}
	return out
}

func TestRegistered(t *testing.T) {
	w, err := clients.Default.CreateWriter(config.ClientConfig{"type": Type, "path": "out.db"})
	if err != nil {
		t.Fatalf("CreateWriter: %v", err)
	}
	sw := w.(*Writer)
	if sw.Table != DefaultTable || !sw.Replace {
		t.Errorf("defaults = %+v", sw)
	}
}

func TestNewOptions(t *testing.T) {
	w, err := New(map[string]string{"path": "o.db", "table": "manual", "replace": "false"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if sw := w.(*Writer); sw.Table != "manual" || sw.Replace {
		t.Errorf("options = %+v", sw)
	}

	if _, err := New(map[string]string{"path": "o.db", "replace": "sometimes"}); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("bad replace should fail validation, got %v", err)
	}
	if _, err := New(map[string]string{"path": "o.db", "table": "sqlite_master"}); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("reserved table name should fail validation, got %v", err)
	}
	if _, err := New(map[string]string{}); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("missing path should fail validation, got %v", err)
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "out.db")
	w := &Writer{Path: path, Table: DefaultTable, Replace: true}
	if err := w.Write(context.Background(), sampleDataset()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got := readBack(t, path, DefaultTable)
	want := []stored{
		{0, "root", "", "Intro"},
		{1, "root", "para", "Body, text"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %+v, want %+v", got, want)
	}

	sum, err := cas.HashFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if w.Checksum() == nil || w.Checksum().SHA256 != sum.SHA256 {
		t.Errorf("Checksum = %+v, want digest of the database file", w.Checksum())
	}
}

func TestWriteReplace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.db")
	ctx := context.Background()

	w := &Writer{Path: path, Table: "t", Replace: true}
	if err := w.Write(ctx, sampleDataset()); err != nil {
		t.Fatal(err)
	}
	if err := w.Write(ctx, sampleDataset()); err != nil {
		t.Fatal(err)
	}
	if n := len(readBack(t, path, "t")); n != 2 {
		t.Errorf("replace: got %d rows, want 2", n)
	}

	w.Replace = false
	if err := w.Write(ctx, sampleDataset()); err != nil {
		t.Fatalf("append: %v", err)
	}
	if n := len(readBack(t, path, "t")); n != 4 {
		t.Errorf("append: got %d rows, want 4", n)
	}
}

func TestWriteRejectsRowDeeperThanSchema(t *testing.T) {
	ds := sampleDataset()
	ds.Schema = hierarchy.NewSchema(0)
	w := &Writer{Path: filepath.Join(t.TempDir(), "out.db"), Table: DefaultTable, Replace: true}
	if err := w.Write(context.Background(), ds); !errors.Is(err, errors.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}

func TestStatements(t *testing.T) {
	schema := hierarchy.NewSchema(1)
	if got, want := createStatement(`"records"`, schema),
		`CREATE TABLE IF NOT EXISTS "records" ("ordinal" INTEGER NOT NULL, "Section" TEXT NOT NULL, "CombinedSubsection" TEXT NOT NULL, "Subsection Level 1" TEXT NOT NULL, "Content" TEXT NOT NULL)`; got != want {
		t.Errorf("create =\n%s\nwant\n%s", got, want)
	}
	if got, want := insertStatement(`"records"`, schema),
		`INSERT INTO "records" ("ordinal", "Section", "CombinedSubsection", "Subsection Level 1", "Content") VALUES (?, ?, ?, ?, ?)`; got != want {
		t.Errorf("insert =\n%s\nwant\n%s", got, want)
	}
}
