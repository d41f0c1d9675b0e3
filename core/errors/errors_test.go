package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name    string
		err     *NotFoundError
		wantMsg string
	}{
		{
			name:    "with ID",
			err:     &NotFoundError{Resource: "client type", ID: "json"},
			wantMsg: "client type not found: json",
		},
		{
			name:    "without ID",
			err:     &NotFoundError{Resource: "root element"},
			wantMsg: "root element not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrNotFound) {
				t.Errorf("errors.Is(%v, ErrNotFound) = false", tt.err)
			}
		})
	}

	t.Run("with underlying error", func(t *testing.T) {
		underlying := fmt.Errorf("stat failed")
		err := &NotFoundError{Resource: "file", ID: "in.xml", Err: underlying}
		if got := err.Unwrap(); got != underlying {
			t.Errorf("Unwrap() = %v, want %v", got, underlying)
		}
	})
}

func TestValidationError(t *testing.T) {
	err := NewValidation("reader.type", "is required")
	if got, want := err.Error(), "validation failed for reader.type: is required"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !Is(err, ErrInvalidInput) {
		t.Error("ValidationError should unwrap to ErrInvalidInput")
	}

	bare := &ValidationError{Message: "empty config"}
	if got, want := bare.Error(), "validation failed: empty config"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIOError(t *testing.T) {
	underlying := fmt.Errorf("no such file or directory")
	err := NewIO("open", "book.xml", underlying)
	if got, want := err.Error(), "failed to open book.xml: no such file or directory"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, underlying) {
		t.Error("IOError should unwrap to the underlying error")
	}

	noPath := &IOError{Operation: "flush", Err: underlying}
	if got, want := noPath.Error(), "failed to flush: no such file or directory"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name    string
		err     *ParseError
		wantMsg string
	}{
		{"path and line", &ParseError{Format: "XML", Path: "a.xml", Line: 3, Message: "unexpected EOF"}, "failed to parse XML at a.xml:3: unexpected EOF"},
		{"path only", NewParse("config", "c.yaml", "bad indent"), "failed to parse config at c.yaml: bad indent"},
		{"line only", &ParseError{Format: "XML", Line: 7, Message: "bad token"}, "failed to parse XML at line 7: bad token"},
		{"neither", &ParseError{Format: "XML", Message: "empty"}, "failed to parse XML: empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrInvalidInput) {
				t.Error("ParseError without cause should unwrap to ErrInvalidInput")
			}
		})
	}
}

func TestUnsupportedError(t *testing.T) {
	err := NewUnsupported("delimiter", "must be a single character")
	if got, want := err.Error(), "unsupported delimiter: must be a single character"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrUnsupported) {
		t.Error("UnsupportedError should unwrap to ErrUnsupported")
	}
}

func TestSchemaError(t *testing.T) {
	err := &SchemaError{Row: 4, Levels: 3, Max: 2}
	if got, want := err.Error(), "row 4 has 3 subsection levels, schema allows 2"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(Wrap(err, "write csv"), ErrSchemaMismatch) {
		t.Error("wrapped SchemaError should match ErrSchemaMismatch")
	}

	unknown := &SchemaError{Row: -1, Levels: 1, Max: 0}
	if got, want := unknown.Error(), "row has 1 subsection levels, schema allows 0"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ignored") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, "ignored %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	base := NewNotFound("client type", "yaml")
	err := Wrapf(base, "create %s client", "reader")
	if got, want := err.Error(), "create reader client: client type not found: yaml"; got != want {
		t.Errorf("Wrapf() = %q, want %q", got, want)
	}

	var nf *NotFoundError
	if !As(err, &nf) {
		t.Fatal("As should find NotFoundError through the wrap")
	}
	if nf.ID != "yaml" {
		t.Errorf("ID = %q, want %q", nf.ID, "yaml")
	}
}
