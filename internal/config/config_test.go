package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/FocuswithJustin/xml2csv/core/errors"
)

const yamlConfig = `processor:
  reader:
    type: xml
    path: data/manual.xml
    max_bytes: 1024
  writer:
    type: csv
    path: out/manual.csv
`

const confConfig = `# converter settings
[reader]
type=xml
path = data/manual.xml

; write a CSV next to it
[writer]
type=csv
path=out/manual.csv
delimiter=;
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "config.yaml", yamlConfig))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	reader := cfg.Processor.Reader
	if reader.Type() != "xml" {
		t.Errorf("reader type = %q, want xml", reader.Type())
	}
	if reader["path"] != "data/manual.xml" {
		t.Errorf("reader path = %q", reader["path"])
	}
	if reader["max_bytes"] != "1024" {
		t.Errorf("numeric option should decode as string, got %q", reader["max_bytes"])
	}
	if cfg.Processor.Writer.Type() != "csv" {
		t.Errorf("writer type = %q, want csv", cfg.Processor.Writer.Type())
	}
}

func TestLoadConf(t *testing.T) {
	cfg, err := Load(writeFile(t, "config.conf", confConfig))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := Processor{
		Reader: ClientConfig{"type": "xml", "path": "data/manual.xml"},
		Writer: ClientConfig{"type": "csv", "path": "out/manual.csv", "delimiter": ";"},
	}
	if !reflect.DeepEqual(cfg.Processor, want) {
		t.Errorf("Processor = %+v, want %+v", cfg.Processor, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	var ioErr *errors.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("Load error = %v, want IOError", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{"bad yaml", "c.yaml", "processor: [unclosed", errors.ErrInvalidInput},
		{"missing reader type", "c.yaml", "processor:\n  reader:\n    path: x\n  writer:\n    type: csv\n", errors.ErrInvalidInput},
		{"missing writer type", "c.yml", "processor:\n  reader:\n    type: xml\n", errors.ErrInvalidInput},
		{"empty file", "c.yaml", "", errors.ErrInvalidInput},
		{"conf garbage line", "c.conf", "[reader]\nthis is not a property\n", errors.ErrInvalidInput},
		{"conf unknown section", "c.ini", "[database]\ntype=pg\n", errors.ErrInvalidInput},
		{"conf property before section", "c.conf", "type=xml\n[writer]\ntype=csv\n", errors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("Load should fail")
			}
			if !errors.Is(err, tt.wantErr) && !isParseError(err) {
				t.Errorf("Load error = %v, want %v or a ParseError", err, tt.wantErr)
			}
		})
	}
}

func isParseError(err error) bool {
	var pe *errors.ParseError
	return errors.As(err, &pe)
}

func TestParseErrorCarriesPath(t *testing.T) {
	path := writeFile(t, "broken.yaml", "processor: [")
	_, err := Load(path)
	var pe *errors.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Load error = %v, want ParseError", err)
	}
	if pe.Path != path {
		t.Errorf("ParseError.Path = %q, want %q", pe.Path, path)
	}
}

func TestConfParseErrorLine(t *testing.T) {
	_, err := ParseConf([]byte("[reader]\ntype=xml\n!!!\n"))
	var pe *errors.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("ParseConf error = %v, want ParseError", err)
	}
	if pe.Line != 3 {
		t.Errorf("Line = %d, want 3", pe.Line)
	}
}

func TestClientConfigOptions(t *testing.T) {
	c := ClientConfig{"type": " csv ", "path": "a.csv", "delimiter": "\t"}

	if c.Type() != "csv" {
		t.Errorf("Type() = %q, want csv", c.Type())
	}
	opts := c.Options()
	if _, ok := opts["type"]; ok {
		t.Error("Options() should not contain type")
	}
	if opts["path"] != "a.csv" || len(opts) != 2 {
		t.Errorf("Options() = %v", opts)
	}
	if _, ok := c["type"]; !ok {
		t.Error("Options() must not modify the receiver")
	}
	if want := []string{"delimiter", "path", "type"}; !reflect.DeepEqual(c.Keys(), want) {
		t.Errorf("Keys() = %v, want %v", c.Keys(), want)
	}
}
