package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want error
	}{
		{"relative", "data/input.xml", nil},
		{"absolute", "/tmp/out.csv.xz", nil},
		{"spaces", "my docs/manual.xml", nil},
		{"empty", "", ErrEmptyPath},
		{"too long", strings.Repeat("a", MaxPathLength+1), ErrPathTooLong},
		{"null byte", "in\x00.xml", ErrInvalidCharacter},
		{"newline", "in\n.xml", ErrInvalidCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.want == nil {
				if err != nil {
					t.Errorf("ValidatePath(%q) = %v, want nil", tt.path, err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("ValidatePath(%q) = %v, want %v", tt.path, err, tt.want)
			}
		})
	}
}

func TestValidateTableName(t *testing.T) {
	valid := []string{"records", "Manual Rows", `odd"name`, "rows"}
	for _, name := range valid {
		if err := ValidateTableName(name); err != nil {
			t.Errorf("ValidateTableName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "   ", "sqlite_master", "SQLITE_seq", "tab\tle", strings.Repeat("t", MaxIdentifierLength+1)}
	for _, name := range invalid {
		if err := ValidateTableName(name); err == nil {
			t.Errorf("ValidateTableName(%q) should fail", name)
		}
	}
}
