// Package validation checks user-supplied option values before clients act
// on them.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Limits that keep a run from being handed unreasonable input.
const (
	// MaxFileSize is the default ceiling on a decompressed input (256 MB).
	MaxFileSize = 256 << 20
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
	// MaxIdentifierLength is the maximum allowed table name length.
	MaxIdentifierLength = 128
)

// Common validation errors.
var (
	ErrEmptyPath         = errors.New("path cannot be empty")
	ErrPathTooLong       = errors.New("path too long")
	ErrInvalidCharacter  = errors.New("invalid character")
	ErrInvalidIdentifier = errors.New("invalid identifier")
)

// ValidatePath checks length limits and rejects null bytes and control
// characters.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}
	return checkControl(path)
}

// ValidateTableName checks a SQLite table name. Any printable name is
// accepted because it is always quoted, except names in the "sqlite_"
// namespace that SQLite reserves for itself.
func ValidateTableName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidIdentifier)
	}
	if len(name) > MaxIdentifierLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidIdentifier, MaxIdentifierLength)
	}
	if strings.HasPrefix(strings.ToLower(name), "sqlite_") {
		return fmt.Errorf("%w: the sqlite_ prefix is reserved", ErrInvalidIdentifier)
	}
	return checkControl(name)
}

func checkControl(s string) error {
	if strings.Contains(s, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter)
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}
	return nil
}
