// Package validation checks user-supplied strings before they reach the
// parser, the store or the filesystem.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Limits on user input (CWE-400).
const (
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
	// MaxCitationLength bounds the text handed to the citation parser.
	MaxCitationLength = 1024
	// MaxLabelLength bounds a stored passage label, in runes.
	MaxLabelLength = 200
)

// Common validation errors.
var (
	ErrEmpty            = errors.New("value cannot be empty")
	ErrTooLong          = errors.New("value too long")
	ErrInvalidCharacter = errors.New("invalid character")
	ErrInvalidEncoding  = errors.New("invalid UTF-8")
)

// ValidatePath rejects empty or overlong paths and paths carrying null bytes
// or control characters.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path: %w", ErrEmpty)
	}
	if len(path) > MaxPathLength {
		return fmt.Errorf("path: %w", ErrTooLong)
	}
	return checkCharacters("path", path, false)
}

// ValidateCitation rejects citations the parser should never see.
func ValidateCitation(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("citation: %w", ErrEmpty)
	}
	if len(s) > MaxCitationLength {
		return fmt.Errorf("citation: %w (%d bytes, limit %d)", ErrTooLong, len(s), MaxCitationLength)
	}
	return checkCharacters("citation", s, false)
}

// ValidateLabel accepts an empty label. Tabs are allowed; other control
// characters are not.
func ValidateLabel(s string) error {
	if n := utf8.RuneCountInString(s); n > MaxLabelLength {
		return fmt.Errorf("label: %w (%d characters, limit %d)", ErrTooLong, n, MaxLabelLength)
	}
	return checkCharacters("label", s, true)
}

func checkCharacters(field, s string, allowTab bool) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%s: %w", field, ErrInvalidEncoding)
	}
	for _, r := range s {
		if r == '\t' && allowTab {
			continue
		}
		if r == 0 {
			return fmt.Errorf("%s: %w: null byte not allowed", field, ErrInvalidCharacter)
		}
		if unicode.IsControl(r) {
			return fmt.Errorf("%s: %w: control character not allowed", field, ErrInvalidCharacter)
		}
	}
	return nil
}
