package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// emailRegex is deliberately loose: one @, a dot in the domain, no spaces.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[A-Za-z]{2,}$`)

// phoneCharsRegex matches tokens made of characters that appear in phone numbers.
var phoneCharsRegex = regexp.MustCompile(`^\+?[0-9()\-. ]+$`)

// ValidateContact runs simple format checks over the free text of a contact
// section. The text is split on commas, semicolons and newlines; each piece
// is checked on its own:
//   - a piece containing "@" must look like an email address
//   - a piece made only of digits and phone punctuation that starts with "+"
//     or carries at least 7 digits is a phone number and must have 7-15 digits
//   - anything else (addresses, city names) is accepted as-is
//
// Empty text is accepted; the palette placeholder is a valid contact.
func ValidateContact(text string) error {
	for _, piece := range splitContact(text) {
		if strings.Contains(piece, "@") {
			if !emailRegex.MatchString(piece) {
				return New(ErrCodeInvalidContact, "malformed email address: %q", piece)
			}
			continue
		}
		if !phoneCharsRegex.MatchString(piece) {
			continue
		}
		if n := countDigits(piece); strings.HasPrefix(piece, "+") || n >= 7 {
			if n < 7 || n > 15 {
				return New(ErrCodeInvalidContact, "phone number must have 7-15 digits: %q", piece)
			}
		}
	}
	return nil
}

func splitContact(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n' || r == '|'
	})
	out := fields[:0]
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// colorRegex matches CSS hex colors in short (#rgb) or long (#rrggbb) form.
var colorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor validates a CSS hex color as produced by a color picker.
func ValidateColor(c string) error {
	if !colorRegex.MatchString(c) {
		return New(ErrCodeInvalidStyle, "invalid color %q (want #rgb or #rrggbb)", c)
	}
	return nil
}

// ValidatePath validates a document or output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
