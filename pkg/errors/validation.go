package errors

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// DefaultMaxTextBytes caps the size of a single text submission.
const DefaultMaxTextBytes = 1 << 20

// NormalizeText prepares externally supplied text for the pipeline.
// Invalid UTF-8 sequences are replaced with U+FFFD and NUL bytes are
// turned into spaces so they behave as separators.
func NormalizeText(text string) string {
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "�")
	}
	return strings.ReplaceAll(text, "\x00", " ")
}

// ValidateText checks a text submission against a byte limit.
// A non-positive limit falls back to DefaultMaxTextBytes.
// Empty text is valid: it produces an empty cloud.
func ValidateText(text string, maxBytes int) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxTextBytes
	}
	if len(text) > maxBytes {
		return New(ErrCodeTextTooLarge, "text too large (%d bytes, max %d)", len(text), maxBytes)
	}
	return nil
}

// ValidateSessionID checks that id is a canonical UUID.
func ValidateSessionID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "session id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid session id %q", id)
	}
	return nil
}

// ValidateGeometry checks that a canvas leaves a usable inner frame once
// margins are removed.
func ValidateGeometry(width, height, top, right, bottom, left float64) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidGeometry, "canvas must be positive (got %gx%g)", width, height)
	}
	if top < 0 || right < 0 || bottom < 0 || left < 0 {
		return New(ErrCodeInvalidGeometry, "margins cannot be negative")
	}
	if width-left-right <= 0 {
		return New(ErrCodeInvalidGeometry, "horizontal margins exceed canvas width")
	}
	if height-top-bottom <= 0 {
		return New(ErrCodeInvalidGeometry, "vertical margins exceed canvas height")
	}
	return nil
}
