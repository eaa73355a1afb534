package errors

import (
	"strings"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "the cat sat", "the cat sat"},
		{"empty", "", ""},
		{"nul becomes space", "cat\x00dog", "cat dog"},
		{"invalid utf8 replaced", "cat\xffdog", "cat�dog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.input); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxBytes int
		wantErr  bool
	}{
		{"empty is valid", "", 10, false},
		{"under limit", "hello", 10, false},
		{"at limit", "0123456789", 10, false},
		{"over limit", "0123456789a", 10, true},
		{"default limit", strings.Repeat("a", 100), 0, false},
		{"default limit exceeded", strings.Repeat("a", DefaultMaxTextBytes+1), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateText(tt.input, tt.maxBytes)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateText() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeTextTooLarge) {
				t.Errorf("ValidateText() code = %v, want %v", GetCode(err), ErrCodeTextTooLarge)
			}
		})
	}
}

func TestValidateSessionID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid uuid", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", false},
		{"empty", "", true},
		{"garbage", "not-a-session", true},
		{"path traversal", "../../etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSessionID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSessionID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateGeometry(t *testing.T) {
	tests := []struct {
		name                     string
		w, h                     float64
		top, right, bottom, left float64
		wantErr                  bool
	}{
		{"defaults", 1000, 420, 20, 20, 20, 20, false},
		{"no margins", 100, 100, 0, 0, 0, 0, false},
		{"zero width", 0, 420, 0, 0, 0, 0, true},
		{"negative height", 100, -1, 0, 0, 0, 0, true},
		{"negative margin", 100, 100, -1, 0, 0, 0, true},
		{"margins eat width", 40, 100, 0, 20, 0, 20, true},
		{"margins eat height", 100, 40, 20, 0, 20, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGeometry(tt.w, tt.h, tt.top, tt.right, tt.bottom, tt.left)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGeometry() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidGeometry) {
				t.Errorf("ValidateGeometry() code = %v, want %v", GetCode(err), ErrCodeInvalidGeometry)
			}
		})
	}
}
