package service

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeNotes(t *testing.T) {
	tests := []struct {
		name  string
		notes string
		want  string
	}{
		{"trims whitespace", "  no sugar  ", "no sugar"},
		{"empty stays empty", "", ""},
		{"caps at 1000", strings.Repeat("a", 1500), strings.Repeat("a", 1000)},
		{
			"cap lands before a multibyte rune",
			strings.Repeat("x", 999) + "日本語",
			strings.Repeat("x", 999),
		},
		{
			"cap inside a multibyte run backs up to a rune boundary",
			strings.Repeat("あ", 400),
			strings.Repeat("あ", 333),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeNotes(tt.notes)
			if got != tt.want {
				t.Errorf("SanitizeNotes() = %q, want %q", got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Error("SanitizeNotes() produced invalid UTF-8")
			}
			if len(got) > 1000 {
				t.Errorf("SanitizeNotes() length %d exceeds cap", len(got))
			}
		})
	}
}
