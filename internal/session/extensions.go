package session

import (
	"strings"

	"github.com/justyntemme/roulette/internal/config"
)

// ParseExtensions splits raw on runs of whitespace and commas, strips leading
// dots from every token, drops empty tokens and removes duplicates keeping
// the first occurrence. Matching is case-sensitive, so "MKV" and "mkv" are
// different extensions.
func ParseExtensions(raw string) []string {
	return config.ParseExtensions(raw)
}

// FormatExtensions renders extensions the way they are shown for editing.
func FormatExtensions(exts []string) string {
	return strings.Join(exts, ", ")
}

// NormalizeExtensions returns the canonical text for raw.
func NormalizeExtensions(raw string) string {
	return FormatExtensions(ParseExtensions(raw))
}

// sameSet reports whether a and b hold the same extensions in any order.
func sameSet(a, b []string) bool {
	set := make(map[string]bool, len(a))
	for _, ext := range a {
		set[ext] = true
	}
	other := make(map[string]bool, len(b))
	for _, ext := range b {
		if !set[ext] {
			return false
		}
		other[ext] = true
	}
	return len(set) == len(other)
}
