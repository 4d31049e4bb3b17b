// Package config holds the persisted scan settings and the stores that read
// and write them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"
)

// Section is the namespace owning the persisted scan settings.
const Section = "settings"

// Persisted keys inside Section.
const (
	KeyDirectory  = "directory"
	KeyExtensions = "extensions"
	KeyRecursive  = "recursive"
)

// ScanConfig is the persisted part of the scan criteria.
type ScanConfig struct {
	Directory  string
	Extensions []string // normalized: no leading dot, first-seen order, no duplicates
	Recursive  bool
}

// Clone returns a copy that shares no memory with c.
func (c ScanConfig) Clone() ScanConfig {
	c.Extensions = slices.Clone(c.Extensions)
	return c
}

// Store persists a ScanConfig.
type Store interface {
	Load() (ScanConfig, error)
	Save(ScanConfig) error
}

// DefaultExtensions are used when nothing has been configured yet.
var DefaultExtensions = []string{"mp4", "mkv", "avi"}

// Default returns the configuration used when no prior state exists.
func Default() ScanConfig {
	return ScanConfig{
		Directory:  DefaultDirectory(),
		Extensions: slices.Clone(DefaultExtensions),
		Recursive:  true,
	}
}

// DefaultDirectory returns the user's videos folder.
func DefaultDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "Videos"
	}
	return filepath.Join(home, "Videos")
}

// Dir returns the roulette config directory: ~/.config/roulette
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "roulette")
}

// FormatExtensions renders extensions in their persisted form: ".mp4, .mkv".
func FormatExtensions(exts []string) string {
	dotted := make([]string, 0, len(exts))
	for _, ext := range exts {
		dotted = append(dotted, "."+ext)
	}
	return strings.Join(dotted, ", ")
}

// ParseExtensions splits s on runs of whitespace and commas, strips leading
// dots from every token, drops empty tokens and removes duplicates keeping
// the first occurrence. Hand-edited files and user input share this rule.
func ParseExtensions(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	var exts []string
	for _, field := range fields {
		ext := strings.TrimLeft(field, ".")
		if ext == "" || slices.Contains(exts, ext) {
			continue
		}
		exts = append(exts, ext)
	}
	return exts
}

// FormatBool renders the recursion flag as stored.
func FormatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// ParseBool accepts the usual INI spellings of a boolean.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "yes", "true", "on":
		return true, nil
	case "0", "no", "false", "off":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", s)
}

// Values flattens cfg into the three persisted keys.
func Values(cfg ScanConfig) map[string]string {
	return map[string]string{
		KeyDirectory:  cfg.Directory,
		KeyExtensions: FormatExtensions(cfg.Extensions),
		KeyRecursive:  FormatBool(cfg.Recursive),
	}
}

// FromValues rebuilds a ScanConfig from persisted values, falling back to
// defaults for missing or unreadable keys.
func FromValues(values map[string]string) ScanConfig {
	cfg := Default()
	if dir, ok := values[KeyDirectory]; ok && dir != "" {
		cfg.Directory = dir
	}
	if exts, ok := values[KeyExtensions]; ok {
		cfg.Extensions = ParseExtensions(exts)
	}
	if rec, ok := values[KeyRecursive]; ok {
		if b, err := ParseBool(rec); err == nil {
			cfg.Recursive = b
		}
	}
	return cfg
}
