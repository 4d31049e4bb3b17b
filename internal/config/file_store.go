package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/justyntemme/roulette/internal/debug"
)

// FileName is the settings document inside Dir().
const FileName = "settings.toml"

// FileStore keeps the settings in a TOML document. Only the [settings] table
// is owned by the store; every other table and key is written back untouched.
type FileStore struct {
	mu       sync.Mutex
	path     string
	parseErr error // set when the document on disk could not be parsed
}

// NewFileStore creates a store backed by path. An empty path selects
// ~/.config/roulette/settings.toml.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = filepath.Join(Dir(), FileName)
	}
	return &FileStore{path: path}
}

// Path returns the document location.
func (s *FileStore) Path() string {
	return s.path
}

// ParseError returns the parsing error if the document failed to load
func (s *FileStore) ParseError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.parseErr
}

// Load reads the settings. A missing document is created with defaults.
// A malformed document yields defaults; the error is kept for ParseError and
// the broken file is backed up on the next Save.
func (s *FileStore) Load() (ScanConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.parseErr = nil
	doc, err := s.readUnlocked()
	if errors.Is(err, os.ErrNotExist) {
		debug.Info(debug.STORE, "creating default settings at %s", s.path)
		cfg := Default()
		if err := s.writeUnlocked(map[string]any{}, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	if err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			debug.Warn(debug.STORE, "settings parse error in %s: %v", s.path, err)
			s.parseErr = err
			return Default(), nil
		}
		return Default(), err
	}

	cfg := FromValues(sectionValues(doc))
	debug.Log(debug.STORE, "loaded %s: dir=%q exts=%v recursive=%v",
		s.path, cfg.Directory, cfg.Extensions, cfg.Recursive)
	return cfg, nil
}

// Save writes cfg into the [settings] table, preserving the rest of the
// document.
func (s *FileStore) Save(cfg ScanConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := map[string]any{}
	if s.parseErr != nil {
		backup, err := s.backupUnlocked()
		if err != nil {
			return err
		}
		debug.Warn(debug.STORE, "unreadable settings backed up to %s", backup)
		s.parseErr = nil
	} else {
		existing, err := s.readUnlocked()
		switch {
		case err == nil:
			doc = existing
		case !errors.Is(err, os.ErrNotExist):
			return err
		}
	}
	return s.writeUnlocked(doc, cfg)
}

func (s *FileStore) readUnlocked() (map[string]any, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	doc := map[string]any{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *FileStore) writeUnlocked(doc map[string]any, cfg ScanConfig) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	section, _ := doc[Section].(map[string]any)
	if section == nil {
		section = map[string]any{}
	}
	for key, value := range Values(cfg) {
		section[key] = value
	}
	doc[Section] = section

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	// Write through a temp file so a crash never leaves a truncated document.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write settings: %w", err)
	}
	debug.Log(debug.STORE, "saved %s", s.path)
	return nil
}

func (s *FileStore) backupUnlocked() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("failed to read existing settings: %w", err)
	}
	ext := filepath.Ext(s.path)
	timestamp := time.Now().Format("20060102-150405")
	backupPath := strings.TrimSuffix(s.path, ext) + ".backup." + timestamp + ext
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	return backupPath, nil
}

// sectionValues pulls the owned keys out of the decoded document as strings.
// Values written by hand as native TOML types are accepted too.
func sectionValues(doc map[string]any) map[string]string {
	values := map[string]string{}
	section, ok := doc[Section].(map[string]any)
	if !ok {
		return values
	}
	for _, key := range []string{KeyDirectory, KeyExtensions, KeyRecursive} {
		switch v := section[key].(type) {
		case string:
			values[key] = v
		case bool:
			values[key] = FormatBool(v)
		case []any:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				parts = append(parts, fmt.Sprint(item))
			}
			values[key] = strings.Join(parts, ",")
		}
	}
	return values
}
