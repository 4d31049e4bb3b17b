// Package session owns the scan criteria, the candidate file set and the
// currently selected file. Every configuration change rescans synchronously
// and drops the selection.
//
// A Session is not safe for concurrent use; callers serialize access.
package session

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"slices"

	"github.com/justyntemme/roulette/internal/config"
	"github.com/justyntemme/roulette/internal/debug"
	"github.com/justyntemme/roulette/internal/fs"
	"github.com/justyntemme/roulette/internal/platform"
	"github.com/justyntemme/roulette/internal/trash"
)

// Locator lists the files under root matching exts.
type Locator func(root string, exts []string, recursive bool) []string

// SubdirLister lists the directories under root.
type SubdirLister func(root string, topLevelOnly bool) ([]string, error)

// Launcher starts the platform handlers for a file.
type Launcher interface {
	Open(path string) error
	Reveal(path string) error
}

// TrashSink moves files to the OS trash.
type TrashSink interface {
	MoveToTrash(path string) error
}

// ScanStatus is the outcome of a refresh.
type ScanStatus int

const (
	ScanOK ScanStatus = iota
	ScanNotFound
)

func (s ScanStatus) String() string {
	if s == ScanNotFound {
		return "not found"
	}
	return "ok"
}

// ScanResult describes a refresh of the file set.
type ScanResult struct {
	Count   int
	Status  ScanStatus
	Root    string // effective scan root
	Message string
	Err     error // ErrNotFound when Status is ScanNotFound
	SaveErr error // *StoreError when the triggering change was not persisted
}

// Level classifies a message for presentation.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	}
	return "info"
}

// Outcome is a user-facing message with its level.
type Outcome struct {
	Message string
	Level   Level
	Err     error
}

// Session is the stateful selection engine.
type Session struct {
	store        config.Store
	locate       Locator
	listSubdirs  SubdirLister
	launcher     Launcher
	trash        TrashSink
	intn         func(n int) int
	topLevelOnly bool

	cfg     config.ScanConfig
	scope   Scope
	files   []string
	subdirs []string
	active  string // empty when nothing is selected
}

// Option configures a Session.
type Option func(*Session)

// WithLocator replaces the file locator.
func WithLocator(l Locator) Option { return func(s *Session) { s.locate = l } }

// WithSubdirLister replaces the subdirectory lister.
func WithSubdirLister(l SubdirLister) Option { return func(s *Session) { s.listSubdirs = l } }

// WithLauncher replaces the platform launcher.
func WithLauncher(l Launcher) Option { return func(s *Session) { s.launcher = l } }

// WithTrash replaces the trash sink.
func WithTrash(t TrashSink) Option { return func(s *Session) { s.trash = t } }

// WithRand sets the source of random indexes; intn(n) must return a value in [0, n).
func WithRand(intn func(n int) int) Option { return func(s *Session) { s.intn = intn } }

// WithTopLevelOnly chooses whether the subdirectory index lists only direct
// children of the root (the default) or every nested directory.
func WithTopLevelOnly(on bool) Option { return func(s *Session) { s.topLevelOnly = on } }

// New loads the configuration from store and performs the initial scan. A
// store that fails to load leaves the session running on defaults.
func New(store config.Store, opts ...Option) *Session {
	s := &Session{
		store:        store,
		locate:       fs.Locate,
		listSubdirs:  fs.ListSubdirs,
		launcher:     platform.Launcher{},
		trash:        trash.Sink{},
		intn:         rand.Intn,
		topLevelOnly: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	cfg, err := store.Load()
	if err != nil {
		debug.Error(debug.SESSION, "loading settings failed, using defaults: %v", err)
		cfg = config.Default()
	}
	s.cfg = cfg.Clone()

	s.RefreshSubdirectories()
	s.Refresh()
	return s
}

// Config returns a copy of the current scan configuration.
func (s *Session) Config() config.ScanConfig { return s.cfg.Clone() }

// Scope returns the current subdirectory scope.
func (s *Session) Scope() Scope { return s.scope }

// Files returns a copy of the current file set.
func (s *Session) Files() []string { return slices.Clone(s.files) }

// Subdirectories returns the subdirectory index built for the current root.
func (s *Session) Subdirectories() []string { return slices.Clone(s.subdirs) }

// TopLevelOnly reports which subdirectory index variant is in use.
func (s *Session) TopLevelOnly() bool { return s.topLevelOnly }

// Active returns the selected file, if any.
func (s *Session) Active() (string, bool) { return s.active, s.active != "" }

// ExtensionsText returns the extensions in their editable form.
func (s *Session) ExtensionsText() string { return FormatExtensions(s.cfg.Extensions) }

// EffectiveRoot is the directory a refresh scans.
func (s *Session) EffectiveRoot() string { return s.scope.Resolve(s.cfg.Directory) }

func (s *Session) clearSelection() {
	if s.active != "" {
		debug.Log(debug.SESSION, "selection cleared: %q", s.active)
	}
	s.active = ""
}

// persist writes the configuration. Failures are logged and returned as a
// *StoreError; the in-memory change stands.
func (s *Session) persist() error {
	if err := s.store.Save(s.cfg.Clone()); err != nil {
		debug.Error(debug.STORE, "saving settings failed: %v", err)
		return &StoreError{Err: err}
	}
	return nil
}

// SetRootDirectory switches to a new root. Empty or unchanged paths are
// ignored and report false.
func (s *Session) SetRootDirectory(path string) (ScanResult, bool) {
	if path == "" || path == s.cfg.Directory {
		return ScanResult{}, false
	}
	debug.Log(debug.SESSION, "root directory %q -> %q", s.cfg.Directory, path)

	s.cfg.Directory = path
	s.scope = All
	s.clearSelection()
	saveErr := s.persist()
	s.RefreshSubdirectories()

	result := s.Refresh()
	result.SaveErr = saveErr
	return result, true
}

// SetExtensions parses raw and adopts the result when it differs, as a set,
// from the current extensions. The normalized text is returned either way.
func (s *Session) SetExtensions(raw string) (string, ScanResult, bool) {
	exts := ParseExtensions(raw)
	normalized := FormatExtensions(exts)
	if sameSet(exts, s.cfg.Extensions) {
		return normalized, ScanResult{}, false
	}
	debug.Log(debug.SESSION, "extensions %v -> %v", s.cfg.Extensions, exts)

	s.cfg.Extensions = exts
	s.clearSelection()
	saveErr := s.persist()

	result := s.Refresh()
	result.SaveErr = saveErr
	return normalized, result, true
}

// SetRecursive toggles descending into subdirectories.
func (s *Session) SetRecursive(recursive bool) (ScanResult, bool) {
	if recursive == s.cfg.Recursive {
		return ScanResult{}, false
	}
	debug.Log(debug.SESSION, "recursive %v -> %v", s.cfg.Recursive, recursive)

	s.cfg.Recursive = recursive
	s.clearSelection()
	saveErr := s.persist()

	result := s.Refresh()
	result.SaveErr = saveErr
	return result, true
}

// SetSubdirectoryScope narrows scanning to one subdirectory, or widens it
// back with All. The scope is never persisted.
func (s *Session) SetSubdirectoryScope(scope Scope) (ScanResult, bool) {
	scope = scope.normalize()
	if scope == s.scope {
		return ScanResult{}, false
	}
	debug.Log(debug.SESSION, "scope %s -> %s", s.scope, scope)

	s.scope = scope
	s.clearSelection()
	return s.Refresh(), true
}

// SetTopLevelOnly switches the subdirectory index variant and rebuilds it.
func (s *Session) SetTopLevelOnly(on bool) []string {
	s.topLevelOnly = on
	return s.RefreshSubdirectories()
}

// RefreshSubdirectories rebuilds the subdirectory index. A root that cannot
// be listed is logged and yields an empty index.
func (s *Session) RefreshSubdirectories() []string {
	subdirs, err := s.listSubdirs(s.cfg.Directory, s.topLevelOnly)
	if err != nil {
		debug.Warn(debug.FS, "cannot list subdirectories of %s: %v", s.cfg.Directory, err)
		subdirs = nil
	}
	s.subdirs = subdirs
	return slices.Clone(s.subdirs)
}

// Refresh rescans the effective root.
func (s *Session) Refresh() ScanResult {
	root := s.EffectiveRoot()
	if !s.scope.Local() || !fs.IsDir(root) {
		s.files = nil
		debug.Warn(debug.SESSION, "scan root missing: %s", root)
		return ScanResult{
			Status:  ScanNotFound,
			Root:    root,
			Message: fmt.Sprintf("Folder not found:\n%s", root),
			Err:     fmt.Errorf("%w: %s", ErrNotFound, root),
		}
	}

	s.files = s.locate(root, slices.Clone(s.cfg.Extensions), s.cfg.Recursive)
	debug.Log(debug.SESSION, "refresh %s: %d files", root, len(s.files))
	return ScanResult{
		Count:   len(s.files),
		Status:  ScanOK,
		Root:    root,
		Message: fmt.Sprintf("Files found: %d", len(s.files)),
	}
}

// PickRandom selects a file uniformly at random from the file set. With an
// empty set the current selection is left untouched and ok is false.
func (s *Session) PickRandom() (path string, message string, ok bool) {
	if len(s.files) == 0 {
		return "", "No files with the configured extensions were found.", false
	}
	s.active = s.files[s.intn(len(s.files))]
	debug.Log(debug.SESSION, "picked %q", s.active)
	return s.active, fmt.Sprintf("Selected: %s", filepath.Base(s.active)), true
}

// OpenActive opens the selected file with the default application. A failed
// launch keeps the selection.
func (s *Session) OpenActive() error {
	if s.active == "" {
		return ErrNothingSelected
	}
	if err := s.launcher.Open(s.active); err != nil {
		debug.Error(debug.LAUNCH, "open %q failed: %v", s.active, err)
		return &LaunchError{Path: s.active, Err: err}
	}
	return nil
}

// RevealActive shows the selected file in the file manager. When the file
// has vanished the selection is dropped.
func (s *Session) RevealActive() error {
	if s.active == "" {
		return ErrNothingSelected
	}
	path := s.active
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.clearSelection()
			return &RevealError{Path: path, Err: fmt.Errorf("%w: %w", ErrStaleSelection, err)}
		}
		return &RevealError{Path: path, Err: err}
	}
	if err := s.launcher.Reveal(path); err != nil {
		debug.Error(debug.LAUNCH, "reveal %q failed: %v", path, err)
		if errors.Is(err, os.ErrNotExist) {
			s.clearSelection()
			err = fmt.Errorf("%w: %w", ErrStaleSelection, err)
		}
		return &RevealError{Path: path, Err: err}
	}
	return nil
}

// DeleteActive moves the selected file to the trash and rescans. Every
// outcome except "nothing selected" drops the selection.
func (s *Session) DeleteActive() Outcome {
	if s.active == "" {
		return Outcome{Message: "Nothing has been selected yet.", Level: LevelInfo, Err: ErrNothingSelected}
	}
	path := s.active
	name := filepath.Base(path)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		s.clearSelection()
		return Outcome{
			Message: fmt.Sprintf("File '%s' was already removed or moved.", name),
			Level:   LevelError,
			Err:     fmt.Errorf("%w: %w", ErrStaleSelection, err),
		}
	}

	if err := s.trash.MoveToTrash(path); err != nil {
		debug.Error(debug.TRASH, "could not delete %s: %v", path, err)
		s.clearSelection()
		return Outcome{
			Message: fmt.Sprintf("Could not delete file:\n%s", name),
			Level:   LevelError,
			Err:     &TrashError{Path: path, Err: err},
		}
	}

	s.clearSelection()
	s.Refresh()
	return Outcome{
		Message: fmt.Sprintf("File '%s' moved to %s.", name, trash.DisplayName()),
		Level:   LevelSuccess,
	}
}
