package session

import (
	"errors"
	"fmt"
	"path/filepath"
)

var (
	// ErrNotFound means the configured or scoped directory does not exist.
	ErrNotFound = errors.New("folder not found")
	// ErrNothingSelected is returned by actions that need an active file.
	ErrNothingSelected = errors.New("nothing selected yet")
	// ErrStaleSelection means the active file vanished after it was picked.
	ErrStaleSelection = errors.New("file no longer exists")
)

// LaunchError reports a failure of the default application handler.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("cannot open %s: %v", filepath.Base(e.Path), e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// RevealError reports a failure to show the file in the file manager.
type RevealError struct {
	Path string
	Err  error
}

func (e *RevealError) Error() string {
	return fmt.Sprintf("cannot show %s: %v", filepath.Base(e.Path), e.Err)
}

func (e *RevealError) Unwrap() error { return e.Err }

// TrashError reports a failure to move the file to the trash.
type TrashError struct {
	Path string
	Err  error
}

func (e *TrashError) Error() string {
	return fmt.Sprintf("cannot delete %s: %v", filepath.Base(e.Path), e.Err)
}

func (e *TrashError) Unwrap() error { return e.Err }

// StoreError reports that a configuration change could not be persisted.
// The change is still in effect for the running session.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("settings not saved: %v", e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
