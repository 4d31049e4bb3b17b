// Package trash moves files to the system trash (Recycle Bin on Windows)
// instead of deleting them permanently.
package trash

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/justyntemme/roulette/internal/debug"
)

// Sink moves files to the platform trash. The zero value is ready to use.
type Sink struct{}

// MoveToTrash implements the trash sink used by the session.
func (Sink) MoveToTrash(path string) error {
	return MoveToTrash(path)
}

// MoveToTrash moves a file or directory to the system trash.
func MoveToTrash(path string) error {
	if _, err := os.Lstat(path); err != nil {
		return err
	}
	debug.Log(debug.TRASH, "moving %q to %s", path, DisplayName())
	if err := moveToTrash(path); err != nil {
		debug.Error(debug.TRASH, "move %q to %s failed: %v", path, DisplayName(), err)
		return err
	}
	return nil
}

// GetPath returns the path to the trash directory.
func GetPath() string {
	return getPath()
}

// DisplayName returns "Recycle Bin" on Windows and "Trash" elsewhere.
func DisplayName() string {
	return displayName()
}

// uniqueName returns a name in dir derived from base that is not taken yet,
// appending .1, .2, ... before the extension.
func uniqueName(dir, base string) string {
	return nextFreeName(base, func(name string) bool {
		return exists(filepath.Join(dir, name))
	})
}

// nextFreeName returns the first of base, base.1, base.2, ... (counter
// before the extension) for which taken is false.
func nextFreeName(base string, taken func(name string) bool) string {
	name := base
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for counter := 1; taken(name); counter++ {
		name = fmt.Sprintf("%s.%d%s", stem, counter, ext)
	}
	return name
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return !os.IsNotExist(err)
}
