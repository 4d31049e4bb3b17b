//go:build linux

package trash

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Linux follows the freedesktop.org trash specification:
//   $XDG_DATA_HOME/Trash/files/     trashed files
//   $XDG_DATA_HOME/Trash/info/      <name>.trashinfo metadata
//
// [Trash Info]
// Path=/home/user/Videos/my%20clip.mp4
// DeletionDate=2024-01-15T10:30:45

func getPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "Trash")
}

func moveToTrash(path string) error {
	trashPath := getPath()
	if trashPath == "" {
		return fmt.Errorf("trash directory not found")
	}
	filesPath := filepath.Join(trashPath, "files")
	infoPath := filepath.Join(trashPath, "info")

	if err := os.MkdirAll(filesPath, 0o700); err != nil {
		return fmt.Errorf("cannot create trash files directory: %w", err)
	}
	if err := os.MkdirAll(infoPath, 0o700); err != nil {
		return fmt.Errorf("cannot create trash info directory: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	destName := uniqueInfoName(filesPath, infoPath, filepath.Base(absPath))
	destPath := filepath.Join(filesPath, destName)

	infoContent := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		escapeInfoPath(absPath),
		time.Now().Format("2006-01-02T15:04:05"))

	infoFilePath := filepath.Join(infoPath, destName+".trashinfo")
	if err := os.WriteFile(infoFilePath, []byte(infoContent), 0o600); err != nil {
		return fmt.Errorf("cannot create trashinfo file: %w", err)
	}

	if err := moveFile(absPath, destPath); err != nil {
		os.Remove(infoFilePath)
		return fmt.Errorf("cannot move file to trash: %w", err)
	}
	return nil
}

// escapeInfoPath percent-encodes path for a .trashinfo Path= line, keeping
// the '/' separators.
func escapeInfoPath(path string) string {
	return (&url.URL{Path: filepath.ToSlash(path)}).EscapedPath()
}

// uniqueInfoName picks a name that is free in files/ and has no leftover
// .trashinfo in info/.
func uniqueInfoName(filesPath, infoPath, base string) string {
	return nextFreeName(base, func(name string) bool {
		return exists(filepath.Join(filesPath, name)) ||
			exists(filepath.Join(infoPath, name+".trashinfo"))
	})
}

func displayName() string {
	return "Trash"
}
