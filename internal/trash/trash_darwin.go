//go:build darwin

package trash

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// macOS uses ~/.Trash. Files are moved there directly without metadata, so
// name clashes get a timestamp the way Finder does it.

func getPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".Trash")
}

func moveToTrash(path string) error {
	trashPath := getPath()
	if trashPath == "" {
		return fmt.Errorf("trash directory not found")
	}

	baseName := filepath.Base(path)
	destPath := filepath.Join(trashPath, baseName)
	if _, err := os.Lstat(destPath); err == nil {
		ext := filepath.Ext(baseName)
		name := strings.TrimSuffix(baseName, ext)
		timestamp := time.Now().Format("2006-01-02-150405")
		destPath = filepath.Join(trashPath, uniqueName(trashPath, fmt.Sprintf("%s %s%s", name, timestamp, ext)))
	}

	if err := moveFile(path, destPath); err != nil {
		return fmt.Errorf("cannot move file to trash: %w", err)
	}
	return nil
}

func displayName() string {
	return "Trash"
}
