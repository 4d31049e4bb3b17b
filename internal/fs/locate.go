// Package fs finds candidate files and lists subdirectories on disk.
package fs

import (
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"

	"github.com/justyntemme/roulette/internal/debug"
)

// ErrNotDir is returned when a scan root is missing or is not a directory.
var ErrNotDir = errors.New("not a directory")

// skipDirRoots contains top-level directories never worth walking, for users
// who point the scan at "/".
var skipDirRoots = map[string]bool{
	"dev":        true,
	"proc":       true,
	"sys":        true,
	"run":        true,
	"snap":       true,
	"boot":       true,
	"lost+found": true,
}

// shouldSkipPath returns true if the path should be skipped during a walk.
func shouldSkipPath(path string) bool {
	if len(path) < 2 || path[0] != '/' {
		return false
	}
	rest := path[1:]
	if i := strings.IndexByte(rest, '/'); i != -1 {
		rest = rest[:i]
	}
	return skipDirRoots[rest]
}

// IsDir reports whether path exists and is a directory (following symlinks).
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// MatchesExtension reports whether name ends with "."+ext for any ext.
// Comparison is case-sensitive.
func MatchesExtension(name string, exts []string) bool {
	for _, ext := range exts {
		if ext != "" && strings.HasSuffix(name, "."+ext) {
			return true
		}
	}
	return false
}

// Locate returns the absolute paths of files under root whose names end with
// one of exts. Only direct children are considered unless recursive is set.
// A root that is not a directory yields an empty result. The result is sorted.
func Locate(root string, exts []string, recursive bool) []string {
	if !IsDir(root) {
		debug.Log(debug.FS, "locate: %q is not a directory", root)
		return nil
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		debug.Warn(debug.FS, "locate: cannot resolve %q: %v", root, err)
		return nil
	}
	if len(exts) == 0 {
		return nil
	}

	var result []string
	var mu sync.Mutex

	// Don't follow symlinks to avoid walking in circles
	conf := &fastwalk.Config{
		Follow: false,
	}

	err = fastwalk.Walk(conf, absRoot, func(fullPath string, d iofs.DirEntry, err error) error {
		if err != nil {
			debug.Log(debug.FS_WALK, "locate: error at %q: %v", fullPath, err)
			return nil // Skip errors, continue walking
		}
		if fullPath == absRoot {
			return nil
		}

		if d.IsDir() {
			if !recursive || shouldSkipPath(fullPath) {
				return fastwalk.SkipDir
			}
			return nil
		}

		if !MatchesExtension(d.Name(), exts) {
			return nil
		}

		// A symlink counts when it resolves to a regular file.
		if d.Type()&iofs.ModeSymlink != 0 {
			info, err := fastwalk.StatDirEntry(fullPath, d)
			if err != nil || !info.Mode().IsRegular() {
				debug.Log(debug.FS_WALK, "locate: skipping link %q", fullPath)
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}

		debug.Log(debug.FS_WALK, "locate: match %q", fullPath)
		mu.Lock()
		result = append(result, fullPath)
		mu.Unlock()
		return nil
	})
	if err != nil {
		debug.Warn(debug.FS, "locate: walk of %q stopped: %v", absRoot, err)
	}

	sort.Strings(result)
	debug.Log(debug.FS, "locate: root=%q exts=%v recursive=%v found=%d", absRoot, exts, recursive, len(result))
	return result
}

// ListSubdirs returns the names of directories under root, sorted. With
// topLevelOnly only direct children are listed; otherwise every nested
// directory is listed as a slash-separated path relative to root.
func ListSubdirs(root string, topLevelOnly bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, ErrNotDir)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	// Surface an unreadable root instead of reporting it as empty.
	if err := checkReadable(absRoot); err != nil {
		return nil, err
	}

	var result []string
	var mu sync.Mutex

	conf := &fastwalk.Config{
		Follow: false,
	}

	err = fastwalk.Walk(conf, absRoot, func(fullPath string, d iofs.DirEntry, err error) error {
		if err != nil {
			debug.Log(debug.FS_WALK, "subdirs: error at %q: %v", fullPath, err)
			return nil
		}
		if fullPath == absRoot {
			return nil
		}

		isDir := d.IsDir()
		if !isDir && d.Type()&iofs.ModeSymlink != 0 && topLevelOnly {
			// Linked folders are offered at the top level but never descended into.
			if info, err := fastwalk.StatDirEntry(fullPath, d); err == nil && info.IsDir() {
				mu.Lock()
				result = append(result, d.Name())
				mu.Unlock()
			}
			return nil
		}
		if !isDir {
			return nil
		}

		rel, err := filepath.Rel(absRoot, fullPath)
		if err != nil {
			return fastwalk.SkipDir
		}
		mu.Lock()
		result = append(result, filepath.ToSlash(rel))
		mu.Unlock()

		if topLevelOnly || shouldSkipPath(fullPath) {
			return fastwalk.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(result)
	debug.Log(debug.FS, "subdirs: root=%q topLevelOnly=%v found=%d", absRoot, topLevelOnly, len(result))
	return result, nil
}

func checkReadable(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.ReadDir(1); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
