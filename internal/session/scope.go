package session

import "path/filepath"

// Scope restricts a scan to one subdirectory of the root. The zero value
// scans the whole root.
type Scope struct {
	subdir string
}

// All is the scope covering the whole root directory.
var All = Scope{}

// Subdir returns a scope limited to name, a slash-separated path relative to
// the root. An empty name is the same as All. Names that leave the root,
// such as "../x" or an absolute path, give a scope that never matches a
// folder.
func Subdir(name string) Scope {
	return Scope{subdir: filepath.ToSlash(filepath.Clean(filepath.FromSlash(name)))}.normalize()
}

func (s Scope) normalize() Scope {
	if s.subdir == "." || s.subdir == "" {
		return All
	}
	return s
}

// IsAll reports whether the scope covers the whole root.
func (s Scope) IsAll() bool {
	return s.subdir == ""
}

// Local reports whether the scope stays inside the root.
func (s Scope) Local() bool {
	return s.IsAll() || filepath.IsLocal(filepath.FromSlash(s.subdir))
}

// Name returns the subdirectory name and whether one is set.
func (s Scope) Name() (string, bool) {
	return s.subdir, s.subdir != ""
}

// Resolve joins the scope onto root.
func (s Scope) Resolve(root string) string {
	if s.IsAll() {
		return root
	}
	return filepath.Join(root, filepath.FromSlash(s.subdir))
}

func (s Scope) String() string {
	if s.IsAll() {
		return "(everywhere)"
	}
	return s.subdir
}
