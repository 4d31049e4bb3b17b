//go:build darwin

package platform

import "os/exec"

// platformOpen opens the file using the macOS 'open' command.
func platformOpen(path string) *exec.Cmd {
	return exec.Command("open", path)
}

// platformReveal selects the file in Finder.
func platformReveal(path string) []*exec.Cmd {
	return []*exec.Cmd{exec.Command("open", "-R", path)}
}
