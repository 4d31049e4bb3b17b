//go:build !linux && !darwin && !windows

package platform

import (
	"os/exec"
	"path/filepath"
)

func platformOpen(path string) *exec.Cmd {
	return exec.Command("xdg-open", path)
}

func platformReveal(path string) []*exec.Cmd {
	return []*exec.Cmd{exec.Command("xdg-open", filepath.Dir(path))}
}
