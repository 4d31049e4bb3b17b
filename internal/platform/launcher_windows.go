//go:build windows

package platform

import (
	"os/exec"
	"path/filepath"
	"syscall"
)

// platformOpen opens the file using the Windows 'start' command.
func platformOpen(path string) *exec.Cmd {
	// 'cmd /c start "" "path"' is the standard way to launch files in Windows
	return exec.Command("cmd", "/c", "start", "", path)
}

// platformReveal selects the file in Explorer. explorer.exe wants the
// /select switch and path as one unquoted-by-Go argument.
func platformReveal(path string) []*exec.Cmd {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	cmd := exec.Command("explorer")
	cmd.SysProcAttr = &syscall.SysProcAttr{CmdLine: `explorer /select,"` + absPath + `"`}
	return []*exec.Cmd{cmd}
}
