//go:build linux

package platform

import (
	"net/url"
	"os/exec"
	"path/filepath"
)

// platformOpen opens the file using 'xdg-open' (default application).
func platformOpen(path string) *exec.Cmd {
	return exec.Command("xdg-open", path)
}

// platformReveal asks the desktop's file manager to highlight the file over
// D-Bus. Sessions without a FileManager1 owner fall back to opening the
// parent folder with xdg-open.
func platformReveal(path string) []*exec.Cmd {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	var cmds []*exec.Cmd
	if _, err := exec.LookPath("dbus-send"); err == nil {
		uri := (&url.URL{Scheme: "file", Path: absPath}).String()
		cmds = append(cmds, exec.Command("dbus-send", "--session", "--print-reply",
			"--dest=org.freedesktop.FileManager1",
			"/org/freedesktop/FileManager1",
			"org.freedesktop.FileManager1.ShowItems",
			"array:string:"+uri, "string:"))
	}
	return append(cmds, exec.Command("xdg-open", filepath.Dir(absPath)))
}
