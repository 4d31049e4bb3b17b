package platform

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestRevealMissingFile(t *testing.T) {
	err := Launcher{}.Reveal(filepath.Join(t.TempDir(), "gone.mp4"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestRunReportsFailure(t *testing.T) {
	err := run(exec.Command(filepath.Join(t.TempDir(), "no-such-handler")))
	if err == nil {
		t.Fatal("expected an error for a missing handler")
	}
}

func TestPlatformCommandsTargetPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	cmd := platformOpen(path)
	if cmd.Args[len(cmd.Args)-1] != path {
		t.Errorf("open command should end with the path, got %v", cmd.Args)
	}
	reveal := platformReveal(path)
	if len(reveal) == 0 {
		t.Fatal("no reveal command")
	}
	for _, cmd := range reveal {
		if len(cmd.Args) == 0 {
			t.Error("reveal command is empty")
		}
	}
}

func TestRunFirstFallsBack(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	marker := filepath.Join(t.TempDir(), "fallback-ran")
	cmds := []*exec.Cmd{
		exec.Command(sh, "-c", "echo no owner >&2; exit 1"),
		exec.Command(sh, "-c", `touch "$1"`, "sh", marker),
	}
	if err := runFirst(cmds); err != nil {
		t.Fatalf("runFirst: %v", err)
	}
	if _, err := os.Stat(marker); err != nil {
		t.Errorf("fallback command did not run: %v", err)
	}
}

func TestRunFirstReportsLastFailure(t *testing.T) {
	dir := t.TempDir()
	err := runFirst([]*exec.Cmd{
		exec.Command(filepath.Join(dir, "first")),
		exec.Command(filepath.Join(dir, "second")),
	})
	if err == nil {
		t.Fatal("expected an error when every command fails")
	}
	if !strings.Contains(err.Error(), "second") {
		t.Errorf("expected the last failure, got %v", err)
	}
}
