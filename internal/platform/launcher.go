// Package platform starts the operating system's default handlers for files.
package platform

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/justyntemme/roulette/internal/debug"
)

// Launcher opens files with the default application and reveals them in the
// file manager. The zero value is ready to use.
type Launcher struct{}

// Open starts the default application for path. No existence check is made;
// whatever the platform handler reports is returned.
func (Launcher) Open(path string) error {
	debug.Log(debug.LAUNCH, "open %q", path)
	return run(platformOpen(path))
}

// Reveal shows path in the file manager, highlighted where the platform
// supports it and otherwise by opening the containing folder. A missing file
// is reported with an error wrapping os.ErrNotExist.
func (Launcher) Reveal(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	debug.Log(debug.LAUNCH, "reveal %q", path)
	return runFirst(platformReveal(path))
}

// runFirst runs cmds in order and stops at the first that succeeds. The
// error of the last attempt is returned when none do.
func runFirst(cmds []*exec.Cmd) error {
	var err error
	for _, cmd := range cmds {
		if err = run(cmd); err == nil {
			return nil
		}
		debug.Log(debug.LAUNCH, "%v", err)
	}
	return err
}

// run executes cmd and folds its stderr into the returned error.
func run(cmd *exec.Cmd) error {
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", cmd.Args[0], err, msg)
		}
		return fmt.Errorf("%s: %w", cmd.Args[0], err)
	}
	return nil
}
