//go:build !linux && !darwin && !windows

package trash

import "errors"

func getPath() string { return "" }

func moveToTrash(path string) error {
	return errors.New("trash is not supported on this platform")
}

func displayName() string {
	return "Trash"
}
