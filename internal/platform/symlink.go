package platform

import (
	"fmt"
	"os"
	"runtime"
)

// CreateSymlink creates a symbolic link at link pointing to target.
// On Windows this needs developer mode or an elevated shell.
func CreateSymlink(target, link string) error {
	if err := os.Symlink(target, link); err != nil {
		if runtime.GOOS == "windows" {
			return fmt.Errorf("creating symlink (enable developer mode): %w", err)
		}
		return fmt.Errorf("creating symlink: %w", err)
	}
	return nil
}

// IsSymlink reports whether path is a symbolic link.
func IsSymlink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

// RemoveSymlink removes the link at path. It refuses to remove anything that
// is not a symlink so a real directory is never deleted by mistake.
func RemoveSymlink(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return fmt.Errorf("%s is not a symlink", path)
	}
	return os.Remove(path)
}

// ReadSymlinkTarget returns the target of a symlink.
func ReadSymlinkTarget(path string) (string, error) {
	return os.Readlink(path)
}
