// Package alias keeps alias-group directories and their project symlinks in
// step with the registry.
package alias

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/levirogalla/donna-cli/internal/errdefs"
	"github.com/levirogalla/donna-cli/internal/platform"
)

// Create makes the directory of a new alias group. With adopt set the
// directory must already exist; without it, it must not.
func Create(path string, adopt bool) error {
	_, err := os.Stat(path)
	exists := err == nil
	switch {
	case adopt && !exists:
		return errdefs.New(errdefs.ErrPathDoesNotExist, errdefs.EntityAliasGroup, path)
	case adopt:
		return nil
	case exists:
		return errdefs.New(errdefs.ErrPathExists, errdefs.EntityAliasGroup, path)
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("creating alias group directory %s: %w", path, err)
	}
	return nil
}

// Move renames the group directory when the path changed.
func Move(oldPath, newPath string) error {
	if filepath.Clean(oldPath) == filepath.Clean(newPath) {
		return nil
	}
	if _, err := os.Lstat(newPath); err == nil {
		return errdefs.New(errdefs.ErrPathExists, errdefs.EntityAliasGroup, newPath)
	}
	if err := os.MkdirAll(filepath.Dir(newPath), 0755); err != nil {
		return fmt.Errorf("creating parent of %s: %w", newPath, err)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errdefs.Wrap(errdefs.ErrPathDoesNotExist, errdefs.EntityAliasGroup, oldPath, err)
		}
		return fmt.Errorf("moving alias group %s to %s: %w", oldPath, newPath, err)
	}
	return nil
}

// LinkPath returns where a project's symlink lives inside a group.
func LinkPath(groupPath, projectName string) string {
	return filepath.Join(groupPath, projectName)
}

// Link creates <groupPath>/<projectName> pointing at projectPath and reports
// whether it made a new link. An existing link to the same project is left
// alone and reported as false.
func Link(groupPath, projectPath, projectName string) (bool, error) {
	link := LinkPath(groupPath, projectName)
	if target, err := platform.ReadSymlinkTarget(link); err == nil && filepath.Clean(target) == filepath.Clean(projectPath) {
		return false, nil
	}
	if _, err := os.Lstat(link); err == nil {
		return false, errdefs.New(errdefs.ErrPathExists, errdefs.EntityAliasGroup, link)
	}
	if err := platform.CreateSymlink(projectPath, link); err != nil {
		return false, fmt.Errorf("linking %s into %s: %w", projectName, groupPath, err)
	}
	return true, nil
}

// Unlink removes a project's symlink from a group. A missing link is not an
// error.
func Unlink(groupPath, projectName string) error {
	link := LinkPath(groupPath, projectName)
	if !platform.IsSymlink(link) {
		return nil
	}
	if err := platform.RemoveSymlink(link); err != nil {
		return fmt.Errorf("unlinking %s from %s: %w", projectName, groupPath, err)
	}
	return nil
}

// Remove deletes the group directory through d. It reports false when the
// directory was already gone.
func Remove(path string, d platform.Deleter) (bool, error) {
	if _, err := os.Lstat(path); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err := d.Delete(path); err != nil {
		return false, err
	}
	return true, nil
}
