package platform

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// Deleter removes a directory tree.
type Deleter interface {
	Delete(path string) error
}

// NewDeleter returns a Trash rooted at trashRoot when useTrash is set and a
// Remover otherwise.
func NewDeleter(useTrash bool, trashRoot string) Deleter {
	if useTrash {
		return &Trash{Root: trashRoot}
	}
	return Remover{}
}

// Remover deletes permanently.
type Remover struct{}

// Delete removes path and everything below it.
func (Remover) Delete(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

// Trash moves deleted paths into a freedesktop trash directory
// (<root>/files and <root>/info).
type Trash struct {
	Root string
	Now  func() time.Time

	rename func(oldpath, newpath string) error
}

// Delete moves path into the trash and writes its .trashinfo entry. The
// trashed name gets a random suffix so repeated deletions never collide.
func (t *Trash) Delete(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	filesDir := filepath.Join(t.Root, "files")
	infoDir := filepath.Join(t.Root, "info")
	for _, dir := range []string{filesDir, infoDir} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("creating trash directory %s: %w", dir, err)
		}
	}

	name := filepath.Base(abs) + "." + uuid.NewString()
	infoPath := filepath.Join(infoDir, name+".trashinfo")
	if err := os.WriteFile(infoPath, []byte(trashInfo(abs, t.now())), 0600); err != nil {
		return fmt.Errorf("writing trash info: %w", err)
	}

	if err := t.move(abs, filepath.Join(filesDir, name)); err != nil {
		os.Remove(infoPath)
		return fmt.Errorf("moving %s to trash: %w", abs, err)
	}
	return nil
}

// move renames src to dst. When they are on different filesystems the tree
// is copied and the source removed instead.
func (t *Trash) move(src, dst string) error {
	rename := t.rename
	if rename == nil {
		rename = os.Rename
	}
	err := rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}

	if err := copyTree(src, dst); err != nil {
		os.RemoveAll(dst)
		return fmt.Errorf("copying across filesystems: %w", err)
	}
	return os.RemoveAll(src)
}

func (t *Trash) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

func trashInfo(path string, at time.Time) string {
	escaped := (&url.URL{Path: path}).EscapedPath()
	return fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n", escaped, at.Format("2006-01-02T15:04:05"))
}
