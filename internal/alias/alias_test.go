package alias

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/levirogalla/donna-cli/internal/errdefs"
	"github.com/levirogalla/donna-cli/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	tmp := t.TempDir()
	existing := filepath.Join(tmp, "existing")
	require.NoError(t, os.MkdirAll(existing, 0755))
	missing := filepath.Join(tmp, "missing")

	assert.ErrorIs(t, Create(existing, false), errdefs.ErrPathExists)
	assert.ErrorIs(t, Create(missing, true), errdefs.ErrPathDoesNotExist)
	assert.NoError(t, Create(existing, true))

	require.NoError(t, Create(missing, false))
	assert.DirExists(t, missing)
}

func TestMove(t *testing.T) {
	tmp := t.TempDir()
	oldPath := filepath.Join(tmp, "old")
	require.NoError(t, os.MkdirAll(oldPath, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(oldPath, "marker"), nil, 0644))

	require.NoError(t, Move(oldPath, oldPath))
	assert.DirExists(t, oldPath)

	newPath := filepath.Join(tmp, "nested", "new")
	require.NoError(t, Move(oldPath, newPath))
	assert.NoDirExists(t, oldPath)
	assert.FileExists(t, filepath.Join(newPath, "marker"))

	assert.ErrorIs(t, Move(oldPath, filepath.Join(tmp, "other")), errdefs.ErrPathDoesNotExist)

	require.NoError(t, os.MkdirAll(oldPath, 0755))
	assert.ErrorIs(t, Move(oldPath, newPath), errdefs.ErrPathExists)
}

func TestLinkUnlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need developer mode on Windows")
	}
	tmp := t.TempDir()
	group := filepath.Join(tmp, "group")
	project := filepath.Join(tmp, "lib", "p1")
	require.NoError(t, os.MkdirAll(group, 0755))
	require.NoError(t, os.MkdirAll(project, 0755))

	created, err := Link(group, project, "p1")
	require.NoError(t, err)
	assert.True(t, created)
	target, err := os.Readlink(filepath.Join(group, "p1"))
	require.NoError(t, err)
	assert.Equal(t, project, target)

	created, err = Link(group, project, "p1")
	require.NoError(t, err, "relinking the same project is a no-op")
	assert.False(t, created)

	other := filepath.Join(tmp, "lib2", "p1")
	_, err = Link(group, other, "p1")
	assert.ErrorIs(t, err, errdefs.ErrPathExists)

	require.NoError(t, Unlink(group, "p1"))
	assert.False(t, platform.IsSymlink(filepath.Join(group, "p1")))
	require.NoError(t, Unlink(group, "p1"))
}

func TestRemove(t *testing.T) {
	tmp := t.TempDir()
	group := filepath.Join(tmp, "group")
	require.NoError(t, os.MkdirAll(group, 0755))

	removed, err := Remove(group, platform.Remover{})
	require.NoError(t, err)
	assert.True(t, removed)
	assert.NoDirExists(t, group)

	removed, err = Remove(group, platform.Remover{})
	require.NoError(t, err)
	assert.False(t, removed)
}
