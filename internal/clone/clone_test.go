package clone

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/levirogalla/donna-cli/internal/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

func gitRun(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
}

func TestGitCloner_LocalRepo(t *testing.T) {
	requireGit(t)
	src := t.TempDir()
	gitRun(t, src, "init", "-q")
	require.NoError(t, os.WriteFile(filepath.Join(src, "README.md"), []byte("# hi\n"), 0644))
	gitRun(t, src, "add", ".")
	gitRun(t, src, "commit", "-q", "-m", "init")

	dest := filepath.Join(t.TempDir(), "p1")
	require.NoError(t, (&GitCloner{}).Clone(context.Background(), src, dest))
	assert.FileExists(t, filepath.Join(dest, "README.md"))
}

func TestGitCloner_BadRemote(t *testing.T) {
	requireGit(t)
	dest := filepath.Join(t.TempDir(), "p1")
	err := (&GitCloner{}).Clone(context.Background(), filepath.Join(t.TempDir(), "not-a-repo"), dest)
	assert.ErrorIs(t, err, errdefs.ErrSubProcess)
}

func TestGitCloner_MissingBinary(t *testing.T) {
	err := (&GitCloner{Binary: "definitely-not-git-binary"}).Clone(context.Background(), "x", t.TempDir())
	assert.ErrorIs(t, err, errdefs.ErrSubProcess)
}
