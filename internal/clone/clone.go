// Package clone fetches a project's initial content from a git remote.
package clone

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/levirogalla/donna-cli/internal/errdefs"
	"github.com/levirogalla/donna-cli/internal/logging"
)

// Cloner populates dest from url.
type Cloner interface {
	Clone(ctx context.Context, url, dest string) error
}

// GitCloner shells out to git.
type GitCloner struct {
	// Binary is the git executable; "git" when empty.
	Binary string
}

// Clone runs `git clone url dest`. dest must not exist yet.
func (g *GitCloner) Clone(ctx context.Context, url, dest string) error {
	bin, err := g.ensureGit()
	if err != nil {
		return err
	}

	logging.Info("clone", "cloning %s into %s", url, dest)
	cmd := exec.CommandContext(ctx, bin, "clone", url, dest)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errdefs.Wrap(errdefs.ErrSubProcess, errdefs.EntityProject, dest,
			fmt.Errorf("git clone failed: %w\n%s", err, out))
	}
	return nil
}

// ensureGit checks that git is available on PATH.
func (g *GitCloner) ensureGit() (string, error) {
	bin := g.Binary
	if bin == "" {
		bin = "git"
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return "", errdefs.Wrap(errdefs.ErrSubProcess, errdefs.EntityProject, bin,
			fmt.Errorf("git is required but not found in PATH: %w", err))
	}
	return path, nil
}
