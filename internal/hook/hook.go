// Package hook runs builder and opener scripts for a project.
//
// A hook receives the project context in PM_PROJECT_* environment variables
// and runs with the project directory as its working directory.
// PM_PROJECT_LIB is the library the project lives in, with the default
// library spelled out by name.
package hook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"github.com/levirogalla/donna-cli/internal/errdefs"
	"github.com/levirogalla/donna-cli/internal/logging"
)

// Environment variable names passed to every hook.
const (
	EnvProjectName = "PM_PROJECT_NAME"
	EnvProjectPath = "PM_PROJECT_PATH"
	EnvProjectType = "PM_PROJECT_TYPE"
	EnvProjectLib  = "PM_PROJECT_LIB"
)

// None is the value exported for an absent parameter.
const None = "none"

// Params describe the project a hook runs for.
type Params struct {
	ProjectName string
	ProjectPath string
	ProjectType string
	Library     string
}

// Env returns the PM_PROJECT_* assignments for p.
func (p Params) Env() []string {
	return []string{
		EnvProjectName + "=" + orNone(p.ProjectName),
		EnvProjectPath + "=" + orNone(p.ProjectPath),
		EnvProjectType + "=" + orNone(p.ProjectType),
		EnvProjectLib + "=" + orNone(p.Library),
	}
}

func orNone(v string) string {
	if v == "" {
		return None
	}
	return v
}

// Runner executes a hook script.
type Runner interface {
	Run(ctx context.Context, script string, p Params) error
}

// ExecRunner runs hooks as subprocesses and waits for them.
type ExecRunner struct {
	// Interpreter, when set, runs the script as its first argument
	// ("/bin/sh" or "bash"). Otherwise the script is executed directly.
	Interpreter string

	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes script with p exported in its environment.
func (r *ExecRunner) Run(ctx context.Context, script string, p Params) error {
	if _, err := os.Stat(script); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errdefs.Wrap(errdefs.ErrPathDoesNotExist, errdefs.EntityHook, script, err)
		}
		return fmt.Errorf("checking hook %s: %w", script, err)
	}

	name, args := script, []string(nil)
	if r.Interpreter != "" {
		name, args = r.Interpreter, []string{script}
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = p.ProjectPath
	env := os.Environ()
	for _, kv := range p.Env() {
		k, v, _ := strings.Cut(kv, "=")
		env = setEnv(env, k, v)
	}
	cmd.Env = env

	stdout := r.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	var stderrBuf bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)

	logging.Debug("hook", "running %s for %s", script, p.ProjectName)
	if err := cmd.Run(); err != nil {
		logging.Error("hook", err, "hook %s failed", script)
		return errdefs.Wrap(errdefs.ErrSubProcess, errdefs.EntityHook, script,
			fmt.Errorf("%w\n%s", err, strings.TrimSpace(stderrBuf.String())))
	}
	return nil
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
