//go:build integration

package integration_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/levirogalla/donna-cli/internal/config"
	"github.com/levirogalla/donna-cli/internal/hook"
	"github.com/levirogalla/donna-cli/internal/manager"
	"github.com/levirogalla/donna-cli/internal/userdata"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir  string // DONNA_IT_HOME, holds .config and .local/share
	WorkDir  string // scratch space for libraries and alias groups
	Resolver userdata.Resolver
	Stdout   *bytes.Buffer
	Manager  *manager.Manager
}

// setupTestEnv creates isolated temp directories, runs init against them and
// builds a manager with real hook and git runners. The env vars are restored
// after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir: t.TempDir(),
		WorkDir: t.TempDir(),
		Stdout:  &bytes.Buffer{},
		Resolver: userdata.Resolver{
			HomeVar:       "DONNA_IT_HOME",
			ConfigHomeVar: "DONNA_IT_CONFIG_HOME",
			DataHomeVar:   "DONNA_IT_DATA_HOME",
		},
	}
	t.Setenv("DONNA_IT_HOME", env.HomeDir)
	t.Setenv("DONNA_IT_CONFIG_HOME", "")
	t.Setenv("DONNA_IT_DATA_HOME", "")

	if err := userdata.Setup(&bytes.Buffer{}, env.Resolver); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	settings, err := config.Load(env.Resolver)
	if err != nil {
		t.Fatalf("loading settings: %v", err)
	}
	runner := &hook.ExecRunner{Interpreter: "/bin/sh", Stdout: env.Stdout, Stderr: env.Stdout}
	m, err := manager.New(env.Resolver,
		manager.WithSettings(settings),
		manager.WithHookRunner(runner),
		manager.WithGetwd(func() (string, error) { return env.WorkDir, nil }),
	)
	if err != nil {
		t.Fatalf("manager.New: %v", err)
	}
	env.Manager = m
	return env
}

// path joins elems under the scratch directory.
func (e *testEnv) path(elems ...string) string {
	return filepath.Join(append([]string{e.WorkDir}, elems...)...)
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if nothing, not even a dangling link,
// exists at path.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertSymlinkTo fails unless path is a symlink pointing at target.
func assertSymlinkTo(t *testing.T, path, target string) {
	t.Helper()
	got, err := os.Readlink(path)
	if err != nil {
		t.Errorf("expected symlink at %s: %v", path, err)
		return
	}
	if got != target {
		t.Errorf("symlink %s points to %s, want %s", path, got, target)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
