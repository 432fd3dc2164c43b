package manager

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/levirogalla/donna-cli/internal/config"
	"github.com/levirogalla/donna-cli/internal/hook"
	"github.com/levirogalla/donna-cli/internal/platform"
	"github.com/levirogalla/donna-cli/internal/project"
	"github.com/levirogalla/donna-cli/internal/registry"
	"github.com/levirogalla/donna-cli/internal/userdata"
	"github.com/stretchr/testify/require"
)

type hookCall struct {
	script string
	params hook.Params
}

type recordingRunner struct {
	calls []hookCall
	err   error
}

func (r *recordingRunner) Run(_ context.Context, script string, p hook.Params) error {
	r.calls = append(r.calls, hookCall{script: script, params: p})
	return r.err
}

// fakeCloner writes files into the destination instead of running git.
type fakeCloner struct {
	files map[string]string
	urls  []string
}

func (c *fakeCloner) Clone(_ context.Context, url, dest string) error {
	c.urls = append(c.urls, url)
	if err := os.MkdirAll(dest, 0755); err != nil {
		return err
	}
	for name, content := range c.files {
		p := filepath.Join(dest, name)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

type sandbox struct {
	root     string
	cwd      string
	dataRoot string
	hooks    *recordingRunner
	cloner   *fakeCloner
	m        *Manager
}

func newSandbox(t *testing.T) *sandbox {
	t.Helper()
	root := t.TempDir()
	t.Setenv("DONNA_TEST_HOME", root)
	t.Setenv("DONNA_TEST_CONFIG_HOME", "")
	t.Setenv("DONNA_TEST_DATA_HOME", "")
	r := userdata.Resolver{
		HomeVar:       "DONNA_TEST_HOME",
		ConfigHomeVar: "DONNA_TEST_CONFIG_HOME",
		DataHomeVar:   "DONNA_TEST_DATA_HOME",
	}

	settings, err := config.LoadFile(filepath.Join(root, "settings.yaml"))
	require.NoError(t, err)

	sb := &sandbox{
		root:     root,
		cwd:      filepath.Join(root, "cwd"),
		dataRoot: filepath.Join(root, ".local", "share", "project_manager", "projects"),
		hooks:    &recordingRunner{},
		cloner:   &fakeCloner{},
	}
	require.NoError(t, os.MkdirAll(sb.cwd, 0755))

	sb.m, err = New(r,
		WithSettings(settings),
		WithHookRunner(sb.hooks),
		WithCloner(sb.cloner),
		WithDeleter(platform.Remover{}),
		WithGetwd(func() (string, error) { return sb.cwd, nil }),
	)
	require.NoError(t, err)
	return sb
}

func (sb *sandbox) path(parts ...string) string {
	return filepath.Join(append([]string{sb.root}, parts...)...)
}

func (sb *sandbox) registry(t *testing.T) *registry.Registry {
	t.Helper()
	s, err := sb.m.Begin()
	require.NoError(t, err)
	return s.Registry
}

func (sb *sandbox) record(t *testing.T, projectPath string) *project.Record {
	t.Helper()
	rec, err := project.Load(projectPath)
	require.NoError(t, err)
	return rec
}

func requireSymlinks(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need developer mode on Windows")
	}
}
