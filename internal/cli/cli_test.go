package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/levirogalla/donna-cli/internal/userdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sandbox points the CLI at a temporary home and returns it.
func sandbox(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("DONNA_TEST_HOME", home)
	t.Setenv("DONNA_TEST_CONFIG_HOME", "")
	t.Setenv("DONNA_TEST_DATA_HOME", "")

	prev := resolver
	resolver = userdata.Resolver{
		HomeVar:       "DONNA_TEST_HOME",
		ConfigHomeVar: "DONNA_TEST_CONFIG_HOME",
		DataHomeVar:   "DONNA_TEST_DATA_HOME",
	}
	t.Cleanup(func() {
		resolver = prev
		resetState()
	})
	return home
}

// resetState clears package-level flag values and cached state between runs.
func resetState() {
	mgr, settings = nil, nil
	flagVerbose, flagLogLevel, flagOutput = false, "", "table"
	versionShort = false
	libDefault, libAdopt = false, false
	aliasAdopt, aliasNewName, aliasNewPath = false, "", ""
	typeGroups, typeBuilder, typeOpener, typeRedefine = nil, "", "", false
	newType, newGroups, newLib, newHandoff, newClone = "", nil, "", false, ""
	projectLib = ""
	doctorFix = false
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetState()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, "donna %v", args)
	return out
}

func TestWorkflow(t *testing.T) {
	home := sandbox(t)
	work := filepath.Join(home, "work")
	g1 := filepath.Join(home, "g1")

	mustRun(t, "init")
	assert.Contains(t, mustRun(t, "lib", "create", "work", work), "Created library work")
	mustRun(t, "alias", "create", "g1", g1)
	mustRun(t, "type", "define", "T", "-g", "g1")

	out := mustRun(t, "new", "P", "-t", "T", "-l", "work")
	assert.Contains(t, out, filepath.Join(work, "P"))
	assert.Contains(t, out, "linked into g1")

	target, err := os.Readlink(filepath.Join(g1, "P"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(work, "P"), target)

	assert.Equal(t, filepath.Join(work, "P")+"\n", mustRun(t, "path", "P", "-l", "work"))

	listed := mustRun(t, "list", "-o", "yaml")
	assert.Contains(t, listed, "name: P")
	assert.Contains(t, listed, "library: work")

	out = mustRun(t, "type", "rename", "T", "U")
	assert.Contains(t, out, "Updated 1 project record(s)")
	assert.Contains(t, mustRun(t, "list", "-o", "yaml"), "project_type: U")

	mustRun(t, "unlink", "P", "g1", "-l", "work")
	_, err = os.Lstat(filepath.Join(g1, "P"))
	assert.True(t, os.IsNotExist(err))

	mustRun(t, "doctor")
}

func TestLibList_OnlyDefault(t *testing.T) {
	home := sandbox(t)
	out := mustRun(t, "lib", "list", "-o", "yaml")
	assert.Equal(t, 1, strings.Count(out, "name:"), "only the built-in library is listed:\n%s", out)
	assert.Contains(t, out, "name: default")
	assert.Contains(t, out, filepath.Join(home, ".local", "share", "project_manager", "projects"))
	assert.Contains(t, out, "default: true")
}

func TestRender_EmptyMessage(t *testing.T) {
	resetState()
	var buf bytes.Buffer
	require.NoError(t, render(&buf, nil, []string{"NAME"}, nil, "Nothing here."))
	assert.Equal(t, "Nothing here.\n", buf.String())
}

func TestProjectList_Empty(t *testing.T) {
	sandbox(t)
	assert.Contains(t, mustRun(t, "list"), "No projects found.")
}

func TestUnknownOutputFormat(t *testing.T) {
	sandbox(t)
	_, err := run(t, "alias", "list", "-o", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestAliasUpdate_RequiresChange(t *testing.T) {
	sandbox(t)
	_, err := run(t, "alias", "update", "g1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
}

func TestConfigSetGet(t *testing.T) {
	sandbox(t)
	mustRun(t, "config", "set", "use_trash", "true")
	assert.Equal(t, "true\n", mustRun(t, "config", "get", "use_trash"))
}

func TestVersionShort(t *testing.T) {
	sandbox(t)
	buildVersion = "1.2.3"
	t.Cleanup(func() { buildVersion = "" })
	assert.Equal(t, "1.2.3\n", mustRun(t, "version", "--short"))
}

func TestVersionYAML(t *testing.T) {
	sandbox(t)
	buildVersion, buildCommit = "1.2.3", "abc123"
	t.Cleanup(func() { buildVersion, buildCommit = "", "" })

	out := mustRun(t, "version", "-o", "yaml")
	assert.Contains(t, out, "version: 1.2.3")
	assert.Contains(t, out, "commit: abc123")
	assert.Contains(t, out, "go_version: go")
	assert.Contains(t, out, "platform: "+runtime.GOOS+"/"+runtime.GOARCH)
}
