//go:build integration

package integration_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/levirogalla/donna-cli/internal/errdefs"
	"github.com/levirogalla/donna-cli/internal/manager"
	"github.com/levirogalla/donna-cli/internal/project"
	"github.com/levirogalla/donna-cli/internal/registry"
)

// TestFullFlow drives the manager through the usual lifecycle:
// library -> alias groups -> project type -> project -> rename cascade -> untrack.
func TestFullFlow(t *testing.T) {
	env := setupTestEnv(t)
	m := env.Manager
	ctx := context.Background()

	if err := m.CreateLibrary("work", env.path("work"), true, false); err != nil {
		t.Fatalf("CreateLibrary: %v", err)
	}
	for _, g := range []string{"active", "clients"} {
		if err := m.CreateAliasGroup(g, env.path(g), false); err != nil {
			t.Fatalf("CreateAliasGroup(%s): %v", g, err)
		}
	}
	if err := m.DefineProjectType("client", []string{"clients"}, "", "", false); err != nil {
		t.Fatalf("DefineProjectType: %v", err)
	}

	res, err := m.CreateProject(ctx, manager.CreateProjectRequest{
		Name:        "acme",
		ProjectType: "client",
		AliasGroups: []string{"active"},
	})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	projectPath := env.path("work", "acme")
	if res.Path != projectPath || res.Action != project.ActionCreate {
		t.Fatalf("unexpected result: %+v", res)
	}
	assertFileExists(t, project.RecordPath(projectPath))
	assertSymlinkTo(t, env.path("active", "acme"), projectPath)
	assertSymlinkTo(t, env.path("clients", "acme"), projectPath)
	created, err := project.Load(projectPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if created.ProjectType != "client" {
		t.Errorf("expected project type client, got %q", created.ProjectType)
	}

	// Rename a group and move its directory in one step.
	report, err := m.UpdateAliasGroup("clients", "customers", env.path("customers"))
	if err != nil {
		t.Fatalf("UpdateAliasGroup: %v", err)
	}
	if len(report.Records) != 1 || len(report.ProjectTypes) != 1 {
		t.Errorf("unexpected sweep report: %+v", report)
	}
	assertSymlinkTo(t, env.path("customers", "acme"), projectPath)
	assertFileNotExists(t, env.path("clients"))

	rec, err := project.Load(projectPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !rec.HasAliasGroup("customers") || rec.HasAliasGroup("clients") {
		t.Errorf("record not swept: %v", rec.TrackedAliasGroups)
	}

	// Untracking the type clears it from the record.
	if _, err := m.UntrackProjectType("client"); err != nil {
		t.Fatalf("UntrackProjectType: %v", err)
	}
	rec, err = project.Load(projectPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.ProjectType != "" {
		t.Errorf("expected project type cleared, got %q", rec.ProjectType)
	}

	// The registry on disk matches the schema after all of this.
	configPath, err := env.Resolver.ConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	result, err := registry.ValidateFile(configPath)
	if err != nil {
		t.Fatalf("ValidateFile: %v", err)
	}
	if !result.Valid {
		t.Errorf("registry invalid: %+v", result.Issues)
	}
}

func TestRelativePathsResolveAgainstWorkingDir(t *testing.T) {
	env := setupTestEnv(t)

	if err := env.Manager.CreateLibrary("rel", "libs/rel", false, false); err != nil {
		t.Fatalf("CreateLibrary: %v", err)
	}
	libs, err := env.Manager.ListLibraries()
	if err != nil {
		t.Fatal(err)
	}
	for _, l := range libs {
		if l.Name == "rel" && l.Path != env.path("libs", "rel") {
			t.Errorf("expected absolute path %s, got %s", env.path("libs", "rel"), l.Path)
		}
	}
	if _, err := os.Stat(env.path("libs", "rel")); err != nil {
		t.Errorf("library directory not created: %v", err)
	}
}

func TestHandoffKeepsExistingFiles(t *testing.T) {
	env := setupTestEnv(t)
	m := env.Manager

	if err := m.CreateLibrary("work", env.path("work"), true, false); err != nil {
		t.Fatal(err)
	}
	existing := env.path("work", "legacy")
	writeFile(t, filepath.Join(existing, "main.go"), "package main\n")

	// Without handoff the existing directory is refused.
	_, err := m.CreateProject(context.Background(), manager.CreateProjectRequest{Name: "legacy"})
	if !errors.Is(err, errdefs.ErrPathExists) {
		t.Fatalf("expected ErrPathExists, got %v", err)
	}

	res, err := m.CreateProject(context.Background(), manager.CreateProjectRequest{Name: "legacy", Handoff: true})
	if err != nil {
		t.Fatalf("CreateProject handoff: %v", err)
	}
	// No marker directory yet, so the handoff creates a fresh record.
	if res.Action != project.ActionCreate {
		t.Errorf("expected %s, got %s", project.ActionCreate, res.Action)
	}
	assertFileContains(t, filepath.Join(existing, "main.go"), "package main")
	assertFileExists(t, project.RecordPath(existing))

	// A second handoff loads the record untouched.
	res, err = m.CreateProject(context.Background(), manager.CreateProjectRequest{Name: "legacy", Handoff: true})
	if err != nil {
		t.Fatalf("second handoff: %v", err)
	}
	if res.Action != project.ActionLoad {
		t.Errorf("expected %s, got %s", project.ActionLoad, res.Action)
	}
}

func TestHandoffOverMarkerDirWritesRecord(t *testing.T) {
	env := setupTestEnv(t)
	if err := env.Manager.CreateLibrary("work", env.path("work"), true, false); err != nil {
		t.Fatal(err)
	}
	dir := env.path("work", "half")
	if err := os.MkdirAll(project.MarkerPath(dir), 0755); err != nil {
		t.Fatal(err)
	}

	res, err := env.Manager.CreateProject(context.Background(), manager.CreateProjectRequest{Name: "half", Handoff: true})
	if err != nil {
		t.Fatalf("CreateProject handoff: %v", err)
	}
	if res.Action != project.ActionCreateRecord {
		t.Errorf("expected %s, got %s", project.ActionCreateRecord, res.Action)
	}
	assertFileExists(t, project.RecordPath(dir))
}

func TestDeleteAliasGroupUsesTrash(t *testing.T) {
	t.Setenv("DONNA_CLI_USE_TRASH", "true")
	env := setupTestEnv(t)
	m := env.Manager

	if err := m.CreateAliasGroup("old", env.path("old"), false); err != nil {
		t.Fatal(err)
	}
	if _, err := m.DeleteAliasGroup("old"); err != nil {
		t.Fatalf("DeleteAliasGroup: %v", err)
	}
	assertFileNotExists(t, env.path("old"))

	trashRoot, err := env.Resolver.TrashRoot()
	if err != nil {
		t.Fatal(err)
	}
	infos, err := filepath.Glob(filepath.Join(trashRoot, "info", "old.*.trashinfo"))
	if err != nil || len(infos) != 1 {
		t.Fatalf("expected one trashinfo entry, got %v (err %v)", infos, err)
	}
	assertFileContains(t, infos[0], "[Trash Info]")
}
