package manager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/levirogalla/donna-cli/internal/alias"
	"github.com/levirogalla/donna-cli/internal/errdefs"
	"github.com/levirogalla/donna-cli/internal/hook"
	"github.com/levirogalla/donna-cli/internal/logging"
	"github.com/levirogalla/donna-cli/internal/project"
	"github.com/levirogalla/donna-cli/internal/registry"
)

// CreateProjectRequest describes a project to create or adopt.
type CreateProjectRequest struct {
	Name        string
	ProjectType string   // optional
	AliasGroups []string // linked in addition to the type's defaults
	Library     string   // empty selects the default library
	Handoff     bool     // adopt an existing directory instead of creating one
	CloneURL    string   // optional git remote for the initial content
}

// CreateProjectResult reports how a project was established.
type CreateProjectResult struct {
	Path   string
	Action project.Action
	Record *project.Record
}

// CreateProject establishes a project inside a library, applies its project
// type, runs the builder for fresh non-cloned projects and links it into
// its alias groups. The project type, the library and every alias group are
// resolved before anything is written. Links made by this call are removed
// again if a later link fails.
func (m *Manager) CreateProject(ctx context.Context, req CreateProjectRequest) (*CreateProjectResult, error) {
	if err := validateProjectName(req.Name); err != nil {
		return nil, err
	}
	s, err := m.Begin()
	if err != nil {
		return nil, err
	}
	reg := s.Registry

	libName := reg.ResolveLibraryName(req.Library)
	libPath, err := reg.LibraryPath(libName)
	if err != nil {
		return nil, err
	}

	var pt *registry.ProjectType
	if req.ProjectType != "" {
		found, err := reg.ProjectType(req.ProjectType)
		if err != nil {
			return nil, err
		}
		pt = &found
	}

	names := mergeGroups(req.AliasGroups, pt)
	groups := make([]registry.AliasGroup, 0, len(names))
	for _, name := range names {
		g, err := reg.AliasGroup(name)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}

	projectPath := filepath.Join(libPath, req.Name)
	action, err := project.Decide(project.Probe(projectPath, req.Handoff, req.CloneURL != ""))
	if err != nil {
		return nil, err
	}
	logging.Debug("project", "%s: %s", projectPath, action)

	rec, err := m.establish(ctx, action, projectPath, req.CloneURL)
	if err != nil {
		return nil, err
	}
	result := &CreateProjectResult{Path: projectPath, Action: action, Record: rec}
	if action == project.ActionLoad {
		return result, nil
	}

	if pt != nil {
		rec.ProjectType = req.ProjectType
		rec.Builder = pt.Builder
		rec.Opener = pt.Opener
	}

	if rec.Builder != "" && action == project.ActionCreate && !req.Handoff {
		params := hook.Params{
			ProjectName: req.Name,
			ProjectPath: projectPath,
			ProjectType: req.ProjectType,
			Library:     libName,
		}
		if err := m.hooks.Run(ctx, rec.Builder, params); err != nil {
			return nil, fmt.Errorf("running builder for %s: %w", req.Name, err)
		}
	}

	if err := linkAll(groups, names, projectPath, req.Name, rec); err != nil {
		return nil, err
	}
	if err := project.Save(projectPath, rec); err != nil {
		return nil, err
	}
	return result, nil
}

func (m *Manager) establish(ctx context.Context, action project.Action, projectPath, cloneURL string) (*project.Record, error) {
	switch action {
	case project.ActionCreate:
		if err := os.MkdirAll(projectPath, 0755); err != nil {
			return nil, fmt.Errorf("creating project directory: %w", err)
		}
		return project.Init(projectPath)
	case project.ActionCloneThenCreate:
		if err := m.cloner.Clone(ctx, cloneURL, projectPath); err != nil {
			return nil, err
		}
		if _, err := os.Lstat(project.MarkerPath(projectPath)); err == nil {
			return nil, errdefs.New(errdefs.ErrPathExists, errdefs.EntityProject, project.MarkerPath(projectPath))
		}
		return project.Init(projectPath)
	case project.ActionCreateRecord:
		rec := &project.Record{TrackedAliasGroups: []string{}}
		if err := project.Save(projectPath, rec); err != nil {
			return nil, err
		}
		return rec, nil
	case project.ActionLoad:
		return project.Load(projectPath)
	}
	return nil, fmt.Errorf("unknown creation action %d", action)
}

// mergeGroups lists explicit groups first, then the type's defaults, without
// duplicates.
func mergeGroups(explicit []string, pt *registry.ProjectType) []string {
	var merged []string
	add := func(names []string) {
		for _, n := range names {
			if n != "" && !slices.Contains(merged, n) {
				merged = append(merged, n)
			}
		}
	}
	add(explicit)
	if pt != nil {
		add(pt.DefaultAliasGroups)
	}
	return merged
}

// linkAll links the project into every group and records the names. On
// failure the links created by this call are removed; links that already
// existed are kept.
func linkAll(groups []registry.AliasGroup, names []string, projectPath, projectName string, rec *project.Record) error {
	var made []string
	for i, g := range groups {
		created, err := alias.Link(g.Path, projectPath, projectName)
		if err != nil {
			for _, p := range made {
				if uerr := alias.Unlink(p, projectName); uerr != nil {
					logging.Warn("project", "rollback of link in %s failed: %v", p, uerr)
				}
			}
			return err
		}
		if created {
			made = append(made, g.Path)
		}
		rec.AddAliasGroup(names[i])
	}
	return nil
}

func validateProjectName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid project name %q", name)
	}
	return nil
}

// OpenProject runs the project's opener. A project without an opener is
// left alone.
func (m *Manager) OpenProject(ctx context.Context, name, library string) error {
	path, libName, err := m.locate(name, library)
	if err != nil {
		return err
	}
	rec, err := project.Load(path)
	if err != nil {
		return err
	}
	if rec.Opener == "" {
		logging.Info("project", "%s has no opener", name)
		return nil
	}
	return m.hooks.Run(ctx, rec.Opener, hook.Params{
		ProjectName: name,
		ProjectPath: path,
		ProjectType: rec.ProjectType,
		Library:     libName,
	})
}

// ProjectPath returns the directory of a project in a library.
func (m *Manager) ProjectPath(name, library string) (string, error) {
	path, _, err := m.locate(name, library)
	return path, err
}

// locate returns a project's directory and the name of the library it was
// found in, with an empty library resolved to the default.
func (m *Manager) locate(name, library string) (string, string, error) {
	if err := validateProjectName(name); err != nil {
		return "", "", err
	}
	var path, libName string
	err := m.view(func(s *Session) error {
		libName = s.Registry.ResolveLibraryName(library)
		libPath, err := s.Registry.LibraryPath(libName)
		if err != nil {
			return err
		}
		path = filepath.Join(libPath, name)
		if info, err := os.Stat(path); err != nil || !info.IsDir() {
			return errdefs.New(errdefs.ErrPathDoesNotExist, errdefs.EntityProject, path)
		}
		return nil
	})
	return path, libName, err
}

// ListProjects returns the projects of one library, or of every library
// when library is empty.
func (m *Manager) ListProjects(library string) ([]ProjectInfo, error) {
	var found []ProjectInfo
	err := m.view(func(s *Session) error {
		libs := s.Registry.LibraryNames()
		if library != "" {
			if _, ok := s.Registry.Libraries[library]; !ok {
				return errdefs.NotTracked(errdefs.EntityLibrary, library)
			}
			libs = []string{library}
		}
		found, _ = s.projects(libs)
		return nil
	})
	return found, err
}

// LinkProject adds the project to an alias group after creation.
func (m *Manager) LinkProject(name, library, group string) error {
	return m.editRecord(name, library, group, func(g registry.AliasGroup, path string, rec *project.Record) error {
		if _, err := alias.Link(g.Path, path, name); err != nil {
			return err
		}
		rec.AddAliasGroup(group)
		return nil
	})
}

// UnlinkProject removes the project from an alias group.
func (m *Manager) UnlinkProject(name, library, group string) error {
	return m.editRecord(name, library, group, func(g registry.AliasGroup, path string, rec *project.Record) error {
		if !rec.HasAliasGroup(group) {
			return errdefs.NotTracked(errdefs.EntityAliasGroup, group)
		}
		if err := alias.Unlink(g.Path, name); err != nil {
			return err
		}
		rec.RemoveAliasGroup(group)
		return nil
	})
}

func (m *Manager) editRecord(name, library, group string, edit func(registry.AliasGroup, string, *project.Record) error) error {
	path, err := m.ProjectPath(name, library)
	if err != nil {
		return err
	}
	return m.view(func(s *Session) error {
		g, err := s.Registry.AliasGroup(group)
		if err != nil {
			return err
		}
		rec, err := project.Load(path)
		if err != nil {
			return err
		}
		if err := edit(g, path, rec); err != nil {
			return err
		}
		return project.Save(path, rec)
	})
}
