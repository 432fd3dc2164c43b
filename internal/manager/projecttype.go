package manager

import (
	"os"

	"github.com/levirogalla/donna-cli/internal/errdefs"
)

// ProjectTypeInfo is a tracked project type.
type ProjectTypeInfo struct {
	Name               string   `yaml:"name"`
	DefaultAliasGroups []string `yaml:"default_alias_groups"`
	Builder            string   `yaml:"builder,omitempty"`
	Opener             string   `yaml:"opener,omitempty"`
}

// DefineProjectType adds a project type, or replaces it when redefine is set.
func (m *Manager) DefineProjectType(name string, defaults []string, builder, opener string, redefine bool) error {
	return m.update(func(s *Session) error {
		return s.Registry.AddProjectType(name, defaults, builder, opener, redefine)
	})
}

// UntrackProjectType forgets a project type and clears it from every record.
func (m *Manager) UntrackProjectType(name string) (SweepReport, error) {
	var report SweepReport
	err := m.update(func(s *Session) error {
		if _, err := s.Registry.DeleteProjectType(name); err != nil {
			return err
		}
		report = s.Sweep(Reference{Kind: RefProjectType, Name: name}, "")
		return nil
	})
	return report, err
}

// RenameProjectType renames a project type and every record's reference to it.
func (m *Manager) RenameProjectType(oldName, newName string) (SweepReport, error) {
	var report SweepReport
	err := m.update(func(s *Session) error {
		if err := s.Registry.RenameProjectType(oldName, newName); err != nil {
			return err
		}
		report = s.Sweep(Reference{Kind: RefProjectType, Name: oldName}, newName)
		return nil
	})
	return report, err
}

// ListProjectTypes returns the tracked project types sorted by name.
func (m *Manager) ListProjectTypes() ([]ProjectTypeInfo, error) {
	var types []ProjectTypeInfo
	err := m.view(func(s *Session) error {
		for _, name := range s.Registry.ProjectTypeNames() {
			pt := s.Registry.ProjectTypes[name]
			types = append(types, ProjectTypeInfo{
				Name:               name,
				DefaultAliasGroups: pt.DefaultAliasGroups,
				Builder:            pt.Builder,
				Opener:             pt.Opener,
			})
		}
		return nil
	})
	return types, err
}

// SetBuildersDir sets the directory builder names are resolved against.
func (m *Manager) SetBuildersDir(path string) error {
	return m.setHookDir(path, func(s *Session, abs string) { s.Registry.SetBuildersDir(abs) })
}

// SetOpenersDir sets the directory opener names are resolved against.
func (m *Manager) SetOpenersDir(path string) error {
	return m.setHookDir(path, func(s *Session, abs string) { s.Registry.SetOpenersDir(abs) })
}

func (m *Manager) setHookDir(path string, set func(*Session, string)) error {
	abs, err := m.absPath(path)
	if err != nil {
		return err
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		return errdefs.New(errdefs.ErrPathDoesNotExist, errdefs.EntityHook, abs)
	}
	return m.update(func(s *Session) error {
		set(s, abs)
		return nil
	})
}
