package manager

import (
	"github.com/levirogalla/donna-cli/internal/alias"
	"github.com/levirogalla/donna-cli/internal/errdefs"
	"github.com/levirogalla/donna-cli/internal/logging"
	"github.com/levirogalla/donna-cli/internal/registry"
)

// AliasGroupInfo is a tracked alias group.
type AliasGroupInfo struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// CreateAliasGroup tracks an alias group at path. Without adopt the
// directory is created and must not exist; with adopt it must exist.
func (m *Manager) CreateAliasGroup(name, path string, adopt bool) error {
	abs, err := m.absPath(path)
	if err != nil {
		return err
	}
	return m.update(func(s *Session) error {
		if _, ok := s.Registry.AliasGroups[name]; ok {
			return errdefs.AlreadyTracked(errdefs.EntityAliasGroup, name)
		}
		if err := alias.Create(abs, adopt); err != nil {
			return err
		}
		return s.Registry.AddAliasGroup(name, registry.AliasGroup{Path: abs})
	})
}

// UpdateAliasGroup renames the group and/or moves its directory. Empty
// newName or newPath keep the current value. A rename is cascaded to every
// project record and project type.
func (m *Manager) UpdateAliasGroup(name, newName, newPath string) (SweepReport, error) {
	var report SweepReport
	err := m.update(func(s *Session) error {
		g, err := s.Registry.AliasGroup(name)
		if err != nil {
			return err
		}
		if newName == "" {
			newName = name
		}
		if newName != name {
			if _, ok := s.Registry.AliasGroups[newName]; ok {
				return errdefs.AlreadyTracked(errdefs.EntityAliasGroup, newName)
			}
		}
		target := g.Path
		if newPath != "" {
			if target, err = m.absPath(newPath); err != nil {
				return err
			}
		}

		if err := alias.Move(g.Path, target); err != nil {
			return err
		}
		if _, err := s.Registry.DeleteAliasGroup(name); err != nil {
			return err
		}
		if err := s.Registry.AddAliasGroup(newName, registry.AliasGroup{Path: target}); err != nil {
			return err
		}
		if newName != name {
			report = s.Sweep(Reference{Kind: RefAliasGroup, Name: name}, newName)
		}
		return nil
	})
	return report, err
}

// UntrackAliasGroup forgets an alias group and strips it from every record
// and project type. The directory is left on disk.
func (m *Manager) UntrackAliasGroup(name string) (SweepReport, error) {
	var report SweepReport
	err := m.update(func(s *Session) error {
		var err error
		report, err = untrackAliasGroup(s, name)
		return err
	})
	return report, err
}

func untrackAliasGroup(s *Session, name string) (SweepReport, error) {
	if _, err := s.Registry.DeleteAliasGroup(name); err != nil {
		return SweepReport{}, err
	}
	return s.Sweep(Reference{Kind: RefAliasGroup, Name: name}, ""), nil
}

// DeleteAliasGroup removes the group directory, to the trash when use_trash
// is set, then untracks the group. A missing directory is skipped.
func (m *Manager) DeleteAliasGroup(name string) (SweepReport, error) {
	var report SweepReport
	err := m.update(func(s *Session) error {
		g, err := s.Registry.AliasGroup(name)
		if err != nil {
			return err
		}
		removed, err := alias.Remove(g.Path, m.deleter)
		if err != nil {
			return err
		}
		if !removed {
			logging.Warn("alias", "directory %s of alias group %s is already gone", g.Path, name)
		}
		report, err = untrackAliasGroup(s, name)
		return err
	})
	return report, err
}

// ListAliasGroups returns the tracked alias groups sorted by name.
func (m *Manager) ListAliasGroups() ([]AliasGroupInfo, error) {
	var groups []AliasGroupInfo
	err := m.view(func(s *Session) error {
		for _, name := range s.Registry.AliasGroupNames() {
			groups = append(groups, AliasGroupInfo{Name: name, Path: s.Registry.AliasGroups[name].Path})
		}
		return nil
	})
	return groups, err
}
