package manager

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/levirogalla/donna-cli/internal/errdefs"
	"github.com/levirogalla/donna-cli/internal/logging"
)

// Library is a tracked library.
type Library struct {
	Name    string `yaml:"name"`
	Path    string `yaml:"path"`
	Default bool   `yaml:"default"`
}

// CreateLibrary tracks a library at path, creating the directory unless
// adopt is set, in which case it must already exist.
func (m *Manager) CreateLibrary(name, path string, makeDefault, adopt bool) error {
	abs, err := m.absPath(path)
	if err != nil {
		return err
	}
	return m.update(func(s *Session) error {
		if _, ok := s.Registry.Libraries[name]; ok {
			return errdefs.AlreadyTracked(errdefs.EntityLibrary, name)
		}
		if err := prepareDir(errdefs.EntityLibrary, abs, adopt); err != nil {
			return err
		}
		logging.Info("library", "tracking %s at %s", name, abs)
		return s.Registry.AddLibrary(name, abs, makeDefault)
	})
}

// UntrackLibrary forgets a library. Its directory and projects are left
// on disk.
func (m *Manager) UntrackLibrary(name string) error {
	return m.update(func(s *Session) error {
		_, err := s.Registry.DeleteLibrary(name)
		return err
	})
}

// SetDefaultLibrary selects the library used when none is named.
func (m *Manager) SetDefaultLibrary(name string) error {
	return m.update(func(s *Session) error {
		return s.Registry.SetDefaultLibrary(name)
	})
}

// ListLibraries returns the tracked libraries sorted by name.
func (m *Manager) ListLibraries() ([]Library, error) {
	var libs []Library
	err := m.view(func(s *Session) error {
		def := s.Registry.ResolveLibraryName("")
		for _, name := range s.Registry.LibraryNames() {
			libs = append(libs, Library{Name: name, Path: s.Registry.Libraries[name], Default: name == def})
		}
		return nil
	})
	return libs, err
}

// prepareDir creates or adopts a directory for entity.
func prepareDir(entity errdefs.Entity, path string, adopt bool) error {
	_, err := os.Stat(path)
	switch {
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("checking %s: %w", path, err)
	case adopt && err != nil:
		return errdefs.New(errdefs.ErrPathDoesNotExist, entity, path)
	case adopt:
		return nil
	case err == nil:
		return errdefs.New(errdefs.ErrPathExists, entity, path)
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	return nil
}
