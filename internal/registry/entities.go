package registry

import (
	"path/filepath"
	"slices"
	"sort"

	"github.com/levirogalla/donna-cli/internal/errdefs"
)

// AddLibrary tracks a library. A duplicate name is rejected. When makeDefault
// is set the library also becomes the default library.
func (r *Registry) AddLibrary(name, path string, makeDefault bool) error {
	if _, ok := r.Libraries[name]; ok {
		return errdefs.AlreadyTracked(errdefs.EntityLibrary, name)
	}
	r.Libraries[name] = path
	if makeDefault {
		r.DefaultLibrary = name
	}
	return nil
}

// DeleteLibrary untracks a library and returns its path. The default library
// setting is cleared if it named this library.
func (r *Registry) DeleteLibrary(name string) (string, error) {
	path, ok := r.Libraries[name]
	if !ok {
		return "", errdefs.NotTracked(errdefs.EntityLibrary, name)
	}
	delete(r.Libraries, name)
	if r.DefaultLibrary == name {
		r.DefaultLibrary = ""
	}
	return path, nil
}

// ResolveLibraryName maps an empty name to the default library, and an unset
// default library to "default".
func (r *Registry) ResolveLibraryName(name string) string {
	if name != "" {
		return name
	}
	if r.DefaultLibrary != "" {
		return r.DefaultLibrary
	}
	return DefaultLibraryName
}

// LibraryPath returns the directory of the named library.
func (r *Registry) LibraryPath(name string) (string, error) {
	name = r.ResolveLibraryName(name)
	path, ok := r.Libraries[name]
	if !ok {
		return "", errdefs.NotTracked(errdefs.EntityLibrary, name)
	}
	return path, nil
}

// SetDefaultLibrary makes an already tracked library the default.
func (r *Registry) SetDefaultLibrary(name string) error {
	if _, ok := r.Libraries[name]; !ok {
		return errdefs.NotTracked(errdefs.EntityLibrary, name)
	}
	r.DefaultLibrary = name
	return nil
}

// AddAliasGroup tracks an alias group.
func (r *Registry) AddAliasGroup(name string, g AliasGroup) error {
	if _, ok := r.AliasGroups[name]; ok {
		return errdefs.AlreadyTracked(errdefs.EntityAliasGroup, name)
	}
	r.AliasGroups[name] = g
	return nil
}

// DeleteAliasGroup untracks an alias group and returns it.
func (r *Registry) DeleteAliasGroup(name string) (AliasGroup, error) {
	g, ok := r.AliasGroups[name]
	if !ok {
		return AliasGroup{}, errdefs.NotTracked(errdefs.EntityAliasGroup, name)
	}
	delete(r.AliasGroups, name)
	return g, nil
}

// AliasGroup looks up a tracked alias group.
func (r *Registry) AliasGroup(name string) (AliasGroup, error) {
	g, ok := r.AliasGroups[name]
	if !ok {
		return AliasGroup{}, errdefs.NotTracked(errdefs.EntityAliasGroup, name)
	}
	return g, nil
}

// AddProjectType defines a project type. Every default alias group must be
// tracked. builder and opener are hook names, joined to the builders and
// openers directories unless already absolute; empty means no hook.
func (r *Registry) AddProjectType(name string, defaults []string, builder, opener string, redefine bool) error {
	_, exists := r.ProjectTypes[name]
	switch {
	case exists && !redefine:
		return errdefs.AlreadyTracked(errdefs.EntityProjectType, name)
	case !exists && redefine:
		return errdefs.NotTracked(errdefs.EntityProjectType, name)
	}

	groups := make([]string, 0, len(defaults))
	for _, g := range defaults {
		if _, ok := r.AliasGroups[g]; !ok {
			return errdefs.NotTracked(errdefs.EntityAliasGroup, g)
		}
		if !slices.Contains(groups, g) {
			groups = append(groups, g)
		}
	}

	r.ProjectTypes[name] = ProjectType{
		DefaultAliasGroups: groups,
		Builder:            ResolveHook(r.BuildersDir, builder),
		Opener:             ResolveHook(r.OpenersDir, opener),
	}
	return nil
}

// DeleteProjectType untracks a project type and returns it.
func (r *Registry) DeleteProjectType(name string) (ProjectType, error) {
	pt, ok := r.ProjectTypes[name]
	if !ok {
		return ProjectType{}, errdefs.NotTracked(errdefs.EntityProjectType, name)
	}
	delete(r.ProjectTypes, name)
	return pt, nil
}

// ProjectType looks up a tracked project type.
func (r *Registry) ProjectType(name string) (ProjectType, error) {
	pt, ok := r.ProjectTypes[name]
	if !ok {
		return ProjectType{}, errdefs.NotTracked(errdefs.EntityProjectType, name)
	}
	return pt, nil
}

// RenameProjectType moves a project type to a new name.
func (r *Registry) RenameProjectType(oldName, newName string) error {
	pt, ok := r.ProjectTypes[oldName]
	if !ok {
		return errdefs.NotTracked(errdefs.EntityProjectType, oldName)
	}
	if oldName == newName {
		return nil
	}
	if _, ok := r.ProjectTypes[newName]; ok {
		return errdefs.AlreadyTracked(errdefs.EntityProjectType, newName)
	}
	delete(r.ProjectTypes, oldName)
	r.ProjectTypes[newName] = pt
	return nil
}

// SetBuildersDir sets the prefix builder names are resolved against.
func (r *Registry) SetBuildersDir(path string) { r.BuildersDir = path }

// SetOpenersDir sets the prefix opener names are resolved against.
func (r *Registry) SetOpenersDir(path string) { r.OpenersDir = path }

// ResolveHook joins a hook name to its prefix directory.
func ResolveHook(prefix, name string) string {
	if name == "" || filepath.IsAbs(name) || prefix == "" {
		return name
	}
	return filepath.Join(prefix, name)
}

// LibraryNames returns tracked library names, sorted.
func (r *Registry) LibraryNames() []string { return sortedKeys(r.Libraries) }

// AliasGroupNames returns tracked alias group names, sorted.
func (r *Registry) AliasGroupNames() []string { return sortedKeys(r.AliasGroups) }

// ProjectTypeNames returns tracked project type names, sorted.
func (r *Registry) ProjectTypeNames() []string { return sortedKeys(r.ProjectTypes) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
