package project

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/levirogalla/donna-cli/internal/errdefs"
	"github.com/pelletier/go-toml/v2"
)

const (
	MarkerDir  = ".pm"
	RecordFile = "project.toml"
)

// Record is the content of <project>/.pm/project.toml.
type Record struct {
	ProjectType        string   `toml:"project_type,omitempty" yaml:"project_type,omitempty"`
	Builder            string   `toml:"builder,omitempty" yaml:"builder,omitempty"`
	Opener             string   `toml:"opener,omitempty" yaml:"opener,omitempty"`
	TrackedAliasGroups []string `toml:"tracked_alias_groups" yaml:"tracked_alias_groups"`
}

// MarkerPath returns the .pm directory of a project.
func MarkerPath(projectPath string) string {
	return filepath.Join(projectPath, MarkerDir)
}

// RecordPath returns the record file of a project.
func RecordPath(projectPath string) string {
	return filepath.Join(projectPath, MarkerDir, RecordFile)
}

// Exists reports whether projectPath holds a record file.
func Exists(projectPath string) bool {
	info, err := os.Stat(RecordPath(projectPath))
	return err == nil && !info.IsDir()
}

// Load reads the record of the project at projectPath.
func Load(projectPath string) (*Record, error) {
	path := RecordPath(projectPath)
	data, err := os.ReadFile(path)
	if err != nil {
		kind := errdefs.ErrConfigIO
		if errors.Is(err, fs.ErrNotExist) {
			kind = errdefs.ErrPathDoesNotExist
		}
		return nil, errdefs.Wrap(kind, errdefs.EntityProject, path, err)
	}

	var rec Record
	if err := toml.Unmarshal(data, &rec); err != nil {
		return nil, errdefs.Wrap(errdefs.ErrConfigParse, errdefs.EntityProject, path, err)
	}
	if rec.TrackedAliasGroups == nil {
		rec.TrackedAliasGroups = []string{}
	}
	return &rec, nil
}

// Save writes the record to <projectPath>/.pm/project.toml.
func Save(projectPath string, rec *Record) error {
	path := RecordPath(projectPath)
	if rec.TrackedAliasGroups == nil {
		rec.TrackedAliasGroups = []string{}
	}

	data, err := toml.Marshal(rec)
	if err != nil {
		return errdefs.Wrap(errdefs.ErrConfigParse, errdefs.EntityProject, path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errdefs.Wrap(errdefs.ErrConfigIO, errdefs.EntityProject, path, err)
	}
	return nil
}

// Init creates the .pm directory and an empty record.
func Init(projectPath string) (*Record, error) {
	if err := os.MkdirAll(MarkerPath(projectPath), 0755); err != nil {
		return nil, errdefs.Wrap(errdefs.ErrConfigIO, errdefs.EntityProject, projectPath, err)
	}
	rec := &Record{TrackedAliasGroups: []string{}}
	if err := Save(projectPath, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// HasAliasGroup reports whether the project is linked into group.
func (r *Record) HasAliasGroup(group string) bool {
	return slices.Contains(r.TrackedAliasGroups, group)
}

// AddAliasGroup appends group unless present. It reports whether the record changed.
func (r *Record) AddAliasGroup(group string) bool {
	if r.HasAliasGroup(group) {
		return false
	}
	r.TrackedAliasGroups = append(r.TrackedAliasGroups, group)
	return true
}

// RemoveAliasGroup drops every occurrence of group.
func (r *Record) RemoveAliasGroup(group string) bool {
	before := len(r.TrackedAliasGroups)
	r.TrackedAliasGroups = slices.DeleteFunc(r.TrackedAliasGroups, func(g string) bool { return g == group })
	return len(r.TrackedAliasGroups) != before
}

// RenameAliasGroup replaces oldName with newName, keeping its position. If
// newName is already tracked the old entry is dropped instead.
func (r *Record) RenameAliasGroup(oldName, newName string) bool {
	i := slices.Index(r.TrackedAliasGroups, oldName)
	if i < 0 || oldName == newName {
		return false
	}
	if r.HasAliasGroup(newName) {
		return r.RemoveAliasGroup(oldName)
	}
	r.TrackedAliasGroups[i] = newName
	return true
}
