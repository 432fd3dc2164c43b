package manager

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/levirogalla/donna-cli/internal/logging"
	"github.com/levirogalla/donna-cli/internal/project"
)

// RefKind is the kind of entity a cascade sweep rewrites.
type RefKind int

const (
	RefAliasGroup RefKind = iota + 1
	RefProjectType
)

// Reference names the entity being untracked or renamed.
type Reference struct {
	Kind RefKind
	Name string
}

// SweepReport lists what a sweep rewrote.
type SweepReport struct {
	Records      []string // project directories whose record changed
	ProjectTypes []string // project types whose default alias groups changed
	Skipped      []string // record files that could not be read
}

// Sweep rewrites every project record, and for alias groups every project
// type, that refers to ref. An empty replacement strips the reference,
// otherwise it is renamed to replacement. Unreadable records are logged and
// skipped. Project types are changed in the session's registry and persisted
// by Commit; records are written immediately.
func (s *Session) Sweep(ref Reference, replacement string) SweepReport {
	var report SweepReport

	if ref.Kind == RefAliasGroup {
		for _, name := range s.Registry.ProjectTypeNames() {
			pt := s.Registry.ProjectTypes[name]
			if !slices.Contains(pt.DefaultAliasGroups, ref.Name) {
				continue
			}
			pt.DefaultAliasGroups = replaceName(pt.DefaultAliasGroups, ref.Name, replacement)
			s.Registry.ProjectTypes[name] = pt
			report.ProjectTypes = append(report.ProjectTypes, name)
		}
	}

	entries, skipped := s.projects(s.Registry.LibraryNames())
	report.Skipped = skipped
	for _, e := range entries {
		if !sweepRecord(e.Record, ref, replacement) {
			continue
		}
		if err := project.Save(e.Path, e.Record); err != nil {
			logging.Error("cascade", err, "could not update %s", e.Path)
			report.Skipped = append(report.Skipped, project.RecordPath(e.Path))
			continue
		}
		report.Records = append(report.Records, e.Path)
	}

	logging.Debug("cascade", "swept %d records and %d project types for %q",
		len(report.Records), len(report.ProjectTypes), ref.Name)
	return report
}

func sweepRecord(rec *project.Record, ref Reference, replacement string) bool {
	switch ref.Kind {
	case RefAliasGroup:
		if replacement == "" {
			return rec.RemoveAliasGroup(ref.Name)
		}
		return rec.RenameAliasGroup(ref.Name, replacement)
	case RefProjectType:
		if rec.ProjectType != ref.Name || ref.Name == replacement {
			return false
		}
		rec.ProjectType = replacement
		return true
	}
	return false
}

// replaceName drops or renames name in list, removing duplicates created by
// the rename.
func replaceName(list []string, name, replacement string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v == name {
			v = replacement
		}
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// ProjectInfo is a project found inside a library.
type ProjectInfo struct {
	Name    string          `yaml:"name"`
	Library string          `yaml:"library"`
	Path    string          `yaml:"path"`
	Record  *project.Record `yaml:"record"`
}

// projects lists the projects one level below each named library. A
// subdirectory without a record is not a project. It also returns the
// record files that failed to load.
func (s *Session) projects(libraries []string) ([]ProjectInfo, []string) {
	var found []ProjectInfo
	var skipped []string

	for _, lib := range libraries {
		root := s.Registry.Libraries[lib]
		entries, err := os.ReadDir(root)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				logging.Warn("cascade", "cannot read library %s at %s: %v", lib, root, err)
			}
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			dir := filepath.Join(root, entry.Name())
			if !project.Exists(dir) {
				continue
			}
			rec, err := project.Load(dir)
			if err != nil {
				logging.Warn("cascade", "skipping project %s: %v", dir, err)
				skipped = append(skipped, project.RecordPath(dir))
				continue
			}
			found = append(found, ProjectInfo{Name: entry.Name(), Library: lib, Path: dir, Record: rec})
		}
	}
	return found, skipped
}
