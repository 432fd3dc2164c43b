package project

import (
	"os"

	"github.com/levirogalla/donna-cli/internal/errdefs"
)

// Action is what the creation flow does to establish a project.
type Action int

const (
	// ActionCreate creates the project directory (if needed), the marker
	// directory and an empty record.
	ActionCreate Action = iota + 1
	// ActionCloneThenCreate clones the repository into the project
	// directory, then creates the marker directory and record.
	ActionCloneThenCreate
	// ActionCreateRecord writes a record into an existing marker directory.
	ActionCreateRecord
	// ActionLoad loads the existing record unchanged.
	ActionLoad
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionCloneThenCreate:
		return "clone-then-create"
	case ActionCreateRecord:
		return "create-record"
	case ActionLoad:
		return "load"
	default:
		return "unknown"
	}
}

// Inputs are the facts Decide works from.
type Inputs struct {
	Path       string // project directory, used in errors
	Handoff    bool
	DirExists  bool
	FileExists bool
	Clone      bool
}

// Probe stats the filesystem for Decide. DirExists refers to the project
// directory in create mode and to the marker directory in handoff mode.
func Probe(projectPath string, handoff, clone bool) Inputs {
	dir := projectPath
	if handoff {
		dir = MarkerPath(projectPath)
	}
	return Inputs{
		Path:       projectPath,
		Handoff:    handoff,
		DirExists:  isDir(dir),
		FileExists: fileExists(RecordPath(projectPath)),
		Clone:      clone,
	}
}

// Decide picks the creation action. A record without its directory is
// reported as ErrInconsistentState.
func Decide(in Inputs) (Action, error) {
	if in.FileExists && !in.DirExists {
		return 0, errdefs.New(errdefs.ErrInconsistentState, errdefs.EntityProject, in.Path)
	}

	if !in.Handoff {
		if in.DirExists {
			return 0, errdefs.New(errdefs.ErrPathExists, errdefs.EntityProject, in.Path)
		}
		if in.Clone {
			return ActionCloneThenCreate, nil
		}
		return ActionCreate, nil
	}

	switch {
	case !in.DirExists:
		return ActionCreate, nil
	case !in.FileExists:
		return ActionCreateRecord, nil
	default:
		return ActionLoad, nil
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
