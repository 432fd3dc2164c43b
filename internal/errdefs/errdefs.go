// Package errdefs defines the error kinds shared by every donna package.
//
// Each kind is a sentinel. Callers match kinds with errors.Is and recover the
// entity involved with errors.As on *Error.
package errdefs

import (
	"errors"
	"fmt"
)

// Error kinds.
var (
	// ErrNotTracked is returned when a name is absent from its registry map.
	ErrNotTracked = errors.New("not tracked")

	// ErrAlreadyTracked is returned on a duplicate registration without an
	// explicit redefine or adopt flag.
	ErrAlreadyTracked = errors.New("already tracked")

	// ErrPathExists is returned when a creation target already exists.
	ErrPathExists = errors.New("path exists")

	// ErrPathDoesNotExist is returned when an adoption or lookup target is missing.
	ErrPathDoesNotExist = errors.New("path does not exist")

	// ErrConfigIO is returned when a registry or record file cannot be read or written.
	ErrConfigIO = errors.New("config io error")

	// ErrConfigParse is returned on malformed TOML or an unsupported format.
	ErrConfigParse = errors.New("config parse error")

	// ErrSubProcess is returned when a hook or clone subprocess fails.
	ErrSubProcess = errors.New("sub process error")

	// ErrInconsistentState is returned when a record file exists without its
	// parent directory. It is not recoverable.
	ErrInconsistentState = errors.New("inconsistent state")

	// ErrStaleRegistry is returned when the registry file changed on disk
	// after it was loaded.
	ErrStaleRegistry = errors.New("registry changed since it was loaded")
)

// Entity names the kind of object an error refers to.
type Entity string

const (
	EntityLibrary     Entity = "library"
	EntityAliasGroup  Entity = "alias group"
	EntityProjectType Entity = "project type"
	EntityProject     Entity = "project"
	EntityHook        Entity = "hook"
	EntityConfig      Entity = "config"
)

// Error attaches an entity and a name (or path) to an error kind.
type Error struct {
	Kind   error
	Entity Entity
	Name   string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %q: %v", e.Entity, e.Name, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// New returns an *Error of the given kind.
func New(kind error, entity Entity, name string) error {
	return &Error{Kind: kind, Entity: entity, Name: name}
}

// Wrap returns an *Error of the given kind carrying cause.
func Wrap(kind error, entity Entity, name string, cause error) error {
	return &Error{Kind: kind, Entity: entity, Name: name, Err: cause}
}

// NotTracked is shorthand for New(ErrNotTracked, entity, name).
func NotTracked(entity Entity, name string) error {
	return New(ErrNotTracked, entity, name)
}

// AlreadyTracked is shorthand for New(ErrAlreadyTracked, entity, name).
func AlreadyTracked(entity Entity, name string) error {
	return New(ErrAlreadyTracked, entity, name)
}

// IsEntity reports whether err is an *Error of the given kind and entity.
func IsEntity(err, kind error, entity Entity) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Entity == entity && errors.Is(e.Kind, kind)
}
