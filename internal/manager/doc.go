// Package manager implements donna's operations on libraries, alias groups,
// project types and projects.
//
// Every operation runs as a Session: load the registry, mutate it, apply the
// filesystem side effects, then commit. Operations that untrack or rename an
// alias group or project type finish with a cascade sweep that rewrites every
// project record and project type still referring to the old name.
package manager
