// Package project stores the per-project record file and decides how a
// project is established on disk.
//
// A project is a directory inside a library. Its record lives at
// <project>/.pm/project.toml and lists the project type, the hooks copied
// from that type at creation time, and the alias groups the project is
// linked into. Decide maps what already exists on disk to the action the
// creation flow takes.
package project
