// Package registry holds the tracked libraries, alias groups and project
// types. The registry is one TOML file in the user's config directory. Load
// and Save move it between disk and memory; the methods on *Registry add,
// remove and look up entities. Validate checks a registry document against
// an embedded JSON schema.
package registry
