// Package cli defines the Cobra command tree for the donna CLI. Each file
// registers one command group (lib, alias, type, project commands, config,
// doctor) with the root command. Commands parse flags, call into the
// manager, and format the results.
package cli
