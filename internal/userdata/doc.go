// Package userdata resolves where donna keeps its files and prepares or
// checks that layout. The registry and settings live in
// <config-home>/project_manager/; the "default" library lives in
// <data-home>/project_manager/projects. Both homes follow the XDG variables
// and fall back to $HOME.
package userdata
