// Package platform provides the filesystem primitives donna builds on:
// directory symlinks for alias groups and a Deleter that either removes a
// directory or moves it to the freedesktop trash.
package platform
