package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/levirogalla/donna-cli/internal/branding"
)

// Directory and file name constants for the on-disk layout.
const (
	ConfigFile   = "config.toml"
	SettingsFile = "settings.yaml"
	ProjectsDir  = "projects"
	BuildersDir  = "builders"
	OpenersDir   = "openers"
	TrashDir     = "Trash"
)

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
)

// Resolver locates the config and data homes from environment variables.
// Each variable name is injectable so tests can relocate every path without
// touching the real user directories.
type Resolver struct {
	HomeVar       string
	ConfigHomeVar string
	DataHomeVar   string
}

// DefaultResolver returns a Resolver reading HOME, XDG_CONFIG_HOME and XDG_DATA_HOME.
func DefaultResolver() Resolver {
	return Resolver{
		HomeVar:       "HOME",
		ConfigHomeVar: "XDG_CONFIG_HOME",
		DataHomeVar:   "XDG_DATA_HOME",
	}
}

// ConfigHome returns $XDG_CONFIG_HOME, falling back to $HOME/.config.
func (r Resolver) ConfigHome() (string, error) {
	return r.baseDir(r.ConfigHomeVar, ".config")
}

// DataHome returns $XDG_DATA_HOME, falling back to $HOME/.local/share.
func (r Resolver) DataHome() (string, error) {
	return r.baseDir(r.DataHomeVar, filepath.Join(".local", "share"))
}

func (r Resolver) baseDir(overrideVar, homeRel string) (string, error) {
	if overrideVar != "" {
		if v := os.Getenv(overrideVar); v != "" {
			return v, nil
		}
	}
	homeVar := r.HomeVar
	if homeVar == "" {
		homeVar = "HOME"
	}
	home := os.Getenv(homeVar)
	if home == "" {
		return "", fmt.Errorf("resolving home directory: %s is not set", homeVar)
	}
	return filepath.Join(home, homeRel), nil
}

// ConfigDir returns <config-home>/project_manager.
func (r Resolver) ConfigDir() (string, error) {
	home, err := r.ConfigHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, branding.AppDir()), nil
}

// ConfigPath returns the registry file path, <config-home>/project_manager/config.toml.
func (r Resolver) ConfigPath() (string, error) {
	return r.inConfigDir(ConfigFile)
}

// SettingsPath returns the settings file path, <config-home>/project_manager/settings.yaml.
func (r Resolver) SettingsPath() (string, error) {
	return r.inConfigDir(SettingsFile)
}

// DefaultBuildersDir returns the builders prefix used when the registry has none.
func (r Resolver) DefaultBuildersDir() (string, error) {
	return r.inConfigDir(BuildersDir)
}

// DefaultOpenersDir returns the openers prefix used when the registry has none.
func (r Resolver) DefaultOpenersDir() (string, error) {
	return r.inConfigDir(OpenersDir)
}

func (r Resolver) inConfigDir(name string) (string, error) {
	dir, err := r.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// DataRoot returns <data-home>/project_manager/projects, the path of the
// "default" library.
func (r Resolver) DataRoot() (string, error) {
	home, err := r.DataHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, branding.AppDir(), ProjectsDir), nil
}

// TrashRoot returns <data-home>/Trash, the freedesktop trash directory.
func (r Resolver) TrashRoot() (string, error) {
	home, err := r.DataHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, TrashDir), nil
}
