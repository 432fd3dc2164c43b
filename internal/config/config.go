package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/levirogalla/donna-cli/internal/branding"
	"github.com/levirogalla/donna-cli/internal/userdata"
	"github.com/spf13/viper"
)

const fileType = "yaml"

// Setting keys.
const (
	KeyUseTrash        = "use_trash"
	KeyLogLevel        = "log_level"
	KeyHookInterpreter = "hook_interpreter"
	KeyGitBinary       = "git_binary"
)

var defaults = map[string]any{
	KeyUseTrash:        false,
	KeyLogLevel:        "warn",
	KeyHookInterpreter: "",
	KeyGitBinary:       "git",
}

// Settings is the user-level settings file plus its environment overrides.
// Each key can be overridden by DONNA_CLI_<KEY>.
type Settings struct {
	v    *viper.Viper
	path string
}

// Load reads settings.yaml from the resolver's config dir. A missing file is
// not an error; defaults and environment values still apply.
func Load(r userdata.Resolver) (*Settings, error) {
	path, err := r.SettingsPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads settings from an explicit path.
func LoadFile(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading settings %s: %w", path, err)
		}
	}
	return &Settings{v: v, path: path}, nil
}

// Path returns the settings file location.
func (s *Settings) Path() string { return s.path }

// UseTrash reports whether deletions move directories to the trash.
func (s *Settings) UseTrash() bool { return s.v.GetBool(KeyUseTrash) }

// LogLevel returns the configured log level name.
func (s *Settings) LogLevel() string { return s.v.GetString(KeyLogLevel) }

// HookInterpreter returns the program hooks are run through, or "" to exec
// them directly.
func (s *Settings) HookInterpreter() string { return s.v.GetString(KeyHookInterpreter) }

// GitBinary returns the git executable used for clones.
func (s *Settings) GitBinary() string { return s.v.GetString(KeyGitBinary) }

// Get returns a setting value by key. Returns empty string if not set.
func (s *Settings) Get(key string) string {
	return s.v.GetString(key)
}

// Keys returns the known setting keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsKnown reports whether key is a recognized setting.
func IsKnown(key string) bool {
	_, ok := defaults[key]
	return ok
}

// Set writes a key-value pair and saves the settings file.
func (s *Settings) Set(key, value string) error {
	if !IsKnown(key) {
		return fmt.Errorf("unknown setting %q", key)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), userdata.DirPermNormal); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	s.v.Set(key, value)

	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	return nil
}
