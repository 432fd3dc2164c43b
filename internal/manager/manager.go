package manager

import (
	"os"
	"path/filepath"

	"github.com/levirogalla/donna-cli/internal/clone"
	"github.com/levirogalla/donna-cli/internal/config"
	"github.com/levirogalla/donna-cli/internal/hook"
	"github.com/levirogalla/donna-cli/internal/platform"
	"github.com/levirogalla/donna-cli/internal/registry"
	"github.com/levirogalla/donna-cli/internal/userdata"
)

// Manager runs operations against one user's registry.
type Manager struct {
	resolver userdata.Resolver
	settings *config.Settings
	hooks    hook.Runner
	cloner   clone.Cloner
	deleter  platform.Deleter
	getwd    func() (string, error)
}

// Option configures a Manager.
type Option func(*Manager)

// WithSettings uses s instead of loading settings.yaml.
func WithSettings(s *config.Settings) Option {
	return func(m *Manager) { m.settings = s }
}

// WithHookRunner replaces the subprocess hook runner.
func WithHookRunner(r hook.Runner) Option {
	return func(m *Manager) { m.hooks = r }
}

// WithCloner replaces the git cloner.
func WithCloner(c clone.Cloner) Option {
	return func(m *Manager) { m.cloner = c }
}

// WithDeleter replaces the deleter chosen from the use_trash setting.
func WithDeleter(d platform.Deleter) Option {
	return func(m *Manager) { m.deleter = d }
}

// WithGetwd sets the working directory relative paths resolve against.
func WithGetwd(fn func() (string, error)) Option {
	return func(m *Manager) { m.getwd = fn }
}

// New returns a Manager for the paths r resolves. Collaborators not
// supplied through opts are built from the user's settings.
func New(r userdata.Resolver, opts ...Option) (*Manager, error) {
	m := &Manager{resolver: r}
	for _, opt := range opts {
		opt(m)
	}

	if m.settings == nil {
		s, err := config.Load(r)
		if err != nil {
			return nil, err
		}
		m.settings = s
	}
	if m.hooks == nil {
		m.hooks = &hook.ExecRunner{Interpreter: m.settings.HookInterpreter()}
	}
	if m.cloner == nil {
		m.cloner = &clone.GitCloner{Binary: m.settings.GitBinary()}
	}
	if m.deleter == nil {
		trashRoot, err := r.TrashRoot()
		if err != nil {
			return nil, err
		}
		m.deleter = platform.NewDeleter(m.settings.UseTrash(), trashRoot)
	}
	if m.getwd == nil {
		m.getwd = os.Getwd
	}
	return m, nil
}

// Settings returns the settings the manager was built with.
func (m *Manager) Settings() *config.Settings { return m.settings }

// Resolver returns the path resolver.
func (m *Manager) Resolver() userdata.Resolver { return m.resolver }

// Session is one load/mutate/commit cycle over the registry. A single
// writer is assumed; a concurrent save between Begin and Commit makes
// Commit fail with ErrStaleRegistry instead of overwriting it.
type Session struct {
	Registry *registry.Registry
	path     string
}

// Begin loads the registry. A missing registry file starts empty.
func (m *Manager) Begin() (*Session, error) {
	path, err := m.resolver.ConfigPath()
	if err != nil {
		return nil, err
	}
	d, err := userdata.RegistryDefaults(m.resolver)
	if err != nil {
		return nil, err
	}
	reg, err := registry.LoadOrInit(path, d)
	if err != nil {
		return nil, err
	}
	return &Session{Registry: reg, path: path}, nil
}

// Commit saves the registry.
func (s *Session) Commit() error {
	return registry.Save(s.Registry, s.path)
}

// update runs fn in a session and commits when fn succeeds.
func (m *Manager) update(fn func(s *Session) error) error {
	s, err := m.Begin()
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	return s.Commit()
}

// view runs fn in a session that is never committed.
func (m *Manager) view(fn func(s *Session) error) error {
	s, err := m.Begin()
	if err != nil {
		return err
	}
	return fn(s)
}

// absPath resolves p against the manager's working directory.
func (m *Manager) absPath(p string) (string, error) {
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	wd, err := m.getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, p), nil
}
