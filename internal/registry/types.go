package registry

// FormatVersion is the registry format written on every save.
const FormatVersion = "1.0.0"

// DefaultLibraryName names the library that points at the data root.
const DefaultLibraryName = "default"

// Registry is the in-memory form of config.toml.
type Registry struct {
	FormatVersion  string                 `toml:"format_version"`
	Revision       int64                  `toml:"revision"`
	DefaultLibrary string                 `toml:"default_library,omitempty"`
	BuildersDir    string                 `toml:"builders_dir,omitempty"`
	OpenersDir     string                 `toml:"openers_dir,omitempty"`
	Libraries      map[string]string      `toml:"libraries"`
	AliasGroups    map[string]AliasGroup  `toml:"alias_groups"`
	ProjectTypes   map[string]ProjectType `toml:"project_types"`

	// revision read from disk, compared against the file again on save
	loadedRevision int64
}

// AliasGroup is a directory that receives one symlink per member project.
type AliasGroup struct {
	Path string `toml:"path"`
}

// ProjectType is a named preset applied when a project is created.
type ProjectType struct {
	DefaultAliasGroups []string `toml:"default_alias_groups"`
	Builder            string   `toml:"builder,omitempty"`
	Opener             string   `toml:"opener,omitempty"`
}

// Defaults are inserted into a loaded registry when absent.
type Defaults struct {
	DataRoot    string // path of the "default" library
	BuildersDir string
	OpenersDir  string
}

// New returns an empty registry with initialized maps.
func New() *Registry {
	r := &Registry{FormatVersion: FormatVersion}
	r.initMaps()
	return r
}

func (r *Registry) initMaps() {
	if r.Libraries == nil {
		r.Libraries = map[string]string{}
	}
	if r.AliasGroups == nil {
		r.AliasGroups = map[string]AliasGroup{}
	}
	if r.ProjectTypes == nil {
		r.ProjectTypes = map[string]ProjectType{}
	}
}

func (r *Registry) applyDefaults(d Defaults) {
	if _, ok := r.Libraries[DefaultLibraryName]; !ok && d.DataRoot != "" {
		r.Libraries[DefaultLibraryName] = d.DataRoot
	}
	if r.BuildersDir == "" {
		r.BuildersDir = d.BuildersDir
	}
	if r.OpenersDir == "" {
		r.OpenersDir = d.OpenersDir
	}
}
