package userdata

import "github.com/levirogalla/donna-cli/internal/registry"

// RegistryDefaults returns the values inserted into a loaded registry when
// it does not set them.
func RegistryDefaults(r Resolver) (registry.Defaults, error) {
	dataRoot, err := r.DataRoot()
	if err != nil {
		return registry.Defaults{}, err
	}
	builders, err := r.DefaultBuildersDir()
	if err != nil {
		return registry.Defaults{}, err
	}
	openers, err := r.DefaultOpenersDir()
	if err != nil {
		return registry.Defaults{}, err
	}
	return registry.Defaults{DataRoot: dataRoot, BuildersDir: builders, OpenersDir: openers}, nil
}
