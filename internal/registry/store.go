package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/levirogalla/donna-cli/internal/errdefs"
	"github.com/pelletier/go-toml/v2"
)

var supported = semver.MustParse(FormatVersion)

// Load reads the registry at path and inserts the defaults that are absent.
// Defaults are kept in memory only; the next Save persists them.
func Load(path string, d Defaults) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errdefs.Wrap(errdefs.ErrConfigIO, errdefs.EntityConfig, path, err)
	}

	reg, err := decode(path, data)
	if err != nil {
		return nil, err
	}
	reg.applyDefaults(d)
	return reg, nil
}

// LoadOrInit is Load, except that a missing file yields an empty registry
// with defaults. The first Save creates the file.
func LoadOrInit(path string, d Defaults) (*Registry, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		reg := New()
		reg.applyDefaults(d)
		return reg, nil
	}
	return Load(path, d)
}

func decode(path string, data []byte) (*Registry, error) {
	reg := &Registry{}
	if err := toml.Unmarshal(data, reg); err != nil {
		return nil, errdefs.Wrap(errdefs.ErrConfigParse, errdefs.EntityConfig, path, err)
	}
	if err := checkFormat(reg.FormatVersion); err != nil {
		return nil, errdefs.Wrap(errdefs.ErrConfigParse, errdefs.EntityConfig, path, err)
	}
	if reg.FormatVersion == "" {
		reg.FormatVersion = FormatVersion
	}
	reg.initMaps()
	reg.loadedRevision = reg.Revision
	return reg, nil
}

// checkFormat rejects registries written by a newer major format. An empty
// stamp is read as the current format.
func checkFormat(stamp string) error {
	if stamp == "" {
		return nil
	}
	v, err := semver.NewVersion(stamp)
	if err != nil {
		return fmt.Errorf("parsing format_version %q: %w", stamp, err)
	}
	if v.Major() > supported.Major() {
		return fmt.Errorf("format_version %s is newer than supported %s", v, supported)
	}
	return nil
}

// Save writes reg to path, replacing the whole file. The write goes through a
// temp file in the same directory and a rename. If the file on disk carries
// a different revision than the one reg was loaded with, Save returns
// ErrStaleRegistry and writes nothing.
func Save(reg *Registry, path string) error {
	onDisk, err := diskRevision(path)
	if err != nil {
		return err
	}
	if onDisk != reg.loadedRevision {
		return errdefs.New(errdefs.ErrStaleRegistry, errdefs.EntityConfig, path)
	}

	out := *reg
	out.FormatVersion = FormatVersion
	out.Revision = reg.loadedRevision + 1

	data, err := toml.Marshal(&out)
	if err != nil {
		return errdefs.Wrap(errdefs.ErrConfigParse, errdefs.EntityConfig, path, err)
	}
	if err := writeAtomic(path, data); err != nil {
		return errdefs.Wrap(errdefs.ErrConfigIO, errdefs.EntityConfig, path, err)
	}

	reg.FormatVersion = out.FormatVersion
	reg.Revision = out.Revision
	reg.loadedRevision = out.Revision
	return nil
}

// diskRevision returns the revision stored at path. A missing or unparsable
// file counts as revision 0 so a fresh or corrupt registry can be replaced.
func diskRevision(path string) (int64, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, errdefs.Wrap(errdefs.ErrConfigIO, errdefs.EntityConfig, path, err)
	}
	var stamp struct {
		Revision int64 `toml:"revision"`
	}
	if err := toml.Unmarshal(data, &stamp); err != nil {
		return 0, nil
	}
	return stamp.Revision, nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.toml")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
