package userdata

import (
	"fmt"
	"io"
	"os"

	"github.com/levirogalla/donna-cli/internal/registry"
)

// Check validates the config layout and the registry. It prints one line per
// check to w and returns the number of problems found. When fix is true,
// missing directories are created.
func Check(w io.Writer, r Resolver, fix bool) (int, error) {
	configDir, err := r.ConfigDir()
	if err != nil {
		return 0, err
	}
	configPath, err := r.ConfigPath()
	if err != nil {
		return 0, err
	}

	fmt.Fprintln(w, "Layout check:")
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", configPath)
		if !fix {
			fmt.Fprintln(w, "         Run 'donna init' to create")
			return 1, nil
		}
		fmt.Fprintln(w, "  [FIX ] Running init...")
		if err := Setup(w, r); err != nil {
			return 1, fmt.Errorf("auto-fix init: %w", err)
		}
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", configDir)

	c := &checker{w: w, fix: fix}
	dataRoot, err := r.DataRoot()
	if err != nil {
		return 0, err
	}
	c.dir(dataRoot, true)

	fmt.Fprintln(w, "Registry check:")
	result, err := registry.ValidateFile(configPath)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", configPath, err)
		return c.problems + 1, nil
	}
	if !result.Valid {
		for _, issue := range result.Issues {
			fmt.Fprintf(w, "  [FAIL] %s: %s\n", issuePath(issue.Path), issue.Message)
		}
		return c.problems + len(result.Issues), nil
	}
	fmt.Fprintf(w, "  [ OK ] %s matches the registry schema\n", configPath)

	d, err := RegistryDefaults(r)
	if err != nil {
		return 0, err
	}
	reg, err := registry.Load(configPath, d)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return c.problems + 1, nil
	}

	c.dir(reg.BuildersDir, true)
	c.dir(reg.OpenersDir, true)

	for _, name := range reg.LibraryNames() {
		if name == registry.DefaultLibraryName && reg.Libraries[name] == dataRoot {
			continue
		}
		c.dir(reg.Libraries[name], false)
	}
	for _, name := range reg.AliasGroupNames() {
		c.dir(reg.AliasGroups[name].Path, false)
	}
	if reg.DefaultLibrary != "" {
		if _, ok := reg.Libraries[reg.DefaultLibrary]; !ok {
			c.warn("default_library %q is not a tracked library", reg.DefaultLibrary)
		}
	}
	for _, name := range reg.ProjectTypeNames() {
		pt := reg.ProjectTypes[name]
		for _, g := range pt.DefaultAliasGroups {
			if _, ok := reg.AliasGroups[g]; !ok {
				c.warn("project type %q refers to untracked alias group %q", name, g)
			}
		}
		for _, script := range []string{pt.Builder, pt.Opener} {
			if script == "" {
				continue
			}
			if _, err := os.Stat(script); err != nil {
				c.warn("project type %q hook %s does not exist", name, script)
			}
		}
	}

	if c.problems == 0 {
		fmt.Fprintln(w, "  [ OK ] all references resolve")
	}
	return c.problems, nil
}

type checker struct {
	w        io.Writer
	fix      bool
	problems int
}

func (c *checker) warn(format string, args ...any) {
	c.problems++
	fmt.Fprintf(c.w, "  [WARN] "+format+"\n", args...)
}

// dir reports on a directory. fixable directories are created when fix is set.
func (c *checker) dir(path string, fixable bool) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		if c.fix && fixable {
			if mkErr := os.MkdirAll(path, DirPermNormal); mkErr != nil {
				c.problems++
				fmt.Fprintf(c.w, "  [FAIL] Could not create %s: %v\n", path, mkErr)
				return
			}
			fmt.Fprintf(c.w, "  [FIX ] Created %s\n", path)
			return
		}
		c.problems++
		fmt.Fprintf(c.w, "  [MISS] %s does not exist\n", path)
		return
	}
	if err != nil {
		c.problems++
		fmt.Fprintf(c.w, "  [FAIL] %s: %v\n", path, err)
		return
	}
	if !info.IsDir() {
		c.warn("%s exists but is not a directory", path)
		return
	}
	fmt.Fprintf(c.w, "  [ OK ] %s exists\n", path)
}

func issuePath(p string) string {
	if p == "" {
		return "(root)"
	}
	return p
}
