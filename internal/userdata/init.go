package userdata

import (
	"fmt"
	"io"
	"os"
)

// Setup creates the config directory, the data root, the hook prefix
// directories and an empty registry file. It prints progress messages to w.
// Existing items are skipped with a message.
func Setup(w io.Writer, r Resolver) error {
	configDir, err := r.ConfigDir()
	if err != nil {
		return err
	}
	dataRoot, err := r.DataRoot()
	if err != nil {
		return err
	}
	buildersDir, err := r.DefaultBuildersDir()
	if err != nil {
		return err
	}
	openersDir, err := r.DefaultOpenersDir()
	if err != nil {
		return err
	}
	configPath, err := r.ConfigPath()
	if err != nil {
		return err
	}

	for _, dir := range []string{configDir, dataRoot, buildersDir, openersDir} {
		if err := ensureDir(w, dir, DirPermNormal); err != nil {
			return err
		}
	}

	return ensureFile(w, configPath, "", FilePermNormal)
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(w io.Writer, path string, perm os.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
			return nil
		}
		return fmt.Errorf("%s exists but is not a directory", path)
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}

// ensureFile creates a file with content if it doesn't exist.
func ensureFile(w io.Writer, path, content string, perm os.FileMode) error {
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
		return nil
	}

	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}
