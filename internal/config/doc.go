// Package config manages user-level settings stored in settings.yaml beside
// the registry. Settings cover behavior rather than tracked entities: whether
// deletions go to the trash, the log level, and the programs used to run
// hooks and clones.
package config
