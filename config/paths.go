package config

import (
	"os"
	"path/filepath"
)

// File names for the two config sources. The dotted name is preferred for
// project-local files so the file stays hidden in the project tree.
const (
	projectDottedName = ".membridge.json"
	projectPlainName  = "membridge.json"
	globalFileName    = "membridge.json"
	globalDirName     = "membridge"
)

// projectFilePath returns the project-local config path: the dotted name
// when it exists, otherwise the plain name. Empty when projectDir is empty.
func (r *Resolver) projectFilePath(projectDir string) string {
	if projectDir == "" {
		return ""
	}
	dotted := filepath.Join(projectDir, projectDottedName)
	if _, err := os.Stat(dotted); err == nil {
		return dotted
	}
	return filepath.Join(projectDir, projectPlainName)
}

// globalFilePath returns the process-wide config path. EnvConfigDir wins
// over the platform config directory; an empty string disables the source
// when neither is available.
func (r *Resolver) globalFilePath() string {
	if dir, ok := r.lookupEnv(EnvConfigDir); ok && dir != "" {
		return filepath.Join(dir, globalFileName)
	}
	base, err := r.userConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, globalDirName, globalFileName)
}
