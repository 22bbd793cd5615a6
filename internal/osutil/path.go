package osutil

import (
	"errors"
	"os"
	"path/filepath"
)

// NormalizeFilePath returns a clean absolute version of path. It expands
// environment variables, converts a leading "~" into the user's home
// directory, and resolves relative paths against the working directory.
// Empty paths are returned as-is.
func NormalizeFilePath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	path, err := ExpandHome(os.ExpandEnv(path))
	if err != nil {
		return "", err
	}

	return filepath.Abs(path)
}

// ExpandHome expands the path to include the home directory if the path
// is prefixed with `~`. If it isn't prefixed with `~`, the path is
// returned as-is.
func ExpandHome(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	if len(path) > 1 && path[1] != '/' && path[1] != '\\' {
		return "", errors.New("cannot expand user-specific home dir")
	}

	home, err := UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}
