package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// StateDir resolves (and creates if missing) the directory that holds the
// client's local state file. It prefers the OS user config dir and falls
// back to the current working directory.
func StateDir(appName string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		base, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
	}

	dir := filepath.Join(base, appName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// Stat returns the file's base name and size, rejecting directories.
func Stat(path string) (name string, size int64, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", 0, err
	}
	if info.IsDir() {
		return "", 0, fmt.Errorf("%s is a directory", path)
	}
	return info.Name(), info.Size(), nil
}
