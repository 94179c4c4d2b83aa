// Package util holds small helpers shared by the CLI and the view.
package util

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a user-entered path to its absolute form, handling ~,
// relative segments and symlinks. Non-existent paths are returned in
// absolute form so the caller can produce its own error.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", errors.New("path is empty")
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err == nil {
		return resolved, nil
	}
	if os.IsNotExist(err) {
		return absPath, nil
	}
	return "", err
}
