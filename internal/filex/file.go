// Package filex has small filesystem helpers for the console.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureSubdDir creates dirName under the working directory (if needed)
// and returns its absolute path.
func EnsureSubdDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// SafeBaseName reduces a server file reference (URL path or relative
// path) to a file name that cannot escape the target directory.
func SafeBaseName(ref string) string {
	ref, _, _ = strings.Cut(ref, "?")
	name := filepath.Base(filepath.FromSlash(ref))
	if name == "." || name == ".." || name == string(filepath.Separator) || name == "" {
		return "document"
	}
	return name
}
