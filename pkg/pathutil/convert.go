// Package pathutil provides utilities for converting between absolute and relative paths.
//
// Architecture Pattern:
// fseq walks directories using absolute paths internally for consistency and to avoid
// ambiguity, but user-facing output should use relative paths for readability and
// portability. This package provides the conversion layer between internal (absolute)
// and external (relative) representations.
package pathutil

import (
	"path/filepath"
	"strings"
)

// ToRelative converts an absolute path to relative based on a root directory.
// Falls back to the original path if conversion fails or path is already relative.
//
// Examples:
//   - ToRelative("/home/user/project/src/main.go", "/home/user/project") → "src/main.go"
//   - ToRelative("/other/location/file.go", "/home/user/project") → "/other/location/file.go" (outside root)
//   - ToRelative("src/main.go", "/home/user/project") → "src/main.go" (already relative)
func ToRelative(absPath, rootDir string) string {
	if absPath == "" || rootDir == "" {
		return absPath
	}

	if !filepath.IsAbs(absPath) {
		return absPath
	}

	absPath = filepath.Clean(absPath)
	rootDir = filepath.Clean(rootDir)

	relPath, err := filepath.Rel(rootDir, absPath)
	if err != nil {
		return absPath
	}

	if strings.HasPrefix(relPath, "..") {
		return absPath
	}

	return relPath
}

// Leaf returns the filename component of a path, discarding directory
// components. The sequence collation engine only ever looks at this part of
// a name: digits inside directory components never participate in a run.
func Leaf(path string) string {
	return filepath.Base(path)
}
