// Package filesystem backs shared.FileSystem with the local disk.
package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
)

// OSFileSystem answers the public clone and artifact path queries made by release steps.
type OSFileSystem struct{}

// Stat follows symbolic links.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// Abs anchors a relative path at the process working directory.
func (OSFileSystem) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

// MkdirAll creates the parent directories of a clone target.
func (OSFileSystem) MkdirAll(path string, permissions fs.FileMode) error {
	return os.MkdirAll(path, permissions)
}
