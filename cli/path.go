package cli

import (
	"os"
	"path/filepath"

	"github.com/ardnew/ams/pkg"
)

// baseConfig is the base name of the configuration files.
const baseConfig = "config"

// defaultDirMode is the permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// configPath returns the path formed by joining the configuration directory
// with the given path elements.
//
// If no elements are given, it is equivalent to calling [pkg.ConfigDir].
func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}

// cachePath is [configPath] for the cache directory.
func cachePath(elem ...string) string {
	return filepath.Join(append([]string{pkg.CacheDir()}, elem...)...)
}

// mkdirAllRequired creates all required runtime directories.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
